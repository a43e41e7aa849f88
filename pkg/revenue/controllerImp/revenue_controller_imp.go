package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"farm/pkg/analyzer"
	"farm/pkg/httpx"
	"farm/pkg/revenue/controller"
	"farm/pkg/revenue/importer"
	"farm/pkg/revenue/service"
	"farm/pkg/validation"
)

// maxSheetBytes caps uploaded price sheets.
const maxSheetBytes = 8 << 20

type RevenueCtrl struct{ s service.RevenueService }

func New(s service.RevenueService) controller.RevenueController { return &RevenueCtrl{s: s} }

func (h *RevenueCtrl) Register(g *echo.Group) {
	r := g.Group("/revenue")
	r.GET("/plans", h.ListPlans)
	r.POST("/plans", h.CreatePlan)
	r.PATCH("/plans/:id", h.PatchPlan)
	r.GET("/prices", h.ListPrices)
	r.POST("/prices", h.CreatePrice)
	r.POST("/prices/import", h.ImportPrices)
	r.GET("/prices/latest", h.LatestPrices)
	r.GET("/prices/:crop/history", h.PriceHistory)
	r.GET("/prices/:crop/trend", h.PriceTrend)
	r.GET("/costs", h.ListCosts)
	r.POST("/costs", h.CreateCost)
	r.GET("/costs/breakdown", h.CostBreakdown)
	r.GET("/profitability", h.Profitability)
	r.GET("/reports/revenue", h.RevenueReport)
	r.GET("/reports/costs", h.CostReport)
	r.GET("/reports/years", h.Years)
}

func (h *RevenueCtrl) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"plans": h.s.ListPlans(), "by_crop": h.s.RevenueByCrop()})
}

func (h *RevenueCtrl) CreatePlan(c echo.Context) error {
	var in service.RevenuePlanInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	p, err := h.s.CreatePlan(in)
	return httpx.Mutated(c, http.StatusCreated, p, err)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *RevenueCtrl) PatchPlan(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return httpx.Fail(c, err)
	}
	var req statusReq
	if err := httpx.Bind(c, &req); err != nil {
		return httpx.Fail(c, err)
	}
	p, err := h.s.UpdatePlanStatus(id, req.Status)
	return httpx.Mutated(c, http.StatusOK, p, err)
}

func (h *RevenueCtrl) ListPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.ListPrices())
}

func (h *RevenueCtrl) CreatePrice(c echo.Context) error {
	var in service.CropPriceInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	p, err := h.s.AddPrice(in)
	return httpx.Mutated(c, http.StatusCreated, p, err)
}

// ImportPrices takes the sheet either as a multipart "file" upload or as the
// raw request body. ?format= overrides detection.
func (h *RevenueCtrl) ImportPrices(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxSheetBytes)
	var body io.Reader = req.Body
	name, ctype := "", req.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			ve := &validation.ValidationError{}
			ve.Add("file", "is required")
			return httpx.Fail(c, ve)
		}
		f, err := fh.Open()
		if err != nil {
			return httpx.Fail(c, err)
		}
		defer f.Close()
		body, name, ctype = f, fh.Filename, fh.Header.Get(echo.HeaderContentType)
	}
	format, err := importer.DetectFormat(c.QueryParam("format"), name, ctype)
	if err != nil {
		ve := &validation.ValidationError{}
		ve.Add("format", err.Error())
		return httpx.Fail(c, ve)
	}
	res, err := h.s.ImportPrices(body, format)
	return httpx.Mutated(c, http.StatusOK, res, err)
}

func (h *RevenueCtrl) LatestPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.LatestPrices())
}

func (h *RevenueCtrl) PriceHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.PriceHistory(c.Param("crop")))
}

func (h *RevenueCtrl) PriceTrend(c echo.Context) error {
	t, err := h.s.PriceTrend(c.Param("crop"))
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *RevenueCtrl) ListCosts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.ListCostAnalyses())
}

func (h *RevenueCtrl) CreateCost(c echo.Context) error {
	var in service.CostAnalysisInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	a, err := h.s.AddCostAnalysis(in)
	return httpx.Mutated(c, http.StatusCreated, a, err)
}

func (h *RevenueCtrl) CostBreakdown(c echo.Context) error {
	year, err := httpx.QueryInt(c, "year", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, h.s.CostBreakdown(year))
}

func (h *RevenueCtrl) Profitability(c echo.Context) error {
	p, err := h.s.Profitability()
	var ue *analyzer.UnmatchedError
	if errors.As(err, &ue) {
		return c.JSON(http.StatusConflict, echo.Map{"error": ue.Error(), "unmatched": ue.Plans})
	}
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *RevenueCtrl) RevenueReport(c echo.Context) error {
	year, err := httpx.QueryInt(c, "year", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, h.s.RevenueSummary(year))
}

func (h *RevenueCtrl) CostReport(c echo.Context) error {
	year, err := httpx.QueryInt(c, "year", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, h.s.CostReport(year))
}

func (h *RevenueCtrl) Years(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Years())
}
