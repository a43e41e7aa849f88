package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farm/pkg/httpx"
	"farm/pkg/planner/controller"
	"farm/pkg/planner/service"
)

type PlannerCtrl struct{ s service.PlannerService }

func New(s service.PlannerService) controller.PlannerController { return &PlannerCtrl{s: s} }

func (h *PlannerCtrl) Register(g *echo.Group) {
	p := g.Group("/planner")
	p.GET("/fields", h.ListFields)
	p.POST("/fields", h.CreateField)
	p.DELETE("/fields", h.RemoveField)
	p.GET("/plans", h.ListPlans)
	p.POST("/plans", h.CreatePlan)
	p.PATCH("/plans/:id", h.PatchPlan)
	p.GET("/calendar", h.Calendar)
	p.GET("/report", h.Report)
}

func (h *PlannerCtrl) ListFields(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.ListFields())
}

func (h *PlannerCtrl) CreateField(c echo.Context) error {
	var in service.FieldInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	f, err := h.s.CreateField(in)
	return httpx.Mutated(c, http.StatusCreated, f, err)
}

// RemoveField deletes by ?name=, matching the exact field name.
func (h *PlannerCtrl) RemoveField(c echo.Context) error {
	n, err := h.s.RemoveFieldByName(c.QueryParam("name"))
	return httpx.Mutated(c, http.StatusOK, echo.Map{"removed": n}, err)
}

func (h *PlannerCtrl) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.ListCropPlans())
}

func (h *PlannerCtrl) CreatePlan(c echo.Context) error {
	var in service.CropPlanInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	p, err := h.s.CreateCropPlan(in)
	return httpx.Mutated(c, http.StatusCreated, p, err)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *PlannerCtrl) PatchPlan(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return httpx.Fail(c, err)
	}
	var req statusReq
	if err := httpx.Bind(c, &req); err != nil {
		return httpx.Fail(c, err)
	}
	p, err := h.s.UpdateCropPlanStatus(id, req.Status)
	return httpx.Mutated(c, http.StatusOK, p, err)
}

func (h *PlannerCtrl) Calendar(c echo.Context) error {
	month, err := httpx.QueryInt(c, "month", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	year, err := httpx.QueryInt(c, "year", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	acts, err := h.s.Calendar(year, month)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, acts)
}

func (h *PlannerCtrl) Report(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Report())
}
