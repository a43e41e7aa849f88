package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farm/pkg/httpx"
	"farm/pkg/tracker/controller"
	"farm/pkg/tracker/service"
)

const defaultRecent = 10

type TrackerCtrl struct{ s service.TrackerService }

func New(s service.TrackerService) controller.TrackerController { return &TrackerCtrl{s: s} }

func (h *TrackerCtrl) Register(g *echo.Group) {
	t := g.Group("/tracker")
	t.GET("/operations", h.ListOperations)
	t.POST("/operations", h.CreateOperation)
	t.GET("/operations/summary", h.DaySummary)
	t.GET("/tasks", h.ListTasks)
	t.POST("/tasks", h.CreateTask)
	t.PATCH("/tasks/:id", h.PatchTask)
	t.GET("/expenses", h.ListExpenses)
	t.POST("/expenses", h.CreateExpense)
	t.GET("/expenses/summary", h.ExpenseSummary)
	t.GET("/equipment", h.ListEquipment)
	t.POST("/equipment", h.CreateEquipment)
	t.PATCH("/equipment/:id", h.PatchEquipment)
	t.GET("/analytics", h.Analytics)
}

func (h *TrackerCtrl) ListOperations(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.ListOperations())
}

func (h *TrackerCtrl) CreateOperation(c echo.Context) error {
	var in service.OperationInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	o, err := h.s.RecordOperation(in)
	return httpx.Mutated(c, http.StatusCreated, o, err)
}

func (h *TrackerCtrl) DaySummary(c echo.Context) error {
	d, err := h.s.DaySummary(c.QueryParam("date"))
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *TrackerCtrl) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tasks": h.s.ListTasks(), "counts": h.s.TaskCounts()})
}

func (h *TrackerCtrl) CreateTask(c echo.Context) error {
	var in service.TaskInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	t, err := h.s.AddTask(in)
	return httpx.Mutated(c, http.StatusCreated, t, err)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *TrackerCtrl) PatchTask(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return httpx.Fail(c, err)
	}
	var req statusReq
	if err := httpx.Bind(c, &req); err != nil {
		return httpx.Fail(c, err)
	}
	t, err := h.s.UpdateTaskStatus(id, req.Status)
	return httpx.Mutated(c, http.StatusOK, t, err)
}

// ListExpenses returns everything, or the newest ?recent=N by date.
func (h *TrackerCtrl) ListExpenses(c echo.Context) error {
	if c.QueryParam("recent") == "" {
		return c.JSON(http.StatusOK, h.s.ListExpenses())
	}
	n, err := httpx.QueryInt(c, "recent", defaultRecent)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, h.s.RecentExpenses(n))
}

func (h *TrackerCtrl) CreateExpense(c echo.Context) error {
	var in service.ExpenseInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	e, err := h.s.RecordExpense(in)
	return httpx.Mutated(c, http.StatusCreated, e, err)
}

func (h *TrackerCtrl) ExpenseSummary(c echo.Context) error {
	year, err := httpx.QueryInt(c, "year", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	month, err := httpx.QueryInt(c, "month", 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	sum, err := h.s.ExpenseSummary(year, month)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *TrackerCtrl) ListEquipment(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"equipment": h.s.ListEquipment(), "overview": h.s.EquipmentOverview()})
}

func (h *TrackerCtrl) CreateEquipment(c echo.Context) error {
	var in service.EquipmentInput
	if err := httpx.Bind(c, &in); err != nil {
		return httpx.Fail(c, err)
	}
	e, err := h.s.AddEquipment(in)
	return httpx.Mutated(c, http.StatusCreated, e, err)
}

func (h *TrackerCtrl) PatchEquipment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return httpx.Fail(c, err)
	}
	var p service.EquipmentPatch
	if err := httpx.Bind(c, &p); err != nil {
		return httpx.Fail(c, err)
	}
	e, err := h.s.UpdateEquipment(id, p)
	return httpx.Mutated(c, http.StatusOK, e, err)
}

func (h *TrackerCtrl) Analytics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Analytics())
}
