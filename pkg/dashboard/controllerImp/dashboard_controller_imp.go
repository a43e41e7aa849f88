package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farm/entities"
	"farm/pkg/session"
)

type DashboardCtrl struct{ st *session.State }

func New(st *session.State) *DashboardCtrl { return &DashboardCtrl{st: st} }

func (h *DashboardCtrl) Register(g *echo.Group) {
	g.GET("/summary", h.Summary)
	g.POST("/backup", h.Backup)
	g.GET("/options", h.Options)
}

// Summary reports stored record counts and how each collection loaded at
// startup, so an empty list can be told apart from a failed load.
func (h *DashboardCtrl) Summary(c echo.Context) error {
	h.st.Lock()
	defer h.st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{
		"counts": h.st.Store.Summary(),
		"load":   h.st.LoadResults(),
	})
}

func (h *DashboardCtrl) Backup(c echo.Context) error {
	h.st.Lock()
	loc, ok := h.st.Store.Backup()
	h.st.Unlock()
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "backup failed, see server log"})
	}
	if loc == "" {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "nothing to back up yet"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "location": loc})
}

// Options lists the allowed values of every enumerated field, for forms.
func (h *DashboardCtrl) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"soil_types":           entities.SoilTypes,
		"irrigation":           entities.IrrigationOptions,
		"crop_types":           entities.CropTypes,
		"crop_plan_statuses":   entities.CropPlanStatuses,
		"operation_types":      entities.OperationTypes,
		"task_priorities":      entities.TaskPriorities,
		"task_statuses":        entities.TaskStatuses,
		"expense_categories":   entities.ExpenseCategories,
		"payment_methods":      entities.PaymentMethods,
		"equipment_types":      entities.EquipmentTypes,
		"equipment_conditions": entities.EquipmentConditions,
		"revenue_statuses":     entities.RevenuePlanStatuses,
		"yield_units":          entities.YieldUnits,
		"cost_categories":      entities.CostCategories,
	})
}
