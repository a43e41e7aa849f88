package controller

import "github.com/labstack/echo/v4"

type PlannerController interface {
	Register(g *echo.Group)
	ListFields(c echo.Context) error
	CreateField(c echo.Context) error
	RemoveField(c echo.Context) error
	ListPlans(c echo.Context) error
	CreatePlan(c echo.Context) error
	PatchPlan(c echo.Context) error
	Calendar(c echo.Context) error
	Report(c echo.Context) error
}
