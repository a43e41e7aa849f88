package controller

import "github.com/labstack/echo/v4"

type TrackerController interface {
	Register(g *echo.Group)
	ListOperations(c echo.Context) error
	CreateOperation(c echo.Context) error
	DaySummary(c echo.Context) error
	ListTasks(c echo.Context) error
	CreateTask(c echo.Context) error
	PatchTask(c echo.Context) error
	ListExpenses(c echo.Context) error
	CreateExpense(c echo.Context) error
	ExpenseSummary(c echo.Context) error
	ListEquipment(c echo.Context) error
	CreateEquipment(c echo.Context) error
	PatchEquipment(c echo.Context) error
	Analytics(c echo.Context) error
}
