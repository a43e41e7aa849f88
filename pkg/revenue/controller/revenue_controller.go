package controller

import "github.com/labstack/echo/v4"

type RevenueController interface {
	Register(g *echo.Group)
	ListPlans(c echo.Context) error
	CreatePlan(c echo.Context) error
	PatchPlan(c echo.Context) error
	ListPrices(c echo.Context) error
	CreatePrice(c echo.Context) error
	ImportPrices(c echo.Context) error
	LatestPrices(c echo.Context) error
	PriceHistory(c echo.Context) error
	PriceTrend(c echo.Context) error
	ListCosts(c echo.Context) error
	CreateCost(c echo.Context) error
	CostBreakdown(c echo.Context) error
	Profitability(c echo.Context) error
	RevenueReport(c echo.Context) error
	CostReport(c echo.Context) error
	Years(c echo.Context) error
}
