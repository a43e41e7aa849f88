package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farm/pkg/middleware"
)

// APIController mounts its routes under /api.
type APIController interface {
	Register(g *echo.Group)
}

func New(
	e *echo.Echo,
	rateLimit int,
	healthCtrl interface{ Health(echo.Context) error },
	assets interface{ Register(*echo.Echo) },
	controllers ...APIController,
) *echo.Echo {
	e.Use(middleware.NoCache(), middleware.CORS())
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api", middleware.RateLimit(rateLimit))
	for _, c := range controllers {
		c.Register(api)
	}
	// Unknown API paths must not fall through to the SPA index.
	api.Any("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no such endpoint"})
	})

	assets.Register(e)
	return e
}
