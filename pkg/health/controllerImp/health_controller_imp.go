package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var appStart = time.Now()

// Pinger is anything whose reachability the probe reports.
type Pinger interface {
	Ping() error
}

type HealthCtrl struct {
	store  Pinger
	driver string
}

func NewHealthCtrl(store Pinger, driver string) *HealthCtrl {
	return &HealthCtrl{store: store, driver: driver}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	storeOK, storeErr := true, ""
	if h.store == nil {
		storeOK, storeErr = false, "store is nil"
	} else {
		done := make(chan error, 1)
		go func() { done <- h.store.Ping() }()
		select {
		case err := <-done:
			if err != nil {
				storeOK, storeErr = false, "ping: "+err.Error()
			}
		case <-ctx.Done():
			storeOK, storeErr = false, "ping: "+ctx.Err().Error()
		}
	}

	status := http.StatusOK
	if !storeOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK     bool   `json:"ok"`
		Driver string `json:"driver,omitempty"`
		Err    string `json:"err,omitempty"`
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": storeOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"store": sub{OK: storeOK, Driver: h.driver, Err: storeErr},
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
