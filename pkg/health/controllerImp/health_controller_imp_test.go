package controllerImp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type pingFunc func() error

func (f pingFunc) Ping() error { return f() }

func TestHealth(t *testing.T) {
	cases := []struct {
		name  string
		store Pinger
		code  int
		ok    bool
	}{
		{"reachable", pingFunc(func() error { return nil }), http.StatusOK, true},
		{"broken", pingFunc(func() error { return errors.New("not a directory") }), http.StatusServiceUnavailable, false},
		{"nil store", nil, http.StatusServiceUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/health", NewHealthCtrl(tc.store, "json").Health)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tc.code {
				t.Fatalf("code = %d", rec.Code)
			}
			var out struct {
				Checks struct {
					Store struct {
						OK     bool   `json:"ok"`
						Driver string `json:"driver"`
						Err    string `json:"err"`
					} `json:"store"`
				} `json:"checks"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatal(err)
			}
			if out.Checks.Store.OK != tc.ok || out.Checks.Store.Driver != "json" {
				t.Fatalf("store check %+v", out.Checks.Store)
			}
			if !tc.ok && out.Checks.Store.Err == "" {
				t.Fatal("expected an error message")
			}
		})
	}
}
