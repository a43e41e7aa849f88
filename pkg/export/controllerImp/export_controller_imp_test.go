package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"farm/entities"
	"farm/pkg/export/serviceImp"
	revImp "farm/pkg/revenue/serviceImp"
	"farm/pkg/session"
	"farm/pkg/store/repositoryImp"
	storeImp "farm/pkg/store/serviceImp"
)

func newServer(t *testing.T) (*echo.Echo, *session.State) {
	t.Helper()
	st := session.Load(storeImp.New(repositoryImp.NewFile(t.TempDir())), nil)
	e := echo.New()
	now := func() time.Time { return time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC) }
	New(serviceImp.New(st, revImp.New(st, false)), now).Register(e.Group("/api"))
	return e, st
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestExportCSV(t *testing.T) {
	e, st := newServer(t)
	st.Tasks.Insert(entities.Task{ID: 1, Name: "Fix fence", Priority: "High", Status: "Pending"})

	rec := get(e, "/api/export/tasks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != "attachment; filename=tasks_20250506.csv" {
		t.Fatalf("disposition %q", cd)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv") || !strings.Contains(rec.Body.String(), "Fix fence") {
		t.Fatalf("body %s", rec.Body)
	}
}

func TestExportErrors(t *testing.T) {
	e, _ := newServer(t)
	cases := map[string]int{
		"/api/export/users":            http.StatusNotFound,
		"/api/export/tasks?format=pdf": http.StatusBadRequest,
		"/api/export/all":              http.StatusBadRequest,
		"/api/export/all?format=xlsx":  http.StatusOK,
		"/api/export/profitability":    http.StatusOK,
	}
	for target, want := range cases {
		if rec := get(e, target); rec.Code != want {
			t.Errorf("%s: got %d want %d", target, rec.Code, want)
		}
	}
}
