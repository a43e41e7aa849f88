package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"farm/entities"
	"farm/pkg/session"
	"farm/pkg/store/repositoryImp"
	storeImp "farm/pkg/store/serviceImp"
)

func TestSummaryAndBackup(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data")
	now := func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	st := session.Load(storeImp.NewWithClock(repositoryImp.NewFile(dir), now), now)
	e := echo.New()
	New(st).Register(e.Group("/api"))

	serve := func(method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec
	}

	if rec := serve(http.MethodPost, "/api/backup"); rec.Code != http.StatusOK {
		t.Fatalf("empty backup %d", rec.Code)
	}

	st.Fields.Insert(entities.Field{ID: 1, Name: "North"})
	rec := serve(http.MethodGet, "/api/summary")
	var out struct {
		Counts map[string]int `json:"counts"`
		Load   []struct {
			Collection string `json:"collection"`
			Status     string `json:"status"`
		} `json:"load"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Counts["fields"] != 1 || len(out.Counts) != len(entities.Collections) {
		t.Fatalf("counts %v", out.Counts)
	}
	if len(out.Load) != len(entities.Collections) || out.Load[0].Status != "missing" {
		t.Fatalf("load %+v", out.Load)
	}

	if rec := serve(http.MethodPost, "/api/backup"); rec.Code != http.StatusOK {
		t.Fatalf("backup %d %s", rec.Code, rec.Body)
	}
	if _, err := os.Stat(filepath.Join(root, "data_backup_20250101_120000", "fields.json")); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	if rec := serve(http.MethodGet, "/api/options"); rec.Code != http.StatusOK {
		t.Fatalf("options %d", rec.Code)
	}
}
