package static

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func site(t *testing.T, withIndex bool) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.js":        "console.log(1)",
		"css/style.css": "body{}",
		"notes.zzz":     "plain",
	}
	if withIndex {
		files["index.html"] = "<html>farm</html>"
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e := echo.New()
	New(dir).Register(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = target
	e.ServeHTTP(rec, req)
	return rec
}

func TestServe(t *testing.T) {
	e := site(t, true)
	cases := []struct {
		path, ctype, body string
	}{
		{"/", "text/html", "farm"},
		{"/app.js", "javascript", "console.log"},
		{"/css/style.css", "text/css", "body{}"},
		{"/notes.zzz", "text/plain", "plain"},
		{"/planner/fields", "text/html", "farm"},
		{"/css", "text/html", "farm"},
	}
	for _, tc := range cases {
		rec := get(e, tc.path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: code %d", tc.path, rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, tc.ctype) {
			t.Fatalf("%s: content type %q", tc.path, ct)
		}
		if !strings.Contains(rec.Body.String(), tc.body) {
			t.Fatalf("%s: body %q", tc.path, rec.Body)
		}
	}
}

func TestServeRejectsTraversal(t *testing.T) {
	e := site(t, true)
	if rec := get(e, "/../secret"); rec.Code != http.StatusNotFound {
		t.Fatalf("code %d", rec.Code)
	}
}

func TestServeWithoutIndex(t *testing.T) {
	e := site(t, false)
	if rec := get(e, "/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("code %d", rec.Code)
	}
	if rec := get(e, "/app.js"); rec.Code != http.StatusOK {
		t.Fatalf("code %d", rec.Code)
	}
}

func TestListenScansUpward(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	if _, err := Listen("127.0.0.1", port, 1); err == nil {
		t.Fatal("expected an error with a single busy port")
	}

	ln, err := Listen("127.0.0.1", port, 10)
	if err != nil {
		t.Skipf("no free port near %d: %v", port, err)
	}
	defer ln.Close()
	if got := ln.Addr().(*net.TCPAddr).Port; got <= port {
		t.Fatalf("got port %d, busy was %d", got, port)
	}
}
