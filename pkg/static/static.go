package static

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
)

const indexFile = "index.html"

var fallbackTypes = map[string]string{
	".js":   "application/javascript",
	".css":  "text/css",
	".json": "application/json",
}

// Handler serves the single page app from root. Unknown paths get
// index.html so client-side routes survive a reload.
type Handler struct {
	root string
}

func New(root string) *Handler { return &Handler{root: root} }

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/*", h.Serve)
	e.HEAD("/*", h.Serve)
}

func (h *Handler) Serve(c echo.Context) error {
	p := c.Request().URL.Path
	if strings.Contains(p, "..") {
		return c.NoContent(http.StatusNotFound)
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		p = indexFile
	}
	if ok, err := h.serveFile(c, p); ok || err != nil {
		return err
	}
	if ok, err := h.serveFile(c, indexFile); ok || err != nil {
		return err
	}
	return c.NoContent(http.StatusNotFound)
}

// serveFile reports false when name is not a regular file under root.
func (h *Handler) serveFile(c echo.Context, name string) (bool, error) {
	f, err := os.Open(filepath.Join(h.root, filepath.FromSlash(name)))
	if err != nil {
		return false, nil
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false, nil
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType(name))
	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return true, nil
}

func contentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	if t, ok := fallbackTypes[ext]; ok {
		return t
	}
	return "text/plain"
}

// Listen binds host:port, moving up one port at a time while the address
// is in use. Any other bind error stops the scan.
func Listen(host string, port, attempts int) (net.Listener, error) {
	attempts = max(attempts, 1)
	for p := port; p < port+attempts; p++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(p)))
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, err
		}
		log.Printf("[static] port %d is busy, trying %d", p, p+1)
	}
	return nil, fmt.Errorf("no free port in %d-%d", port, port+attempts-1)
}
