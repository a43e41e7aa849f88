package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"farm/pkg/export/service"
	"farm/pkg/httpx"
	"farm/pkg/validation"
)

const (
	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// all exports every collection as one workbook.
const all = "all"

type ExportCtrl struct {
	s   service.ExportService
	now func() time.Time
}

func New(s service.ExportService, now func() time.Time) *ExportCtrl {
	return &ExportCtrl{s: s, now: now}
}

func (h *ExportCtrl) Register(g *echo.Group) {
	g.GET("/export/:collection", h.Export)
}

// Export serves ?format=csv (default) or ?format=xlsx.
func (h *ExportCtrl) Export(c echo.Context) error {
	name := c.Param("collection")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		ve := &validation.ValidationError{}
		ve.Add("format", "must be csv or xlsx")
		return httpx.Fail(c, ve)
	}
	if name == all && format == "csv" {
		ve := &validation.ValidationError{}
		ve.Add("format", "exporting every collection needs xlsx")
		return httpx.Fail(c, ve)
	}

	var tables []service.Table
	if name == all {
		ts, err := h.s.Tables()
		if err != nil {
			return httpx.Fail(c, err)
		}
		tables = ts
	} else {
		t, err := h.s.Table(name)
		if err != nil {
			return httpx.Fail(c, err)
		}
		tables = []service.Table{t}
	}

	var buf bytes.Buffer
	ctype := mimeCSV
	if format == "xlsx" {
		ctype = mimeXLSX
		if err := h.s.XLSX(&buf, tables...); err != nil {
			return httpx.Fail(c, err)
		}
	} else if err := h.s.CSV(&buf, tables[0]); err != nil {
		return httpx.Fail(c, err)
	}

	filename := fmt.Sprintf("%s_%s.%s", name, h.now().Format("20060102"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(buf.Len()))
	return c.Blob(http.StatusOK, ctype, buf.Bytes())
}
