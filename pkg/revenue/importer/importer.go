// Package importer reads market price sheets (HTML tables, CSV, XLSX) into
// crop price rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// ErrNoPriceTable means no table had both a crop and a price column.
var ErrNoPriceTable = errors.New("no table with crop and price columns")

type Format string

const (
	HTML Format = "html"
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// Row is one parsed price line. Line counts data rows from 1.
type Row struct {
	Line   int
	Crop   string
	Date   string
	Price  float64
	Unit   string
	Source string
	Notes  string
}

type Skipped struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// DetectFormat picks a format from an explicit name, a file name or a
// content type, in that order.
func DetectFormat(explicit, filename, contentType string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(explicit))); f {
	case HTML, CSV, XLSX:
		return f, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q", explicit)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return HTML, nil
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	}
	mt, _, _ := mime.ParseMediaType(contentType)
	switch mt {
	case "text/html":
		return HTML, nil
	case "text/csv":
		return CSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return XLSX, nil
	}
	return "", errors.New("cannot tell the sheet format; pass format=html|csv|xlsx")
}

func Parse(r io.Reader, f Format) ([]Row, []Skipped, error) {
	switch f {
	case HTML:
		return ParseHTML(r)
	case CSV:
		return ParseCSV(r)
	case XLSX:
		return ParseXLSX(r)
	}
	return nil, nil, fmt.Errorf("unsupported format %q", f)
}

// ParseHTML uses the first <table> whose header row names crop and price.
func ParseHTML(r io.Reader) ([]Row, []Skipped, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, err
	}
	var (
		rows    []Row
		skipped []Skipped
		found   bool
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		var cells [][]string
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var line []string
			tr.Find("th,td").Each(func(_ int, td *goquery.Selection) {
				line = append(line, strings.TrimSpace(td.Text()))
			})
			if len(line) > 0 {
				cells = append(cells, line)
			}
		})
		var terr error
		rows, skipped, terr = fromTable(cells)
		found = terr == nil
		return !found
	})
	if !found {
		return nil, nil, ErrNoPriceTable
	}
	return rows, skipped, nil
}

func ParseCSV(r io.Reader) ([]Row, []Skipped, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cells, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return fromTable(cells)
}

// ParseXLSX reads the first sheet of the workbook.
func ParseXLSX(r io.Reader) ([]Row, []Skipped, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoPriceTable
	}
	cells, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	return fromTable(cells)
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "", "(", "", ")", "", "$", "").Replace(s)
}

var aliases = map[string][]string{
	"crop":   {"crop", "commodity", "product", "crop_type"},
	"date":   {"date", "price_date", "reported", "as_of"},
	"price":  {"price", "price_usd", "cash_price", "value"},
	"unit":   {"unit", "units", "per"},
	"source": {"source", "market", "market_source", "location"},
	"notes":  {"notes", "note", "remark", "comment"},
}

func fromTable(cells [][]string) ([]Row, []Skipped, error) {
	if len(cells) == 0 {
		return nil, nil, ErrNoPriceTable
	}
	hmap := map[string]int{}
	for i, h := range cells[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	col := map[string]int{}
	for k, keys := range aliases {
		col[k] = findAny(keys...)
	}
	if col["crop"] == -1 || col["price"] == -1 {
		return nil, nil, ErrNoPriceTable
	}

	rows := []Row{}
	skipped := []Skipped{}
	for i, rec := range cells[1:] {
		line := i + 1
		get := func(k string) string {
			idx := col[k]
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if strings.Join(rec, "") == "" {
			continue
		}
		crop := get("crop")
		if crop == "" {
			skipped = append(skipped, Skipped{Line: line, Reason: "missing crop"})
			continue
		}
		price, err := parsePrice(get("price"))
		if err != nil {
			skipped = append(skipped, Skipped{Line: line, Reason: fmt.Sprintf("price %q is not a number", get("price"))})
			continue
		}
		rows = append(rows, Row{
			Line:   line,
			Crop:   crop,
			Date:   get("date"),
			Price:  price,
			Unit:   get("unit"),
			Source: get("source"),
			Notes:  get("notes"),
		})
	}
	return rows, skipped, nil
}

var priceCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(priceCleaner.Replace(s), 64)
}
