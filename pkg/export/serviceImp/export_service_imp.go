package serviceImp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"farm/entities"
	"farm/pkg/export/service"
	revSvc "farm/pkg/revenue/service"
	"farm/pkg/session"
	"farm/pkg/validation"
)

const colWidth = 18

type exportSvc struct {
	st      *session.State
	revenue revSvc.RevenueService
}

func New(st *session.State, revenue revSvc.RevenueService) service.ExportService {
	return &exportSvc{st: st, revenue: revenue}
}

func (s *exportSvc) Table(name string) (service.Table, error) {
	if name == service.Profitability {
		p, err := s.revenue.Profitability()
		if err != nil {
			return service.Table{}, err
		}
		return FromRecords(name, p.Results)
	}
	s.st.Lock()
	recs, ok := s.st.Snapshot(name)
	s.st.Unlock()
	if !ok {
		return service.Table{}, fmt.Errorf("collection %q: %w", name, validation.ErrNotFound)
	}
	return FromRecords(name, recs)
}

func (s *exportSvc) Tables() ([]service.Table, error) {
	out := make([]service.Table, 0, len(entities.Collections))
	for _, name := range entities.Collections {
		t, err := s.Table(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FromRecords flattens a slice of structs. Columns follow the json tags in
// field order; nil pointers become empty cells.
func FromRecords(name string, records any) (service.Table, error) {
	rv := reflect.ValueOf(records)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Struct {
		return service.Table{}, fmt.Errorf("export %s: want a slice of structs, got %T", name, records)
	}
	et := rv.Type().Elem()
	t := service.Table{Name: name, Rows: make([][]any, 0, rv.Len())}
	var idx []int
	for i := 0; i < et.NumField(); i++ {
		f := et.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if !f.IsExported() || tag == "-" {
			continue
		}
		if tag == "" {
			tag = f.Name
		}
		t.Headers = append(t.Headers, tag)
		idx = append(idx, i)
	}
	for r := 0; r < rv.Len(); r++ {
		row := make([]any, len(idx))
		for j, i := range idx {
			v := rv.Index(r).Field(i)
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					row[j] = ""
					continue
				}
				v = v.Elem()
			}
			row[j] = v.Interface()
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (s *exportSvc) CSV(w io.Writer, t service.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	line := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, v := range row {
			line[i] = cell(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func (s *exportSvc) XLSX(w io.Writer, tables ...service.Table) error {
	if len(tables) == 0 {
		return errors.New("nothing to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	first := f.GetSheetName(0)
	for n, t := range tables {
		sheet := t.Name
		if n == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		for col, h := range t.Headers {
			c, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, c, h)
			f.SetCellStyle(sheet, c, c, headerStyle)
		}
		if len(t.Headers) > 0 {
			last, _ := excelize.ColumnNumberToName(len(t.Headers))
			f.SetColWidth(sheet, "A", last, colWidth)
		}
		for r, row := range t.Rows {
			start, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(sheet, start, &row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}
