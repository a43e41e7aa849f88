package service

import "io"

// Profitability is the export name of the analyzer table.
const Profitability = "profitability"

// Table is a flat, ordered view of one collection.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

type ExportService interface {
	// Table snapshots a collection by name, or the profitability table.
	Table(name string) (Table, error)
	// Tables snapshots every collection, in dashboard order.
	Tables() ([]Table, error)
	CSV(w io.Writer, t Table) error
	// XLSX writes one sheet per table.
	XLSX(w io.Writer, tables ...Table) error
}
