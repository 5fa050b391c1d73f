package v1

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Table names of the exported set, in export order.
const (
	TableOrders        = "Orders"
	TableTrades        = "Trades"
	TableModifications = "Modifications"
	TableCancellations = "Cancellations"
	TableRawLogs       = "Raw Logs"
	TableBuyBook       = "Buy Book"
	TableSellBook      = "Sell Book"
)

// TimestampLayout is the display form of every timestamp cell.
const TimestampLayout = "2006-01-02 15:04:05"

// Format is an archive serialization format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatPDF}
}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown archive format %q", s)
}

// ArchiveName is the download name of the bundle, e.g. all_csv_files.zip.
func (f Format) ArchiveName() string {
	return "all_" + string(f) + "_files.zip"
}

// EntryName is the name of table t inside the bundle.
func (f Format) EntryName(table string) string {
	return table + "." + string(f)
}

// Table is a named, fixed-schema view. Cells hold int64, decimal.Decimal,
// time.Time or string values.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// TextRows returns every row in display form.
func (t Table) TextRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		texts := make([]string, len(row))
		for j, cell := range row {
			texts[j] = CellText(cell)
		}
		out[i] = texts
	}
	return out
}

// TableSet is the ordered collection handed to the exporter.
type TableSet []Table

// Get returns the table named name.
func (s TableSet) Get(name string) (Table, bool) {
	for _, t := range s {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Table{}, false
}

// Names lists the table names in order.
func (s TableSet) Names() []string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.Name
	}
	return names
}

// CellText converts a cell to its display text.
func CellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	case decimal.Decimal:
		return c.String()
	case time.Time:
		return c.Format(TimestampLayout)
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

// Orientation of a document page.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// Layout is the document policy of one table.
type Layout struct {
	Orientation Orientation
	// Weights are the leading column weights.
	Weights []float64
	// Fill weights every column past Weights. Zero means 1.
	Fill float64
	// Columns, when set, is the exact column count Weights applies to.
	Columns int
	// MinColumns is the smallest column count Weights applies to.
	MinColumns int
}

// ColumnWeights returns the weight vector for a table of n columns.
// Tables that do not satisfy the layout's column constraints get equal weights.
func (l Layout) ColumnWeights(n int) []float64 {
	weights := make([]float64, n)
	if (l.Columns > 0 && n != l.Columns) || n < l.MinColumns {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	fill := l.Fill
	if fill == 0 {
		fill = 1
	}
	for i := range weights {
		if i < len(l.Weights) {
			weights[i] = l.Weights[i]
		} else {
			weights[i] = fill
		}
	}
	return weights
}

// ColumnWidths splits total proportionally to weights.
func ColumnWidths(total float64, weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	widths := make([]float64, len(weights))
	if sum == 0 {
		return widths
	}
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths
}
