package archive

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

const (
	pdfMargin     = 10.0
	pdfRowPadding = 2.0
	sheetName     = "Sheet1"
)

// encoder serializes one table into the content of one archive entry.
type encoder func(table v1.Table) ([]byte, error)

func encodeCSV(table v1.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(table.TextRows()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(table v1.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = sheetValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetValue keeps numbers numeric unless a float would lose digits.
func sheetValue(v any) any {
	switch c := v.(type) {
	case int64, int:
		return c
	case decimal.Decimal:
		f := c.InexactFloat64()
		if decimal.NewFromFloat(f).Equal(c) {
			return f
		}
		return c.String()
	case time.Time:
		return c.Format(v1.TimestampLayout)
	}
	return v1.CellText(v)
}

// newPDFEncoder renders bordered-cell tables on A4 pages.
func newPDFEncoder(layouts Layouts, fontSize float64) encoder {
	return func(table v1.Table) ([]byte, error) {
		layout := layouts.For(table.Name)

		pdf := fpdf.New(string(layout.Orientation), "mm", "A4", "")
		pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
		pdf.AddPage()
		pdf.SetFont("Arial", "", fontSize)
		tr := pdf.UnicodeTranslatorFromDescriptor("")

		pageWidth, _ := pdf.GetPageSize()
		widths := pageColumnWidths(pageWidth, layout, len(table.Columns))
		_, unitSize := pdf.GetFontSize()
		rowHeight := unitSize + pdfRowPadding

		row := func(texts []string) error {
			if len(texts) > len(widths) {
				return fmt.Errorf("row has %d cells, table has %d columns", len(texts), len(widths))
			}
			for i, text := range texts {
				pdf.CellFormat(widths[i], rowHeight, tr(text), "1", 0, "", false, 0, "")
			}
			pdf.Ln(rowHeight)
			return nil
		}

		if err := row(table.Columns); err != nil {
			return nil, err
		}
		for _, texts := range table.TextRows() {
			if err := row(texts); err != nil {
				return nil, err
			}
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// pageColumnWidths spreads the printable width of a page over columns.
func pageColumnWidths(pageWidth float64, layout v1.Layout, columns int) []float64 {
	return v1.ColumnWidths(pageWidth-2*pdfMargin, layout.ColumnWeights(columns))
}
