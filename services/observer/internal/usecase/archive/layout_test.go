package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

func TestLayouts_ColumnWeights(t *testing.T) {
	layouts := DefaultLayouts()

	testCases := []struct {
		name        string
		table       string
		columns     int
		orientation v1.Orientation
		weights     []float64
	}{
		{"raw logs", v1.TableRawLogs, 3, v1.Landscape, []float64{1, 1, 2}},
		{"orders", v1.TableOrders, 6, v1.Portrait, []float64{1.5, 0.5, 1, 1, 1, 1}},
		{"orders with two columns", v1.TableOrders, 2, v1.Portrait, []float64{1.5, 0.5}},
		{"orders with one column", v1.TableOrders, 1, v1.Portrait, []float64{1}},
		{"cancellations", v1.TableCancellations, 7, v1.Portrait, []float64{1.5, 0.5, 0.5, 1, 0.5, 2, 1}},
		{"cancellations with other width", v1.TableCancellations, 6, v1.Portrait, []float64{1, 1, 1, 1, 1, 1}},
		{"trades", v1.TableTrades, 5, v1.Portrait, []float64{1, 1, 1, 1, 1}},
		{"buy book", v1.TableBuyBook, 3, v1.Portrait, []float64{1, 1, 1}},
		{"case insensitive", "raw logs", 3, v1.Landscape, []float64{1, 1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layout := layouts.For(tc.table)
			assert.Equal(t, tc.orientation, layout.Orientation)
			assert.Equal(t, tc.weights, layout.ColumnWeights(tc.columns))
		})
	}
}

func TestLayouts_Register(t *testing.T) {
	layouts := DefaultLayouts()
	layouts.Register("Depth", v1.Layout{Orientation: v1.Landscape, Weights: []float64{2}, Fill: 0.5})

	assert.Equal(t, []float64{2, 0.5, 0.5}, layouts.For("Depth").ColumnWeights(3))
}

func TestColumnWidths(t *testing.T) {
	// A4 landscape minus 10mm margins.
	widths := v1.ColumnWidths(277, []float64{1, 1, 2})
	assert.InDeltaSlice(t, []float64{69.25, 69.25, 138.5}, widths, 1e-9)

	assert.Equal(t, []float64{0, 0}, v1.ColumnWidths(100, []float64{0, 0}))
}
