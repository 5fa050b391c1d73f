package archive

import (
	"strings"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

// Layouts maps a table name to its document layout. Lookups ignore case.
type Layouts map[string]v1.Layout

// DefaultLayouts is the registry used for document exports.
func DefaultLayouts() Layouts {
	return Layouts{
		v1.TableRawLogs: {
			Orientation: v1.Landscape,
			Weights:     []float64{1, 1, 2},
			Columns:     3,
		},
		v1.TableOrders: {
			Orientation: v1.Portrait,
			Weights:     []float64{1.5, 0.5},
			MinColumns:  2,
		},
		v1.TableCancellations: {
			Orientation: v1.Portrait,
			Weights:     []float64{1.5, 0.5, 0.5, 1, 0.5, 2, 1},
			Columns:     7,
		},
	}
}

// Register adds or replaces the layout of a table.
func (l Layouts) Register(table string, layout v1.Layout) {
	l[table] = layout
}

// For returns the layout of table, portrait with equal weights when none is registered.
func (l Layouts) For(table string) v1.Layout {
	if layout, ok := l[table]; ok {
		return layout
	}
	for name, layout := range l {
		if strings.EqualFold(name, table) {
			return layout
		}
	}
	return v1.Layout{Orientation: v1.Portrait}
}
