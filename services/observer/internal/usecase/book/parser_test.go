package book

import (
	"math/rand/v2"
	"strings"
	"testing"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []v1.BookLevel
	}{
		{
			name: "two levels in file order",
			text: "ID#1 | Qty: 10 | Price: 105\nID#2 | Qty: 5 | Price: 103\n",
			expected: []v1.BookLevel{
				{OrderID: 1, Quantity: 10, Price: 105},
				{OrderID: 2, Quantity: 5, Price: 103},
			},
		},
		{
			name: "engine headers are ignored",
			text: "=== BUY BOOK ===\nBUY ORDER BOOK (Last updated: 2025-05-01 10:00:00)\nID#7 | Qty: 3 | Price: 99\n",
			expected: []v1.BookLevel{
				{OrderID: 7, Quantity: 3, Price: 99},
			},
		},
		{
			name: "whitespace tolerant separators",
			text: "ID#4|Qty:8   |  Price:   120",
			expected: []v1.BookLevel{
				{OrderID: 4, Quantity: 8, Price: 120},
			},
		},
		{
			name: "malformed and truncated lines are skipped",
			text: "ID#x | Qty: 1 | Price: 2\nID#5 | Qty: 2\nID#6 | Qty: 9 | Price: 101\nID#99999999999999999999 | Qty: 1 | Price: 1\n",
			expected: []v1.BookLevel{
				{OrderID: 6, Quantity: 9, Price: 101},
			},
		},
		{
			name:     "no resting orders",
			text:     "=== SELL BOOK ===\n",
			expected: []v1.BookLevel{},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []v1.BookLevel{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			levels := ParseSnapshot(tc.text)
			require.NotNil(t, levels)
			assert.Equal(t, tc.expected, levels)
		})
	}
}

func TestParseSnapshot_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 50; i++ {
		levels := make([]v1.BookLevel, r.IntN(20))
		lines := make([]string, len(levels))
		for j := range levels {
			levels[j] = v1.BookLevel{
				OrderID:  r.Int64N(1_000_000) + 1,
				Quantity: r.Int64N(10_000) + 1,
				Price:    r.Int64N(100_000),
			}
			lines[j] = levels[j].String()
		}

		assert.Equal(t, levels, ParseSnapshot(strings.Join(lines, "\n")))
	}
}

func TestAggregateDepth(t *testing.T) {
	testCases := []struct {
		name     string
		buy      string
		sell     string
		expected []v1.DepthPoint
	}{
		{
			name: "union of both sides ascending",
			buy:  "ID#1 | Qty: 10 | Price: 105\nID#2 | Qty: 15 | Price: 100\n",
			sell: "ID#3 | Qty: 8 | Price: 110\n",
			expected: []v1.DepthPoint{
				{Price: 100, BuyQuantity: 15},
				{Price: 105, BuyQuantity: 10},
				{Price: 110, SellQuantity: 8},
			},
		},
		{
			name: "quantities at one price are summed",
			buy:  "ID#1 | Qty: 4 | Price: 100\nID#2 | Qty: 6 | Price: 100\n",
			sell: "ID#3 | Qty: 1 | Price: 100\n",
			expected: []v1.DepthPoint{
				{Price: 100, BuyQuantity: 10, SellQuantity: 1},
			},
		},
		{
			name: "loose layout lines are skipped",
			buy:  "ID#1 | Qty:4 | Price:100\nID#2 | Qty: 6 | Price: 101\n",
			expected: []v1.DepthPoint{
				{Price: 101, BuyQuantity: 6},
			},
		},
		{
			name:     "no data",
			expected: []v1.DepthPoint{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			points := AggregateDepth(tc.buy, tc.sell)
			require.NotNil(t, points)
			assert.Equal(t, tc.expected, points)
		})
	}
}

func TestAggregateDepth_LineOrderDoesNotMatter(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	buy := make([]string, 30)
	sell := make([]string, 30)
	for i := range buy {
		buy[i] = v1.BookLevel{OrderID: int64(i + 1), Quantity: r.Int64N(50) + 1, Price: 90 + r.Int64N(10)}.String()
		sell[i] = v1.BookLevel{OrderID: int64(i + 100), Quantity: r.Int64N(50) + 1, Price: 95 + r.Int64N(10)}.String()
	}
	expected := AggregateDepth(strings.Join(buy, "\n"), strings.Join(sell, "\n"))

	for i := 0; i < 20; i++ {
		r.Shuffle(len(buy), func(a, b int) { buy[a], buy[b] = buy[b], buy[a] })
		r.Shuffle(len(sell), func(a, b int) { sell[a], sell[b] = sell[b], sell[a] })

		assert.Equal(t, expected, AggregateDepth(strings.Join(buy, "\n"), strings.Join(sell, "\n")))
	}
}
