package book

import (
	"bufio"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
)

var (
	levelPattern = regexp.MustCompile(`ID#(\d+)\s*\|\s*Qty:\s*(\d+)\s*\|\s*Price:\s*(\d+)`)
	// depthPattern ignores the order id and expects the exact single-space layout the engine writes.
	depthPattern = regexp.MustCompile(`Qty: (\d+) \| Price: (\d+)`)
)

// ParseSnapshot extracts the resting orders of a snapshot in file order.
// Text that does not match the level grammar is skipped. The result is never nil.
func ParseSnapshot(text string) []v1.BookLevel {
	levels := []v1.BookLevel{}
	for _, m := range levelPattern.FindAllStringSubmatch(text, -1) {
		id, errID := strconv.ParseInt(m[1], 10, 64)
		qty, errQty := strconv.ParseInt(m[2], 10, 64)
		price, errPrice := strconv.ParseInt(m[3], 10, 64)
		if errID != nil || errQty != nil || errPrice != nil {
			continue
		}
		levels = append(levels, v1.BookLevel{OrderID: id, Quantity: qty, Price: price})
	}
	return levels
}

// sumByPrice adds up the quantity of every matching line of text, keyed by price.
func sumByPrice(text string) map[int64]int64 {
	depth := map[int64]int64{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := depthPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		qty, errQty := strconv.ParseInt(m[1], 10, 64)
		price, errPrice := strconv.ParseInt(m[2], 10, 64)
		if errQty != nil || errPrice != nil {
			continue
		}
		depth[price] += qty
	}
	return depth
}

// AggregateDepth merges both sides into one point per price, ascending.
// Either text may be empty; two empty texts give an empty, non-nil result.
func AggregateDepth(buyText, sellText string) []v1.DepthPoint {
	buy := sumByPrice(buyText)
	sell := sumByPrice(sellText)

	union := maps.Clone(buy)
	maps.Copy(union, sell)
	prices := slices.Sorted(maps.Keys(union))

	points := make([]v1.DepthPoint, 0, len(prices))
	for _, p := range prices {
		points = append(points, v1.DepthPoint{
			Price:        p,
			BuyQuantity:  buy[p],
			SellQuantity: sell[p],
		})
	}
	return points
}
