package reconstruct

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

// GrammarVersion identifies the log phrasing these patterns accept. The engine
// log carries no version marker, so a phrasing change surfaces as dropped rows.
const GrammarVersion = 1

// Patterns of the details column, one per event type.
var (
	orderPlacedPattern  = regexp.MustCompile(`ID#(\d+)\s*\|\s*(BUY|SELL)\s+(LIMIT|MARKET)?\s*\|\s*Price:\s*([\d.]+)\s*\|\s*Qty:\s*(\d+)`)
	tradePattern        = regexp.MustCompile(`BUY#(\d+)\s*<-->\s*SELL#(\d+)\s*\|\s*Price:\s*([\d.]+)\s*\|\s*Qty:\s*(\d+)`)
	modificationPattern = regexp.MustCompile(`ID#(\d+)\s*\|\s*New (Price|QTY):\s*([\d.]+)`)
	cancellationPattern = regexp.MustCompile(`ID#(\d+)\s*\|\s*(BUY|SELL)\s+(LIMIT|MARKET)?\s*\|\s*Qty:\s*(\d+)\s*\|\s*Reason:\s*(\w+)\s*\|\s*Type:\s*(\w+)`)
)

// rule turns the rows of one event type into records. Rows whose details do not
// match, or whose numbers do not fit, are dropped and counted.
type rule[T any] struct {
	eventType string
	pattern   *regexp.Regexp
	build     func(e eventlogv1.LogEvent, m []string) (T, bool)
}

func (r rule[T]) extract(events []eventlogv1.LogEvent) ([]T, int) {
	records := []T{}
	dropped := 0
	for _, e := range events {
		if !e.Is(r.eventType) {
			continue
		}
		m := r.pattern.FindStringSubmatch(e.Details)
		if m == nil {
			dropped++
			continue
		}
		record, ok := r.build(e, m)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}
	return records, dropped
}

var orderRule = rule[recordv1.OrderPlaced]{
	eventType: eventlogv1.TypeOrderPlaced,
	pattern:   orderPlacedPattern,
	build: func(e eventlogv1.LogEvent, m []string) (recordv1.OrderPlaced, bool) {
		var p parser
		r := recordv1.OrderPlaced{
			Seq:       e.Seq,
			Timestamp: e.Timestamp,
			ID:        p.integer(m[1]),
			Side:      m[2],
			OrderType: orderType(m[3]),
			Price:     p.number(m[4]),
			Quantity:  p.integer(m[5]),
		}
		return r, p.ok()
	},
}

var tradeRule = rule[recordv1.Trade]{
	eventType: eventlogv1.TypeTrade,
	pattern:   tradePattern,
	build: func(e eventlogv1.LogEvent, m []string) (recordv1.Trade, bool) {
		var p parser
		r := recordv1.Trade{
			Seq:       e.Seq,
			Timestamp: e.Timestamp,
			BuyID:     p.integer(m[1]),
			SellID:    p.integer(m[2]),
			Price:     p.number(m[3]),
			Quantity:  p.integer(m[4]),
		}
		return r, p.ok()
	},
}

var modificationRule = rule[recordv1.Modification]{
	eventType: eventlogv1.TypeOrderModified,
	pattern:   modificationPattern,
	build: func(e eventlogv1.LogEvent, m []string) (recordv1.Modification, bool) {
		var p parser
		r := recordv1.Modification{
			Seq:           e.Seq,
			Timestamp:     e.Timestamp,
			ID:            p.integer(m[1]),
			ModifiedField: strings.ToUpper(m[2]),
			NewValue:      p.number(m[3]),
		}
		return r, p.ok()
	},
}

var cancellationRule = rule[recordv1.Cancellation]{
	eventType: eventlogv1.TypeOrderCanceled,
	pattern:   cancellationPattern,
	build: func(e eventlogv1.LogEvent, m []string) (recordv1.Cancellation, bool) {
		var p parser
		r := recordv1.Cancellation{
			Seq:        e.Seq,
			Timestamp:  e.Timestamp,
			ID:         p.integer(m[1]),
			Side:       m[2],
			OrderType:  orderType(m[3]),
			Quantity:   p.integer(m[4]),
			Reason:     m[5],
			CancelType: m[6],
		}
		return r, p.ok()
	},
}

func orderType(token string) string {
	if token == "" {
		return recordv1.OrderTypeUnknown
	}
	return token
}

// parser remembers the first conversion failure of a row.
type parser struct {
	err error
}

func (p *parser) integer(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

// number rejects captures like "1.2.3" that the character class lets through.
func (p *parser) number(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *parser) ok() bool {
	return p.err == nil
}
