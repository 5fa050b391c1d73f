package stats

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats/v1"
)

// These are looser than the reconstruction grammar: a row counts towards a
// distribution as soon as the token it contributes is present.
var (
	sidePattern      = regexp.MustCompile(`\|\s*(BUY|SELL)\s`)
	orderTypePattern = regexp.MustCompile(`\|\s*(?:BUY|SELL)\s+(MARKET|LIMIT)\s`)
	reasonPattern    = regexp.MustCompile(`Reason:\s*(\w+)`)
	cancelPattern    = regexp.MustCompile(`Type:\s*(\w+)`)
)

// Modification buckets.
const (
	ModificationPrice    = "Price"
	ModificationQuantity = "Quantity"
	ModificationOther    = "Other"
)

// Usecase computes the dashboard distributions.
type Usecase struct {
	loader eventlog.Loader
	now    func() time.Time
}

// NewUsecase creates a new stats usecase.
func NewUsecase(loader eventlog.Loader) *Usecase {
	return &Usecase{loader: loader, now: time.Now}
}

// Compute walks the cached log once.
func (u *Usecase) Compute(ctx context.Context) (v1.Stats, *errors.BaseError, error) {
	log, _ := u.loader.Load(ctx, u.now())
	warnings := errors.NewBaseError()
	if log.Warning != nil {
		warnings.AddErrorDetails(log.Warning)
	}
	return Compute(log.Events), warnings, nil
}

// Compute derives every distribution from events.
func Compute(events []eventlogv1.LogEvent) v1.Stats {
	types := counter{}
	sides := counter{}
	orderTypes := counter{}
	modifications := counter{}
	reasons := counter{}
	cancelTypes := counter{}
	trades := map[time.Time]int{}

	for _, e := range events {
		types.add(e.Type)

		switch eventlogv1.NormalizeType(e.Type) {
		case eventlogv1.TypeOrderPlaced:
			sides.add(submatch(sidePattern, e.Details))
			orderTypes.add(submatch(orderTypePattern, e.Details))
		case eventlogv1.TypeOrderModified:
			modifications.add(modificationKind(e.Details))
		case eventlogv1.TypeOrderCanceled:
			reasons.add(submatch(reasonPattern, e.Details))
			cancelTypes.add(submatch(cancelPattern, e.Details))
		case eventlogv1.TypeTrade:
			trades[e.Timestamp]++
		}
	}

	timeline := make([]v1.TimeCount, 0, len(trades))
	for at, n := range trades {
		timeline = append(timeline, v1.TimeCount{Timestamp: at, Count: n})
	}
	slices.SortFunc(timeline, func(a, b v1.TimeCount) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return v1.Stats{
		EventTypes:          types.sorted(),
		Sides:               sides.sorted(),
		OrderTypes:          orderTypes.sorted(),
		Modifications:       modifications.sorted(),
		CancellationReasons: reasons.sorted(),
		CancellationTypes:   cancelTypes.sorted(),
		TradesTimeline:      timeline,
	}
}

func modificationKind(details string) string {
	switch {
	case strings.Contains(details, "New Price"):
		return ModificationPrice
	case strings.Contains(details, "New QTY"):
		return ModificationQuantity
	}
	return ModificationOther
}

func submatch(pattern *regexp.Regexp, details string) string {
	m := pattern.FindStringSubmatch(details)
	if m == nil {
		return ""
	}
	return m[1]
}

// counter ignores empty keys.
type counter map[string]int

func (c counter) add(key string) {
	if key != "" {
		c[key]++
	}
}

// sorted orders by count descending, then key.
func (c counter) sorted() []v1.Count {
	out := make([]v1.Count, 0, len(c))
	for k, n := range c {
		out = append(out, v1.Count{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b v1.Count) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
