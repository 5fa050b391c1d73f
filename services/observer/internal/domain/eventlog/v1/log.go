package v1

import (
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
)

// Log is the result of one load of the backing store. It is never mutated after
// it is built, so it can be shared between readers.
type Log struct {
	Events   []LogEvent
	LoadedAt time.Time
	Stats    ReadStats
	// Warning is set when the store was missing or malformed; Events is then empty.
	Warning *errors.ErrorDetails
}

// Filter returns the events matching f, in log order.
func (l *Log) Filter(f Filter) []LogEvent {
	if len(f.Types) == 0 {
		return l.Events
	}
	out := make([]LogEvent, 0, len(l.Events))
	for _, e := range l.Events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
