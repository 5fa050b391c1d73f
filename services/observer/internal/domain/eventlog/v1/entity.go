package v1

import (
	"strings"
	"time"
)

// Event types written by the matching engine. Others are passed through uninterpreted.
const (
	TypeOrderPlaced   = "ORDER PLACED"
	TypeOrderModified = "ORDER MODIFIED"
	TypeOrderCanceled = "ORDER CANCELED"
	TypeTrade         = "TRADE"
)

// LogEvent is one row of the engine event log.
type LogEvent struct {
	// Seq is the 1-based position of the row in the log. The log is append-only,
	// so it stays stable until the engine clears it.
	Seq       int64
	Timestamp time.Time
	Type      string
	Details   string
}

// NormalizeType uppercases t for comparison against the Type* constants.
func NormalizeType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// Is reports whether the event has the given type, ignoring case.
func (e LogEvent) Is(t string) bool {
	return NormalizeType(e.Type) == NormalizeType(t)
}

// ReadStats describes one pass over the backing store.
type ReadStats struct {
	Rows    int
	Skipped int
}

// Filter selects raw log rows by type. An empty filter keeps every row.
type Filter struct {
	Types []string
}

// Match reports whether e passes the filter.
func (f Filter) Match(e LogEvent) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if e.Is(t) {
			return true
		}
	}
	return false
}
