package logcache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
)

// Cache memoizes the event log for a staleness window. Readers inside the window
// share one immutable *Log. Two readers crossing the boundary together may both
// re-read; the later store wins, which is harmless for an append-only source.
type Cache struct {
	source  eventlogv1.Source
	ttl     time.Duration
	logger  logger.Interface
	current atomic.Pointer[eventlogv1.Log]
}

// NewCache creates a log cache over source.
func NewCache(source eventlogv1.Source, ttl time.Duration, logger logger.Interface) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns the cached log and true when it is younger than the window,
// otherwise it re-reads the source and returns false. It never fails: an unreadable source yields an empty
// log carrying a Warning, which is cached like any other result.
func (c *Cache) Load(ctx context.Context, now time.Time) (*eventlogv1.Log, bool) {
	if cached := c.current.Load(); cached != nil && now.Sub(cached.LoadedAt) < c.ttl {
		return cached, true
	}

	log := c.read(ctx, now)
	c.current.Store(log)
	return log, false
}

// Invalidate drops the cached log so the next Load re-reads the source.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

func (c *Cache) read(ctx context.Context, now time.Time) *eventlogv1.Log {
	events, stats, err := c.source.Read(ctx)
	if err != nil {
		warning := asWarning(err)
		c.logger.WarnContext(ctx, "event log unavailable",
			logger.NewField("source", "log"),
			logger.NewField("path", c.source.Path()),
			logger.NewField("code", warning.Code),
			logger.NewField("error", err.Error()),
		)
		return &eventlogv1.Log{
			Events:   []eventlogv1.LogEvent{},
			LoadedAt: now,
			Warning:  warning,
		}
	}

	if stats.Skipped > 0 {
		c.logger.DebugContext(ctx, "skipped unreadable log rows",
			logger.NewField("path", c.source.Path()),
			logger.NewField("skipped", stats.Skipped),
		)
	}

	if events == nil {
		events = []eventlogv1.LogEvent{}
	}
	return &eventlogv1.Log{
		Events:   events,
		LoadedAt: now,
		Stats:    stats,
	}
}

func asWarning(err error) *errors.ErrorDetails {
	switch code := errors.CodeOf(err); code {
	case string(errors.SourceUnavailable), string(errors.MalformedSource):
		return errors.NewErrorDetails(err.Error(), code, "log")
	}
	return errors.NewErrorDetails("error loading event log: "+err.Error(), string(errors.MalformedSource), "log")
}
