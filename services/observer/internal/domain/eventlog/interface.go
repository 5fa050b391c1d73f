package eventlog

import (
	"context"
	"time"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
)

// Loader is the cached view of the event log.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Loader interface {
	// Load returns the log as of now. cached is true when the result was served
	// from memory inside the staleness window, false when the source was re-read.
	Load(ctx context.Context, now time.Time) (log *v1.Log, cached bool)
	Invalidate()
}
