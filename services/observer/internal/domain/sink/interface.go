package sink

import (
	"context"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/sink/v1"
)

// Usecase copies newly reconstructed records to the sinks.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	Sync(ctx context.Context) (v1.Report, error)
}
