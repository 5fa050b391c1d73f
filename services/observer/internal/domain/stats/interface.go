package stats

import (
	"context"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats/v1"
)

// Usecase computes the log distributions.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	Compute(ctx context.Context) (v1.Stats, *errors.BaseError, error)
}
