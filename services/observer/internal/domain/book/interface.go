package book

import (
	"context"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
)

// Usecase exposes the parsed snapshots.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	// Levels parses one side. A missing file yields no levels and a warning.
	Levels(ctx context.Context, side v1.Side) ([]v1.BookLevel, *errors.BaseError, error)
	// Depth aggregates both sides by price, ascending.
	Depth(ctx context.Context) ([]v1.DepthPoint, *errors.BaseError, error)
}
