package v1

import (
	"context"

	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

// RecordStore is the historical store of reconstructed records.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type RecordStore interface {
	// HighWaterMark is the largest stored seq, 0 when empty.
	HighWaterMark(ctx context.Context) (int64, error)
	// Anchor fingerprints the first row of the log the stored records came
	// from, empty when unknown.
	Anchor(ctx context.Context) (string, error)
	SetAnchor(ctx context.Context, anchor string) error
	Store(ctx context.Context, set recordv1.Set) error
	Reset(ctx context.Context) error
}

// Publisher streams reconstructed records to consumers.
type Publisher interface {
	Publish(ctx context.Context, set recordv1.Set) (int, error)
	Close() error
}
