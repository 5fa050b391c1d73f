package tables

import (
	"context"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

// Usecase assembles the named tables from the log and the snapshots.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	// Build returns Orders, Trades, Modifications, Cancellations, Raw Logs and,
	// when their files exist, Buy Book and Sell Book. filter applies to Raw Logs only.
	Build(ctx context.Context, filter eventlogv1.Filter) (archivev1.TableSet, *errors.BaseError, error)
	// Records reconstructs the typed records of the current log.
	Records(ctx context.Context) (recordv1.Set, *errors.BaseError, error)
	// RawLog returns the filtered log events.
	RawLog(ctx context.Context, filter eventlogv1.Filter) ([]eventlogv1.LogEvent, *errors.BaseError, error)
}
