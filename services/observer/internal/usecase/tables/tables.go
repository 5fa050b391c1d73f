package tables

import (
	"context"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book"
	bookv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/reconstruct"
)

// Usecase assembles the named table set from the cached log and the book snapshots.
type Usecase struct {
	loader eventlog.Loader
	books  book.Usecase
	logger logger.Interface
	now    func() time.Time
}

// NewUsecase creates a new tables usecase.
func NewUsecase(loader eventlog.Loader, books book.Usecase, logger logger.Interface) *Usecase {
	return &Usecase{
		loader: loader,
		books:  books,
		logger: logger,
		now:    time.Now,
	}
}

// Build returns the export set in its fixed order. Book tables are left out
// when their snapshot file is missing; the miss is reported as a warning.
func (u *Usecase) Build(ctx context.Context, filter eventlogv1.Filter) (archivev1.TableSet, *errors.BaseError, error) {
	log, warnings := u.load(ctx)
	set := u.reconstruct(ctx, log)

	tables := archivev1.TableSet{
		orderTable(set.Orders),
		tradeTable(set.Trades),
		modificationTable(set.Modifications),
		cancellationTable(set.Cancellations),
		rawLogTable(log.Filter(filter)),
	}

	for _, side := range []struct {
		side bookv1.Side
		name string
	}{
		{bookv1.Buy, archivev1.TableBuyBook},
		{bookv1.Sell, archivev1.TableSellBook},
	} {
		levels, bookWarnings, err := u.books.Levels(ctx, side.side)
		if err != nil {
			return nil, nil, errors.TracerFromError(err)
		}
		if bookWarnings.HasDetails() {
			warnings.AddErrorDetails(bookWarnings.GetDetails()...)
			continue
		}
		tables = append(tables, bookTable(side.name, levels))
	}

	return tables, warnings, nil
}

// Records reconstructs the typed records of the current log.
func (u *Usecase) Records(ctx context.Context) (recordv1.Set, *errors.BaseError, error) {
	log, warnings := u.load(ctx)
	return u.reconstruct(ctx, log), warnings, nil
}

// RawLog returns the log events passing filter, in log order.
func (u *Usecase) RawLog(ctx context.Context, filter eventlogv1.Filter) ([]eventlogv1.LogEvent, *errors.BaseError, error) {
	log, warnings := u.load(ctx)
	return log.Filter(filter), warnings, nil
}

func (u *Usecase) load(ctx context.Context) (*eventlogv1.Log, *errors.BaseError) {
	log, _ := u.loader.Load(ctx, u.now())
	warnings := errors.NewBaseError()
	if log.Warning != nil {
		warnings.AddErrorDetails(log.Warning)
	}
	return log, warnings
}

func (u *Usecase) reconstruct(ctx context.Context, log *eventlogv1.Log) recordv1.Set {
	set := reconstruct.All(log.Events)
	if set.Dropped.Total() > 0 {
		u.logger.DebugContext(ctx, "dropped unmatched log rows",
			logger.NewField("orders", set.Dropped.Orders),
			logger.NewField("trades", set.Dropped.Trades),
			logger.NewField("modifications", set.Dropped.Modifications),
			logger.NewField("cancellations", set.Dropped.Cancellations),
			logger.NewField("grammar_version", reconstruct.GrammarVersion),
		)
	}
	return set
}
