package book

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
)

// Usecase is the usecase for the order book snapshots.
type Usecase struct {
	reader v1.SnapshotReader
	logger logger.Interface
}

// NewUsecase creates a new book usecase.
func NewUsecase(reader v1.SnapshotReader, logger logger.Interface) *Usecase {
	return &Usecase{reader: reader, logger: logger}
}

// Levels returns the parsed resting orders of one side.
func (u *Usecase) Levels(ctx context.Context, side v1.Side) ([]v1.BookLevel, *errors.BaseError, error) {
	snapshot, err := u.reader.ReadSnapshot(ctx, side)
	if err != nil {
		return nil, nil, errors.TracerFromError(err)
	}

	warnings := errors.NewBaseError()
	if !snapshot.Found {
		warnings.AddErrorDetails(u.missing(ctx, snapshot))
		return []v1.BookLevel{}, warnings, nil
	}

	return ParseSnapshot(snapshot.Text), warnings, nil
}

// Depth aggregates both snapshots. A missing side contributes nothing.
func (u *Usecase) Depth(ctx context.Context) ([]v1.DepthPoint, *errors.BaseError, error) {
	warnings := errors.NewBaseError()
	texts := map[v1.Side]string{}

	for _, side := range []v1.Side{v1.Buy, v1.Sell} {
		snapshot, err := u.reader.ReadSnapshot(ctx, side)
		if err != nil {
			return nil, nil, errors.TracerFromError(err)
		}
		if !snapshot.Found {
			warnings.AddErrorDetails(u.missing(ctx, snapshot))
			continue
		}
		texts[side] = snapshot.Text
	}

	return AggregateDepth(texts[v1.Buy], texts[v1.Sell]), warnings, nil
}

func (u *Usecase) missing(ctx context.Context, snapshot v1.Snapshot) *errors.ErrorDetails {
	u.logger.WarnContext(ctx, "book snapshot not found",
		logger.NewField("source", string(snapshot.Side)+"_book"),
		logger.NewField("path", snapshot.Path),
	)
	return errors.NewErrorDetails(
		fmt.Sprintf("%s not found", filepath.Base(snapshot.Path)),
		string(errors.SourceUnavailable),
		string(snapshot.Side),
	)
}
