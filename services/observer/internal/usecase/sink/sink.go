package sink

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/sink/v1"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/reconstruct"
)

const defaultBatchSize = 500

// Usecase copies records reconstructed from new log rows to the record store
// and, when configured, to the publisher.
type Usecase struct {
	loader    eventlog.Loader
	store     v1.RecordStore
	publisher v1.Publisher
	batchSize int
	logger    logger.Interface
	now       func() time.Time
}

// NewUsecase creates a new sync usecase. publisher may be nil.
func NewUsecase(loader eventlog.Loader, store v1.RecordStore, publisher v1.Publisher, batchSize int, logger logger.Interface) *Usecase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Usecase{
		loader:    loader,
		store:     store,
		publisher: publisher,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Sync processes the rows past the store's high-water mark in batches. Each
// batch is published before it is stored, so a failed pass is retried from
// the last stored batch and consumers may see a batch twice, never zero times.
// A log that ends before the mark, or whose first row no longer matches the
// stored anchor, was cleared by the engine: the store is reset and the whole
// log is synced again.
func (u *Usecase) Sync(ctx context.Context) (v1.Report, error) {
	log, _ := u.loader.Load(ctx, u.now())
	if log.Warning != nil {
		u.logger.WarnContext(ctx, "sync skipped", logger.NewField("reason", log.Warning.Message))
		return v1.Report{}, nil
	}

	mark, err := u.store.HighWaterMark(ctx)
	if err != nil {
		return v1.Report{}, errors.TracerFromError(err)
	}
	report := v1.Report{From: mark, To: mark}

	first := fingerprint(log.Events)
	var reason string
	anchored := false
	switch {
	case lastSeq(log.Events) < mark:
		reason = "event log shrank"
	case mark > 0:
		anchor, err := u.store.Anchor(ctx)
		if err != nil {
			return report, errors.TracerFromError(err)
		}
		anchored = anchor != ""
		if anchored && anchor != first {
			reason = "event log was rewritten"
		}
	}

	if reason != "" {
		u.logger.InfoContext(ctx, reason+", resetting record store",
			logger.NewField("high_water_mark", mark),
			logger.NewField("last_seq", lastSeq(log.Events)),
		)
		if err := u.store.Reset(ctx); err != nil {
			return report, errors.TracerFromError(err)
		}
		mark, report.From, report.To, report.Reset = 0, 0, 0, true
		anchored = false
	}

	if first != "" && !anchored {
		if err := u.store.SetAnchor(ctx, first); err != nil {
			return report, errors.TracerFromError(err)
		}
	}

	pending := after(log.Events, mark)
	for start := 0; start < len(pending); start += u.batchSize {
		batch := pending[start:min(start+u.batchSize, len(pending))]

		set := reconstruct.All(batch)
		if set.Len() == 0 {
			continue
		}

		if u.publisher != nil {
			published, err := u.publisher.Publish(ctx, set)
			if err != nil {
				return report, errors.TracerFromError(err)
			}
			report.Published += published
		}

		if err := u.store.Store(ctx, set); err != nil {
			return report, errors.TracerFromError(err)
		}
		report.Stored += set.Len()
		report.To = set.MaxSeq()
	}

	u.logger.InfoContext(ctx, "sync finished",
		logger.NewField("from", report.From),
		logger.NewField("to", report.To),
		logger.NewField("stored", report.Stored),
		logger.NewField("published", report.Published),
	)
	return report, nil
}

// Follow syncs once, then again after every change of the event log until
// ctx is done or changes is closed. A failed pass is logged and retried on
// the next change.
func (u *Usecase) Follow(ctx context.Context, changes <-chan venuev1.Change) error {
	if _, err := u.Sync(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if change.Source != venuev1.SourceLog {
				continue
			}
			u.loader.Invalidate()
			if _, err := u.Sync(ctx); err != nil {
				u.logger.ErrorContext(ctx, err, logger.NewField("path", change.Path))
			}
		}
	}
}

// fingerprint identifies a log run by its first row, empty for an empty log.
func fingerprint(events []eventlogv1.LogEvent) string {
	if len(events) == 0 {
		return ""
	}
	first := events[0]
	h := blake3.New()
	h.Write([]byte(first.Timestamp.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte{0})
	h.Write([]byte(first.Type))
	h.Write([]byte{0})
	h.Write([]byte(first.Details))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func lastSeq(events []eventlogv1.LogEvent) int64 {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Seq
}

func after(events []eventlogv1.LogEvent, mark int64) []eventlogv1.LogEvent {
	for i, e := range events {
		if e.Seq > mark {
			return events[i:]
		}
	}
	return nil
}
