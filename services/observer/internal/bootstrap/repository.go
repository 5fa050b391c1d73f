package bootstrap

import (
	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/csvlog"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/engineproc"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/kafka"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/questdb/record"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/rediscache"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/venuefs"
)

// Repository holds the infrastructure adapters. Optional ones are nil when
// their backend is disabled.
type Repository struct {
	LogReader *csvlog.Reader
	Snapshots *venuefs.Store
	Engine    *engineproc.Engine

	RecordStore  *record.Repository
	Publisher    *kafka.Publisher
	ArchiveCache *rediscache.ArchiveCache
	Notifier     *rediscache.Notifier
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() error {
	venue := b.Config.Venue

	location, err := venue.Location()
	if err != nil {
		return errors.TracerFromError(err)
	}
	b.Repository.LogReader = csvlog.NewReader(venue.Path(venue.LogFile), location)
	b.Repository.Snapshots = venuefs.NewStore(venue)

	engine, err := engineproc.NewEngine(b.Config.Engine, venue, b.Logger)
	if err != nil {
		return errors.TracerFromError(err)
	}
	b.Repository.Engine = engine

	if b.QuestDB != nil {
		b.Repository.RecordStore = record.NewRepository(b.QuestDB)
	}
	if b.Config.Kafka.Enabled {
		b.Repository.Publisher = kafka.NewPublisher(b.Config.Kafka, b.Logger)
	}
	if b.Redis != nil {
		b.Repository.Notifier = rediscache.NewNotifier(b.Redis, b.Logger)
		if b.Config.Archive.CacheEnabled {
			b.Repository.ArchiveCache = rediscache.NewArchiveCache(b.Redis, b.Config.Archive.CacheTTL)
		}
	}
	return nil
}
