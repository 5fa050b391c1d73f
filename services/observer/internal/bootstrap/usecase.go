package bootstrap

import (
	archiveDomain "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive"
	bookDomain "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book"
	commandDomain "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command"
	sinkv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/sink/v1"
	statsDomain "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats"
	tablesDomain "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/tables"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/hub"
	archiveUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/archive"
	bookUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/book"
	commandUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/command"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/logcache"
	sinkUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/sink"
	statsUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/stats"
	tablesUc "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/tables"
)

// Usecase holds the observer usecases.
type Usecase struct {
	Log     *logcache.Cache
	Book    bookDomain.Usecase
	Tables  tablesDomain.Usecase
	Stats   statsDomain.Usecase
	Archive archiveDomain.Usecase
	Command commandDomain.Usecase
	// Sink is nil unless the QuestDB sink is enabled.
	Sink *sinkUc.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	cfg := b.Config

	b.Usecase.Log = logcache.NewCache(b.Repository.LogReader, cfg.Cache.TTL, b.Logger)
	b.Usecase.Book = bookUc.NewUsecase(b.Repository.Snapshots, b.Logger)
	b.Usecase.Tables = tablesUc.NewUsecase(b.Usecase.Log, b.Usecase.Book, b.Logger)
	b.Usecase.Stats = statsUc.NewUsecase(b.Usecase.Log)
	b.Usecase.Command = commandUc.NewUsecase(b.Repository.Engine, b.Usecase.Log, cfg.Engine.AdminSecret, b.Logger)

	var archive archiveDomain.Usecase = archiveUc.NewUsecase(archiveUc.DefaultLayouts(), cfg.Archive.FontSize, b.Logger)
	if b.Repository.ArchiveCache != nil {
		archive = archiveUc.NewCachedUsecase(archive, b.Repository.ArchiveCache, b.Logger)
	}
	b.Usecase.Archive = archive

	if b.Repository.RecordStore != nil {
		var publisher sinkv1.Publisher
		if b.Repository.Publisher != nil {
			publisher = b.Repository.Publisher
		}
		b.Usecase.Sink = sinkUc.NewUsecase(b.Usecase.Log, b.Repository.RecordStore, publisher, cfg.Sync.BatchSize, b.Logger)
	}

	var notifier venuev1.Notifier
	if b.Repository.Notifier != nil {
		notifier = b.Repository.Notifier
	}
	b.Hub = hub.New(notifier, b.Logger)
}
