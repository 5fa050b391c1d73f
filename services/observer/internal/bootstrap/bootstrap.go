package bootstrap

import (
	"context"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
	"github.com/muhammadchandra19/orderbook-observer/pkg/redis"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/hub"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

// Bootstrap wires the observer's repositories, usecases and HTTP handlers.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	Repository Repository
	Usecase    Usecase
	API        API
	Hub        *hub.Hub

	// QuestDB and Redis are nil unless enabled.
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config  *config.Config
	Logger  logger.Interface
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(cfg BootstrapConfig) (Bootstrap, error) {
	b.Config = cfg.Config
	b.Logger = cfg.Logger
	b.QuestDB = cfg.QuestDB
	b.Redis = cfg.Redis

	if err := b.registerRepository(); err != nil {
		return Bootstrap{}, err
	}
	b.registerUsecase()
	b.registerAPI()

	return *b, nil
}

// Connect opens the optional external clients named by cfg.
func Connect(ctx context.Context, cfg *config.Config, log logger.Interface) (questdb.QuestDBClient, redis.Client, error) {
	var db questdb.QuestDBClient
	if cfg.QuestDB.Enabled {
		client, err := questdb.NewClient(ctx, cfg.QuestDB.Config)
		if err != nil {
			return nil, nil, errors.NewTracer("failed to connect to questdb").Wrap(err)
		}
		db = client
	}

	var rdb redis.Client
	if cfg.Redis.Enabled {
		client := redis.NewClient(log, &cfg.Redis.Config)
		if err := client.Connect(ctx); err != nil {
			if db != nil {
				db.Close()
			}
			return nil, nil, errors.NewTracer("failed to connect to redis").Wrap(err)
		}
		rdb = client
	}

	return db, rdb, nil
}

// Close releases the publisher and the external clients.
func (b *Bootstrap) Close(ctx context.Context) {
	if b.Repository.Publisher != nil {
		if err := b.Repository.Publisher.Close(); err != nil {
			b.Logger.ErrorContext(ctx, errors.TracerFromError(err))
		}
	}
	if b.Redis != nil {
		if err := b.Redis.Disconnect(ctx); err != nil {
			b.Logger.ErrorContext(ctx, errors.TracerFromError(err))
		}
	}
	if b.QuestDB != nil {
		b.QuestDB.Close()
	}
}

// HealthChecks probes the enabled external clients.
func (b *Bootstrap) HealthChecks() map[string]func(ctx context.Context) error {
	checks := map[string]func(ctx context.Context) error{}
	if b.QuestDB != nil {
		checks["questdb"] = b.QuestDB.Ping
	}
	if b.Redis != nil {
		checks["redis"] = b.Redis.Ping
	}
	return checks
}
