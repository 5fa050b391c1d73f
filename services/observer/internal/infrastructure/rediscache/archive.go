package rediscache

import (
	"context"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/redis"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

// ArchiveCache keeps built archives in redis under <prefix>archive:<key>.
type ArchiveCache struct {
	client redis.Client
	ttl    time.Duration
}

var _ archivev1.Cache = (*ArchiveCache)(nil)

// NewArchiveCache creates an archive cache whose entries expire after ttl.
func NewArchiveCache(client redis.Client, ttl time.Duration) *ArchiveCache {
	return &ArchiveCache{client: client, ttl: ttl}
}

// Get returns ok false on a miss.
func (c *ArchiveCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.client.Key("archive", key))
	if err != nil {
		return nil, false, err
	}
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set stores data for the configured ttl.
func (c *ArchiveCache) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, c.client.Key("archive", key), data, c.ttl)
}
