package archive

import (
	"context"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

// CachedUsecase memoizes built archives by the content of their table set.
// Cache failures are logged and fall through to a fresh build.
type CachedUsecase struct {
	next   archive.Usecase
	cache  v1.Cache
	logger logger.Interface
}

// NewCachedUsecase wraps next with cache.
func NewCachedUsecase(next archive.Usecase, cache v1.Cache, logger logger.Interface) *CachedUsecase {
	return &CachedUsecase{next: next, cache: cache, logger: logger}
}

// Build returns the cached bundle for identical content, building it otherwise.
func (c *CachedUsecase) Build(ctx context.Context, tables v1.TableSet, format v1.Format) ([]byte, error) {
	key := Fingerprint(tables, format)

	data, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "archive cache get failed", logger.NewField("key", key), logger.NewField("error", err.Error()))
	case ok:
		return data, nil
	}

	data, err = c.next.Build(ctx, tables, format)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.WarnContext(ctx, "archive cache set failed", logger.NewField("key", key), logger.NewField("error", err.Error()))
	}
	return data, nil
}

// Fingerprint is "<format>:<blake3 hex>" over every table name, column and cell.
func Fingerprint(tables v1.TableSet, format v1.Format) string {
	h := blake3.New()
	field := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	for _, table := range tables {
		field(table.Name)
		for _, c := range table.Columns {
			field(c)
		}
		h.Write([]byte{1})
		for _, row := range table.TextRows() {
			for _, cell := range row {
				field(cell)
			}
			h.Write([]byte{2})
		}
		h.Write([]byte{3})
	}

	return string(format) + ":" + hex.EncodeToString(h.Sum(nil))
}
