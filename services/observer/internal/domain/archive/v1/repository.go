package v1

import "context"

// Cache stores built archives by content key.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}
