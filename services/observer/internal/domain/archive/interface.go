package archive

import (
	"context"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

// Usecase serializes a table set into a zip bundle.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	Build(ctx context.Context, tables v1.TableSet, format v1.Format) ([]byte, error)
}
