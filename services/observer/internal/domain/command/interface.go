package command

import (
	"context"

	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
)

// Usecase validates and forwards commands to the engine.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	Execute(ctx context.Context, req v1.Request) (v1.Result, error)
	Console(ctx context.Context) (string, error)
}
