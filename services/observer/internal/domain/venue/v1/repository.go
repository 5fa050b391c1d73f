package v1

import "context"

// Notifier fans a Change out to interested parties.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}
