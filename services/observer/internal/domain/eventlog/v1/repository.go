package v1

import "context"

// Source reads the engine event log.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type Source interface {
	// Read returns every parseable row. A missing store is reported with a
	// source_unavailable ErrorDetails, a structurally broken one with malformed_source.
	Read(ctx context.Context) ([]LogEvent, ReadStats, error)
	Path() string
}
