package v1

import "context"

// SnapshotReader reads the resting-order files of the engine.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type SnapshotReader interface {
	// ReadSnapshot returns Found false, and no error, when the file is absent.
	ReadSnapshot(ctx context.Context, side Side) (Snapshot, error)
}
