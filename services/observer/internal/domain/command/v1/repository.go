package v1

import "context"

// Engine is the external matching engine process.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type Engine interface {
	// Execute writes command to the command file then builds and runs the engine.
	// Build and run failures are reported through Result.Status; the error is
	// reserved for failures to reach the engine at all.
	Execute(ctx context.Context, command string) (Result, error)
	// ReadConsole returns the console output file, empty when absent.
	ReadConsole(ctx context.Context) (string, error)
}
