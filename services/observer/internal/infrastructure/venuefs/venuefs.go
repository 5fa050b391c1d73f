package venuefs

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	bookv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

// Store reads the snapshot files the engine rewrites after every command.
type Store struct {
	paths map[bookv1.Side]string
}

var _ bookv1.SnapshotReader = (*Store)(nil)

// NewStore resolves the snapshot paths of cfg.
func NewStore(cfg config.VenueConfig) *Store {
	return &Store{
		paths: map[bookv1.Side]string{
			bookv1.Buy:  cfg.Path(cfg.BuyBookFile),
			bookv1.Sell: cfg.Path(cfg.SellBookFile),
		},
	}
}

// ReadSnapshot returns the raw text of one side.
func (s *Store) ReadSnapshot(ctx context.Context, side bookv1.Side) (bookv1.Snapshot, error) {
	path, ok := s.paths[side]
	if !ok {
		return bookv1.Snapshot{}, fmt.Errorf("unknown book side %q", side)
	}

	text, found, err := ReadOptional(path)
	if err != nil {
		return bookv1.Snapshot{}, err
	}
	return bookv1.Snapshot{Side: side, Path: path, Text: text, Found: found}, nil
}

// ReadOptional reads path, reporting found false for a missing file.
func ReadOptional(path string) (string, bool, error) {
	content, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(content), true, nil
}
