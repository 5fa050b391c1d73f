package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

func venueConfig(dir string) config.VenueConfig {
	return config.VenueConfig{
		WorkDir:      dir,
		LogFile:      "all_info.csv",
		BuyBookFile:  "buy book.txt",
		SellBookFile: "sell book.txt",
		CommandFile:  "command.txt",
		ConsoleFile:  "console_output.txt",
	}
}

func TestWatcher_LoopCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	sources, err := sourcePaths(venueConfig(dir))
	require.NoError(t, err)

	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	w := &Watcher{
		sources:  sources,
		debounce: 20 * time.Millisecond,
		logger:   logger.NewNopLogger(),
		now:      func() time.Time { return at },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan fsnotify.Event, 8)
	errs := make(chan error)
	out := make(chan venuev1.Change, 8)
	go w.loop(ctx, events, errs, out)

	logPath := filepath.Join(dir, "all_info.csv")
	events <- fsnotify.Event{Name: logPath, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: logPath, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: filepath.Join(dir, "command.txt"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: filepath.Join(dir, "sell book.txt"), Op: fsnotify.Create}
	events <- fsnotify.Event{Name: filepath.Join(dir, "buy book.txt"), Op: fsnotify.Chmod}

	var got []venuev1.Change
	for len(got) < 2 {
		select {
		case change := <-out:
			got = append(got, change)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected 2 changes, got %d", len(got))
		}
	}

	assert.Equal(t, []venuev1.Change{
		{Source: venuev1.SourceLog, Path: logPath, At: at},
		{Source: venuev1.SourceSellBook, Path: filepath.Join(dir, "sell book.txt"), At: at},
	}, got)

	select {
	case change := <-out:
		t.Fatalf("unexpected change %+v", change)
	case <-time.After(60 * time.Millisecond):
	}

	cancel()
	_, open := <-out
	assert.False(t, open)
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(venueConfig(dir), 10*time.Millisecond, logger.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "buy book.txt"), []byte("ID: 1, Qty: 5, Price: 100\n"), 0o600))

	select {
	case change := <-changes:
		assert.Equal(t, venuev1.SourceBuyBook, change.Source)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
