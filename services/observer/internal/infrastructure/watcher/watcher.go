package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher reports changes to the venue files. Bursts of events are coalesced
// into one Change per source once the debounce window has been quiet.
type Watcher struct {
	fsw      *fsnotify.Watcher
	sources  map[string]venuev1.Source
	debounce time.Duration
	logger   logger.Interface
	now      func() time.Time
}

// NewWatcher watches the directories holding the log, both snapshots and the
// console output. Directories are watched instead of files so that a file the
// engine recreates keeps being reported.
func NewWatcher(cfg config.VenueConfig, debounce time.Duration, logger logger.Interface) (*Watcher, error) {
	sources, err := sourcePaths(cfg)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	dirs := make(map[string]struct{})
	for path := range sources {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.NewTracer("cannot watch " + dir).Wrap(err)
		}
	}

	return &Watcher{
		fsw:      fsw,
		sources:  sources,
		debounce: debounce,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func sourcePaths(cfg config.VenueConfig) (map[string]venuev1.Source, error) {
	files := map[venuev1.Source]string{
		venuev1.SourceLog:      cfg.LogFile,
		venuev1.SourceBuyBook:  cfg.BuyBookFile,
		venuev1.SourceSellBook: cfg.SellBookFile,
		venuev1.SourceConsole:  cfg.ConsoleFile,
	}

	paths := make(map[string]venuev1.Source, len(files))
	for source, name := range files {
		abs, err := filepath.Abs(cfg.Path(name))
		if err != nil {
			return nil, err
		}
		paths[abs] = source
	}
	return paths, nil
}

// Watch emits changes until ctx is done, then closes the channel and the
// underlying watcher.
func (w *Watcher) Watch(ctx context.Context) <-chan venuev1.Change {
	out := make(chan venuev1.Change, len(w.sources))
	go func() {
		defer w.fsw.Close()
		w.loop(ctx, w.fsw.Events, w.fsw.Errors, out)
	}()
	return out
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, out chan<- venuev1.Change) {
	defer close(out)

	pending := make(map[venuev1.Source]venuev1.Change)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op&relevantOps == 0 {
				continue
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			source, ok := w.sources[path]
			if !ok {
				continue
			}
			pending[source] = venuev1.Change{Source: source, Path: path, At: w.now()}
			timer.Reset(w.debounce)
		case err, ok := <-errs:
			if !ok {
				return
			}
			w.logger.ErrorContext(ctx, errors.NewTracer("venue watcher error").Wrap(err))
		case <-timer.C:
			if !w.flush(ctx, pending, out) {
				return
			}
		}
	}
}

// flush emits pending changes in source order and empties pending.
func (w *Watcher) flush(ctx context.Context, pending map[venuev1.Source]venuev1.Change, out chan<- venuev1.Change) bool {
	changes := make([]venuev1.Change, 0, len(pending))
	for _, change := range pending {
		changes = append(changes, change)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Source < changes[j].Source })

	for _, change := range changes {
		select {
		case out <- change:
			delete(pending, change.Source)
		case <-ctx.Done():
			return false
		}
	}

	w.logger.DebugContext(ctx, "venue files changed", logger.NewField("changes", len(changes)))
	return true
}
