package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/watcher"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live change stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.serve(cmd.Context())
		},
	}
}

func (rt *runtime) serve(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	app, err := rt.bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	w, err := watcher.NewWatcher(rt.cfg.Venue, rt.cfg.Sync.Debounce, rt.logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", rt.cfg.App.Port),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Hub.Run(ctx, w.Watch(ctx))
	}()
	if app.Usecase.Sink != nil {
		changes, unsubscribe := app.Hub.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer unsubscribe()
			if err := app.Usecase.Sink.Follow(ctx, changes); err != nil {
				rt.logger.ErrorContext(ctx, err)
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		rt.logger.Info("observer started",
			logger.NewField("app", rt.cfg.App.Name),
			logger.NewField("environment", rt.cfg.App.Environment),
			logger.NewField("http_port", rt.cfg.App.Port),
			logger.NewField("venue", rt.cfg.Venue.WorkDir),
		)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		rt.logger.Info("shutting down observer")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = server.Shutdown(shutdownCtx)
	}

	stop()
	wg.Wait()
	if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
