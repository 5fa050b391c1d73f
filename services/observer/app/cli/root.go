package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/bootstrap"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

// runtime is shared by the subcommands once the root has loaded the config.
type runtime struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewRootCommand builds the observer command tree.
func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "observer",
		Short: "Observe, export and drive a matching engine venue",
		Long: `observer reads the event log and order book snapshots written by the
matching engine, serves them over HTTP, exports them as csv, xlsx or pdf
archives, forwards commands to the engine and syncs reconstructed records
to QuestDB and Kafka.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			rt.cfg = cfg
			rt.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newServeCommand(rt),
		newExportCommand(rt),
		newExecCommand(rt),
		newSyncCommand(rt),
		newMigrateCommand(rt),
	)
	return root
}

// Execute runs the command tree until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// bootstrap connects the enabled backends and wires the observer.
func (rt *runtime) bootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	db, rdb, err := bootstrap.Connect(ctx, rt.cfg, rt.logger)
	if err != nil {
		return bootstrap.Bootstrap{}, err
	}

	b := &bootstrap.Bootstrap{}
	app, err := b.Init(bootstrap.BootstrapConfig{
		Config:  rt.cfg,
		Logger:  rt.logger,
		QuestDB: db,
		Redis:   rdb,
	})
	if err != nil {
		b.Close(ctx)
		return bootstrap.Bootstrap{}, errors.TracerFromError(err)
	}
	return app, nil
}
