package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/infrastructure/watcher"
)

func newSyncCommand(rt *runtime) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy new reconstructed records to QuestDB and Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rt.cfg.QuestDB.Enabled {
				return fmt.Errorf("sync needs the QuestDB sink, set QUESTDB_ENABLED=true")
			}

			ctx := cmd.Context()
			app, err := rt.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			if follow {
				w, err := watcher.NewWatcher(rt.cfg.Venue, rt.cfg.Sync.Debounce, rt.logger)
				if err != nil {
					return err
				}
				return app.Usecase.Sink.Follow(ctx, w.Watch(ctx))
			}

			report, err := app.Usecase.Sink.Sync(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, "keep syncing whenever the event log changes")
	return cmd
}
