package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/orderbook-observer/pkg/migration"
	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the QuestDB sink schema",
	}
	cmd.PersistentFlags().IntVar(&steps, "steps", 0, "number of migrations, 0 applies every pending one (up only)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.migrate(cmd, func(ctx context.Context, r *migration.Runner) (int, error) {
				return r.MigrateUp(ctx, steps)
			}, "applied")
		},
	}
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the latest migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.migrate(cmd, func(ctx context.Context, r *migration.Runner) (int, error) {
				return r.MigrateDown(ctx, steps)
			}, "reverted")
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}

func (rt *runtime) migrate(cmd *cobra.Command, run func(ctx context.Context, r *migration.Runner) (int, error), verb string) error {
	ctx := cmd.Context()

	client, err := questdb.NewClient(ctx, rt.cfg.QuestDB.Config)
	if err != nil {
		return fmt.Errorf("failed to initialize QuestDB client: %w", err)
	}
	defer client.Close()

	n, err := run(ctx, migration.NewRunner(client, rt.logger, rt.cfg.QuestDB.MigrationsPath))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d migration(s)\n", verb, n)
	return nil
}
