package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	commandv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
)

func newExecCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   `exec "<command>"`,
		Short: "Run one command through the matching engine",
		Long: `Write one command to the engine's command file, build the engine if needed
and run it. The engine's console output is printed on success.

Commands:
  PLACE <BUY|SELL> <LIMIT|MARKET> <price> <quantity>
  CANCEL <orderId>
  MODIFY <orderId> <PRICE|QTY> <newValue>
  CLEAR <adminSecret>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := commandv1.ParseRequest(strings.Join(args, " "))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := rt.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer app.Close(ctx)

			result, err := app.Usecase.Command.Execute(ctx, req)
			if err != nil {
				return err
			}
			if !result.OK() {
				if result.Stderr != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), result.Stderr)
				}
				return fmt.Errorf("%s: %s", result.Status, result.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			if result.Output != "" {
				fmt.Fprint(cmd.OutOrStdout(), result.Output)
			}
			return nil
		},
	}
}
