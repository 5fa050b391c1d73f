package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
)

type exportOptions struct {
	format string
	out    string
	types  []string
}

func newExportCommand(rt *runtime) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tables as zip archives",
		Long: `Export every table (orders, trades, modifications, cancellations, raw logs
and the book snapshots that exist) into all_<format>_files.zip.

Examples:
  observer export --format csv
  observer export --format all --out ./exports --type TRADE --type "ORDER PLACED"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := rt.export(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "all", "csv, xlsx, pdf or all")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "raw log event types to keep (repeatable)")
	return cmd
}

func exportFormats(name string) ([]archivev1.Format, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return archivev1.Formats(), nil
	}
	format, err := archivev1.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return []archivev1.Format{format}, nil
}

func (rt *runtime) export(ctx context.Context, opts exportOptions) ([]string, error) {
	formats, err := exportFormats(opts.format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return nil, errors.TracerFromError(err)
	}

	app, err := rt.bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	defer app.Close(ctx)

	set, warnings, err := app.Usecase.Tables.Build(ctx, eventlogv1.Filter{Types: opts.types})
	if err != nil {
		return nil, err
	}
	if warnings.HasDetails() {
		for _, d := range warnings.GetDetails() {
			rt.logger.Warn(d.Message, logger.NewField("code", d.Code))
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, err := app.Usecase.Archive.Build(ctx, set, format)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(opts.out, format.ArchiveName())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.TracerFromError(err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
