package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vatsal-afk/EHR-Dashboard/internal/app"
	"github.com/vatsal-afk/EHR-Dashboard/internal/config"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/pagination"
)

type tableOptions struct {
	patient string
	search  string
	columns string
	limit   int
	asJSON  bool
}

func tableCmd() *cobra.Command {
	var opts tableOptions
	cmd := &cobra.Command{
		Use:   "table <resource>",
		Short: "Print a resource as a table, resolved like GET /api/<resource>/table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTable(cmd.Context(), cfg, zerolog.Nop(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.patient, "patient", "", "Patient id to filter by")
	cmd.Flags().StringVar(&opts.search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&opts.columns, "columns", "", "Comma separated columns, in display order")
	cmd.Flags().IntVar(&opts.limit, "limit", pagination.DefaultLimit, "Maximum rows")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print {columns, rows, empty} as JSON")
	return cmd
}

func runTable(ctx context.Context, cfg *config.Config, logger zerolog.Logger, out io.Writer, resource string, opts tableOptions) error {
	rt, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	svcs := app.NewServices(rt.Deps)
	var columns []string
	if opts.columns != "" {
		columns = strings.Split(opts.columns, ",")
	}
	f := lookup.Filter{PatientID: opts.patient, Search: strings.TrimSpace(opts.search), Limit: opts.limit}
	tbl, src, err := svcs.Table(ctx, resource, f, columns)
	if err != nil {
		return fmt.Errorf("%w (resources: %s)", err, strings.Join(svcs.Resources(), ", "))
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tbl)
	}
	fmt.Fprintf(out, "%s (source: %s)\n", resource, src)
	return tbl.WriteText(out)
}
