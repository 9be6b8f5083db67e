package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go-aggcore/config"
	"go-aggcore/pkg/engine/groupby"
	"go-aggcore/pkg/types"
	"go-aggcore/util/logger"
	"go-aggcore/util/stream"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	configs := config.New()
	var groupCols, aggExprs []string

	cmd := &cobra.Command{
		Use:   "go-aggcore [file]",
		Short: "Group a JSON array of rows and evaluate aggregates over every group",
		Example: `  go-aggcore rows.json --group dept --agg "MEDIAN(salary) AS median"
  cat rows.json | go-aggcore --agg "COUNT(DISTINCT name)" --collation general_ci`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "failed to open input")
				}
				defer f.Close()
				in = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, configs.AggregateConfig, groupCols, aggExprs, in, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&groupCols, "group", "g", nil, "GROUP BY column, repeatable")
	flags.StringArrayVarP(&aggExprs, "agg", "a", nil, `aggregate expression such as "MEDIAN(DISTINCT x) AS m", repeatable`)
	flags.StringVar(&configs.AggregateConfig.Collation, "collation", configs.AggregateConfig.Collation, "compare mode for ordering and DISTINCT")
	flags.IntVar(&configs.AggregateConfig.MaxValues, "max-values", configs.AggregateConfig.MaxValues, "per aggregate value limit, 0 for none")
	flags.StringVar(&configs.AggregateConfig.LogLevel, "log-level", configs.AggregateConfig.LogLevel, "log level")
	return cmd
}

func run(ctx context.Context, cfg *config.AggregateConfig, groupCols, aggExprs []string, in io.Reader, out io.Writer) error {
	evalCtx, err := cfg.EvalContext()
	if err != nil {
		return err
	}

	aggs := make([]*groupby.Aggregation, 0, len(aggExprs))
	for _, expr := range aggExprs {
		ag, err := parseAggregation(expr)
		if err != nil {
			return err
		}
		aggs = append(aggs, ag)
	}

	g, err := groupby.New(&groupby.Options{
		GroupBy:      groupCols,
		Aggregations: aggs,
		Context:      evalCtx,
	})
	if err != nil {
		return err
	}

	rows, err := readRows(in)
	if err != nil {
		return err
	}
	logger.For("main").WithField("rows", len(rows)).Debug("input parsed")

	res, err := g.Run(ctx, stream.FromSlice(rows))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for _, row := range res {
		if err := enc.Encode(row); err != nil {
			return errors.Wrap(err, "failed to write result")
		}
	}
	return nil
}

func readRows(in io.Reader) ([]types.DataRow, error) {
	dec := json.NewDecoder(in)
	dec.UseNumber()

	var objs []map[string]interface{}
	if err := dec.Decode(&objs); err != nil {
		return nil, errors.Wrap(err, "input must be a JSON array of objects")
	}

	rows := make([]types.DataRow, len(objs))
	for i, obj := range objs {
		row, err := types.ParseJSONRow(obj)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		rows[i] = row
	}
	return rows, nil
}

func fatal(val interface{}) {
	fmt.Fprintln(os.Stderr, val)
	os.Exit(1)
}
