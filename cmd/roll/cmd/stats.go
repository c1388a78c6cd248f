package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/dryack/gDiceTable/core/statistics"
	"github.com/dryack/gDiceTable/core/utils"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *options) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "stats <expression>",
		Short: "Estimate the distribution of an expression",
		Long: `Runs a Monte Carlo simulation of the expression and prints summary
statistics. Ctrl-C stops early and reports what was gathered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := dsl.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT)
			defer stop()

			seed := opts.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			start := time.Now()
			r := statistics.MonteCarloSimulation(ctx, statistics.ExpressionSimulation(expr), iterations, seed)
			printStats(cmd, expr, r, time.Since(start))
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100000, "Number of samples")
	return cmd
}

func printStats(cmd *cobra.Command, expr *dsl.Expression, r *statistics.Result, took time.Duration) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s over %d samples (%s)\n", expr, r.Samples, utils.FormatDuration(took))
	if r.Failed > 0 {
		fmt.Fprintf(out, "  failed:   %d\n", r.Failed)
	}
	if lo, hi, ok := expr.Bounds(); ok {
		fmt.Fprintf(out, "  range:    %s .. %s\n", lo, hi)
	}
	fmt.Fprintf(out, "  min/max:  %g / %g\n", r.Min, r.Max)
	fmt.Fprintf(out, "  mean:     %g\n", r.Mean)
	fmt.Fprintf(out, "  stddev:   %g\n", r.StandardDeviation)
	fmt.Fprintf(out, "  skewness: %g\n", r.Skewness)
	fmt.Fprintf(out, "  kurtosis: %g\n", r.Kurtosis)

	ranks := make([]int, 0, len(r.Percentiles))
	for p := range r.Percentiles {
		ranks = append(ranks, p)
	}
	sort.Ints(ranks)
	for _, p := range ranks {
		fmt.Fprintf(out, "  p%-3d      %g\n", p, r.Percentiles[p])
	}
}
