package cmd

import (
	"fmt"
	"strings"

	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/spf13/cobra"
)

type options struct {
	seed    int64
	verbose bool
}

// source returns a seeded source when --seed was given.
func (o *options) source() dice.Source {
	if o.seed != 0 {
		return dice.NewSource(o.seed)
	}
	return dice.DefaultSource
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "roll <expression>...",
		Short: "Roll dice expressions",
		Long: `Rolls each dice expression and prints its value.

Examples:
  roll 4d6L1
  roll "1d20 + 5" "2d8 + 3"
  roll -v 3d6H1 --seed 42
  roll stats "2d20L1" -n 50000
  roll statblock`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoll(cmd, opts, args)
		},
	}

	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Seed for reproducible rolls (0 = random)")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show every die rolled")

	root.AddCommand(newStatsCmd(opts), newStatBlockCmd(opts))
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

func runRoll(cmd *cobra.Command, opts *options, args []string) error {
	src := opts.source()
	out := cmd.OutOrStdout()
	for _, arg := range args {
		expr, err := dsl.Parse(arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		res, err := expr.Roll(src)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}

		if !opts.verbose {
			fmt.Fprintf(out, "%s = %s\n", expr, res.Value)
			continue
		}
		rolls := make([]string, 0, len(res.Rolls))
		for _, r := range res.Rolls {
			rolls = append(rolls, fmt.Sprintf("%s: %s", r.Dice, r.Roll))
		}
		fmt.Fprintf(out, "%s = %s  {%s}\n", expr, res.Value, strings.Join(rolls, "; "))
	}
	return nil
}
