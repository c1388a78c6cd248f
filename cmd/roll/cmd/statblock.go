package cmd

import (
	"fmt"

	"github.com/dryack/gDiceTable/core/dice"
	"github.com/spf13/cobra"
)

var abilities = [6]string{"STR", "DEX", "CON", "INT", "WIS", "CHA"}

func newStatBlockCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "statblock",
		Short: "Roll six ability scores with " + dice.StatRoll.String(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			block := dice.StatBlock(opts.source())
			total := 0
			for i, score := range block {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %2d\n", abilities[i], score)
				total += score
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total %d\n", total)
			return nil
		},
	}
}
