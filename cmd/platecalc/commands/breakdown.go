package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/render"
)

func breakdownCmd(opts *options) *cobra.Command {
	var (
		weight    float64
		barWeight float64
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Print the plates to load on each side",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := plates.CheckTotal(weight); err != nil {
				return err
			}

			bar, err := opts.bar(barWeight)
			if err != nil {
				return err
			}

			weightPerSide := plates.WeightPerSide(weight, bar.Weight)
			loadout := opts.calc.Breakdown(weightPerSide)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bar: %s kg (%s)\n", bar.Label(), bar.Color)
			if len(loadout) == 0 {
				fmt.Fprintln(out, "no plates")
			}
			for _, c := range loadout.Counts() {
				fmt.Fprintf(out, "%d x %s kg (%s)\n", c.Count, plates.FormatWeight(c.Weight), c.Color)
			}
			if remainder := weightPerSide - loadout.Total(); remainder > plates.Epsilon {
				fmt.Fprintf(out, "not loadable: %.2f kg per side\n", remainder)
			}
			fmt.Fprintln(out, render.Summary(weightPerSide))
			return nil
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "total weight, bar included (kg)")
	cmd.Flags().Float64Var(&barWeight, "bar", 0, "bar weight (kg), default bar when not set")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}
