package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/controller"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/terminal"
	"github.com/2beens/barbellviz/pkg"
)

// barChoice is the selected bar of a terminal session.
type barChoice struct {
	bar plates.BarSpec
}

func (c *barChoice) Selected() (plates.BarSpec, bool) {
	return c.bar, c.bar.Weight > 0
}

func showCmd(opts *options) *cobra.Command {
	var (
		weightsRaw string
		barWeight  float64
		allBars    bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Draw a barbell for every weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := pkg.ParseFloatList(weightsRaw)
			if err != nil {
				return fmt.Errorf("weights: %w", err)
			}
			if len(weights) == 0 {
				return fmt.Errorf("no weights given")
			}
			for _, w := range weights {
				if err := plates.CheckTotal(w); err != nil {
					return err
				}
			}

			bar, err := opts.bar(barWeight)
			if err != nil {
				return err
			}

			displays := make([]*terminal.Display, 0, len(weights))
			ctrlDisplays := make([]controller.Display, 0, len(weights))
			for _, w := range weights {
				d := terminal.NewDisplay(plates.FormatWeight(w)+" kg", w)
				displays = append(displays, d)
				ctrlDisplays = append(ctrlDisplays, d)
			}

			out := cmd.OutOrStdout()
			printAll := func(bar plates.BarSpec) {
				fmt.Fprintf(out, "--- bar %s kg (%s) ---\n", bar.Label(), bar.Color)
				for _, d := range displays {
					fmt.Fprintln(out, d.String())
				}
			}

			choice := &barChoice{bar: bar}
			notifier := controller.NewNotifier()
			ctrl := controller.New(opts.calc, choice, ctrlDisplays...)
			ctrl.Start(notifier)
			printAll(choice.bar)

			if !allBars {
				return nil
			}
			for _, b := range opts.bars {
				if b.Weight == bar.Weight {
					continue
				}
				choice.bar = b
				notifier.Notify()
				printAll(b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&weightsRaw, "weights", "", "comma separated total weights, e.g. 100,62.5")
	cmd.Flags().Float64Var(&barWeight, "bar", 0, "bar weight (kg), default bar when not set")
	cmd.Flags().BoolVar(&allBars, "all-bars", false, "draw the weights for every bar option")
	_ = cmd.MarkFlagRequired("weights")

	return cmd
}
