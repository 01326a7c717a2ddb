package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/barbellviz/internal/config"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/logging"
)

// options shared by every subcommand
type options struct {
	env        string
	configPath string
	logLevel   string

	calc       *plates.Calculator
	bars       []plates.BarSpec
	defaultBar plates.BarSpec
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "platecalc",
		Short:         "Plate breakdown and barbell drawing for a target weight",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config with bars and plate denominations (default built-in olympic set)")
	root.PersistentFlags().StringVar(&opts.env, "env", "development", "config section to use [dev | prod | ddev]")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(breakdownCmd(opts), showCmd(opts))
	return root
}

func (o *options) load() error {
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    o.logLevel,
	})

	o.bars = plates.DefaultBars
	o.defaultBar = plates.DefaultBars[0]
	denominations := plates.DefaultDenominations

	if o.configPath != "" {
		cfg, err := config.Load(o.env, o.configPath)
		if err != nil {
			return err
		}
		o.bars = cfg.Bars
		o.defaultBar = cfg.DefaultBar()
		denominations = cfg.Denominations
		log.Debugf("loaded %d bars and %d denominations from [%s]", len(o.bars), len(denominations), o.configPath)
	}

	calc, err := plates.NewCalculator(denominations)
	if err != nil {
		return fmt.Errorf("plate denominations: %w", err)
	}
	o.calc = calc
	return nil
}

// bar resolves the --bar flag; zero means the default bar.
func (o *options) bar(weight float64) (plates.BarSpec, error) {
	if weight == 0 {
		return o.defaultBar, nil
	}
	bar, ok := plates.FindBar(o.bars, weight)
	if !ok {
		return plates.BarSpec{}, fmt.Errorf("unknown bar: %s kg", plates.FormatWeight(weight))
	}
	return bar, nil
}
