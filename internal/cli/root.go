package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/logger"
	"github.com/rileyhilliard/healthdigest/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "healthdigest",
	Short: "Summarise server health checks into compact digests",
	Long: `healthdigest turns a table of periodic health-check records into a short
HTML digest: columns that never changed are pulled out as constants, and
numeric columns get mean, standard deviation, min and max.

Examples:
  healthdigest record --ip 10.0.0.2 --dir captures/ --save
  healthdigest compose results/node_2401.csv
  cat results/miner_2401.csv | healthdigest preview --unit miner`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .healthdigest.yaml, searched upwards)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds, loads and validates the configuration, falling back to
// defaults when no file exists.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Default().Debug("no config file found, using defaults")
	} else {
		logger.Default().Debug("using config %s", path)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if !noColor {
		ui.SetColorMode(cfg.Output.Color)
	}
	return cfg, nil
}
