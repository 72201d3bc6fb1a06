package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/report"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/rileyhilliard/healthdigest/internal/ui"
	"github.com/spf13/cobra"
)

var previewUnit string

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the summary of a records file in the terminal",
	Long: `Render the same per-host summary that compose mails out, styled for the
terminal, with a sparkline of each numeric column.

Examples:
  healthdigest preview results/node_2401.csv
  healthdigest preview --unit miner --no-color < results/miner_2401.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return previewCommand(cfg, previewUnit, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewUnit, "unit", "", "record kind: node or miner (default from config)")
	rootCmd.AddCommand(previewCmd)
}

func previewCommand(cfg *config.Config, unit string, args []string, stdin io.Reader, out io.Writer) error {
	kind, err := resolveKind(unit, cfg)
	if err != nil {
		return err
	}
	results, err := readResults(kind, args, stdin)
	if err != nil {
		return err
	}

	hosts, groups := report.GroupByHost(results)
	for i, host := range hosts {
		s, err := summary.SummariseRows(kind.Header(), groups[host])
		if err != nil {
			return errors.Wrap(err, "Failed to summarise "+strings.TrimSpace(host))
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, ui.RenderHostTitle(host, len(groups[host])))
		fmt.Fprint(out, ui.RenderPreview(s))
	}
	return nil
}
