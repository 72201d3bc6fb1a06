package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/spf13/cobra"
)

// RenderOptions holds the options of the render command.
type RenderOptions struct {
	Unit      string
	RowSplits int
}

var renderOpts RenderOptions

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print the HTML summary of a records file",
	Long: `Read check records and print their HTML summary: the table without its
unchanging columns, a Constants list, and Statistics for numeric columns.

Records are read from the file, or from stdin when it is piped.

Examples:
  healthdigest render results/node_2401.csv
  healthdigest render --unit miner --row-splits 2 < results/miner_2401.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := renderOpts
		if !cmd.Flags().Changed("row-splits") {
			opts.RowSplits = cfg.Report.RowSplits
		}
		return renderCommand(cfg, opts, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.Unit, "unit", "", "record kind: node or miner (default from config)")
	renderCmd.Flags().IntVar(&renderOpts.RowSplits, "row-splits", 1, "break each table row into this many <tr> chunks")
	rootCmd.AddCommand(renderCmd)
}

func renderCommand(cfg *config.Config, opts RenderOptions, args []string, stdin io.Reader, out io.Writer) error {
	kind, err := resolveKind(opts.Unit, cfg)
	if err != nil {
		return err
	}
	results, err := readResults(kind, args, stdin)
	if err != nil {
		return err
	}

	html, err := summary.RenderHTML(kind.Header(), toRows(results), summary.WithRowSplits(opts.RowSplits))
	if err != nil {
		return errors.Wrap(err, "Failed to render summary")
	}
	_, err = fmt.Fprint(out, html)
	return err
}
