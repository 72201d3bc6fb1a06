package cli

import (
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/logger"
	"github.com/rileyhilliard/healthdigest/internal/report"
	"github.com/spf13/cobra"
)

// now is the clock used for timestamps and the current month.
var now = time.Now

// ComposeOptions holds the options of the compose command.
type ComposeOptions struct {
	Unit        string
	To          string
	Description string
	RowSplits   int
	// Month is a yymm stamp selecting a monthly results file.
	Month string
}

var composeOpts ComposeOptions

var composeCmd = &cobra.Command{
	Use:   "compose [file]",
	Short: "Print the status notification for a set of records",
	Long: `Group records by host and print a mail-ready notification with one HTML
summary per host.

Records are read from the file, from stdin when it is piped, or otherwise
from the monthly results file (--month, default the current month).

Examples:
  healthdigest compose results/node_2401.csv --to ops@example.com
  healthdigest compose --unit miner --month 2401
  healthdigest compose | sendmail -t`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := composeOpts
		if !cmd.Flags().Changed("to") {
			opts.To = cfg.Recipient
		}
		if !cmd.Flags().Changed("description") {
			opts.Description = cfg.Report.Description
		}
		if !cmd.Flags().Changed("row-splits") {
			opts.RowSplits = cfg.Report.RowSplits
		}
		return composeCommand(cfg, opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), logger.Default())
	},
}

func init() {
	composeCmd.Flags().StringVar(&composeOpts.Unit, "unit", "", "record kind: node or miner (default from config)")
	composeCmd.Flags().StringVar(&composeOpts.To, "to", "", "recipient address (default from config)")
	composeCmd.Flags().StringVar(&composeOpts.Description, "description", "", "text appended to the subject line")
	composeCmd.Flags().IntVar(&composeOpts.RowSplits, "row-splits", 1, "break each table row into this many <tr> chunks")
	composeCmd.Flags().StringVar(&composeOpts.Month, "month", "", "read the results file of this month (yymm)")
	rootCmd.AddCommand(composeCmd)
}

func composeCommand(cfg *config.Config, opts ComposeOptions, args []string, stdin io.Reader, out io.Writer, log logger.Logger) error {
	kind, err := resolveKind(opts.Unit, cfg)
	if err != nil {
		return err
	}

	var results []checks.Result
	description := opts.Description
	if len(args) == 0 && (opts.Month != "" || stdinIsTerminal()) {
		month := opts.Month
		if month == "" {
			month = checks.Month(now())
		}
		path := checks.MonthFile(cfg.Report.ResultsDir, kind.Name, month)
		log.Debug("reading monthly results from %s", path)

		results, err = kind.Load(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.WrapWithCode(err, errors.ErrInput,
					"No "+kind.Name+" results for "+month,
					"Record some with 'healthdigest record --save', or pass a records file.")
			}
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to read "+path,
				"Each line must be a "+kind.Name+" record.")
		}
		if description == "" {
			description = " for " + month
		}
	} else {
		results, err = readResults(kind, args, stdin)
		if err != nil {
			return err
		}
	}

	composer := &report.Composer{Recipient: opts.To, RowSplits: opts.RowSplits, Logger: log}
	n, err := composer.Compose(kind, results, description)
	if err != nil {
		return errors.Wrap(err, "Failed to compose status notification")
	}
	_, err = n.WriteTo(out)
	return err
}
