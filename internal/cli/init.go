package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Where to write the config
	Unit           string
	Recipient      string
	PublicIP       string
	RowSplits      int
	Description    string
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use flags and defaults
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .healthdigest.yaml configuration",
	Long: `Initialize a new healthdigest configuration file in the current directory.

Prompts for the record kind, the recipient of notifications and the report
layout. Use --non-interactive to take everything from flags instead.

Examples:
  healthdigest init
  healthdigest init --non-interactive --unit miner --recipient ops@example.com
  healthdigest init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Path = config.ConfigFileName
		return Init(opts, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.Unit, "unit", "node", "record kind: node or miner")
	initCmd.Flags().StringVar(&initOpts.Recipient, "recipient", "", "address notifications go to")
	initCmd.Flags().StringVar(&initOpts.PublicIP, "public-ip", "", "this host's public address")
	initCmd.Flags().IntVar(&initOpts.RowSplits, "row-splits", 1, "break each table row into this many <tr> chunks")
	initCmd.Flags().StringVar(&initOpts.Description, "description", "", "text appended to subject lines")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts")
	rootCmd.AddCommand(initCmd)
}

// Init creates a new configuration file.
func Init(opts InitOptions, out io.Writer) error {
	if !opts.NonInteractive && !stdinIsTerminal() {
		return errors.New(errors.ErrInput,
			"init needs a terminal to prompt",
			"Run it interactively, or pass --non-interactive with flags.")
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	cfg := buildInitConfig(opts)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(opts.Path, cfg, true); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", opts.Path),
			"Check directory permissions")
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolConstant, opts.Path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  healthdigest record --ip <addr> --save  - Record a host's health")
	fmt.Fprintln(out, "  healthdigest compose                    - Summarise this month's records")
	return nil
}

func buildInitConfig(opts InitOptions) *config.Config {
	cfg := config.DefaultConfig()
	if opts.Unit != "" {
		cfg.Unit = opts.Unit
	}
	cfg.Recipient = strings.TrimSpace(opts.Recipient)
	cfg.PublicIP = strings.TrimSpace(opts.PublicIP)
	if opts.RowSplits != 0 {
		cfg.Report.RowSplits = opts.RowSplits
	}
	cfg.Report.Description = opts.Description
	return cfg
}

func promptInit(opts *InitOptions) error {
	rowSplits := strconv.Itoa(max(opts.RowSplits, 1))
	units := huh.NewOptions(checks.Names()...)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Record kind").
				Description("What sort of hosts are checked").
				Options(units...).
				Value(&opts.Unit),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Recipient").
				Description("Address status summaries and error digests go to").
				Placeholder("ops@example.com").
				Value(&opts.Recipient).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("recipient is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Public IP (optional)").
				Description("This host's own address, never reported as an SSH peer").
				Value(&opts.PublicIP),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Row splits").
				Description("How many <tr> chunks each table row is broken into").
				Value(&rowSplits).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("row splits must be a whole number of at least 1")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	opts.RowSplits, _ = strconv.Atoi(strings.TrimSpace(rowSplits))
	return nil
}
