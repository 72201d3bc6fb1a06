package cli

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/lock"
	"github.com/rileyhilliard/healthdigest/internal/logger"
	"github.com/rileyhilliard/healthdigest/internal/probe"
	"github.com/rileyhilliard/healthdigest/internal/report"
	"github.com/spf13/cobra"
)

// RecordOptions holds the options of the record command.
type RecordOptions struct {
	Unit       string
	Addr       string
	Dir        string
	KnownPorts []string
	KnownPeers []string
	GPUCount   int
	HTTPMillis string
	HTTPCode   string
	Header     bool
	Save       bool
}

var recordOpts RecordOptions

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Build one check record from captured command output",
	Long: `Read the output of the health-check commands captured from one host and
print the resulting record as a CSV line.

The capture directory holds one file per command: ping.txt, free.txt, df.txt,
who-b.txt, last-reboot.txt, ss-tuln.txt, ss-sport22.txt and nvidia-smi.txt.
Missing files leave their cells empty.

Probe failures are reported as an error digest on stderr and the command
exits with status 2. The record is still printed.

Examples:
  healthdigest record --ip 10.0.0.2 --dir captures/10.0.0.2
  healthdigest record --unit miner --ip 10.0.1.5 --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := recordOpts
		if !cmd.Flags().Changed("dir") {
			opts.Dir = cfg.Probe.CaptureDir
		}
		if !cmd.Flags().Changed("known-ports") {
			opts.KnownPorts = cfg.Probe.KnownPorts
		}
		if !cmd.Flags().Changed("known-peers") {
			opts.KnownPeers = cfg.Probe.KnownPeers
		}
		if !cmd.Flags().Changed("gpus") {
			opts.GPUCount = cfg.Probe.GPUCount
		}
		return recordCommand(cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger.Default())
	},
}

func init() {
	recordCmd.Flags().StringVar(&recordOpts.Unit, "unit", "", "record kind: node or miner (default from config)")
	recordCmd.Flags().StringVar(&recordOpts.Addr, "ip", "", "IPv4 address of the probed host")
	recordCmd.Flags().StringVar(&recordOpts.Dir, "dir", ".", "directory holding the captured output (default from config)")
	recordCmd.Flags().StringSliceVar(&recordOpts.KnownPorts, "known-ports", nil, "listening ports that are expected")
	recordCmd.Flags().StringSliceVar(&recordOpts.KnownPeers, "known-peers", nil, "SSH peers that are expected")
	recordCmd.Flags().IntVar(&recordOpts.GPUCount, "gpus", probe.DefaultGPUCount, "number of GPUs a miner reports on")
	recordCmd.Flags().StringVar(&recordOpts.HTTPMillis, "http-ms", "", "home page response time in ms")
	recordCmd.Flags().StringVar(&recordOpts.HTTPCode, "http-code", "", "home page HTTP status code")
	recordCmd.Flags().BoolVar(&recordOpts.Header, "header", false, "print the CSV header first")
	recordCmd.Flags().BoolVar(&recordOpts.Save, "save", false, "append the record to this month's results file")
	_ = recordCmd.MarkFlagRequired("ip")
	rootCmd.AddCommand(recordCmd)
}

func recordCommand(cfg *config.Config, opts RecordOptions, out, errOut io.Writer, log logger.Logger) error {
	kind, err := resolveKind(opts.Unit, cfg)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(opts.Addr); ip == nil || ip.To4() == nil {
		return errors.New(errors.ErrInput,
			fmt.Sprintf("'%s' isn't an IPv4 address", opts.Addr),
			"Pass the probed host's address with --ip.")
	}

	captures, err := probe.LoadCaptures(opts.Dir)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read captures from "+opts.Dir,
			"Check the capture directory with --dir.")
	}
	if opts.HTTPMillis != "" {
		captures.HTTPMillis = checks.Str(opts.HTTPMillis)
	}
	if opts.HTTPCode != "" {
		captures.HTTPCode = checks.Str(opts.HTTPCode)
	}

	known := *cfg
	known.Probe.KnownPorts = opts.KnownPorts
	known.Probe.KnownPeers = opts.KnownPeers

	at := now().UTC()
	res, probeErrs, err := probe.Record(kind.Name, opts.Addr, captures, probe.Options{
		Time:       checks.Timestamp(at),
		KnownPorts: known.KnownPortSet(),
		KnownPeers: known.KnownPeerSet(),
		GPUCount:   opts.GPUCount,
		Now:        at,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrProbe, "Failed to build record", "")
	}

	if opts.Header {
		fmt.Fprintln(out, kind.Header())
	}
	fmt.Fprintln(out, res.CSV())

	if opts.Save {
		if err := saveRecord(cfg, kind, res, at, log); err != nil {
			return err
		}
	}

	if len(probeErrs) == 0 {
		return nil
	}
	digest := report.NewDigest()
	for _, perr := range probeErrs {
		digest.Append(opts.Addr, perr)
	}
	log.Warn("%s", digest.Subject(kind.Name))
	if _, err := digest.Notification(cfg.Recipient, kind.Name).WriteTo(errOut); err != nil {
		return err
	}
	return errors.NewExitError(2)
}

// saveRecord appends res to the results file of the month at falls in,
// holding the file's lock when locking is enabled.
func saveRecord(cfg *config.Config, kind checks.Kind, res checks.Result, at time.Time, log logger.Logger) error {
	path := checks.MonthFile(cfg.Report.ResultsDir, kind.Name, checks.Month(at))

	if cfg.Lock.Enabled {
		l, err := lock.Acquire(path, cfg.Lock, "healthdigest record "+res.IPv4())
		if err != nil {
			return err
		}
		defer l.Release()
		log.Debug("holding %s", l.Dir)
	}

	if err := checks.Append(path, res); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Failed to save record",
			"Check report.results_dir is writable.")
	}
	log.Info("appended record to %s", path)
	return nil
}
