package config

import (
	"fmt"
	"net"
	"net/mail"
	"strconv"
	"strings"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/util"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but healthdigest only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest healthdigest release.")
	}

	if _, err := checks.Lookup(cfg.Unit); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unit '%s' isn't a known check record", cfg.Unit),
			"Use one of: "+util.JoinOrNone(checks.Names()))
	}

	if cfg.Recipient != "" {
		if _, err := mail.ParseAddress(cfg.Recipient); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Recipient '%s' isn't a valid mail address", cfg.Recipient),
				"Use a plain address like ops@example.com.")
		}
	}

	if cfg.PublicIP != "" && net.ParseIP(cfg.PublicIP) == nil {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("public_ip '%s' isn't an IP address", cfg.PublicIP),
			"Set it to the monitoring host's public address, or remove it.")
	}

	if err := validateReport(cfg.Report); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'report' section in your .healthdigest.yaml.")
	}

	if err := validateProbe(cfg.Probe); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'probe' section in your .healthdigest.yaml.")
	}

	if err := validateLock(cfg.Lock); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'lock' section in your .healthdigest.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .healthdigest.yaml.")
	}

	return nil
}

// validateReport checks report layout settings.
func validateReport(r ReportConfig) error {
	if r.RowSplits < 1 {
		return fmt.Errorf("report.row_splits must be at least 1, got %d", r.RowSplits)
	}
	if strings.TrimSpace(r.ResultsDir) == "" {
		return fmt.Errorf("report.results_dir can't be empty")
	}
	return nil
}

// validateProbe checks probe settings.
func validateProbe(p ProbeConfig) error {
	if p.GPUCount < 0 {
		return fmt.Errorf("probe.gpu_count can't be negative, got %d", p.GPUCount)
	}
	for _, port := range p.KnownPorts {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("probe.known_ports entry '%s' isn't a port number", port)
		}
	}
	return nil
}

// validateLock checks lock timing settings.
func validateLock(lock LockConfig) error {
	if lock.Timeout < 0 {
		return fmt.Errorf("lock.timeout can't be negative - that doesn't make sense")
	}
	if lock.Stale < 0 {
		return fmt.Errorf("lock.stale can't be negative - that doesn't make sense")
	}
	if lock.Enabled && lock.Timeout > 0 && lock.Stale > 0 && lock.Timeout > lock.Stale {
		return fmt.Errorf("lock.timeout (%v) is longer than lock.stale (%v) - you'd timeout before the lock expires", lock.Timeout, lock.Stale)
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
