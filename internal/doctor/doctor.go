// Package doctor diagnoses a healthdigest setup: the config, the results
// store and the captured command output a record is built from.
package doctor

import (
	"time"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
)

// NewChecks returns every check for cfg, loaded from cfgPath (empty when
// the defaults are in use), as of now.
func NewChecks(cfgPath string, cfg *config.Config, now time.Time) []Check {
	all := []Check{
		&ConfigFileCheck{ConfigPath: cfgPath},
		&ConfigSchemaCheck{ConfigPath: cfgPath},
		&RecipientCheck{Config: cfg},
		&ResultsDirCheck{Dir: cfg.Report.ResultsDir},
	}

	if kind, err := checks.Lookup(cfg.Unit); err == nil {
		month := checks.Month(now)
		all = append(all,
			&MonthFileCheck{Kind: kind, Dir: cfg.Report.ResultsDir, Month: month},
			&StaleLockCheck{Target: checks.MonthFile(cfg.Report.ResultsDir, kind.Name, month), Lock: cfg.Lock},
		)
	}

	return append(all, &CaptureDirCheck{Dir: cfg.Probe.CaptureDir, Unit: cfg.Unit})
}
