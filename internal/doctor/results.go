package doctor

import (
	"fmt"
	"os"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/lock"
)

// ResultsDirCheck verifies the results directory exists and is a directory.
type ResultsDirCheck struct {
	Dir string
}

func (c *ResultsDirCheck) Name() string     { return "results_dir" }
func (c *ResultsDirCheck) Category() string { return CategoryResults }

func (c *ResultsDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Results directory %s doesn't exist yet", c.Dir),
			Suggestion: "It is created by the first 'healthdigest record --save'",
			Fixable:    true,
		}
	}
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot access %s: %v", c.Dir, err),
			Suggestion: "Check permissions on report.results_dir",
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is not a directory", c.Dir),
			Suggestion: "Point report.results_dir at a directory",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Results directory: " + c.Dir,
	}
}

func (c *ResultsDirCheck) Fix() error {
	return os.MkdirAll(c.Dir, 0o755)
}

// MonthFileCheck verifies this month's results file parses as records of
// the configured unit.
type MonthFileCheck struct {
	Kind  checks.Kind
	Dir   string
	Month string
}

func (c *MonthFileCheck) Name() string     { return "results_month" }
func (c *MonthFileCheck) Category() string { return CategoryResults }

func (c *MonthFileCheck) Run() CheckResult {
	path := checks.MonthFile(c.Dir, c.Kind.Name, c.Month)
	results, err := c.Kind.Load(path)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No %s results for %s", c.Kind.Name, c.Month),
			Suggestion: "Record some with 'healthdigest record --save'",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Unreadable results file: %v", err),
			Suggestion: "Each line must be a " + c.Kind.Name + " record: " + c.Kind.Header(),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d %s records for %s", len(results), c.Kind.Name, c.Month),
	}
}

func (c *MonthFileCheck) Fix() error {
	return nil
}

// StaleLockCheck looks for a results file lock left behind by a process
// that is gone.
type StaleLockCheck struct {
	Target string
	Lock   config.LockConfig
}

func (c *StaleLockCheck) Name() string     { return "results_lock" }
func (c *StaleLockCheck) Category() string { return CategoryResults }

func (c *StaleLockCheck) Run() CheckResult {
	dir := lock.Dir(c.Target)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Results file not locked",
		}
	}

	info, err := lock.ReadInfo(dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Results file locked by an unknown holder",
			Suggestion: "Remove " + dir + " if no record --save is running",
			Fixable:    true,
		}
	}

	age := info.Age().Round(time.Second)
	if c.Lock.Stale > 0 && age > c.Lock.Stale {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Stale lock held by %s for %s", info, age),
			Suggestion: "The next record --save removes it, or run doctor --fix",
			Fixable:    true,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Results file locked by " + info.String(),
	}
}

func (c *StaleLockCheck) Fix() error {
	return lock.ForceRelease(lock.Dir(c.Target))
}
