package doctor

import (
	"fmt"

	"github.com/rileyhilliard/healthdigest/internal/util"
)

// CheckStatus is the outcome of a check, ordered by severity.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText writes the status by name in JSON reports.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a status written by MarshalText.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	for _, candidate := range []CheckStatus{StatusPass, StatusWarn, StatusFail} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown check status %q", text)
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Fixable    bool        `json:"fixable,omitempty"` // Whether --fix can address this
}

// Check is one diagnostic. Run never fails; problems are reported in the
// result. Fix is a no-op for checks whose results are never Fixable.
type Check interface {
	Name() string
	Category() string
	Run() CheckResult
	Fix() error
}

// RunAll executes all checks in order and returns the results.
func RunAll(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = check.Run()
	}
	return results
}

// Fix runs Fix on each fixable check that did not pass and runs it again,
// returning the updated results.
func Fix(checks []Check, results []CheckResult) []CheckResult {
	for i, result := range results {
		if result.Fixable && result.Status != StatusPass {
			if err := checks[i].Fix(); err == nil {
				results[i] = checks[i].Run()
			}
		}
	}
	return results
}

// Tally counts results by status.
type Tally struct {
	Pass    int `json:"pass"`
	Warn    int `json:"warn"`
	Fail    int `json:"fail"`
	Fixable int `json:"fixable"` // Warnings and failures --fix can address
}

// Count tallies results.
func Count(results []CheckResult) Tally {
	var t Tally
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			t.Pass++
			continue
		case StatusWarn:
			t.Warn++
		default:
			t.Fail++
		}
		if r.Fixable {
			t.Fixable++
		}
	}
	return t
}

// Issues is the number of warnings and failures.
func (t Tally) Issues() int {
	return t.Warn + t.Fail
}

// Summary is the one-line verdict printed under a report.
func (t Tally) Summary() string {
	if t.Issues() == 0 {
		return "Everything looks good"
	}
	return fmt.Sprintf("%s found", util.Count(t.Issues(), "issue", "issues"))
}
