package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/probe"
	"github.com/rileyhilliard/healthdigest/internal/util"
)

// CaptureDirCheck verifies the capture directory holds the files a record
// of the configured unit is built from.
type CaptureDirCheck struct {
	Dir  string
	Unit string
}

func (c *CaptureDirCheck) Name() string     { return "capture_files" }
func (c *CaptureDirCheck) Category() string { return CategoryCaptures }

// expected returns the capture files a record of the unit reads.
func (c *CaptureDirCheck) expected() []string {
	files := []string{probe.PingFile, probe.FreeFile, probe.DiskFile, probe.WhoBootFile, probe.SSHFile}
	if c.Unit == checks.UnitMiner {
		return append(files, probe.NvidiaSMIFile)
	}
	return append(files, probe.ListeningFile)
}

func (c *CaptureDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Capture directory %s not found", c.Dir),
			Suggestion: "Set probe.capture_dir, or pass --dir to record",
		}
	}

	var missing []string
	for _, name := range c.expected() {
		if _, err := os.Stat(filepath.Join(c.Dir, name)); err != nil {
			missing = append(missing, name)
		}
	}

	switch {
	case len(missing) == 0:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "All capture files present in " + c.Dir,
		}
	case contains(missing, probe.PingFile):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Missing " + probe.PingFile + ", every host will look unreachable",
			Suggestion: "Capture 'ping -c 4 <addr>' into " + filepath.Join(c.Dir, probe.PingFile),
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Missing " + util.JoinOrNone(missing),
			Suggestion: "Their cells will be recorded as None",
		}
	}
}

func (c *CaptureDirCheck) Fix() error {
	return nil
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
