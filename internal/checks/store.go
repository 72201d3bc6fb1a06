package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Layouts of the time cell and of the month in results file names.
const (
	TimeLayout  = "02 15:04:05"
	MonthLayout = "0601"
)

// Timestamp formats t (in UTC) as a record's time cell.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Month formats t (in UTC) as the yymm stamp used for results files.
func Month(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// MonthFile is the path of the results file holding a unit's records for
// the month, e.g. results/node_2401.csv.
func MonthFile(dir, unit, month string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", unit, month))
}

// Append writes results to the end of path, one line each, creating the
// file and its directory when needed.
func Append(path string, results ...Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(f, r.CSV()); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write results file: %w", err)
		}
	}
	return f.Close()
}

// Load reads every record of kind k from path.
func (k Kind) Load(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results, err := k.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}
