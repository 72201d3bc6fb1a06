// Package probe parses the captured output of the shell commands run
// against a monitored host (ping, free, df, who, last, ss, nvidia-smi) into
// the cells of a check record.
package probe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var pingTimePattern = regexp.MustCompile(`time=([\d. ]+)ms`)

// PingLatencies returns every round-trip time reported in ping output, in
// milliseconds as printed. An unreachable host yields none.
func PingLatencies(output string) []string {
	matches := pingTimePattern.FindAllStringSubmatch(output, -1)
	latencies := make([]string, 0, len(matches))
	for _, m := range matches {
		latencies = append(latencies, strings.TrimSpace(m[1]))
	}
	return latencies
}

// SummariseLatencies returns the average and the maximum latency, each
// rounded half-to-even to whole milliseconds.
func SummariseLatencies(latencies []string) (avg, peak string, err error) {
	if len(latencies) == 0 {
		return "", "", fmt.Errorf("no ping latencies to summarise")
	}

	var sum float64
	hi := math.Inf(-1)
	for _, l := range latencies {
		v, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse latency '%s': %w", l, err)
		}
		sum += v
		hi = math.Max(hi, v)
	}
	return wholeMillis(sum / float64(len(latencies))), wholeMillis(hi), nil
}

func wholeMillis(v float64) string {
	return strconv.FormatFloat(math.RoundToEven(v), 'f', 0, 64)
}
