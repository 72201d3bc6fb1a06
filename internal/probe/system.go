package probe

import (
	"fmt"
	"strings"
	"time"
)

const (
	whoBootPrefix    = "system boot"
	lastRebootPrefix = "wtmp begins dow "
	whoBootLayout    = "2006-01-02 15:04"
	lastRebootLayout = "Jan 2 15:04:05 2006"
)

// ParseFree reads `free -h` output: available memory is the last field of
// the Mem: line, free swap the last field of the Swap: line.
func ParseFree(lines []string) (memAvail, swapFree string, err error) {
	memAvail, err = lastFieldOf(lines, "Mem:")
	if err != nil {
		return "", "", err
	}
	swapFree, err = lastFieldOf(lines, "Swap:")
	if err != nil {
		return "", "", err
	}
	return memAvail, swapFree, nil
}

func lastFieldOf(lines []string, prefix string) (string, error) {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			fields := strings.Fields(line)
			return fields[len(fields)-1], nil
		}
	}
	return "", fmt.Errorf("no %s line in free output", prefix)
}

// ParseDiskAvail reads `df -h --output=avail /` output: the last non-blank
// line, trimmed.
func ParseDiskAvail(lines []string) (string, error) {
	for i := len(lines) - 1; i > 0; i-- {
		if v := strings.TrimSpace(lines[i]); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("no value under the df header")
}

// ParseWhoBoot reads the first line of `who -b`. Numeric dates are
// converted with HumanDate; anything else is kept as printed.
func ParseWhoBoot(line string, now time.Time) (string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, whoBootPrefix) {
		return "", fmt.Errorf("unexpected who -b output: %q", line)
	}
	since := strings.TrimSpace(line[len(whoBootPrefix):])
	if since == "" {
		return "", fmt.Errorf("who -b reported no boot time")
	}
	if since[0] < '0' || since[0] > '9' {
		return since, nil
	}

	t, err := time.Parse(whoBootLayout, since)
	if err != nil {
		return "", fmt.Errorf("failed to parse boot time '%s': %w", since, err)
	}
	return HumanDate(t, now), nil
}

// ParseLastReboot reads the trailing "wtmp begins" line of `last reboot`,
// for hosts where `who -b` prints nothing.
func ParseLastReboot(lines []string, now time.Time) (string, error) {
	var line string
	for i := len(lines) - 1; i >= 0; i-- {
		if line = strings.TrimSpace(lines[i]); line != "" {
			break
		}
	}
	if len(line) <= len(lastRebootPrefix) {
		return "", fmt.Errorf("unexpected last reboot output: %q", line)
	}

	stamp := strings.Join(strings.Fields(line[len(lastRebootPrefix):]), " ")
	t, err := time.Parse(lastRebootLayout, stamp)
	if err != nil {
		return "", fmt.Errorf("failed to parse reboot time '%s': %w", stamp, err)
	}
	return HumanDate(t, now), nil
}

// HumanDate shortens a timestamp to month, day and time when it falls in
// now's year, or month, day and year otherwise. The day is right-aligned to
// two characters: "Jul  6 21:31", "Oct 30 2021".
func HumanDate(t, now time.Time) string {
	tail := t.Format("15:04")
	if t.Year() != now.Year() {
		tail = t.Format("2006")
	}
	return fmt.Sprintf("%s %2d %s", t.Format("Jan"), t.Day(), tail)
}
