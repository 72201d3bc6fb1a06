package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultGPUCount is the number of cards a rig is assumed to carry.
const DefaultGPUCount = 3

var (
	gpuSeparatorPattern = regexp.MustCompile(`^(\+-+\+-+\+-+\+|\|=+\+=+\+=+\|)$`)
	gpuIndexPattern     = regexp.MustCompile(`^\| +(\d+) +`)
	gpuDetailsPattern   = regexp.MustCompile(`^\| +\d+% +(\d+)C +P\d +(\d+)W */ *\d+W *\| +(\d+)MiB */ *\d+MiB *\|`)
)

// GPUStats holds per-card readings indexed by GPU number. A card that did
// not report has nil entries.
type GPUStats struct {
	Temp  []*string // degrees C
	Power []*string // watts
	Mem   []*string // MiB in use
}

// ParseNvidiaSMI reads the box table printed by a bare `nvidia-smi`. Each
// card's block follows a separator row; its first line carries the GPU
// index and its second the fan, temperature, power and memory readings.
func ParseNvidiaSMI(lines []string, gpuCount int) (*GPUStats, error) {
	stats := &GPUStats{
		Temp:  make([]*string, gpuCount),
		Power: make([]*string, gpuCount),
		Mem:   make([]*string, gpuCount),
	}

	for i := 0; i < len(lines); i++ {
		if !gpuSeparatorPattern.MatchString(strings.TrimRight(lines[i], "\r\n")) || i+2 >= len(lines) {
			continue
		}
		gpu, ok := readGPUIndex(lines[i+1])
		if !ok {
			continue
		}
		if gpu >= gpuCount {
			return nil, fmt.Errorf("GPU %d reported but only %d expected", gpu, gpuCount)
		}

		m := gpuDetailsPattern.FindStringSubmatch(lines[i+2])
		if m == nil {
			return nil, fmt.Errorf("unexpected details line for GPU %d: %q", gpu, strings.TrimSpace(lines[i+2]))
		}
		stats.Temp[gpu] = &m[1]
		stats.Power[gpu] = &m[2]
		stats.Mem[gpu] = &m[3]
		i += 2
	}
	return stats, nil
}

func readGPUIndex(line string) (int, bool) {
	m := gpuIndexPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	gpu, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return gpu, true
}
