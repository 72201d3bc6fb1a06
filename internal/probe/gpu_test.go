package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nvidiaSMILines = []string{
	"Thu Dec  9 22:30:26 2021       ",
	"+-----------------------------------------------------------------------------+",
	"| NVIDIA-SMI 470.86.11    Driver Version: 470.86.11    CUDA Version: 11.4     |",
	"|-------------------------------+----------------------+----------------------+",
	"| GPU  Name        Persistence-M| Bus-Id        Disp.A | Volatile Uncorr. ECC |",
	"| Fan  Temp  Perf  Pwr:Usage/Cap|         Memory-Usage | GPU-Util  Compute M. |",
	"|                               |                      |               MIG M. |",
	"|===============================+======================+======================|",
	"|   0  GeForce GTX 166...  Off  | 00000000:01:00.0  On |                  N/A |",
	"| 38%   42C    P2    77W /  78W |   4835MiB /  5944MiB |    100%      Default |",
	"|                               |                      |                  N/A |",
	"+-------------------------------+----------------------+----------------------+",
	"|   1  GeForce RTX 2060    Off  | 00000000:02:00.0 Off |                  N/A |",
	"| 57%   58C    P2   114W / 125W |   4806MiB /  5934MiB |    100%      Default |",
	"|                               |                      |                  N/A |",
	"+-------------------------------+----------------------+----------------------+",
	"|   2  GeForce GTX 3060    Off  | 00000000:03:00.0 Off |                  N/A |",
	"| 48%   66C    P2    86W /  84W |   4790MiB /  5944MiB |    100%      Default |",
	"|                               |                      |                  N/A |",
	"+-------------------------------+----------------------+----------------------+",
	"                                                                               ",
	"+-----------------------------------------------------------------------------+",
}

func deref(values []*string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = "<nil>"
			continue
		}
		out[i] = *v
	}
	return out
}

func TestParseNvidiaSMI(t *testing.T) {
	stats, err := ParseNvidiaSMI(nvidiaSMILines, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"42", "58", "66"}, deref(stats.Temp))
	assert.Equal(t, []string{"77", "114", "86"}, deref(stats.Power))
	assert.Equal(t, []string{"4835", "4806", "4790"}, deref(stats.Mem))
}

func TestParseNvidiaSMI_TrailingNewlines(t *testing.T) {
	lines := make([]string, len(nvidiaSMILines))
	for i, l := range nvidiaSMILines {
		lines[i] = l + "\n"
	}

	stats, err := ParseNvidiaSMI(lines, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "58", "66"}, deref(stats.Temp))
}

func TestParseNvidiaSMI_MissingCards(t *testing.T) {
	// Only the first card's block is present.
	stats, err := ParseNvidiaSMI(nvidiaSMILines[:12], 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"42", "<nil>", "<nil>"}, deref(stats.Temp))
	assert.Equal(t, []string{"77", "<nil>", "<nil>"}, deref(stats.Power))
}

func TestParseNvidiaSMI_Errors(t *testing.T) {
	t.Run("more cards than expected", func(t *testing.T) {
		_, err := ParseNvidiaSMI(nvidiaSMILines, 2)
		assert.ErrorContains(t, err, "GPU 2")
	})

	t.Run("garbled details line", func(t *testing.T) {
		lines := append([]string(nil), nvidiaSMILines...)
		lines[9] = "| ERR!  ERR!   P2   ERR! / ERR! |   4835MiB /  5944MiB |"
		_, err := ParseNvidiaSMI(lines, 3)
		assert.ErrorContains(t, err, "GPU 0")
	})
}

func TestParseNvidiaSMI_NoTable(t *testing.T) {
	stats, err := ParseNvidiaSMI([]string{"NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver."}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"<nil>", "<nil>", "<nil>"}, deref(stats.Mem))
}

func TestReadGPUIndex(t *testing.T) {
	gpu, ok := readGPUIndex("|   0  GeForce GTX 166...  Off  | 00000000:01:00.0  On |                  N/A |")
	assert.True(t, ok)
	assert.Equal(t, 0, gpu)

	gpu, ok = readGPUIndex("|   1  GeForce GTX 166...  Off  | 00000000:02:00.0  On |                  N/A |")
	assert.True(t, ok)
	assert.Equal(t, 1, gpu)

	_, ok = readGPUIndex("| 38%   42C    P2    77W /  78W |   4835MiB /  5944MiB |    100%      Default |")
	assert.False(t, ok)
}
