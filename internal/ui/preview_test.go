package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/healthdigest/internal/summary"
)

func summarise(t *testing.T, header string, rows ...string) *summary.Summary {
	t.Helper()
	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = strings.Split(row, ",")
	}
	s, err := summary.Summarise(strings.Split(header, ","), table)
	require.NoError(t, err)
	return s
}

func TestRenderPreview(t *testing.T) {
	s := summarise(t, "orcs,trolls,goblins,hobgoblins",
		"5,1,30,4", "10,2,10,4", "10,4,0,4")

	out := RenderPreview(s)

	assert.Contains(t, out, "orcs")
	assert.Contains(t, out, "goblins")
	assert.Contains(t, out, "Constants\n  ● hobgoblins: 4\n")
	assert.Contains(t, out, "\nStatistics\n")
	assert.Contains(t, out, "  ◐ orcs     mean 8.33  stdev 2.89  min 5  max 10  ▁██\n")
	assert.Contains(t, out, "  ◐ trolls   mean 2.33  stdev 1.53  min 1  max 4  ▁▃█\n")
	assert.Contains(t, out, "  ◐ goblins  mean 13.33  stdev 15.28  min 0  max 30  █▃▁\n")
	assert.Less(t, strings.Index(out, "Constants"), strings.Index(out, "Statistics"))
}

func TestRenderPreview_MultiComponent(t *testing.T) {
	s := summarise(t, "host,gpu",
		"a,31_42", "b,31_38", "c,30_46", "d,None_41")

	out := RenderPreview(s)

	assert.Contains(t, out, "gpu[0]  mean 30.67  stdev 0.58  min 30  max 31  ○ nulls 1  ")
	assert.Contains(t, out, "gpu[1]  mean 41.75  stdev 3.3  min 38  max 46  ")
	assert.NotContains(t, out, "Constants")
}

func TestRenderPreview_ConstantsOnly(t *testing.T) {
	s := summarise(t, "C1,C6", "Garage,Saloon")

	out := RenderPreview(s)

	assert.Equal(t, "\nConstants\n  ● C1: Garage\n  ● C6: Saloon\n", out)
}

func TestRenderHostTitle(t *testing.T) {
	assert.Equal(t, "10.  0.  0.  2 (3 records)\n"+strings.Repeat("━", HeaderWidth)+"\n",
		RenderHostTitle(" 10.  0.  0.  2", 3))
	assert.Contains(t, RenderHostTitle("a", 1), "(1 record)")
}
