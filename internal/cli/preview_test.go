package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand(t *testing.T) {
	stubTerminal(t, false)
	records := strings.Join([]string{nodeLineA, nodeLineC, nodeLineB}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, previewCommand(testConfig(t), "", nil, strings.NewReader(records), &out))

	got := out.String()
	first := strings.Index(got, "10.  0.  0.  2 (2 records)\n")
	second := strings.Index(got, "10.  0.  0.  1 (1 record)\n")
	require.NotEqual(t, -1, first, got)
	require.NotEqual(t, -1, second, got)
	assert.Less(t, first, second, "hosts keep their order of first appearance")

	assert.Equal(t, 2, strings.Count(got, "\nConstants\n"))
	assert.Contains(t, got, "  ● ipv4:  10.  0.  0.  2\n")
	assert.Contains(t, got, "\nStatistics\n")
	assert.Contains(t, got, "\n\n10.  0.  0.  1 (1 record)\n")
}

func TestPreviewCommand_UnknownUnit(t *testing.T) {
	stubTerminal(t, false)

	var out bytes.Buffer
	err := previewCommand(testConfig(t), "toaster", nil, strings.NewReader(nodeLineA), &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))
	assert.Empty(t, out.String())
}
