package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	stubTerminal(t, false)
	records := nodeLineA + "\n" + nodeLineB + "\n"

	var out bytes.Buffer
	err := renderCommand(testConfig(t), RenderOptions{RowSplits: 1}, nil, strings.NewReader(records), &out)
	require.NoError(t, err)

	html := out.String()
	assert.True(t, strings.HasPrefix(html, "<table>"), html)
	assert.Contains(t, html, "<h3>Constants:</h3>")
	assert.Contains(t, html, "<li><em>ipv4</em>:  10.  0.  0.  2</li>")
	assert.NotContains(t, html, "<td> 10.  0.  0.  2</td>")
}

func TestRenderCommand_FromFile(t *testing.T) {
	stubTerminal(t, true)
	path := filepath.Join(t.TempDir(), "node.csv")
	writeFile(t, path, nodeLineA+"\n"+nodeLineB+"\n")

	var out bytes.Buffer
	err := renderCommand(testConfig(t), RenderOptions{RowSplits: 2}, []string{path}, nil, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<table>")
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     RenderOptions
		args     []string
		stdin    string
		terminal bool
		code     string
		contains string
	}{
		{
			name:     "interactive stdin",
			opts:     RenderOptions{RowSplits: 1},
			terminal: true,
			code:     errors.ErrInput,
			contains: "No records to read",
		},
		{
			name:     "unknown unit",
			opts:     RenderOptions{Unit: "toaster", RowSplits: 1},
			stdin:    nodeLineA,
			code:     errors.ErrInput,
			contains: "Unknown unit 'toaster'",
		},
		{
			name:     "missing file",
			opts:     RenderOptions{RowSplits: 1},
			args:     []string{"does-not-exist.csv"},
			code:     errors.ErrInput,
			contains: "Cannot open records file",
		},
		{
			name:     "empty input",
			opts:     RenderOptions{RowSplits: 1},
			stdin:    "",
			code:     errors.ErrInput,
			contains: "No records found in stdin",
		},
		{
			name:     "bad row splits",
			opts:     RenderOptions{RowSplits: 0},
			stdin:    nodeLineA,
			code:     errors.ErrRender,
			contains: "Failed to render summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.terminal)
			var out bytes.Buffer
			err := renderCommand(testConfig(t), tt.opts, tt.args, strings.NewReader(tt.stdin), &out)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), err.Error())
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, out.String())
		})
	}
}

func TestRenderCommand_RowSplitsError(t *testing.T) {
	stubTerminal(t, false)
	var out bytes.Buffer
	err := renderCommand(testConfig(t), RenderOptions{RowSplits: -1}, nil, strings.NewReader(nodeLineA), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, summary.ErrRowSplits)
}
