package cli

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func runVersion(t *testing.T, b build, short bool) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	printVersion(cmd, b, short)
	return buf.String()
}

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func stubVersionInfo(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	SetVersionInfo(v, c, d)
	t.Cleanup(func() { SetVersionInfo(origVersion, origCommit, origDate) })
}

func TestVersionOutput(t *testing.T) {
	b := build{Version: "1.2.3", Commit: "abc1234", Date: "2024-01-05"}

	want := "healthdigest v1.2.3\n" +
		"commit: abc1234\n" +
		"built: 2024-01-05\n" +
		"go: " + runtime.Version() + "\n" +
		"os/arch: " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
	assert.Equal(t, want, runVersion(t, b, false))
	assert.Equal(t, "1.2.3\n", runVersion(t, b, true))
}

func TestCurrentBuild(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-01-05T06:30:00Z"},
		},
	}

	tests := []struct {
		name      string
		ldflags   build
		buildInfo *debug.BuildInfo
		want      build
	}{
		{
			name:      "ldflags win",
			ldflags:   build{Version: "1.0.0", Commit: "feedbee", Date: "2024-02-01"},
			buildInfo: stamped,
			want:      build{Version: "1.0.0", Commit: "feedbee", Date: "2024-02-01"},
		},
		{
			name:      "go install fills the gaps",
			ldflags:   build{Version: "dev", Commit: "none", Date: "unknown"},
			buildInfo: stamped,
			want:      build{Version: "v0.3.0", Commit: "0123456", Date: "2024-01-05T06:30:00Z"},
		},
		{
			name:      "devel build",
			ldflags:   build{Version: "dev", Commit: "none", Date: "unknown"},
			buildInfo: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:      build{Version: "dev", Commit: "none", Date: "unknown"},
		},
		{
			name:    "no build info",
			ldflags: build{Version: "dev", Commit: "none", Date: "unknown"},
			want:    build{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubVersionInfo(t, tt.ldflags.Version, tt.ldflags.Commit, tt.ldflags.Date)
			stubBuildInfo(t, tt.buildInfo)
			assert.Equal(t, tt.want, currentBuild())
		})
	}
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dev", "dev"},
		{"", ""},
		{"1.0.0", "v1.0.0"},
		{"v1.0.0", "v1.0.0"},
		{"0.4.1-rc1", "v0.4.1-rc1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.input))
		})
	}
}
