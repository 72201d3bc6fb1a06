package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is swapped out by tests.
var readBuildInfo = debug.ReadBuildInfo

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of healthdigest.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd, currentBuild(), versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// build describes the running binary.
type build struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild returns the ldflags build info. Binaries built with
// `go install` carry no ldflags, so the module version and VCS stamp
// recorded by the toolchain fill the gaps.
func currentBuild() build {
	b := build{Version: version, Commit: commit, Date: date}

	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" && len(s.Value) >= 7 {
				b.Commit = s.Value[:7]
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		}
	}
	return b
}

func printVersion(cmd *cobra.Command, b build, short bool) {
	if short {
		cmd.Println(b.Version)
		return
	}

	cmd.Printf("healthdigest %s\n", formatVersion(b.Version))
	cmd.Printf("commit: %s\n", b.Commit)
	cmd.Printf("built: %s\n", b.Date)
	cmd.Printf("go: %s\n", runtime.Version())
	cmd.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" || v[0] == 'v' {
		return v
	}
	return "v" + v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
