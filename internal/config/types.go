package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .healthdigest.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Unit names the kind of check record read by default: "node" or "miner".
	Unit string `yaml:"unit" mapstructure:"unit"`

	// Recipient is the address status summaries and error digests go to.
	Recipient string `yaml:"recipient" mapstructure:"recipient"`

	// PublicIP is the monitoring host's own address. It is never reported
	// as an unexpected SSH peer.
	PublicIP string `yaml:"public_ip" mapstructure:"public_ip"`

	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Probe  ProbeConfig  `yaml:"probe" mapstructure:"probe"`
	Lock   LockConfig   `yaml:"lock" mapstructure:"lock"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ReportConfig controls how status summaries are laid out.
type ReportConfig struct {
	// RowSplits is how many <tr> chunks each table row is broken into.
	RowSplits int `yaml:"row_splits" mapstructure:"row_splits"`

	// Description is appended verbatim to the status subject line. When
	// empty, a monthly report is described as " for <yymm>".
	Description string `yaml:"description" mapstructure:"description"`

	// ResultsDir holds the monthly results files. Supports a leading ~.
	ResultsDir string `yaml:"results_dir" mapstructure:"results_dir"`
}

// ProbeConfig controls how captured command output becomes a record.
type ProbeConfig struct {
	// CaptureDir holds the captured output files. Supports a leading ~.
	CaptureDir string `yaml:"capture_dir" mapstructure:"capture_dir"`

	// KnownPorts are listening ports that are expected and not reported.
	KnownPorts []string `yaml:"known_ports" mapstructure:"known_ports"`

	// KnownPeers are SSH peer addresses that are expected and not reported.
	KnownPeers []string `yaml:"known_peers" mapstructure:"known_peers"`

	// GPUCount is the number of GPUs a miner reports on.
	GPUCount int `yaml:"gpu_count" mapstructure:"gpu_count"`
}

// LockConfig controls the lock taken around appends to a results file, so
// probes of several hosts running at once don't interleave their lines.
type LockConfig struct {
	// Enabled toggles locking on/off.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Timeout is how long to wait for a lock before giving up.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Stale is when to consider a lock stale (holder probably crashed).
	Stale time.Duration `yaml:"stale" mapstructure:"stale"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Unit:    "node",
		Report: ReportConfig{
			RowSplits:  1,
			ResultsDir: "results",
		},
		Probe: ProbeConfig{
			CaptureDir: ".",
			KnownPorts: []string{"22"},
			KnownPeers: []string{},
			GPUCount:   3,
		},
		Lock: LockConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
			Stale:   10 * time.Minute,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// KnownPeerSet returns the configured SSH peers plus the public IP.
func (c *Config) KnownPeerSet() map[string]bool {
	set := toSet(c.Probe.KnownPeers)
	if c.PublicIP != "" {
		set[c.PublicIP] = true
	}
	return set
}

// KnownPortSet returns the configured expected listening ports.
func (c *Config) KnownPortSet() map[string]bool {
	return toSet(c.Probe.KnownPorts)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = true
		}
	}
	return set
}
