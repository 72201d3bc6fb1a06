package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".healthdigest.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/healthdigest"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix scopes environment overrides, e.g. HEALTHDIGEST_RECIPIENT.
	EnvPrefix = "HEALTHDIGEST"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'healthdigest init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .healthdigest.yaml in current directory
// 3. .healthdigest.yaml in parent directories (stops at git root or home)
// 4. ~/.config/healthdigest/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		if isGitRoot(dir) {
			break
		}
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg := DefaultConfig()
		applyEnv(cfg)
		return cfg, "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	expandPaths(cfg)
	return cfg, nil
}

// applyEnv lets environment overrides reach a config that came from no file.
func applyEnv(cfg *Config) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows of, so every key has a default.
	_ = v.Unmarshal(cfg)
	expandPaths(cfg)
}

func expandPaths(cfg *Config) {
	cfg.Probe.CaptureDir = ExpandTilde(cfg.Probe.CaptureDir)
	cfg.Report.ResultsDir = ExpandTilde(cfg.Report.ResultsDir)
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("unit", def.Unit)
	v.SetDefault("recipient", def.Recipient)
	v.SetDefault("public_ip", def.PublicIP)
	v.SetDefault("report.row_splits", def.Report.RowSplits)
	v.SetDefault("report.description", def.Report.Description)
	v.SetDefault("report.results_dir", def.Report.ResultsDir)
	v.SetDefault("probe.capture_dir", def.Probe.CaptureDir)
	v.SetDefault("probe.known_ports", def.Probe.KnownPorts)
	v.SetDefault("probe.known_peers", def.Probe.KnownPeers)
	v.SetDefault("probe.gpu_count", def.Probe.GPUCount)
	v.SetDefault("lock.enabled", def.Lock.Enabled)
	v.SetDefault("lock.timeout", def.Lock.Timeout.String())
	v.SetDefault("lock.stale", def.Lock.Stale.String())
	v.SetDefault("output.color", def.Output.Color)
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
