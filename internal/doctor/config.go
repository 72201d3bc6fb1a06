package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/healthdigest/internal/config"
)

// Check categories, in the order they are reported.
const (
	CategoryConfig   = "CONFIG"
	CategoryResults  = "RESULTS"
	CategoryCaptures = "CAPTURES"
)

// Categories lists every category in report order.
var Categories = []string{CategoryConfig, CategoryResults, CategoryCaptures}

// ConfigFileCheck verifies that a config file exists.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", err),
			Suggestion: "Check file permissions or run 'healthdigest init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'healthdigest init' to create a .healthdigest.yaml config file",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

func (c *ConfigFileCheck) Fix() error {
	return nil // init is interactive, so it is run separately
}

// ConfigSchemaCheck verifies that the config loads and validates.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run() CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Failed to load config",
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %v", err),
			Suggestion: "Fix the configuration errors in your .healthdigest.yaml",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Schema valid (unit %s)", cfg.Unit),
	}
}

func (c *ConfigSchemaCheck) Fix() error {
	return nil // Schema issues require manual intervention
}

// RecipientCheck warns when notifications would go out with no To header.
type RecipientCheck struct {
	Config *config.Config
}

func (c *RecipientCheck) Name() string     { return "config_recipient" }
func (c *RecipientCheck) Category() string { return CategoryConfig }

func (c *RecipientCheck) Run() CheckResult {
	if c.Config == nil || c.Config.Recipient == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No recipient configured",
			Suggestion: "Set 'recipient' in .healthdigest.yaml, or pass --to to compose",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Recipient: " + c.Config.Recipient,
	}
}

func (c *RecipientCheck) Fix() error {
	return nil
}
