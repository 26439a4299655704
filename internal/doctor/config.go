package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ferry/internal/config"
	"github.com/rileyhilliard/ferry/internal/errors"
)

// ConfigFileCheck reports which config file is in effect. Having none is
// fine; the defaults apply.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.Summary(err),
			Suggestion: "Check the --config path or $" + config.ConfigEnv,
		}
	}
	if path == "" {
		return CheckResult{
			Status:  StatusPass,
			Message: "No config file, using defaults",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: "Config file: " + path,
	}
}

// ConfigSchemaCheck loads and validates the config file.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return "CONFIG" }

func (c *ConfigSchemaCheck) Run(ctx context.Context) CheckResult {
	cfg, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %s", errors.Summary(err)),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		suggestion := errors.SuggestionOf(err)
		return CheckResult{
			Status:     StatusFail,
			Message:    "Schema error: " + errors.Summary(err),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: "Schema valid",
	}
}
