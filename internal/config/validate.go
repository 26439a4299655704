package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/ferry/internal/errors"
)

// localePattern keeps transport.locale safe to splice into the remote command.
var localePattern = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ferry only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest ferry release.")
	}

	if err := validateTransport(cfg.Transport); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'transport' section in your config.yaml.")
	}

	if strings.TrimSpace(cfg.Profiles.Path) == "" {
		return errors.New(errors.ErrConfig,
			"profiles.path is empty",
			"Remove the setting to use the default, ~/.config/ferry/connections.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your config.yaml.")
	}

	return nil
}

// validateTransport checks the transport binaries and options.
func validateTransport(t TransportConfig) error {
	if strings.TrimSpace(t.SSH) == "" {
		return fmt.Errorf("transport.ssh is empty - set it to 'ssh' or a full path")
	}
	if strings.TrimSpace(t.SCP) == "" {
		return fmt.Errorf("transport.scp is empty - set it to 'scp' or a full path")
	}
	if !localePattern.MatchString(t.Locale) {
		return fmt.Errorf("transport.locale '%s' isn't a locale name - use something like 'C' or 'C.UTF-8'", t.Locale)
	}
	for i, opt := range t.ExtraOptions {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("transport.extra_options has an empty entry at position %d", i)
		}
		if strings.HasPrefix(opt, "-") {
			return fmt.Errorf("transport.extra_options entry '%s' should be an option like 'ConnectTimeout=10', not a flag", opt)
		}
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}

	validVerbosity := map[string]bool{"quiet": true, "normal": true, "verbose": true, "": true}
	if !validVerbosity[out.Verbosity] {
		return fmt.Errorf("output.verbosity '%s' isn't valid - use 'quiet', 'normal', or 'verbose'", out.Verbosity)
	}

	return nil
}
