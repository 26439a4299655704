package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the config directory, relative to the home directory.
	GlobalConfigDir = ".config/ferry"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
	// ProfilesFile is the default saved-connections file name.
	ProfilesFile = "connections.yaml"

	// EnvPrefix prefixes environment overrides: FERRY_TRANSPORT_SSH, FERRY_OUTPUT_COLOR...
	EnvPrefix = "FERRY"
	// ConfigEnv names a config file, like --config.
	ConfigEnv = "FERRY_CONFIG"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create "+DefaultPath()+", or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $FERRY_CONFIG
// 3. ~/.config/ferry/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(ConfigEnv)
	}

	if explicit != "" {
		explicit = paths.ExpandLocal(explicit)
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

	global := DefaultPath()
	if global == "" {
		return "", nil
	}
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// DefaultPath is ~/.config/ferry/config.yaml, or "" without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault loads the config Find locates, or returns defaults (with
// environment overrides applied) when there is none.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseConfig(newViper(), "")
	}

	return Load(path)
}

// newViper returns a viper instance with ferry's defaults and env binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key with viper. AutomaticEnv only consults the
// environment for keys viper already knows about.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("transport.ssh", d.Transport.SSH)
	v.SetDefault("transport.scp", d.Transport.SCP)
	v.SetDefault("transport.locale", d.Transport.Locale)
	v.SetDefault("transport.extra_options", d.Transport.ExtraOptions)
	v.SetDefault("askpass.dir", d.Askpass.Dir)
	v.SetDefault("profiles.path", d.Profiles.Path)
	v.SetDefault("browse.remote_path", d.Browse.RemotePath)
	v.SetDefault("browse.local_path", d.Browse.LocalPath)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.verbosity", d.Output.Verbosity)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment overrides"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Profiles.Path = paths.ExpandLocal(cfg.Profiles.Path)
	cfg.Askpass.Dir = paths.ExpandLocal(cfg.Askpass.Dir)
	cfg.Browse.LocalPath = paths.ExpandLocal(cfg.Browse.LocalPath)

	return cfg, nil
}
