package config

import "os"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents ~/.config/ferry/config.yaml.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Transport TransportConfig `yaml:"transport" mapstructure:"transport"`
	Askpass   AskpassConfig   `yaml:"askpass" mapstructure:"askpass"`
	Profiles  ProfilesConfig  `yaml:"profiles" mapstructure:"profiles"`
	Browse    BrowseConfig    `yaml:"browse" mapstructure:"browse"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// TransportConfig controls how the ssh and scp binaries are invoked.
type TransportConfig struct {
	// SSH is the ssh binary, looked up on PATH when not absolute.
	SSH string `yaml:"ssh" mapstructure:"ssh"`

	// SCP is the scp binary.
	SCP string `yaml:"scp" mapstructure:"scp"`

	// Locale is exported as LC_ALL for the remote listing so ls output
	// stays in the format the parser expects.
	Locale string `yaml:"locale" mapstructure:"locale"`

	// ExtraOptions are passed as additional "-o <option>" pairs to both tools,
	// e.g. "ConnectTimeout=10".
	ExtraOptions []string `yaml:"extra_options" mapstructure:"extra_options"`
}

// AskpassConfig controls where credential helper scripts are staged.
type AskpassConfig struct {
	// Dir holds the short-lived askpass scripts. Empty means os.TempDir().
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ProfilesConfig locates the saved connections file.
type ProfilesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BrowseConfig sets the starting directories of a browse session.
type BrowseConfig struct {
	RemotePath string `yaml:"remote_path" mapstructure:"remote_path"`
	LocalPath  string `yaml:"local_path" mapstructure:"local_path"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Verbosity level: "quiet", "normal", or "verbose".
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Transport: TransportConfig{
			SSH:          "ssh",
			SCP:          "scp",
			Locale:       "C",
			ExtraOptions: []string{},
		},
		Profiles: ProfilesConfig{
			Path: "~/" + GlobalConfigDir + "/" + ProfilesFile,
		},
		Browse: BrowseConfig{
			RemotePath: "/",
			LocalPath:  "~",
		},
		Output: OutputConfig{
			Color:     "auto",
			Verbosity: "normal",
		},
	}
}

// AskpassDir returns the staging directory for askpass scripts.
func (c *Config) AskpassDir() string {
	if c.Askpass.Dir == "" {
		return os.TempDir()
	}
	return c.Askpass.Dir
}
