package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/ferry/internal/config"
	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/logger"
	"github.com/rileyhilliard/ferry/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags.
var (
	cfgFile string
	verbose bool
	quiet   bool
	noColor bool
)

// settings is the loaded config, filled in before any command runs.
var settings *config.Config

var rootCmd = &cobra.Command{
	Use:   "ferry",
	Short: "Browse and copy files on remote machines over ssh",
	Long: `ferry browses remote filesystems and copies files to and from them using
the ssh and scp already installed on your machine.

Save a connection once, then list, upload, download or browse interactively:

  ferry connection add prod --host prod.example.com --user deploy --key ~/.ssh/id_ed25519
  ferry ls prod /var/www
  ferry upload prod ./dist /var/www/dist
  ferry browse prod`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/ferry/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show ssh/scp output and debug logs")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only print results and errors")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// loadSettings reads the config file and applies output preferences.
func loadSettings() error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	switch {
	case verbose:
		cfg.Output.Verbosity = "verbose"
	case quiet:
		cfg.Output.Verbosity = "quiet"
	}
	logger.SetDebug(cfg.Output.Verbosity == "verbose")

	if noColor || cfg.Output.Color == "never" || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	settings = cfg
	return nil
}

// currentSettings returns the loaded config, or defaults when a command is
// driven directly (tests) without the root pre-run.
func currentSettings() *config.Config {
	if settings == nil {
		return config.DefaultConfig()
	}
	return settings
}

func isVerbose() bool { return currentSettings().Output.Verbosity == "verbose" }
func isQuiet() bool   { return currentSettings().Output.Verbosity == "quiet" }

// Execute runs the root command and exits non-zero on failure. Transfer
// failures exit with the transport's own status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(exitStatus(err))
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.ErrorStyle().Render(err.Error()))
}

func exitStatus(err error) int {
	if code, ok := errors.ExitCode(err); ok && code > 0 && code < 256 {
		return code
	}
	return 1
}
