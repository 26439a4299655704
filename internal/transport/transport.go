// Package transport holds the ssh/scp settings shared by browsing and transfers.
package transport

import (
	"strconv"

	"github.com/rileyhilliard/ferry/internal/config"
)

// Options describes how the transport binaries are invoked.
type Options struct {
	SSH          string
	SCP          string
	Locale       string
	ExtraOptions []string
}

// DefaultOptions matches config.DefaultConfig.
func DefaultOptions() Options {
	return FromConfig(config.DefaultConfig())
}

// FromConfig extracts the transport settings from a loaded config.
func FromConfig(cfg *config.Config) Options {
	return Options{
		SSH:          cfg.Transport.SSH,
		SCP:          cfg.Transport.SCP,
		Locale:       cfg.Transport.Locale,
		ExtraOptions: cfg.Transport.ExtraOptions,
	}
}

// CommonArgs are the leading arguments for both tools. ssh takes the port as
// -p and scp as -P, so the caller passes the flag.
//
// BatchMode=no keeps password prompting (and so SSH_ASKPASS) enabled;
// accept-new trusts a host on first contact but still refuses a changed key.
func (o Options) CommonArgs(portFlag string, port int) []string {
	args := []string{
		portFlag, strconv.Itoa(port),
		"-o", "BatchMode=no",
		"-o", "StrictHostKeyChecking=accept-new",
	}
	for _, opt := range o.ExtraOptions {
		args = append(args, "-o", opt)
	}
	return args
}

// LocaleOrDefault returns Locale, or "C" when unset.
func (o Options) LocaleOrDefault() string {
	if o.Locale == "" {
		return "C"
	}
	return o.Locale
}
