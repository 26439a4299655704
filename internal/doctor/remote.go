package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/ferry/internal/errors"
	"github.com/rileyhilliard/ferry/internal/listing"
	"github.com/rileyhilliard/ferry/internal/paths"
	"github.com/rileyhilliard/ferry/internal/profile"
	"github.com/rileyhilliard/ferry/internal/runner"
)

// DefaultRemoteTimeout bounds a single connection check.
const DefaultRemoteTimeout = 20 * time.Second

// Lister lists a remote directory; *remote.Browser satisfies it.
type Lister interface {
	ListDirectory(ctx context.Context, p profile.Profile, remotePath, password string, onOutput runner.Sink) ([]listing.Entry, error)
}

// ConnectionCheck lists the remote home directory of one connection.
type ConnectionCheck struct {
	Profile  profile.Profile
	Password string
	Lister   Lister
	Timeout  time.Duration
}

func (c *ConnectionCheck) Name() string     { return "connect_" + c.Profile.Name }
func (c *ConnectionCheck) Category() string { return "REMOTE" }

func (c *ConnectionCheck) Run(ctx context.Context) CheckResult {
	if c.Profile.Auth.IsPassword() && c.Password == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s: skipped, no password", c.Profile.Label()),
			Suggestion: "Run ferry doctor " + c.Profile.Name + " on a terminal, or with --password-stdin",
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	entries, err := c.Lister.ListDirectory(ctx, c.Profile, paths.Home, c.Password, nil)
	if err != nil {
		suggestion := errors.SuggestionOf(err)
		if ctx.Err() == context.DeadlineExceeded {
			suggestion = fmt.Sprintf("No answer within %s; check the host is reachable", timeout)
		}
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %s", c.Profile.Label(), errors.Summary(err)),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Status: StatusPass,
		Message: fmt.Sprintf("%s: listed home (%d entries) in %s",
			c.Profile.Label(), len(entries), time.Since(start).Round(time.Millisecond)),
	}
}
