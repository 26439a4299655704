package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState is where a spinner is in its lifecycle.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerRunning
	SpinnerSucceeded
	SpinnerFailed
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows a one-line animated status while ssh or scp runs, then
// replaces it with a check or cross and the elapsed time.
type Spinner struct {
	mu      sync.Mutex
	label   string
	state   SpinnerState
	frame   int
	started time.Time
	elapsed time.Duration
	out     io.Writer
	last    int
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner returns a spinner that draws to out.
func NewSpinner(label string, out io.Writer) *Spinner {
	return &Spinner{label: label, out: out}
}

// Start begins animating. Calling it twice does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.state == SpinnerRunning {
		s.mu.Unlock()
		return
	}
	s.state = SpinnerRunning
	s.started = time.Now()
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.drawLocked()
	s.mu.Unlock()

	go s.loop()
}

// Succeed stops the spinner with a check mark.
func (s *Spinner) Succeed() { s.finish(SpinnerSucceeded) }

// Fail stops the spinner with a cross.
func (s *Spinner) Fail() { s.finish(SpinnerFailed) }

// Finish picks Succeed or Fail from err and returns err unchanged.
func (s *Spinner) Finish(err error) error {
	if err != nil {
		s.Fail()
	} else {
		s.Succeed()
	}
	return err
}

// State returns the current state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Label returns the text shown next to the spinner.
func (s *Spinner) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// SetLabel changes the text shown next to the spinner.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

// Elapsed is the running time, frozen once the spinner finishes.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.started.IsZero():
		return 0
	case s.state == SpinnerRunning:
		return time.Since(s.started)
	default:
		return s.elapsed
	}
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.drawLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) finish(state SpinnerState) {
	s.mu.Lock()
	if s.state != SpinnerRunning {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	done := s.done
	s.mu.Unlock()
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.elapsed = time.Since(s.started)

	symbol, style := SymbolSuccess, SuccessStyle()
	if state == SpinnerFailed {
		symbol, style = SymbolFail, ErrorStyle()
	}
	s.clearLocked()
	fmt.Fprintf(s.out, "%s %s %s\n",
		style.Render(symbol),
		s.label,
		MutedStyle().Render(formatDuration(s.elapsed)))
}

func (s *Spinner) drawLocked() {
	color := GradientColors[(s.frame/2)%len(GradientColors)]
	frame := lipgloss.NewStyle().Foreground(color).Render(spinnerFrames[s.frame])
	line := fmt.Sprintf("%s %s...", frame, s.label)

	s.clearLocked()
	fmt.Fprint(s.out, line)
	s.last = lipgloss.Width(line)
}

func (s *Spinner) clearLocked() {
	if s.last == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.last)+"\r")
	s.last = 0
}

// formatDuration renders "0.05s" below a tenth of a second and "1.2s" above.
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
