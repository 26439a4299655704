package ui

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_Succeed(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Listing /srv", out)
	assert.Equal(t, SpinnerPending, s.State())

	s.Start()
	assert.Equal(t, SpinnerRunning, s.State())
	time.Sleep(3 * spinnerInterval)
	s.Succeed()

	assert.Equal(t, SpinnerSucceeded, s.State())
	assert.Contains(t, out.String(), "Listing /srv")
	assert.Contains(t, out.String(), SymbolSuccess)
}

func TestSpinner_FinishWithError(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Uploading", out)
	s.Start()

	boom := errors.New("boom")
	assert.Equal(t, boom, s.Finish(boom))
	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, out.String(), SymbolFail)
}

func TestSpinner_FinishIsIdempotent(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("x", out)

	s.Succeed() // never started
	assert.Equal(t, SpinnerPending, s.State())
	assert.Empty(t, out.String())

	s.Start()
	s.Start()
	s.Fail()
	s.Succeed()
	assert.Equal(t, SpinnerFailed, s.State())
}

func TestSpinner_ElapsedFreezes(t *testing.T) {
	s := NewSpinner("x", &syncBuffer{})
	assert.Zero(t, s.Elapsed())

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Succeed()

	frozen := s.Elapsed()
	assert.Greater(t, frozen, time.Duration(0))
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, s.Elapsed())
}

func TestSpinner_SetLabel(t *testing.T) {
	s := NewSpinner("before", &syncBuffer{})
	s.SetLabel("after")
	assert.Equal(t, "after", s.Label())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.00s"},
		{50 * time.Millisecond, "0.05s"},
		{100 * time.Millisecond, "0.1s"},
		{1500 * time.Millisecond, "1.5s"},
		{10 * time.Second, "10.0s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}
