package launcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	Msg     string
	mu      sync.Mutex
}

// Start might start the spinner
func (m *MaybeSpinner) Start() {
	if m.Spin {
		m.Spinner.Start()
	} else if m.Msg != "" {
		fmt.Println(m.Msg)
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text. It is safe to call concurrently
func (m *MaybeSpinner) Update(t string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Spin {
		fmt.Println(t)
		return
	}
	m.Spinner.Lock()
	m.Spinner.Suffix = " " + t
	m.Spinner.Unlock()
}

// NewMaybeSpinner will return a new MaybeSpinner
func NewMaybeSpinner(spin bool) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond),
		Msg:     "",
	}
	s.Spinner.Prefix = " "
	return s
}

// Interactive reports if stdout is a terminal
func Interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
