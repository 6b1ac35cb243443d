// Package picker lets the user choose a version from the version list
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/versions"
)

// ErrNoVersions is returned if there is nothing to choose from
var ErrNoVersions = errors.New("no versions to choose from")

// Picker chooses a release. The arrow key menu is used on terminals, the
// numbered prompt everywhere else or if the menu was left with "q"
type Picker struct {
	In  io.Reader
	Out io.Writer
	// Interactive enables the arrow key menu
	Interactive bool
}

// New returns a picker for stdin/stdout
func New() *Picker {
	return &Picker{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()),
	}
}

// Pick returns the chosen release. last is preselected
func (p *Picker) Pick(ctx context.Context, releases []versions.Release, last string) (*versions.Release, error) {
	if len(releases) == 0 {
		return nil, ErrNoVersions
	}

	if p.Interactive {
		r, err := p.menu(ctx, releases, last)
		if err != nil || r != nil {
			return r, err
		}
	}
	return p.prompt(releases, last)
}

func (p *Picker) menu(ctx context.Context, releases []versions.Release, last string) (*versions.Release, error) {
	program := tea.NewProgram(
		newModel(releases, last),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
		tea.WithAltScreen(),
	)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			program.Kill()
		case <-done:
		}
	}()

	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil, context.Canceled
	}
	if err != nil {
		return nil, err
	}
	m := final.(model)
	if m.cancelled {
		return nil, context.Canceled
	}
	return m.chosen, nil
}

// Menu renders the numbered version list
func Menu(releases []versions.Release, last string) string {
	b := strings.Builder{}
	b.WriteString("\n  ---- Game VERSION LIST ----\n")
	for i, r := range releases {
		fmt.Fprintf(&b, "    %d. %s (%s)", i+1, r.ID, r.Type)
		if r.ID == last {
			b.WriteString(" <-- [LAST SELECTED]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// parseChoice returns the release for input. Empty input selects last
func parseChoice(input string, releases []versions.Release, last string) (*versions.Release, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		for i := range releases {
			if releases[i].ID == last {
				return &releases[i], nil
			}
		}
		return nil, fmt.Errorf("enter a number")
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(releases) {
		return nil, fmt.Errorf("enter a number between 1 and %d", len(releases))
	}
	return &releases[n-1], nil
}

func (p *Picker) prompt(releases []versions.Release, last string) (*versions.Release, error) {
	fmt.Fprint(p.Out, Menu(releases, last))

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Select Version [Default: %s]", last),
		Validate: func(s string) error {
			_, err := parseChoice(s, releases, last)
			return err
		},
		Stdin:  io.NopCloser(p.In),
		Stdout: nopWriteCloser{p.Out},
	}
	res, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil, context.Canceled
	}
	if err != nil {
		return nil, err
	}
	return parseChoice(res, releases, last)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
