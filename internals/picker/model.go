package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/versions"
)

const (
	defaultWindow = 15
	minWindow     = 5
	// lines used by header and footer
	reservedLines = 7
)

var keys = struct {
	Up, Down, Select, Fallback, Cancel key.Binding
}{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Select:   key.NewBinding(key.WithKeys("enter")),
	Fallback: key.NewBinding(key.WithKeys("q", "Q", "esc")),
	Cancel:   key.NewBinding(key.WithKeys("ctrl+c")),
}

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	lastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

type model struct {
	releases  []versions.Release
	last      string
	cursor    int
	height    int
	chosen    *versions.Release
	cancelled bool
}

func newModel(releases []versions.Release, last string) model {
	m := model{releases: releases, last: last}
	for i, r := range releases {
		if r.ID == last {
			m.cursor = i
			break
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.releases)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			m.chosen = &m.releases[m.cursor]
			return m, tea.Quit
		case key.Matches(msg, keys.Fallback):
			return m, tea.Quit
		case key.Matches(msg, keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// window returns the visible slice [start, end) keeping the cursor centered
func (m model) window() (int, int) {
	size := defaultWindow
	if m.height != 0 {
		size = m.height - reservedLines
		if size < minWindow {
			size = minWindow
		}
	}
	total := len(m.releases)
	start := m.cursor - size/2
	if start > total-size {
		start = total - size
	}
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

func (m model) View() string {
	b := strings.Builder{}
	b.WriteString(headerStyle.Render("------ Choose game version ------") + "\n\n")
	b.WriteString("Arrows ( ↑ and ↓ ): Navigate | Enter: Select | Q: Print Mode (for fallback)\n\n")

	start, end := m.window()
	for i := start; i < end; i++ {
		r := m.releases[i]
		line := fmt.Sprintf("%s (%s)", r.ID, r.Type)
		if i == m.cursor {
			line = selectedStyle.Render(" >> " + line)
		} else {
			line = "    " + line
		}
		if r.ID == m.last {
			line += lastStyle.Render("  <-- (Last Selected)")
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n[ %d / %d ] | Page: %d-%d\n", m.cursor+1, len(m.releases), start+1, end)
	return b.String()
}
