package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var styleErrBox = lipgloss.NewStyle().
	Width(80).
	MarginTop(1).
	Bold(true).
	Background(lipgloss.AdaptiveColor{Light: "#ffcdd2", Dark: "#512222"}).
	Foreground(lipgloss.AdaptiveColor{Light: "#b71c1c", Dark: "#fa8a8a"}).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderLeftForeground(lipgloss.Color("#f86262")).
	Padding(1, 2)

var styleHelpBox = lipgloss.NewStyle().
	Width(80).
	Background(lipgloss.AdaptiveColor{Light: "#e9e9e9", Dark: "#2f2f2f"}).
	Padding(0, 2).
	Margin(0, 1).
	PaddingTop(1)

var styleErrText = lipgloss.NewStyle().Width(62)

// StyleGrass is used for the final "launching" line
var StyleGrass = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFF")).
	Background(lipgloss.Color("#4e8a3e")).
	Padding(0, 1)

// StyleTitle renders the boxed title printed before preparing a version
var StyleTitle = lipgloss.NewStyle().
	Border(lipgloss.Border{Left: "┃"}, false).
	BorderLeft(true).
	Background(lipgloss.Color("#FFF")).
	Foreground(lipgloss.Color("#000")).
	Padding(0, 1)

// PipeText prefixes text with the vertical "pipe" used during prepare
var PipeText = lipgloss.NewStyle().
	Border(lipgloss.Border{Left: "│"}, false).
	BorderLeft(true).
	Padding(0, 1)

func ErrorBox(errorString string, helpText string) string {
	rendered := styleErrBox.Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top, Emoji("❗ "),
			styleErrText.Render(fmt.Sprintf("Error: %s", errorString)),
		),
	)
	if helpText != "" {
		rendered += "\n" + styleHelpBox.Render(fmt.Sprintf("%s%s", Emoji("❔ "), helpText))
	}

	return rendered
}
