package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	endpoint string
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(endpoint string) *HelpRenderer {
	return &HelpRenderer{endpoint: endpoint}
}

// RenderHelpContent renders the help popup
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(key, desc string) string {
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", key)), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Search Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Searching"))
	help.WriteString("\n")
	help.WriteString(line("Enter", "Search from the query field"))
	help.WriteString(line("Tab", "Move between field and button"))
	help.WriteString(line("Space", "Press the focused button"))
	help.WriteString(line("Click", "Press the button with the mouse"))

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(line("PgUp/PgDn", "Scroll results"))
	help.WriteString(line("Ctrl+O", "Open results in the pager"))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("?", "Toggle this help (button focused)"))
	help.WriteString(line("Esc", "Quit"))

	if r.endpoint != "" {
		help.WriteString("\n")
		help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Backend: " + r.endpoint))
	}

	return strings.TrimRight(help.String(), "\n")
}
