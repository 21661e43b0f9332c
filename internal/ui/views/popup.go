package views

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert renders a blocking alert centred on a blank screen
func (pr *PopupRenderer) RenderAlert(message string, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(message),
		"",
		pr.styles.Dim.Render("Press Enter to continue"),
	)
	return pr.place(pr.styles.AlertBox.Render(body), width, height)
}

// RenderPopupOverlay renders popupContent centred in the terminal area
func (pr *PopupRenderer) RenderPopupOverlay(popupContent string, width, height int, popupStyle lipgloss.Style) string {
	return pr.place(popupStyle.Render(popupContent), width, height)
}

func (pr *PopupRenderer) place(popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return popup
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup,
		lipgloss.WithWhitespaceForeground(lipgloss.Color("238")))
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripStyles removes colour and style codes from rendered output
func StripStyles(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
