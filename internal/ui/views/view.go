package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"searchwidget/internal/widget"
)

// ButtonLabel is the text of the search trigger
const ButtonLabel = "[ Search ]"

const appTitle = "searchwidget"

// searchRowY is the terminal row of the query field and button:
// one line of container padding, the title and the title's bottom margin
const searchRowY = 3

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Endpoint      string
	Input         string // rendered query field
	ButtonFocused bool
	Nodes         []widget.Node
	Spinner       string
	ScrollOffset  int
	Alert         string
	ShowHelp      bool
	HelpContent   string
	HelpLine      string
	StatusMessage string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	resultsRender *ResultsRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showScore bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		resultsRender: NewResultsRenderer(styles, showScore),
		popupRender:   NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Alert != "" {
		return r.popupRender.RenderAlert(state.Alert, state.Width, state.Height)
	}
	if state.ShowHelp && state.HelpContent != "" {
		return r.popupRender.RenderPopupOverlay(state.HelpContent, state.Width, state.Height, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	logo := r.styles.Title.Render(appTitle)
	if state.Endpoint != "" {
		logo = lipgloss.JoinHorizontal(lipgloss.Top, logo, "  ", r.styles.Dim.Render(state.Endpoint))
	}
	content.WriteString(logo)
	content.WriteString("\n")

	content.WriteString(r.searchRow(state))
	content.WriteString("\n\n")

	width := state.Width - 4 // container padding
	headerLines := strings.Count(content.String(), "\n") + 1
	available := state.Height - 2 - headerLines - 2 // padding, status line, help line
	if available < 3 {
		available = 3
	}
	lines := r.resultsRender.RenderLines(state.Nodes, width, state.Spinner)
	content.WriteString(strings.Join(ClipLines(lines, state.ScrollOffset, available, r.styles.Scroll), "\n"))

	currentLines := strings.Count(content.String(), "\n") + 1
	if pad := state.Height - 2 - currentLines - 2; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}

	content.WriteString("\n")
	if state.StatusMessage != "" {
		content.WriteString(r.styles.Dim.Render(state.StatusMessage))
	}
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) searchRow(state ViewState) string {
	button := r.styles.Button.Render(ButtonLabel)
	if state.ButtonFocused {
		button = r.styles.ButtonFocused.Render(ButtonLabel)
	}
	return state.Input + "  " + button
}

// ButtonHit reports whether the terminal cell x,y lies on the search button
func (r *Renderer) ButtonHit(state ViewState, x, y int) bool {
	if state.Alert != "" || state.ShowHelp || y != searchRowY {
		return false
	}
	start := 2 + lipgloss.Width(state.Input) + 2 // left padding, field, gap
	return x >= start && x < start+lipgloss.Width(ButtonLabel)
}

// ClipLines returns the window of lines starting at offset that fits in
// height, with scroll indicators replacing the first or last line when there
// is more content in that direction
func ClipLines(lines []string, offset, height int, indicator lipgloss.Style) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	maxOffset := len(lines) - height
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	window := append([]string(nil), lines[offset:end]...)
	if offset > 0 {
		window[0] = indicator.Render(fmt.Sprintf("↑ %d more above ↑", offset))
	}
	if end < len(lines) {
		window[len(window)-1] = indicator.Render(fmt.Sprintf("↓ %d more below ↓", len(lines)-end))
	}
	return window
}
