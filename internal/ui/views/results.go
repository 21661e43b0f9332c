package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"searchwidget/internal/domain"
	"searchwidget/internal/widget"
)

// ResultsRenderer handles rendering of the results container
type ResultsRenderer struct {
	styles    *Styles
	showScore bool
}

// NewResultsRenderer creates a new results renderer
func NewResultsRenderer(styles *Styles, showScore bool) *ResultsRenderer {
	return &ResultsRenderer{
		styles:    styles,
		showScore: showScore,
	}
}

// RenderLines renders the container content as terminal lines.
// spinner is drawn in front of the loading text when non-empty.
func (r *ResultsRenderer) RenderLines(nodes []widget.Node, width int, spinner string) []string {
	var lines []string
	for i, n := range nodes {
		if i > 0 && n.Kind == widget.NodeResult {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(r.RenderNode(n, width, spinner), "\n")...)
	}
	return lines
}

// RenderNode renders one node. Backend strings are sanitised before styling.
func (r *ResultsRenderer) RenderNode(n widget.Node, width int, spinner string) string {
	switch n.Kind {
	case widget.NodeLoading:
		text := n.Text
		if spinner != "" {
			text = spinner + " " + text
		}
		return r.styles.StatusLoading.Render(text)
	case widget.NodeNoResults:
		return r.styles.StatusEmpty.Render(n.Text)
	case widget.NodeError:
		return r.styles.StatusError.Render(n.Text)
	}

	title := r.styles.ResultTitle.Render(Sanitize(n.Item.Title))
	if r.showScore {
		badge := r.styles.ScoreStyle(n.Score).Render(domain.ScoreBadge(n.Item.ScoreValue()))
		title = lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", title)
	}

	snippetStyle := r.styles.ResultSnippet
	if width > 4 {
		snippetStyle = snippetStyle.Width(width - 2)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		r.styles.ResultLink.Render(Sanitize(n.Item.Link)),
		snippetStyle.Render(Sanitize(n.Item.Snippet)),
	)
}

// RenderPlain renders nodes as uncoloured text, for the pager and for
// non-interactive output
func RenderPlain(nodes []widget.Node, showScore bool) string {
	var b strings.Builder
	for i, n := range nodes {
		switch n.Kind {
		case widget.NodeResult:
			if i > 0 {
				b.WriteString("\n")
			}
			if showScore {
				fmt.Fprintf(&b, "[%s] ", domain.ScoreBadge(n.Item.ScoreValue()))
			}
			fmt.Fprintf(&b, "%s\n  %s\n  %s\n",
				Sanitize(n.Item.Title),
				Sanitize(n.Item.Link),
				Sanitize(n.Item.Snippet))
		default:
			b.WriteString(n.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}
