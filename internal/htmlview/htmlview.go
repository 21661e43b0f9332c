// Package htmlview renders the results container as an HTML fragment.
//
// The fragment is assembled as an html.Node tree and serialised by
// golang.org/x/net/html, so backend strings only ever become text nodes or
// attribute values and are escaped on output.
package htmlview

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"searchwidget/internal/domain"
	"searchwidget/internal/widget"
)

// ContainerID is the id of the wrapping results element
const ContainerID = "results-container"

// Options controls optional parts of the markup
type Options struct {
	ShowScore bool
}

// Render writes nodes as a results container fragment
func Render(w io.Writer, nodes []widget.Node, opts Options) error {
	return html.Render(w, Build(nodes, opts))
}

// RenderString is Render into a string
func RenderString(nodes []widget.Node, opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, nodes, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Build returns the results container element for nodes
func Build(nodes []widget.Node, opts Options) *html.Node {
	container := element(atom.Div, "id", ContainerID)
	for _, n := range nodes {
		container.AppendChild(buildNode(n, opts))
	}
	return container
}

func buildNode(n widget.Node, opts Options) *html.Node {
	switch n.Kind {
	case widget.NodeLoading:
		return textElement(atom.Div, n.Text, "class", "loading")
	case widget.NodeNoResults:
		return textElement(atom.Div, n.Text, "class", "no-results")
	case widget.NodeError:
		return textElement(atom.Div, n.Text, "class", "error")
	default:
		return buildResult(n, opts)
	}
}

func buildResult(n widget.Node, opts Options) *html.Node {
	item := element(atom.Div, "class", "result-item")

	if opts.ShowScore {
		badge := domain.ScoreBadge(n.Item.ScoreValue())
		item.AppendChild(textElement(atom.Div, badge, "class", "score "+string(n.Score)))
	}

	item.AppendChild(textElement(atom.A, n.Item.Title,
		"href", safeHref(n.Item.Link),
		"target", "_blank",
		"rel", "noopener noreferrer",
	))
	item.AppendChild(textElement(atom.Div, n.Item.Link, "class", "link"))
	item.AppendChild(textElement(atom.P, n.Item.Snippet))
	return item
}

// safeHref keeps http(s), mailto and relative links and neutralises the rest,
// so a javascript: link from the backend cannot run script
func safeHref(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return link
	default:
		return "#"
	}
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string, attrs ...string) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
