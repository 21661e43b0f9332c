package widget

import "searchwidget/internal/domain"

// User-facing texts of the results container
const (
	LoadingText       = "Searching..."
	NoResultsText     = "No results found."
	FailureText       = "Search failed, please try again later."
	EmptyQueryMessage = "Please enter a search keyword."
)

// NodeKind identifies what a results container entry shows
type NodeKind int

const (
	NodeLoading NodeKind = iota
	NodeResult
	NodeNoResults
	NodeError
)

func (k NodeKind) String() string {
	switch k {
	case NodeLoading:
		return "loading"
	case NodeResult:
		return "result"
	case NodeNoResults:
		return "no-results"
	case NodeError:
		return "error"
	default:
		return "unknown"
	}
}

// Node is one entry of the results container
type Node struct {
	Kind  NodeKind
	Text  string                  // status text for loading, no-results and error nodes
	Item  domain.SearchResultItem // set for result nodes
	Score domain.ScoreClass       // set for result nodes
}

// LoadingNode is shown while a request is in flight
func LoadingNode() Node {
	return Node{Kind: NodeLoading, Text: LoadingText}
}

// NoResultsNode is shown for an empty or absent item list
func NoResultsNode() Node {
	return Node{Kind: NodeNoResults, Text: NoResultsText}
}

// ErrorNode is shown for any failed request
func ErrorNode() Node {
	return Node{Kind: NodeError, Text: FailureText}
}

// ResultNode wraps one result item
func ResultNode(item domain.SearchResultItem) Node {
	return Node{Kind: NodeResult, Item: item, Score: item.ScoreClass()}
}

// Render builds the node set for a response: one no-results node when items
// is empty, otherwise one result node per item in response order
func Render(items []domain.SearchResultItem) []Node {
	if len(items) == 0 {
		return []Node{NoResultsNode()}
	}
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, ResultNode(item))
	}
	return nodes
}
