package ui

import "searchwidget/internal/widget"

// searchResultMsg carries a finished request back to the update loop
type searchResultMsg struct {
	outcome widget.Outcome
}

// pagerClosedMsg is sent when the results pager exits
type pagerClosedMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
