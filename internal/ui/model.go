package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchwidget/internal/eventbus"
	"searchwidget/internal/search"
	"searchwidget/internal/ui/views"
	"searchwidget/internal/widget"
)

// ReadyMarker is printed in the status line when Options.ReadyMarker is set
const ReadyMarker = "__READY__"

type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Options configures the UI model
type Options struct {
	Endpoint    string
	ShowScore   bool
	ReadyMarker bool
}

// Model represents the UI state
type Model struct {
	widget *widget.Widget
	opts   Options

	width  int
	height int

	input        textinput.Model
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	focus        focusTarget
	alert        string
	showHelp     bool
	scrollOffset int
	status       string

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
}

// NewModel creates a new UI model. The model owns the widget and acts as its
// alerter; callers attach the widget before running the program.
func NewModel(searcher widget.Searcher, bus eventbus.EventBus, opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search keyword"
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		opts:         opts,
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		keys:         defaultKeyMap(),
		renderer:     views.NewRenderer(opts.ShowScore),
		helpRenderer: NewHelpRenderer(opts.Endpoint),
	}
	m.widget = widget.New(searcher, widget.NewContainer(), m, bus)
	return m
}

// Widget returns the search widget driven by this model
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Alert implements widget.Alerter. The alert blocks all other input until
// dismissed.
func (m *Model) Alert(message string) {
	m.alert = message
	m.input.Blur()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case searchResultMsg:
		if m.widget.Apply(msg.outcome) {
			m.scrollOffset = 0
			m.status = ""
			if msg.outcome.Err == nil {
				m.status = fmt.Sprintf("%d results in %s", len(msg.outcome.Items), msg.outcome.Elapsed.Round(time.Millisecond))
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerClosedMsg:
		if msg.err != nil {
			slog.Warn("pager failed", "error", msg.err)
			m.status = "Pager unavailable"
			return m, clearStatusAfter(3 * time.Second)
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if m.focus == focusInput && m.alert == "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// The alert is modal: only dismissing it is possible
	if m.alert != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = ""
			m.focus = focusInput
			return m, m.input.Focus()
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.FocusBack):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Pager):
		return m, openPager(views.RenderPlain(m.widget.Container().Nodes(), m.opts.ShowScore))
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(-m.pageSize())
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(m.pageSize())
		return m, nil
	}

	if m.focus == focusButton {
		switch {
		case key.Matches(msg, m.keys.Press):
			return m, m.submit()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.alert != "" || m.showHelp {
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.renderer.ButtonHit(m.viewState(), msg.X, msg.Y) {
			m.focus = focusButton
			m.input.Blur()
			return m, m.submit()
		}
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(1)
	}
	return m, nil
}

// submit hands the current field value to the widget and starts the request
func (m *Model) submit() tea.Cmd {
	req, err := m.widget.Submit(m.input.Value())
	if err != nil {
		if !errors.Is(err, search.ErrEmptyQuery) {
			slog.Error("search not started", "error", err)
			m.status = "Search is not available"
		}
		return nil
	}
	m.scrollOffset = 0
	m.status = ""
	return tea.Batch(m.execute(req), m.spinner.Tick)
}

func (m *Model) execute(req widget.Request) tea.Cmd {
	w := m.widget
	return func() tea.Msg {
		return searchResultMsg{outcome: w.Execute(req)}
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) loading() bool {
	kind, ok := m.widget.Container().State()
	return ok && kind == widget.NodeLoading
}

func (m *Model) pageSize() int {
	if m.height > 12 {
		return m.height / 2
	}
	return 5
}

func (m *Model) scroll(delta int) {
	m.scrollOffset += delta
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) viewState() views.ViewState {
	status := m.status
	if m.opts.ReadyMarker {
		status = ReadyMarker + " " + status
	}
	spin := ""
	if m.loading() {
		spin = m.spinner.View()
	}
	return views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Endpoint:      m.opts.Endpoint,
		Input:         m.input.View(),
		ButtonFocused: m.focus == focusButton,
		Nodes:         m.widget.Container().Nodes(),
		Spinner:       spin,
		ScrollOffset:  m.scrollOffset,
		Alert:         m.alert,
		ShowHelp:      m.showHelp,
		HelpContent:   m.helpRenderer.RenderHelpContent(),
		HelpLine:      m.help.View(m.keys),
		StatusMessage: status,
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
