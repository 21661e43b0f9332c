package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"searchwidget/internal/domain"
	"searchwidget/internal/eventbus"
	"searchwidget/internal/search"
)

// ErrDetached is returned when a search is submitted to a detached widget
var ErrDetached = errors.New("search widget is detached")

// Searcher performs one search request
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResultItem, error)
}

// Alerter shows a blocking notice to the user
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to Alerter
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Request identifies one dispatched search
type Request struct {
	Token   uint64
	Query   string
	Started time.Time
}

// Outcome is the result of executing a Request
type Outcome struct {
	Request
	Items   []domain.SearchResultItem
	Err     error
	Elapsed time.Duration
}

// Widget ties the query field, the search backend and the results container
// together. Each submission gets a new token, and only the outcome carrying
// the latest token is rendered, so the last submitted query always wins.
type Widget struct {
	searcher  Searcher
	container *Container
	alerter   Alerter
	bus       eventbus.EventBus
	now       func() time.Time

	mu     sync.Mutex
	latest uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a detached widget. bus and alerter may be nil.
func New(searcher Searcher, container *Container, alerter Alerter, bus eventbus.EventBus) *Widget {
	if container == nil {
		container = NewContainer()
	}
	return &Widget{
		searcher:  searcher,
		container: container,
		alerter:   alerter,
		bus:       bus,
		now:       time.Now,
	}
}

// Attach binds the widget to parent. Requests run under a child context that
// Detach cancels. Attaching an attached widget does nothing.
func (w *Widget) Attach(parent context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ctx != nil {
		return
	}
	w.ctx, w.cancel = context.WithCancel(parent)
}

// Detach cancels in-flight requests. Outcomes arriving afterwards are dropped.
func (w *Widget) Detach() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
	w.ctx, w.cancel = nil, nil
}

// Attached reports whether the widget is between Attach and Detach
func (w *Widget) Attached() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctx != nil
}

// Container returns the results container the widget writes to
func (w *Widget) Container() *Container {
	return w.container
}

// Latest returns the most recently issued token
func (w *Widget) Latest() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Submit validates raw and, when it is non-empty after trimming, issues a
// new token and puts the container into the loading state. An empty query
// raises the alert and returns search.ErrEmptyQuery; nothing else changes.
func (w *Widget) Submit(raw string) (Request, error) {
	query, err := search.NormalizeQuery(raw)
	if err != nil {
		if w.alerter != nil {
			w.alerter.Alert(EmptyQueryMessage)
		}
		w.publish(eventbus.QueryRejectedEvent{Raw: raw})
		return Request{}, err
	}

	w.mu.Lock()
	if w.ctx == nil {
		w.mu.Unlock()
		return Request{}, ErrDetached
	}
	w.latest++
	req := Request{Token: w.latest, Query: query, Started: w.now()}
	w.container.Replace(LoadingNode())
	w.mu.Unlock()

	w.publish(eventbus.SearchSubmittedEvent{Token: req.Token, Query: req.Query})
	return req, nil
}

// Execute performs the request. It blocks until the backend answers, the
// request fails, or the widget is detached.
func (w *Widget) Execute(req Request) Outcome {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()

	if ctx == nil {
		return Outcome{Request: req, Err: ErrDetached}
	}

	items, err := w.searcher.Search(ctx, req.Query)
	return Outcome{
		Request: req,
		Items:   items,
		Err:     err,
		Elapsed: w.now().Sub(req.Started),
	}
}

// Apply renders o into the container if o belongs to the latest request and
// the widget is still attached. It reports whether the container changed.
func (w *Widget) Apply(o Outcome) bool {
	w.mu.Lock()
	if w.ctx == nil || o.Token != w.latest {
		latest := w.latest
		w.mu.Unlock()
		w.publish(eventbus.SearchDiscardedEvent{Token: o.Token, Latest: latest, Query: o.Query})
		return false
	}
	if o.Err != nil {
		w.container.Replace(ErrorNode())
	} else {
		w.container.Replace(Render(o.Items)...)
	}
	w.mu.Unlock()

	if o.Err != nil {
		w.publish(eventbus.SearchFailedEvent{Token: o.Token, Query: o.Query, Err: o.Err, Elapsed: o.Elapsed})
	} else {
		w.publish(eventbus.SearchCompletedEvent{Token: o.Token, Query: o.Query, Count: len(o.Items), Elapsed: o.Elapsed})
	}
	return true
}

// Search runs a whole submission synchronously: submit, execute and apply.
// The returned error is the validation or request error, if any.
func (w *Widget) Search(raw string) (Outcome, error) {
	req, err := w.Submit(raw)
	if err != nil {
		return Outcome{}, err
	}
	o := w.Execute(req)
	w.Apply(o)
	return o, o.Err
}

func (w *Widget) publish(event eventbus.DomainEvent) {
	if w.bus != nil {
		w.bus.Publish(event)
	}
}
