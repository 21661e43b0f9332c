package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"searchwidget/internal/config"
	"searchwidget/internal/domain"
)

const (
	jsonContentType = "application/json; charset=utf-8"
	bodyExcerptSize = 256
)

// Options configures a Client
type Options struct {
	Endpoint        string
	Shape           string // config.ShapeArray (default) or config.ShapeEnvelope
	SendJSONHeaders bool
	Timeout         time.Duration // 0 means no timeout
	HTTPClient      *http.Client  // optional; Timeout is ignored when set
	Logger          *slog.Logger
}

// Client issues search requests against the backend search endpoint
type Client struct {
	endpoint *url.URL
	decode   decoder
	headers  bool
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a search client
func NewClient(opts Options) (*Client, error) {
	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", opts.Endpoint, err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: must be an absolute url", opts.Endpoint)
	}

	decode, err := decoderFor(opts.Shape)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint: endpoint,
		decode:   decode,
		headers:  opts.SendJSONHeaders,
		http:     httpClient,
		logger:   logger,
	}, nil
}

// NewClientFromConfig creates a search client from the application config
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	return NewClient(Options{
		Endpoint:        cfg.Endpoint,
		Shape:           cfg.ResponseShape,
		SendJSONHeaders: cfg.SendJSONHeaders,
		Timeout:         timeout,
		Logger:          logger,
	})
}

// NormalizeQuery trims raw and rejects an empty result with ErrEmptyQuery
func NormalizeQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}

// URL returns the request url for query. Query parameters already present
// on the endpoint are kept and q is appended last, replacing any old value.
func (c *Client) URL(query string) string {
	u := *c.endpoint
	params := u.Query()
	params.Del("q")
	raw := params.Encode()
	if raw != "" {
		raw += "&"
	}
	u.RawQuery = raw + "q=" + EscapeComponent(query)
	return u.String()
}

// EscapeComponent percent-encodes s as a URI component: every byte except
// ASCII letters, digits and -_.!~*'() is escaped, so a space becomes %20.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isComponentSafe(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}
	return b.String()
}

func isComponentSafe(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", ch) >= 0
}

// Search issues one GET for query and decodes the result items.
// It returns ErrEmptyQuery without touching the network when query is blank,
// and otherwise an *HTTPStatusError, *TransportError or *ParseError on failure.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	reqURL := c.URL(q)
	c.logger.Debug("search: sending request", "query", q, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	if c.headers {
		req.Header.Set("Accept", jsonContentType)
		req.Header.Set("Content-Type", jsonContentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt(body),
		}
	}

	items, err := c.decode(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("search: response decoded", "query", q, "status", resp.StatusCode, "count", len(items))
	return items, nil
}

func excerpt(body []byte) string {
	if len(body) > bodyExcerptSize {
		return string(body[:bodyExcerptSize]) + "..."
	}
	return string(body)
}
