package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchwidget/internal/config"
	"searchwidget/internal/logging"
)

// newTestClient starts a server running handler and returns a client pointed at it
func newTestClient(t *testing.T, opts Options, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts.Endpoint = server.URL + "/api/search"
	opts.Logger = logging.Discard()
	client, err := NewClient(opts)
	require.NoError(t, err)
	return client
}

func TestSearchSendsEncodedQueryAndHeaders(t *testing.T) {
	requests := make(chan *http.Request, 1)
	client := newTestClient(t, Options{SendJSONHeaders: true}, func(w http.ResponseWriter, r *http.Request) {
		requests <- r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), "  台北 美食 & more?  ")
	require.NoError(t, err)
	got := <-requests

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/search", got.URL.Path)
	assert.Equal(t, "台北 美食 & more?", got.URL.Query().Get("q"))
	assert.Equal(t, "application/json; charset=utf-8", got.Header.Get("Accept"))
	assert.Equal(t, "application/json; charset=utf-8", got.Header.Get("Content-Type"))
}

func TestSearchWithoutJSONHeaders(t *testing.T) {
	accepts := make(chan string, 1)
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		accepts <- r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), "go")
	require.NoError(t, err)
	assert.NotEqual(t, "application/json; charset=utf-8", <-accepts)
}

func TestSearchDecodesFlatArrayInOrder(t *testing.T) {
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"title":"First","link":"https://a.example","snippet":"one","score":3.5},
			{"title":"Second","link":"https://b.example","snippet":"two"},
			{"title":"Third","link":"https://c.example","snippet":"three","score":-1,"extra":true}
		]`))
	})

	items, err := client.Search(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "https://a.example", items[0].Link)
	assert.Equal(t, "one", items[0].Snippet)
	assert.Equal(t, 3.5, items[0].ScoreValue())
	assert.Equal(t, "Second", items[1].Title)
	assert.False(t, items[1].HasScore())
	assert.Equal(t, "Third", items[2].Title)
	assert.Equal(t, -1.0, items[2].ScoreValue())
}

func TestSearchNonArrayJSONHasNoItems(t *testing.T) {
	for _, body := range []string{`null`, `{"items":[{"title":"x"}]}`, `"text"`, `42`} {
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			items, err := client.Search(context.Background(), "q")
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestSearchEnvelopeShape(t *testing.T) {
	cases := map[string]int{
		`{"items":[{"title":"a","link":"l","snippet":"s"},{"title":"b","link":"l","snippet":"s"}]}`: 2,
		`{"items":[]}`:   0,
		`{"items":null}`: 0,
		`{}`:             0,
		`[]`:             0,
	}
	for body, want := range cases {
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, Options{Shape: config.ShapeEnvelope}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			items, err := client.Search(context.Background(), "q")
			require.NoError(t, err)
			assert.Len(t, items, want)
		})
	}
}

func TestSearchEmptyQueryIssuesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	})

	for _, q := range []string{"", "   ", "\t\n", "　"} {
		_, err := client.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, KindValidation, KindOf(err))
	}
	assert.Zero(t, calls.Load())
}

func TestSearchHTTPStatusError(t *testing.T) {
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	})

	items, err := client.Search(context.Background(), "q")
	assert.Nil(t, items)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "backend exploded")
	assert.Equal(t, KindHTTPStatus, KindOf(err))
	assert.Contains(t, err.Error(), "500")
}

func TestSearchParseError(t *testing.T) {
	for _, body := range []string{``, `[{"title":`, `<html>nope</html>`, `[1, 2]`} {
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.Search(context.Background(), "q")
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, KindParse, KindOf(err))
		})
	}
}

func TestSearchContractMismatch(t *testing.T) {
	for _, body := range []string{`[1,"x"]`, `[{"title":5}]`, `[{"score":"high"}]`} {
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.Search(context.Background(), "q")
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.True(t, parseErr.Mismatch)
			assert.Contains(t, err.Error(), "does not match the result contract")
			assert.NotContains(t, err.Error(), "not valid json")
		})
	}
}

func TestSearchInvalidJSONMessage(t *testing.T) {
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":`))
	})

	_, err := client.Search(context.Background(), "q")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.False(t, parseErr.Mismatch)
	assert.Contains(t, err.Error(), "not valid json")
}

func TestSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL + "/api/search"
	server.Close()

	client, err := NewClient(Options{Endpoint: endpoint, Logger: logging.Discard()})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "q")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestSearchCancelledContext(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Search(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestURLKeepsEndpointParameters(t *testing.T) {
	client, err := NewClient(Options{Endpoint: "http://localhost:8080/api/search?lang=zh&q=old"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/search?lang=zh&q=a%2Bb%20c", client.URL("a+b c"))
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello world", "hello%20world"},
		{"a&b=c?d/e", "a%26b%3Dc%3Fd%2Fe"},
		{"it's (fine)!*~-_.", "it's%20(fine)!*~-_."},
		{"拉面", "%E6%8B%89%E9%9D%A2"},
		{"#100%", "%23100%25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeComponent(tt.in))
		})
	}
}

func TestSearchSendsSpacesAsPercent20(t *testing.T) {
	var rawQuery, q string
	client := newTestClient(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		q = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Search(context.Background(), "  hot pot  ")
	require.NoError(t, err)
	assert.Equal(t, "q=hot%20pot", rawQuery)
	assert.Equal(t, "hot pot", q)
}

func TestNewClientRejectsBadOptions(t *testing.T) {
	_, err := NewClient(Options{Endpoint: "/relative"})
	assert.Error(t, err)

	_, err = NewClient(Options{Endpoint: "http://localhost", Shape: "xml"})
	assert.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timeout = "3s"

	client, err := NewClientFromConfig(cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, client.http.Timeout)
	assert.True(t, client.headers)
	assert.Equal(t, "http://localhost:8080/api/search?q=x", client.URL("x"))

	cfg.Timeout = "later"
	_, err = NewClientFromConfig(cfg, logging.Discard())
	assert.Error(t, err)
}

func TestKindOfUnknown(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
}
