package devto

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpublish/internal/observability"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:   serverURL,
		APIKey:    "secret-key",
		UserAgent: "mdpublish/test",
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewClient(Options{APIKey: "  "})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := NewClient(Options{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, c.baseURL)
		assert.NotNil(t, c.httpClient)
		assert.Zero(t, c.httpClient.Timeout)
	})
}

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		endpoint string
		wantURL  string
	}{
		{"root base", "https://dev.to", "/api/articles/me", "https://dev.to/api/articles/me"},
		{"trailing slash", "https://dev.to/", "/api/articles/me", "https://dev.to/api/articles/me"},
		{"base with prefix", "http://proxy.local/devto", "/api/articles/me", "http://proxy.local/devto/api/articles/me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.baseURL)
			req, err := c.NewRequest(context.Background(), http.MethodGet, tt.endpoint)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, req.URL.String())
			assert.Equal(t, "secret-key", req.Header.Get("api-key"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			assert.Equal(t, "mdpublish/test", req.Header.Get("User-Agent"))
			assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
		})
	}
}

func TestNewRequestUsesContextRequestID(t *testing.T) {
	c := newTestClient(t, "https://dev.to")
	ctx := observability.WithRequestID(context.Background(), "req-fixed")

	req, err := c.NewRequest(ctx, http.MethodGet, myArticlesEndpoint)
	require.NoError(t, err)
	assert.Equal(t, "req-fixed", req.Header.Get("X-Request-Id"))
}

func TestListMyArticles(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/articles/me", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":42,"title":"Hello","slug":"hello-1","published":true},{"id":7,"title":"Other"}]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	articles, err := c.ListMyArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, Article{ID: 42, Title: "Hello", Slug: "hello-1", Published: true}, articles[0])
	assert.Equal(t, int64(7), articles[1].ID)
	assert.Equal(t, 1, calls)
}

func TestListMyArticlesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	articles, err := newTestClient(t, server.URL).ListMyArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestListMyArticlesErrors(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		wantCategory errors.ErrorCategory
		wantContains string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"unauthorized","status":401}`, errors.CategoryAuth, "401"},
		{"forbidden", http.StatusForbidden, `{}`, errors.CategoryAuth, "403"},
		{"server error", http.StatusInternalServerError, "boom", errors.CategoryAPI, "500"},
		{"not found", http.StatusNotFound, "", errors.CategoryAPI, "404"},
		{"bad json", http.StatusOK, "{not json", errors.CategoryAPI, "decode"},
		{"object instead of list", http.StatusOK, `{"id":1}`, errors.CategoryAPI, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL).ListMyArticles(context.Background())
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, tt.wantCategory), "category: %s", errors.GetCategory(err))
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestListMyArticlesHTTPErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key\n"))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).ListMyArticles(context.Background())
	require.Error(t, err)

	code, ok := StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, code)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	status, ok := classified.Context().Get("status_code")
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, status)
	body, ok := classified.Context().Get("response")
	require.True(t, ok)
	assert.Equal(t, "bad key ", body)
	assert.Contains(t, classified.Cause().Error(), "401 Unauthorized")
}

func TestListMyArticlesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).ListMyArticles(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNetwork))
	_, ok := StatusCode(err)
	assert.False(t, ok)
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 502, URL: "https://dev.to/api/articles/me"}
	assert.Equal(t, "HTTP 502 Bad Gateway for https://dev.to/api/articles/me", err.Error())
	assert.False(t, err.IsAuth())
}
