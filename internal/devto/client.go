// Package devto is a minimal read-only client for the dev.to article API.
package devto

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpublish/internal/observability"
)

// DefaultBaseURL is the public dev.to host.
const DefaultBaseURL = "https://dev.to"

const (
	apiKeyHeader    = "api-key"
	requestIDHeader = "X-Request-Id"
	maxErrorBody    = 512
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// Client issues authenticated requests against the dev.to API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a Client. A nil HTTPClient means a plain &http.Client{}
// (no timeout beyond the transport defaults).
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.ConfigError("dev.to API key is required").Build()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.ConfigError("invalid dev.to API URL").
			WithCause(err).
			WithContext("api_url", baseURL).
			Build()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		userAgent:  opts.UserAgent,
	}, nil
}

// NewRequest builds a request for endpoint, relative to the base URL, with
// the credential and tracing headers set.
func (c *Client) NewRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.ConfigError("invalid dev.to API URL").
			WithCause(err).
			WithContext("api_url", c.baseURL).
			Build()
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), strings.TrimPrefix(endpoint, "/"))
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, errors.InternalError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}

	requestID := observability.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// DoRequest executes req and decodes a JSON response into result.
func (c *Client) DoRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("dev.to request failed").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        req.URL.String(),
			Body:       strings.ReplaceAll(string(limited), "\n", " "),
		}

		b := errors.APIError("dev.to API request failed")
		if httpErr.IsAuth() {
			b = errors.AuthError("dev.to rejected the API key")
		}
		return b.WithCause(httpErr).
			WithContextMap(httpErr.context()).
			Build()
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.APIError("failed to decode dev.to response").
				WithCause(err).
				WithContext("url", req.URL.String()).
				Build()
		}
	}
	return nil
}
