package devto

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
)

// HTTPError is a non-success response from the dev.to API.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %s for %s", status, e.URL)
}

// IsAuth reports whether the platform rejected the credential.
func (e *HTTPError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *HTTPError) context() errors.ErrorContext {
	return errors.ErrorContext{
		"status_code": e.StatusCode,
		"url":         e.URL,
		"response":    e.Body,
	}
}

// StatusCode extracts the upstream status code from an error chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
