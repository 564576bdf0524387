// Package errors provides the classified error type used across mdpublish.
//
// Every terminal failure of the conversion pipeline is a ClassifiedError that
// carries a category (not_found, parse, validation, auth, api, network, ...),
// a severity, a human readable message and structured context. Errors are
// assembled with the fluent ErrorBuilder and rendered for the terminal by the
// CLIErrorAdapter.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryAPI, "article lookup failed").
//		WithContext("status_code", resp.StatusCode).
//		WithCause(httpErr).
//		Build()
package errors
