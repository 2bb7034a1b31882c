package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Outcomes every catalog operation may report. Match them with errors.Is.
var (
	// ErrNotFound means the lookup target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnexpectedResponse means the document did not have the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrUnsupportedQuery means the service rejected a search term.
	ErrUnsupportedQuery = errors.New("unsupported query")
	// ErrInvalidArgument means the caller's query object was ill-formed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotAuthorized means favorites access needs re-authentication.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrCancelled means the context was cancelled between round-trips.
	ErrCancelled = errors.New("operation cancelled")
	// ErrRetrievalFailure wraps a transport or provider failure.
	ErrRetrievalFailure = errors.New("retrieval failure")
	// ErrUnsupported means the operation needs a collaborator that was not configured.
	ErrUnsupported = errors.New("operation not supported")
)

// QueryError reports a search term the service does not support.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("unsupported search %q: %v", e.Query, e.Err)
}

// Unwrap exposes both ErrUnsupportedQuery and the underlying cause.
func (e *QueryError) Unwrap() []error {
	return []error{ErrUnsupportedQuery, e.Err}
}

// RetrievalError wraps the cause of a failed fetch. Op names the request
// kind ("node", "search", "favorites", ...).
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("%s: retrieval failure: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrRetrievalFailure and the underlying cause, so a
// wrapped ErrNotAuthorized stays detectable.
func (e *RetrievalError) Unwrap() []error {
	return []error{ErrRetrievalFailure, e.Err}
}

// cancelled returns an ErrCancelled error when ctx is done.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
