package wp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a query for a single post matches nothing.
var ErrNotFound = errors.New("wp: post not found")

// ErrEndpointNotConfigured is returned by NewClient when no GraphQL
// endpoint is configured. This is a startup error, not a request error.
var ErrEndpointNotConfigured = errors.New("wp: GraphQL endpoint not configured")

// TransportError means the upstream could not be reached at all.
type TransportError struct {
	Query string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wp: transport error on %s: %v", e.Query, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the upstream answered, but not with a well-formed
// GraphQL envelope: a non-2xx status, an unparseable body, or an
// envelope with neither data nor errors.
type ProtocolError struct {
	Query  string
	Status int
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("wp: protocol error on %s: status %d", e.Query, e.Status)
	}
	return fmt.Sprintf("wp: protocol error on %s: %v", e.Query, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// GraphQLError is one application-level error entry from the envelope.
type GraphQLError struct {
	Message   string          `json:"message"`
	Locations []ErrorLocation `json:"locations,omitempty"`
	Path      []any           `json:"path,omitempty"`
}

// ErrorLocation points at the offending position in the query document.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// UpstreamError means the envelope was well-formed but carried one or
// more error entries. A response with both data and errors is treated
// the same way: none of the catalog queries tolerate partial data.
type UpstreamError struct {
	Query  string
	Errors []GraphQLError
}

func (e *UpstreamError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return fmt.Sprintf("wp: upstream errors on %s: %s", e.Query, strings.Join(msgs, "; "))
}
