// Package apperror defines classified failures: errors that carry the HTTP
// status and the short message shown to API callers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure
type Kind string

const (
	// KindInvalidType indicates a malformed identifier or a field of the wrong type.
	KindInvalidType Kind = "INVALID_TYPE"
	// KindInvalidQuery indicates a sort_by or order value outside its allowlist.
	KindInvalidQuery Kind = "INVALID_QUERY"
	// KindMissingField indicates a required body field is absent.
	KindMissingField Kind = "MISSING_FIELD"
	// KindNotFound indicates a referenced resource does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindRouteNotFound indicates no route matched the request.
	KindRouteNotFound Kind = "ROUTE_NOT_FOUND"
	// KindRateLimited indicates the request was rejected by the rate limiter.
	KindRateLimited Kind = "RATE_LIMITED"
	// KindInternal indicates an unexpected failure.
	KindInternal Kind = "INTERNAL"
)

// Messages shared by several call sites
const (
	MsgInvalidDataType  = "Invalid data type"
	MsgInvalidSortBy    = "Invalid sort_by query"
	MsgInvalidOrder     = "Invalid order query"
	MsgMissingComment   = "Missing required fields: username and body"
	MsgInvalidComment   = "Invalid data type for username or body"
	MsgIncVotesRequired = "inc_votes is required"
	MsgIncVotesNumber   = "inc_votes must be a number"
	MsgNotFound         = "Not Found"
	MsgArticleNotFound  = "Article not found"
	MsgCommentNotFound  = "Comment not found"
	MsgUserNotFound     = "User not found"
	MsgTopicNotFound    = "Topic not found"
	MsgRouteNotFound    = "Endpoint Does Not Exist"
	MsgTooManyRequests  = "Too Many Requests"
	MsgInternal         = "Internal Server Error"
)

// Error is a classified failure
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidType, KindInvalidQuery, KindMissingField:
		return http.StatusBadRequest
	case KindNotFound, KindRouteNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New creates a classified failure.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates a classified failure around a lower-level cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

func InvalidType(msg string) *Error  { return New(KindInvalidType, msg) }
func InvalidQuery(msg string) *Error { return New(KindInvalidQuery, msg) }
func MissingField(msg string) *Error { return New(KindMissingField, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }

// As extracts a classified failure from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of a classified failure, or KindInternal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
