package docdive

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Application error codes.
//
// These are propagated across package boundaries so that callers can
// react to the kind of failure without string matching. Codes map onto
// transport outcomes at the http package boundary (404 -> ENOTFOUND,
// 429 -> ERATELIMIT, 401/403 -> EUNAUTHORIZED, other non-2xx ->
// ENETWORK).
const (
	ECONVERSION   = "conversion"   // fetched payload could not be converted to markdown
	EINTERNAL     = "internal"     // internal error
	EINVALID      = "invalid"      // validation failed or malformed request
	ENETWORK      = "network"      // transport failure or unexpected HTTP status
	ENORESULTS    = "no_results"   // search succeeded but yielded nothing after filtering
	ENOTFOUND     = "not_found"    // document does not exist (HTTP 404)
	EPARSE        = "parse"        // payload shape unexpected
	ERATELIMIT    = "rate_limit"   // source is rate limiting us (HTTP 429)
	EUNAUTHORIZED = "unauthorized" // source rejected our credentials (HTTP 401/403)
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string

	// RetryAfter is set on ERATELIMIT errors when the source supplied a
	// Retry-After hint. Zero means no hint was given.
	RetryAfter time.Duration
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("docdive error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// RetryAfter unwraps an application error and returns its Retry-After
// hint, or zero if none was carried.
func RetryAfter(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}

// SourceErrors is returned by the retrieval coordinator when every
// enabled source failed. It preserves each source's individual failure
// so callers can report them separately.
type SourceErrors struct {
	Errors map[Source]error
}

// Error implements the error interface.
func (e *SourceErrors) Error() string {
	sources := make([]string, 0, len(e.Errors))
	for s := range e.Errors {
		sources = append(sources, string(s))
	}
	sort.Strings(sources)

	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, fmt.Sprintf("%s: %s", s, ErrorMessage(e.Errors[Source(s)])))
	}
	return "all sources failed: " + strings.Join(parts, "; ")
}
