package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the two pipelines can surface.
type ErrorKind string

const (
	ErrModelRefused           ErrorKind = "model_refused"
	ErrMalformedResponse      ErrorKind = "malformed_response"
	ErrInvalidSchema          ErrorKind = "invalid_schema"
	ErrIncompleteAnswer       ErrorKind = "incomplete_answer"
	ErrNoResponse             ErrorKind = "no_response"
	ErrCompletionFailed       ErrorKind = "completion_failed"
	ErrInvalidReferenceFormat ErrorKind = "invalid_reference_format"
	ErrVerseFetchFailed       ErrorKind = "verse_fetch_failed"
	ErrVerseNotFound          ErrorKind = "verse_not_found"
)

// Display messages shown to the user.
const (
	MsgMalformedResponse = "The AI provided an invalid response format. Please try again."
	MsgInvalidSchema     = "Could not process the response. Please try rephrasing your question."
	MsgIncompleteAnswer  = "Could not generate a complete answer. Please try rephrasing your question."
	MsgNoResponse        = "No response received. Please try your question again."
	MsgCompletionFailed  = "Something went wrong. Please try asking your question again."
	MsgVerseNotFound     = "Verse content not found"
	MsgVerseLoadFailed   = "Failed to load the verse"

	MsgInvalidReferenceFormat = "Invalid verse reference format.\n" +
		"Please use one of these formats:\n" +
		"- Single verse: \"John 3:16\"\n" +
		"- Verse range: \"Romans 8:28-29\"\n" +
		"- Multiple verses: \"Psalm 23:1-6\""
)

// Error is the single error value handed to the UI layer.
// Message is safe to display as-is.
type Error struct {
	Kind    ErrorKind
	Message string
	Issues  []string // schema violations, when Kind is invalid_schema or incomplete_answer
	Status  int      // upstream HTTP status, when Kind is verse_fetch_failed
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error without an underlying cause.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError builds an Error that keeps err for logging and errors.Is.
func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// ModelRefused carries the model's own prose verbatim.
func ModelRefused(text string) *Error {
	return &Error{Kind: ErrModelRefused, Message: text}
}

// VerseFetchFailed reports a non-2xx answer from the verse endpoint.
func VerseFetchFailed(status int) *Error {
	return &Error{
		Kind:    ErrVerseFetchFailed,
		Message: fmt.Sprintf("Failed to fetch verse (Status: %d)", status),
		Status:  status,
	}
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// AsError returns err as *Error, wrapping unknown errors with fallback.
func AsError(err error, fallback ErrorKind, msg string) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return WrapError(fallback, msg, err)
}
