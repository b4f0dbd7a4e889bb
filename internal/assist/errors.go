package assist

import (
	"errors"
	"fmt"
)

// ErrorKind classifies assistance failures.
type ErrorKind int

const (
	// KindEmptyInput means the challenge text was blank. No call was made.
	KindEmptyInput ErrorKind = iota + 1
	// KindTransport covers network failures and non-2xx replies.
	KindTransport
	// KindMalformedReply means the reply carried no usable solution.
	KindMalformedReply
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindTransport:
		return "transport error"
	case KindMalformedReply:
		return "malformed reply"
	default:
		return "unknown error"
	}
}

// User-visible messages.
const (
	DefaultErrorMessage   = "Failed to generate solution"
	EmptyInputMessage     = "Please paste the challenge question above to get a solution."
	MalformedReplyMessage = "No solution returned from the AI."
)

// RequestError is returned by Dispatch and the Completers.
type RequestError struct {
	Kind ErrorKind
	// Status is the HTTP status for transport errors from the API, else 0.
	Status int
	// Message is the service-provided error text, if any.
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	msg := "assist: " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error { return e.Err }

// UserMessage is the single line shown in place of the assistance segment.
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case KindEmptyInput:
		return EmptyInputMessage
	case KindMalformedReply:
		return MalformedReplyMessage
	default:
		if e.Message != "" {
			return e.Message
		}
		return DefaultErrorMessage
	}
}

// UserMessage returns the user-visible text for any error.
func UserMessage(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.UserMessage()
	}
	return DefaultErrorMessage
}

// IsKind reports whether err is a RequestError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == k
}
