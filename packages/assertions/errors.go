package assertions

import (
	"errors"
)

var (
	// ErrNullArgument is matched by errors.Is when a required operand is nil.
	ErrNullArgument = errors.New("null argument")
	// ErrInvalidArgument is matched by errors.Is when an operand violates a
	// structural precondition, such as an empty sequence.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError signals caller misuse. It is never the result of a
// legitimate comparison failure.
type ArgumentError struct {
	Err     error
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func nullArgument(message string) error {
	return &ArgumentError{Err: ErrNullArgument, Message: message}
}

func invalidArgument(message string) error {
	return &ArgumentError{Err: ErrInvalidArgument, Message: message}
}

// Kind identifies which expectation was not met.
type Kind string

const (
	KindActualIsNull         Kind = "actual-is-null"
	KindDoesNotEndWith       Kind = "does-not-end-with"
	KindDoesNotStartWith     Kind = "does-not-start-with"
	KindDoesNotEndWithPath   Kind = "does-not-end-with-path"
	KindDoesNotStartWithPath Kind = "does-not-start-with-path"
)

// AssertionError is the "test failed" signal returned by every comparator.
type AssertionError struct {
	Kind        Kind
	Description string
	Message     string
}

func (e *AssertionError) Error() string {
	if e.Description == "" {
		return e.Message
	}
	return "[" + e.Description + "] " + e.Message
}

// AsAssertionError reports whether err is or wraps an *AssertionError and
// returns it.
func AsAssertionError(err error) (*AssertionError, bool) {
	var ae *AssertionError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
