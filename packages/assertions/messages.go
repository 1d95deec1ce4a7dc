package assertions

import (
	"fmt"
)

// ErrorMessageFactory builds the text of a failure from its operands.
type ErrorMessageFactory interface {
	Kind() Kind
	Create(r Representation) string
}

// BasicErrorMessage is a format string plus the operands it is applied to.
// Operands are rendered with the Representation passed to Create.
type BasicErrorMessage struct {
	kind      Kind
	format    string
	arguments []any
}

func newMessage(kind Kind, format string, arguments ...any) *BasicErrorMessage {
	return &BasicErrorMessage{kind: kind, format: format, arguments: arguments}
}

func (m *BasicErrorMessage) Kind() Kind {
	return m.kind
}

func (m *BasicErrorMessage) Arguments() []any {
	return m.arguments
}

func (m *BasicErrorMessage) Create(r Representation) string {
	if r == nil {
		r = StandardRepresentation{}
	}
	rendered := make([]any, len(m.arguments))
	for i, arg := range m.arguments {
		rendered[i] = r.ToString(arg)
	}
	return fmt.Sprintf(m.format, rendered...)
}

func (m *BasicErrorMessage) String() string {
	return m.Create(StandardRepresentation{})
}

// ActualIsNull is raised when the value under test is nil.
func ActualIsNull() *BasicErrorMessage {
	return newMessage(KindActualIsNull, "\nExpecting actual not to be null")
}

// DoesNotEndWith is raised when actual does not end with sequence.
func DoesNotEndWith(actual, sequence any) *BasicErrorMessage {
	return newMessage(KindDoesNotEndWith, "\nExpecting:\n  <%s>\nto end with:\n  <%s>\n", actual, sequence)
}

// DoesNotStartWith is raised when actual does not start with sequence.
func DoesNotStartWith(actual, sequence any) *BasicErrorMessage {
	return newMessage(KindDoesNotStartWith, "\nExpecting:\n  <%s>\nto start with:\n  <%s>\n", actual, sequence)
}

// ShouldEndWithPath is raised when the actual path does not end with other.
func ShouldEndWithPath(actual, other Path) *BasicErrorMessage {
	return newMessage(KindDoesNotEndWithPath, "\nExpected path:\n  <%s>\nto end with:\n  <%s>\nbut it did not.", actual, other)
}

// ShouldStartWithPath is raised when the actual path does not start with other.
func ShouldStartWithPath(actual, other Path) *BasicErrorMessage {
	return newMessage(KindDoesNotStartWithPath, "\nExpected path:\n  <%s>\nto start with:\n  <%s>\nbut it did not.", actual, other)
}
