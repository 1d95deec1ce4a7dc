package assertions

import (
	"slices"
)

const (
	msgSequenceIsNull  = "the sequence to look for should not be null"
	msgSequenceIsEmpty = "the sequence to look for should not be empty"
)

// Arrays holds the sequence comparators for element type T.
// A nil slice is treated as null; a non-nil zero-length slice as empty.
type Arrays[T comparable] struct {
	failures Failures
}

type (
	ByteArrays   = Arrays[byte]
	IntArrays    = Arrays[int]
	StringArrays = Arrays[string]
)

// NewArrays returns sequence comparators reporting through failures.
// A nil failures falls back to StandardFailures.
func NewArrays[T comparable](failures Failures) *Arrays[T] {
	if failures == nil {
		failures = StandardFailures()
	}
	return &Arrays[T]{failures: failures}
}

// NewByteArrays is NewArrays for byte sequences.
func NewByteArrays(failures Failures) *ByteArrays {
	return NewArrays[byte](failures)
}

// AssertEndsWith checks that sequence is a contiguous suffix of actual.
// A sequence equal to actual is accepted.
func (a *Arrays[T]) AssertEndsWith(info Info, actual, sequence []T) error {
	if err := checkSequence(sequence); err != nil {
		return err
	}
	if actual == nil {
		return a.failures.Failure(info, ActualIsNull())
	}

	n, m := len(actual), len(sequence)
	if m > n || !slices.Equal(actual[n-m:], sequence) {
		return a.failures.Failure(info, DoesNotEndWith(actual, sequence))
	}
	return nil
}

// AssertStartsWith checks that sequence is a contiguous prefix of actual.
func (a *Arrays[T]) AssertStartsWith(info Info, actual, sequence []T) error {
	if err := checkSequence(sequence); err != nil {
		return err
	}
	if actual == nil {
		return a.failures.Failure(info, ActualIsNull())
	}

	if len(sequence) > len(actual) || !slices.Equal(actual[:len(sequence)], sequence) {
		return a.failures.Failure(info, DoesNotStartWith(actual, sequence))
	}
	return nil
}

func checkSequence[T any](sequence []T) error {
	if sequence == nil {
		return nullArgument(msgSequenceIsNull)
	}
	if len(sequence) == 0 {
		return invalidArgument(msgSequenceIsEmpty)
	}
	return nil
}
