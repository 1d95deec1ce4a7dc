package assertions

import (
	"reflect"
)

const msgOtherIsNull = "other should not be null"

// Path is a hierarchical identifier whose prefix and suffix relations are
// supplied by the implementation. Comparators never reinterpret segments.
type Path interface {
	EndsWith(other Path) bool
	StartsWith(other Path) bool
	String() string
}

// Normalizer is implemented by paths that can remove redundant segments.
// Paths.AssertEndsWith uses it when available.
type Normalizer interface {
	Normalize() Path
}

// Paths holds the path comparators.
type Paths struct {
	failures Failures
}

// NewPaths returns path comparators reporting through failures.
// A nil failures falls back to StandardFailures.
func NewPaths(failures Failures) *Paths {
	if failures == nil {
		failures = StandardFailures()
	}
	return &Paths{failures: failures}
}

// AssertEndsWithRaw checks actual.EndsWith(other) without normalizing either
// path. A nil other is reported before a nil actual.
func (p *Paths) AssertEndsWithRaw(info Info, actual, other Path) error {
	if isNilPath(other) {
		return nullArgument(msgOtherIsNull)
	}
	if isNilPath(actual) {
		return p.failures.Failure(info, ActualIsNull())
	}
	if !actual.EndsWith(other) {
		return p.failures.Failure(info, ShouldEndWithPath(actual, other))
	}
	return nil
}

// AssertEndsWith is AssertEndsWithRaw applied to the normalized form of both
// paths. The failure message reports the paths as given.
func (p *Paths) AssertEndsWith(info Info, actual, other Path) error {
	if isNilPath(other) {
		return nullArgument(msgOtherIsNull)
	}
	if isNilPath(actual) {
		return p.failures.Failure(info, ActualIsNull())
	}
	if !normalize(actual).EndsWith(normalize(other)) {
		return p.failures.Failure(info, ShouldEndWithPath(actual, other))
	}
	return nil
}

// AssertStartsWithRaw checks actual.StartsWith(other) without normalizing
// either path.
func (p *Paths) AssertStartsWithRaw(info Info, actual, other Path) error {
	if isNilPath(other) {
		return nullArgument(msgOtherIsNull)
	}
	if isNilPath(actual) {
		return p.failures.Failure(info, ActualIsNull())
	}
	if !actual.StartsWith(other) {
		return p.failures.Failure(info, ShouldStartWithPath(actual, other))
	}
	return nil
}

func normalize(path Path) Path {
	if n, ok := path.(Normalizer); ok {
		return n.Normalize()
	}
	return path
}

// isNilPath catches both a nil interface and a typed nil pointer.
func isNilPath(path Path) bool {
	if path == nil {
		return true
	}
	rv := reflect.ValueOf(path)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
