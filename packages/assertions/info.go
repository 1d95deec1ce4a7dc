package assertions

import (
	"fmt"
	"reflect"
	"strings"
)

// Representation renders an operand for a failure message.
type Representation interface {
	ToString(v any) string
}

// StandardRepresentation renders nil as "null", strings quoted, and slices
// and arrays as "[a, b, c]". Values implementing fmt.Stringer use String.
type StandardRepresentation struct{}

func (r StandardRepresentation) ToString(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "null"
		}
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return "null"
		}
		return r.elements(rv)
	case reflect.Array:
		return r.elements(rv)
	case reflect.Pointer, reflect.Map, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}
	return fmt.Sprintf("%v", v)
}

func (r StandardRepresentation) elements(rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = r.ToString(rv.Index(i).Interface())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Info carries the metadata used when reporting a failure.
type Info struct {
	Description    string
	Representation Representation
}

// NewInfo returns an Info with no description and the standard representation.
func NewInfo() Info {
	return Info{Representation: StandardRepresentation{}}
}

// As returns a copy of the Info described by the formatted text.
func (i Info) As(format string, args ...any) Info {
	i.Description = fmt.Sprintf(format, args...)
	return i
}

// WithRepresentation returns a copy of the Info using r to render operands.
func (i Info) WithRepresentation(r Representation) Info {
	i.Representation = r
	return i
}

func (i Info) representation() Representation {
	if i.Representation == nil {
		return StandardRepresentation{}
	}
	return i.Representation
}
