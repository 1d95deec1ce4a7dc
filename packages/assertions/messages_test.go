package assertions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardRepresentation_ToString(t *testing.T) {
	r := StandardRepresentation{}
	var nilBytes []byte
	var nilPath *FilePath

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "null"},
		{name: "nil slice", value: nilBytes, want: "null"},
		{name: "bytes", value: []byte{6, 8, 10}, want: "[6, 8, 10]"},
		{name: "strings", value: []string{"a", "b"}, want: `["a", "b"]`},
		{name: "array", value: [2]int{1, 2}, want: "[1, 2]"},
		{name: "string", value: "x", want: `"x"`},
		{name: "stringer", value: NewFilePath("/a/b"), want: "/a/b"},
		{name: "nil stringer pointer", value: nilPath, want: "null"},
		{name: "number", value: 3.5, want: "3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ToString(tt.value))
		})
	}
}

type upperRepresentation struct{}

func (upperRepresentation) ToString(v any) string {
	return strings.ToUpper(StandardRepresentation{}.ToString(v))
}

func TestBasicErrorMessage_Create(t *testing.T) {
	msg := DoesNotEndWith([]string{"a"}, []string{"b"})

	assert.Equal(t, KindDoesNotEndWith, msg.Kind())
	assert.Len(t, msg.Arguments(), 2)
	assert.Equal(t, "\nExpecting:\n  <[\"a\"]>\nto end with:\n  <[\"b\"]>\n", msg.String())
	assert.Equal(t, "\nExpecting:\n  <[\"A\"]>\nto end with:\n  <[\"B\"]>\n", msg.Create(upperRepresentation{}))
}

func TestStandardFailures_UsesInfo(t *testing.T) {
	info := NewInfo().As("check %d", 7).WithRepresentation(upperRepresentation{})

	err := StandardFailures().Failure(info, DoesNotStartWith([]string{"a"}, []string{"b"}))

	ae, ok := AsAssertionError(err)
	assert.True(t, ok)
	assert.Equal(t, "check 7", ae.Description)
	assert.Equal(t, KindDoesNotStartWith, ae.Kind)
	assert.True(t, strings.HasPrefix(err.Error(), "[check 7] \nExpecting:\n  <[\"A\"]>"))
}

func TestInfo_ZeroValue(t *testing.T) {
	err := StandardFailures().Failure(Info{}, ActualIsNull())
	assert.Equal(t, "\nExpecting actual not to be null", err.Error())
}
