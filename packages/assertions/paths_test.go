package assertions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPath answers EndsWith/StartsWith with fixed results and records calls.
type stubPath struct {
	name       string
	endsWith   bool
	startsWith bool
	calls      []Path
}

func (s *stubPath) EndsWith(other Path) bool {
	s.calls = append(s.calls, other)
	return s.endsWith
}

func (s *stubPath) StartsWith(other Path) bool {
	s.calls = append(s.calls, other)
	return s.startsWith
}

func (s *stubPath) String() string {
	return s.name
}

func newTestPaths() (*Paths, *recordingFailures) {
	failures := &recordingFailures{}
	return NewPaths(failures), failures
}

func TestPaths_AssertEndsWithRaw_ActualIsNull(t *testing.T) {
	paths, failures := newTestPaths()

	err := paths.AssertEndsWithRaw(NewInfo(), nil, &stubPath{name: "other"})

	ae, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, KindActualIsNull, ae.Kind)
	require.Len(t, failures.messages, 1)
	assert.Equal(t, ActualIsNull(), failures.messages[0])
}

func TestPaths_AssertEndsWithRaw_OtherIsNull(t *testing.T) {
	paths, failures := newTestPaths()

	t.Run("nil interface", func(t *testing.T) {
		err := paths.AssertEndsWithRaw(NewInfo(), &stubPath{name: "actual"}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNullArgument)
		assert.Equal(t, "other should not be null", err.Error())
	})

	t.Run("typed nil pointer", func(t *testing.T) {
		var other *stubPath
		err := paths.AssertEndsWithRaw(NewInfo(), &stubPath{name: "actual"}, other)
		assert.ErrorIs(t, err, ErrNullArgument)
	})

	t.Run("checked before actual", func(t *testing.T) {
		err := paths.AssertEndsWithRaw(NewInfo(), nil, nil)
		assert.ErrorIs(t, err, ErrNullArgument)
		_, ok := AsAssertionError(err)
		assert.False(t, ok)
	})

	assert.Empty(t, failures.messages)
}

func TestPaths_AssertEndsWithRaw_DoesNotEndWith(t *testing.T) {
	paths, failures := newTestPaths()
	actual := &stubPath{name: "/usr/local/bin", endsWith: false}
	other := &stubPath{name: "lib"}
	info := NewInfo()

	err := paths.AssertEndsWithRaw(info, actual, other)

	ae, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, KindDoesNotEndWithPath, ae.Kind)
	require.Len(t, failures.messages, 1)
	assert.Equal(t, ShouldEndWithPath(actual, other), failures.messages[0])
	assert.Equal(t, []Path{other}, actual.calls)
	assert.Equal(t, "\nExpected path:\n  </usr/local/bin>\nto end with:\n  <lib>\nbut it did not.", ae.Message)
}

func TestPaths_AssertEndsWithRaw_Succeeds(t *testing.T) {
	paths, failures := newTestPaths()
	actual := &stubPath{name: "/usr/local/bin", endsWith: true}
	other := &stubPath{name: "bin"}

	assert.NoError(t, paths.AssertEndsWithRaw(NewInfo(), actual, other))
	assert.Empty(t, failures.messages)
}

func TestPaths_AssertEndsWithRaw_DoesNotNormalize(t *testing.T) {
	paths := NewPaths(nil)

	err := paths.AssertEndsWithRaw(NewInfo(), NewFilePath("/a/b/../c"), NewFilePath("b/c"))
	_, ok := AsAssertionError(err)
	assert.True(t, ok)

	assert.NoError(t, paths.AssertEndsWithRaw(NewInfo(), NewFilePath("/a/b/../c"), NewFilePath("../c")))
}

func TestPaths_AssertEndsWith_Normalizes(t *testing.T) {
	paths := NewPaths(nil)

	assert.NoError(t, paths.AssertEndsWith(NewInfo(), NewFilePath("/a/x/../b/./c"), NewFilePath("b/c")))

	err := paths.AssertEndsWith(NewInfo(), NewFilePath("/a/b/../c"), NewFilePath("b/c"))
	ae, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Contains(t, ae.Message, "</a/b/../c>")
}

func TestPaths_AssertEndsWith_Arguments(t *testing.T) {
	paths := NewPaths(nil)

	assert.ErrorIs(t, paths.AssertEndsWith(NewInfo(), nil, nil), ErrNullArgument)

	_, ok := AsAssertionError(paths.AssertEndsWith(NewInfo(), nil, NewFilePath("a")))
	assert.True(t, ok)
}

func TestPaths_AssertStartsWithRaw(t *testing.T) {
	paths, failures := newTestPaths()

	t.Run("nil other before nil actual", func(t *testing.T) {
		assert.ErrorIs(t, paths.AssertStartsWithRaw(NewInfo(), nil, nil), ErrNullArgument)
	})

	t.Run("does not start with", func(t *testing.T) {
		actual := &stubPath{name: "a/b"}
		other := &stubPath{name: "c"}
		err := paths.AssertStartsWithRaw(NewInfo(), actual, other)
		ae, ok := AsAssertionError(err)
		require.True(t, ok)
		assert.Equal(t, KindDoesNotStartWithPath, ae.Kind)
		assert.Equal(t, ShouldStartWithPath(actual, other), failures.messages[len(failures.messages)-1])
	})

	t.Run("starts with", func(t *testing.T) {
		actual := &stubPath{name: "a/b", startsWith: true}
		assert.NoError(t, paths.AssertStartsWithRaw(NewInfo(), actual, &stubPath{name: "a"}))
	})
}
