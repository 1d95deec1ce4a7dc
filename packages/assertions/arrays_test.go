package assertions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFailures remembers every message it was asked to raise.
type recordingFailures struct {
	infos    []Info
	messages []ErrorMessageFactory
}

func (r *recordingFailures) Failure(info Info, message ErrorMessageFactory) error {
	r.infos = append(r.infos, info)
	r.messages = append(r.messages, message)
	return StandardFailures().Failure(info, message)
}

func newTestByteArrays() (*ByteArrays, *recordingFailures) {
	failures := &recordingFailures{}
	return NewByteArrays(failures), failures
}

func TestByteArrays_AssertEndsWith_ArgumentErrors(t *testing.T) {
	arrays, failures := newTestByteArrays()
	info := NewInfo()
	actual := []byte{6, 8, 10, 12}

	t.Run("nil sequence", func(t *testing.T) {
		err := arrays.AssertEndsWith(info, actual, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNullArgument))
		assert.Equal(t, "the sequence to look for should not be null", err.Error())
	})

	t.Run("nil sequence with nil actual", func(t *testing.T) {
		err := arrays.AssertEndsWith(info, nil, nil)
		assert.ErrorIs(t, err, ErrNullArgument)
	})

	t.Run("empty sequence", func(t *testing.T) {
		err := arrays.AssertEndsWith(info, actual, []byte{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "the sequence to look for should not be empty", err.Error())
	})

	t.Run("argument errors are not assertion failures", func(t *testing.T) {
		err := arrays.AssertEndsWith(info, actual, []byte{})
		_, ok := AsAssertionError(err)
		assert.False(t, ok)
	})

	assert.Empty(t, failures.messages)
}

func TestByteArrays_AssertEndsWith_ActualIsNull(t *testing.T) {
	arrays, failures := newTestByteArrays()

	err := arrays.AssertEndsWith(NewInfo(), nil, []byte{8})

	ae, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, KindActualIsNull, ae.Kind)
	require.Len(t, failures.messages, 1)
	assert.Equal(t, ActualIsNull(), failures.messages[0])
}

func TestByteArrays_AssertEndsWith_Failures(t *testing.T) {
	actual := []byte{6, 8, 10, 12}

	tests := []struct {
		name     string
		sequence []byte
	}{
		{name: "sequence bigger than actual", sequence: []byte{6, 8, 10, 12, 20, 22}},
		{name: "actual does not end with sequence", sequence: []byte{20, 22}},
		{name: "actual ends with first elements of sequence only", sequence: []byte{6, 20, 22}},
		{name: "last element differs", sequence: []byte{10, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrays, failures := newTestByteArrays()
			info := NewInfo()

			err := arrays.AssertEndsWith(info, actual, tt.sequence)

			ae, ok := AsAssertionError(err)
			require.True(t, ok, "expected an assertion error, got %v", err)
			assert.Equal(t, KindDoesNotEndWith, ae.Kind)
			require.Len(t, failures.messages, 1)
			assert.Equal(t, DoesNotEndWith(actual, tt.sequence), failures.messages[0])
			assert.Equal(t, info, failures.infos[0])
		})
	}
}

func TestByteArrays_AssertEndsWith_Passes(t *testing.T) {
	arrays, failures := newTestByteArrays()
	actual := []byte{6, 8, 10, 12}

	t.Run("actual ends with sequence", func(t *testing.T) {
		assert.NoError(t, arrays.AssertEndsWith(NewInfo(), actual, []byte{8, 10, 12}))
	})

	t.Run("actual and sequence are equal", func(t *testing.T) {
		assert.NoError(t, arrays.AssertEndsWith(NewInfo(), actual, []byte{6, 8, 10, 12}))
	})

	t.Run("single trailing element", func(t *testing.T) {
		assert.NoError(t, arrays.AssertEndsWith(NewInfo(), actual, []byte{12}))
	})

	assert.Empty(t, failures.messages)
}

func TestArrays_AssertEndsWith_EverySuffix(t *testing.T) {
	arrays := NewArrays[int](nil)
	actual := []int{1, 2, 3, 4, 5, 6}

	for i := 0; i < len(actual); i++ {
		assert.NoError(t, arrays.AssertEndsWith(NewInfo(), actual, actual[i:]), "suffix from %d", i)
	}
	assert.Error(t, arrays.AssertEndsWith(NewInfo(), actual, append([]int{0}, actual...)))
}

func TestArrays_AssertEndsWith_EmptyActual(t *testing.T) {
	arrays := NewArrays[string](nil)

	err := arrays.AssertEndsWith(NewInfo(), []string{}, []string{"a"})

	ae, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, KindDoesNotEndWith, ae.Kind)
}

func TestArrays_AssertEndsWith_DoesNotMutateInputs(t *testing.T) {
	arrays := NewArrays[int](nil)
	actual := []int{1, 2, 3}
	sequence := []int{9, 3}

	_ = arrays.AssertEndsWith(NewInfo(), actual, sequence)

	assert.Equal(t, []int{1, 2, 3}, actual)
	assert.Equal(t, []int{9, 3}, sequence)
}

func TestArrays_AssertEndsWith_Message(t *testing.T) {
	arrays := NewByteArrays(nil)
	info := NewInfo().As("payload of %s", "frame")

	err := arrays.AssertEndsWith(info, []byte{6, 8, 10, 12}, []byte{20, 22})

	require.Error(t, err)
	assert.Equal(t, "[payload of frame] \nExpecting:\n  <[6, 8, 10, 12]>\nto end with:\n  <[20, 22]>\n", err.Error())
}

func TestArrays_AssertStartsWith(t *testing.T) {
	arrays := NewArrays[int](nil)
	actual := []int{6, 8, 10, 12}

	t.Run("prefix passes", func(t *testing.T) {
		assert.NoError(t, arrays.AssertStartsWith(NewInfo(), actual, []int{6, 8}))
	})

	t.Run("equal passes", func(t *testing.T) {
		assert.NoError(t, arrays.AssertStartsWith(NewInfo(), actual, []int{6, 8, 10, 12}))
	})

	t.Run("mismatch fails", func(t *testing.T) {
		err := arrays.AssertStartsWith(NewInfo(), actual, []int{8, 10})
		ae, ok := AsAssertionError(err)
		require.True(t, ok)
		assert.Equal(t, KindDoesNotStartWith, ae.Kind)
	})

	t.Run("longer sequence fails", func(t *testing.T) {
		err := arrays.AssertStartsWith(NewInfo(), actual, []int{6, 8, 10, 12, 14})
		_, ok := AsAssertionError(err)
		assert.True(t, ok)
	})

	t.Run("nil sequence", func(t *testing.T) {
		assert.ErrorIs(t, arrays.AssertStartsWith(NewInfo(), actual, nil), ErrNullArgument)
	})

	t.Run("empty sequence", func(t *testing.T) {
		assert.ErrorIs(t, arrays.AssertStartsWith(NewInfo(), actual, []int{}), ErrInvalidArgument)
	})

	t.Run("nil actual", func(t *testing.T) {
		err := arrays.AssertStartsWith(NewInfo(), nil, []int{1})
		ae, ok := AsAssertionError(err)
		require.True(t, ok)
		assert.Equal(t, KindActualIsNull, ae.Kind)
	})
}

func TestFailuresFunc(t *testing.T) {
	sentinel := errors.New("custom failure")
	arrays := NewArrays[int](FailuresFunc(func(info Info, message ErrorMessageFactory) error {
		return sentinel
	}))

	err := arrays.AssertEndsWith(NewInfo(), []int{1}, []int{2})
	assert.ErrorIs(t, err, sentinel)
}
