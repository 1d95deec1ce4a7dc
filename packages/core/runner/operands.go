package runner

import (
	"fmt"
	"math"

	"github.com/abdul-hamid-achik/hitassert/packages/assertions"
	"github.com/abdul-hamid-achik/hitassert/packages/cases"
)

// toSequence converts a resolved operand to comparable elements. Integers of
// any width compare equal by value, so a YAML 12 matches a JSON 12.0, and
// stay integers so values past 2^53 remain distinct.
func toSequence(op cases.Operand) ([]any, error) {
	switch op.Kind {
	case cases.OperandNull:
		return nil, nil
	case cases.OperandSequence:
		out := make([]any, len(op.Values))
		for i, v := range op.Values {
			n, err := normalizeScalar(v)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %s", op.Kind)
	}
}

func toPath(op cases.Operand) (assertions.Path, error) {
	switch op.Kind {
	case cases.OperandNull:
		return nil, nil
	case cases.OperandScalar:
		return assertions.NewFilePath(op.Text()), nil
	default:
		return nil, fmt.Errorf("expected a path, got %s", op.Kind)
	}
}

// maxExactFloat is the largest magnitude at which every integer has an exact
// float64 representation.
const maxExactFloat = 1 << 53

func normalizeScalar(v any) (any, error) {
	switch n := v.(type) {
	case nil, string, bool:
		return v, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return normalizeUint(uint64(n)), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return normalizeUint(n), nil
	case float32:
		return normalizeFloat(float64(n)), nil
	case float64:
		return normalizeFloat(n), nil
	default:
		return nil, fmt.Errorf("list elements must be scalars, got %T", v)
	}
}

func normalizeUint(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}
	return n
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
		return int64(f)
	}
	return f
}

func operandValue(op cases.Operand) any {
	switch op.Kind {
	case cases.OperandSequence:
		return op.Values
	case cases.OperandScalar:
		return op.Scalar
	default:
		return nil
	}
}
