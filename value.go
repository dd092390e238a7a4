package dfrs

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
)

// Value is a single cell: an Int64, Float64, String, Bool or Null.
// The zero Value is Float64 0, not Null; use NullValue for a missing cell.
type Value struct {
	kind DType
	i    int64
	f    float64
	s    string
	b    bool
}

// Int returns an Int64 value.
func Int(v int64) Value { return Value{kind: Int64, i: v} }

// Float returns a Float64 value.
func Float(v float64) Value { return Value{kind: Float64, f: v} }

// Str returns a String value.
func Str(v string) Value { return Value{kind: String, s: v} }

// Boolean returns a Bool value.
func Boolean(v bool) Value { return Value{kind: Bool, b: v} }

// NullValue returns the Null value.
func NullValue() Value { return Value{kind: Null} }

// ValueOf converts a raw Go value into a Value without parsing strings.
// nil becomes Null. Unsupported types yield a TypeInferenceError.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return v, nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return NullValue(), &TypeInferenceError{Value: raw}
		}
		return Int(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return NullValue(), &TypeInferenceError{Value: raw}
		}
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return Str(v), nil
	case bool:
		return Boolean(v), nil
	default:
		return NullValue(), &TypeInferenceError{Value: raw}
	}
}

// Kind returns the variant tag.
func (v Value) Kind() DType { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == Null }

// Int64 returns the integer payload.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == Int64 }

// Float64 returns the numeric payload as a float; Int64 values are widened.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case Float64:
		return v.f, true
	case Int64:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Text returns the string payload.
func (v Value) Text() (string, bool) { return v.s, v.kind == String }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Interface returns the payload as a plain Go value; Null returns nil.
func (v Value) Interface() any {
	switch v.kind {
	case Int64:
		return v.i
	case Float64:
		return v.f
	case String:
		return v.s
	case Bool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether two values are equal. Null equals Null, and
// Int64/Float64 pairs are compared numerically.
func (v Value) Equal(other Value) bool {
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		if v.kind == Int64 && other.kind == Int64 {
			return v.i == other.i
		}
		a, _ := v.Float64()
		b, _ := other.Float64()
		return a == b
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.s == other.s
	case Bool:
		return v.b == other.b
	default:
		return true
	}
}

// Compare orders two non-null values of the same kind, returning -1, 0 or
// +1. Int64 and Float64 are mutually comparable. Null operands and other
// cross-kind pairs have no order.
func (v Value) Compare(other Value) (int, error) {
	if v.kind == Null || other.kind == Null {
		return 0, &UnsupportedOperationError{Op: "compare", Left: v.kind, Right: other.kind}
	}
	if v.kind.IsNumeric() && other.kind.IsNumeric() {
		if v.kind == Int64 && other.kind == Int64 {
			return cmp.Compare(v.i, other.i), nil
		}
		a, _ := v.Float64()
		b, _ := other.Float64()
		return cmp.Compare(a, b), nil
	}
	if v.kind != other.kind {
		return 0, &UnsupportedOperationError{Op: "compare", Left: v.kind, Right: other.kind}
	}
	switch v.kind {
	case String:
		return cmp.Compare(v.s, other.s), nil
	case Bool:
		switch {
		case v.b == other.b:
			return 0, nil
		case v.b:
			return 1, nil
		default:
			return -1, nil
		}
	}
	return 0, nil
}

// String renders the value; Null renders as "None".
func (v Value) String() string {
	return v.format(DefaultNullMarker, -1)
}

// format renders the value with an explicit null marker and float
// precision (-1 for the shortest exact representation).
func (v Value) format(nullMarker string, precision int) string {
	switch v.kind {
	case Int64:
		return strconv.FormatInt(v.i, 10)
	case Float64:
		return strconv.FormatFloat(v.f, 'f', precision, 64)
	case String:
		return v.s
	case Bool:
		return strconv.FormatBool(v.b)
	case Null:
		return nullMarker
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
