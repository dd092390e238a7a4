package dfrs

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrTypeInference        = errors.New("type inference failed")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrKeyNotFound          = errors.New("key not found")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrAlignment            = errors.New("operands not aligned")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrMalformedRow         = errors.New("malformed row")
	ErrSchema               = errors.New("invalid schema")
)

// TypeInferenceError is returned when raw values cannot be reduced to one
// column kind, which only happens for Go types the engine does not model.
type TypeInferenceError struct {
	Column string
	Value  any
}

func (e *TypeInferenceError) Error() string {
	return fmt.Sprintf("column %q: cannot infer type of %T value %v", e.Column, e.Value, e.Value)
}

func (e *TypeInferenceError) Is(target error) bool { return target == ErrTypeInference }

// IndexOutOfRangeError represents a positional access outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// TypeMismatchError represents a value whose kind does not fit a column.
type TypeMismatchError struct {
	Column string
	Want   DType
	Got    DType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q: cannot store %s value in %s column", e.Column, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// KeyNotFoundError represents a missing column name or row label.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return "key not found: " + e.Key
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// ShapeMismatchError represents a length disagreement between a column
// and the frame (or index) it is placed in.
type ShapeMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("shape mismatch: expected length %d, got %d", e.Want, e.Got)
	}
	return fmt.Sprintf("shape mismatch for %q: expected length %d, got %d", e.Name, e.Want, e.Got)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// AlignmentError is returned when the operands of a binary operation have
// different lengths.
type AlignmentError struct {
	Op       BinaryOp
	LeftLen  int
	RightLen int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("cannot align operands of %s: lengths %d and %d", e.Op, e.LeftLen, e.RightLen)
}

func (e *AlignmentError) Is(target error) bool { return target == ErrAlignment }

// UnsupportedOperationError is returned when an operator is not defined
// for the kinds of its operands.
type UnsupportedOperationError struct {
	Op    string
	Left  DType
	Right DType
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s %s %s", e.Left, e.Op, e.Right)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// MalformedRowError represents a delimited-text line whose field count
// does not match the header. Line is 1-based.
type MalformedRowError struct {
	Line   int
	Got    int
	Want   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, e.Want, e.Got)
}

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

// SchemaError represents a schema problem such as a duplicate column name
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return e.Message
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
