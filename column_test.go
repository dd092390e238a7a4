package dfrs

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// ============================================================================
// Inference Tests
// ============================================================================

func TestNewColumn_Inference(t *testing.T) {
	tests := []struct {
		name   string
		raw    []any
		dtype  DType
		values []any
	}{
		{"int strings", []any{"1", "3", "5"}, Int64, []any{int64(1), int64(3), int64(5)}},
		{"padded ints", []any{" 7 ", "8"}, Int64, []any{int64(7), int64(8)}},
		{"int and float strings", []any{"1", "2.5"}, Float64, []any{1.0, 2.5}},
		{"go numbers", []any{1, 2.5}, Float64, []any{1.0, 2.5}},
		{"mixed text", []any{"1", "x"}, String, []any{"1", "x"}},
		{"number and text", []any{1, "a"}, String, []any{"1", "a"}},
		{"quoted number", []any{`"12"`, "3"}, String, []any{"12", "3"}},
		{"escaped quote", []any{`"say ""hi"""`}, String, []any{`say "hi"`}},
		{"not a float literal", []any{"inf", "1"}, String, []any{"inf", "1"}},
		{"bools", []any{true, false}, Bool, []any{true, false}},
		{"bool and int", []any{true, 1}, String, []any{"true", "1"}},
		{"null marker", []any{"", "2"}, Int64, []any{nil, int64(2)}},
		{"nil", []any{nil, 1.5}, Float64, []any{nil, 1.5}},
		{"all null", []any{nil, ""}, String, []any{nil, nil}},
		{"empty", []any{}, String, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := NewColumn("c", tt.raw)
			if err != nil {
				t.Fatalf("NewColumn failed: %v", err)
			}
			if col.DType() != tt.dtype {
				t.Errorf("DType() = %s, want %s", col.DType(), tt.dtype)
			}
			if col.Len() != len(tt.raw) {
				t.Errorf("Len() = %d, want %d", col.Len(), len(tt.raw))
			}
			if got := col.Values(); !reflect.DeepEqual(got, tt.values) {
				t.Errorf("Values() = %#v, want %#v", got, tt.values)
			}
		})
	}
}

func TestNewColumn_UnsupportedType(t *testing.T) {
	_, err := NewColumn("weird", []any{1, map[string]int{}})

	var tie *TypeInferenceError
	if !errors.As(err, &tie) {
		t.Fatalf("NewColumn error = %v, want *TypeInferenceError", err)
	}
	if tie.Column != "weird" {
		t.Errorf("TypeInferenceError.Column = %q, want %q", tie.Column, "weird")
	}
}

func TestNewColumnFromStrings_NullValues(t *testing.T) {
	col := NewColumnFromStrings("x", []string{"1", "NA", "3"}, []string{"NA"})

	if col.DType() != Int64 {
		t.Errorf("DType() = %s, want Int64", col.DType())
	}
	if col.NullCount() != 1 || col.IsValid(1) {
		t.Errorf("NullCount() = %d, IsValid(1) = %v, want 1 and false", col.NullCount(), col.IsValid(1))
	}
}

func TestNewColumnWithNulls(t *testing.T) {
	col, err := NewColumnFloat64WithNulls("f", []float64{1, 2, 3}, []bool{true, false, true})
	if err != nil {
		t.Fatalf("NewColumnFloat64WithNulls failed: %v", err)
	}
	if col.NullCount() != 1 {
		t.Errorf("NullCount() = %d, want 1", col.NullCount())
	}

	col, err = NewColumnInt64WithNulls("i", []int64{1, 2}, []bool{true, true})
	if err != nil {
		t.Fatalf("NewColumnInt64WithNulls failed: %v", err)
	}
	if col.valid != nil {
		t.Error("an all-valid mask should be dropped")
	}

	_, err = NewColumnStringWithNulls("s", []string{"a"}, []bool{true, false})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mismatched mask error = %v, want ErrShapeMismatch", err)
	}
}

// ============================================================================
// Access Tests
// ============================================================================

func TestColumn_Get(t *testing.T) {
	col := NewColumnString("s", []string{"a", "b"})

	v, err := col.Get(1)
	if err != nil {
		t.Fatalf("Get(1) failed: %v", err)
	}
	if v != Str("b") {
		t.Errorf("Get(1) = %v, want b", v)
	}

	for _, i := range []int{-1, 2} {
		var oor *IndexOutOfRangeError
		if _, err := col.Get(i); !errors.As(err, &oor) || oor.Len != 2 {
			t.Errorf("Get(%d) error = %v, want *IndexOutOfRangeError with Len 2", i, err)
		}
	}
}

func TestColumn_Set(t *testing.T) {
	col := NewColumnInt64("i", []int64{1, 2, 3})

	if err := col.Set(0, Int(10)); err != nil {
		t.Fatalf("Set(0, 10) failed: %v", err)
	}
	if v, _ := col.Get(0); v != Int(10) {
		t.Errorf("Get(0) = %v, want 10", v)
	}

	if err := col.Set(1, NullValue()); err != nil {
		t.Fatalf("Set(1, Null) failed: %v", err)
	}
	if col.NullCount() != 1 {
		t.Errorf("NullCount() = %d, want 1", col.NullCount())
	}

	if err := col.Set(1, Int(5)); err != nil {
		t.Fatalf("Set(1, 5) failed: %v", err)
	}
	if !col.IsValid(1) {
		t.Error("cell 1 should be valid again")
	}

	var tme *TypeMismatchError
	if err := col.Set(2, Float(1.5)); !errors.As(err, &tme) {
		t.Errorf("Set(Float) error = %v, want *TypeMismatchError", err)
	} else if tme.Want != Int64 || tme.Got != Float64 {
		t.Errorf("TypeMismatchError = %+v, want Int64/Float64", tme)
	}
	if v, _ := col.Get(2); v != Int(3) {
		t.Errorf("failed Set changed the cell to %v", v)
	}

	if err := col.Set(3, Int(1)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Set(3) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestColumn_SetNullKind(t *testing.T) {
	col := NewNullColumn("n", 2)

	if err := col.Set(0, NullValue()); err != nil {
		t.Errorf("Set(Null) on a Null column failed: %v", err)
	}
	if err := col.Set(0, Int(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Set(Int) on a Null column error = %v, want ErrTypeMismatch", err)
	}
}

// ============================================================================
// Copy and Cast Tests
// ============================================================================

func TestColumn_CloneIsIndependent(t *testing.T) {
	col := NewColumnString("s", []string{"a", "b"})
	clone := col.Clone()

	if err := clone.Set(0, Str("z")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := col.Get(0); v != Str("a") {
		t.Errorf("original changed to %v after writing the clone", v)
	}

	renamed := col.Rename("t")
	if renamed.Name() != "t" || col.Name() != "s" {
		t.Errorf("Rename: got %q, original %q", renamed.Name(), col.Name())
	}
}

func TestColumn_Cast(t *testing.T) {
	ints := NewColumnInt64("i", []int64{1, 2})
	floats, err := ints.Cast(Float64)
	if err != nil {
		t.Fatalf("Cast(Float64) failed: %v", err)
	}
	if got := floats.Values(); !reflect.DeepEqual(got, []any{1.0, 2.0}) {
		t.Errorf("Cast(Float64) = %v", got)
	}

	text, err := floats.Cast(String)
	if err != nil {
		t.Fatalf("Cast(String) failed: %v", err)
	}
	if got := text.Values(); !reflect.DeepEqual(got, []any{"1", "2"}) {
		t.Errorf("Cast(String) = %v", got)
	}

	back, err := text.Cast(Int64)
	if err != nil {
		t.Fatalf("Cast(Int64) failed: %v", err)
	}
	if got := back.Values(); !reflect.DeepEqual(got, []any{int64(1), int64(2)}) {
		t.Errorf("Cast(Int64) = %v", got)
	}

	if _, err := NewColumnFloat64("f", []float64{1.5}).Cast(Int64); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Cast(1.5 -> Int64) error = %v, want ErrTypeMismatch", err)
	}
	for _, f := range []float64{1e300, -1e300, math.MaxInt64, math.Inf(1), math.NaN()} {
		if _, err := NewColumnFloat64("f", []float64{f}).Cast(Int64); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("Cast(%v -> Int64) error = %v, want ErrTypeMismatch", f, err)
		}
	}
	edge, err := NewColumnFloat64("f", []float64{math.MinInt64, -3}).Cast(Int64)
	if err != nil {
		t.Fatalf("Cast(MinInt64 -> Int64) failed: %v", err)
	}
	if got := edge.Values(); !reflect.DeepEqual(got, []any{int64(math.MinInt64), int64(-3)}) {
		t.Errorf("Cast(MinInt64 -> Int64) = %v", got)
	}
	if _, err := NewColumnString("s", []string{"abc"}).Cast(Float64); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Cast(abc -> Float64) error = %v, want ErrTypeMismatch", err)
	}

	nulls, err := NewNullColumn("n", 3).Cast(Int64)
	if err != nil {
		t.Fatalf("Cast(Null -> Int64) failed: %v", err)
	}
	if nulls.DType() != Int64 || nulls.NullCount() != 3 {
		t.Errorf("Cast(Null -> Int64) = %s with %d nulls", nulls.DType(), nulls.NullCount())
	}
}
