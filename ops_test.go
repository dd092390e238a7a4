package dfrs

import (
	"errors"
	"reflect"
	"testing"
)

func mustSeries(t *testing.T, name string, values ...any) *Series {
	t.Helper()
	s, err := NewSeries(name, values)
	if err != nil {
		t.Fatalf("NewSeries(%q) failed: %v", name, err)
	}
	return s
}

// ============================================================================
// Alignment and Promotion Tests
// ============================================================================

func TestApply_Alignment(t *testing.T) {
	left := mustSeries(t, "l", 1, 2, 3)
	right := mustSeries(t, "r", 4, 5)

	_, err := left.Add(right)

	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("Add error = %v, want *AlignmentError", err)
	}
	if ae.LeftLen != 3 || ae.RightLen != 2 || ae.Op != OpAdd {
		t.Errorf("AlignmentError = %+v", ae)
	}
}

func TestApply_Promotion(t *testing.T) {
	tests := []struct {
		name   string
		left   []any
		right  []any
		op     BinaryOp
		dtype  DType
		values []any
	}{
		{"int + int", []any{1, 2}, []any{3, 4}, OpAdd, Int64, []any{int64(4), int64(6)}},
		{"int + float", []any{1, 2}, []any{1.5, 2.5}, OpAdd, Float64, []any{2.5, 4.5}},
		{"float - int", []any{1.5, 2.5}, []any{1, 1}, OpSub, Float64, []any{0.5, 1.5}},
		{"int * int", []any{3, -2}, []any{4, 5}, OpMul, Int64, []any{int64(12), int64(-10)}},
		{"int / int truncates", []any{7, -7}, []any{2, 2}, OpDiv, Int64, []any{int64(3), int64(-3)}},
		{"float / int", []any{7.0, 1.0}, []any{2, 4}, OpDiv, Float64, []any{3.5, 0.25}},
		{"string concat", []any{"a", "b"}, []any{"x", "y"}, OpAdd, String, []any{"ax", "by"}},
		{"int < float", []any{1, 3}, []any{1.5, 2.5}, OpLt, Bool, []any{true, false}},
		{"string ==", []any{"a", "b"}, []any{"a", "c"}, OpEq, Bool, []any{true, false}},
		{"string >=", []any{"b", "a"}, []any{"a", "b"}, OpGte, Bool, []any{true, false}},
		{"bool and", []any{true, true}, []any{true, false}, OpAnd, Bool, []any{true, false}},
		{"bool or", []any{false, false}, []any{true, false}, OpOr, Bool, []any{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Apply(mustSeries(t, "l", tt.left...), mustSeries(t, "r", tt.right...), tt.op)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if result.DType() != tt.dtype {
				t.Errorf("DType() = %s, want %s", result.DType(), tt.dtype)
			}
			if got := result.Values(); !reflect.DeepEqual(got, tt.values) {
				t.Errorf("Values() = %#v, want %#v", got, tt.values)
			}
			if result.Name() != "l" {
				t.Errorf("Name() = %q, want the left operand's name", result.Name())
			}
		})
	}
}

func TestApply_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		left  []any
		right []any
		op    BinaryOp
	}{
		{"string - string", []any{"a"}, []any{"b"}, OpSub},
		{"string * int", []any{"a"}, []any{2}, OpMul},
		{"string + int", []any{"a"}, []any{1}, OpAdd},
		{"string < float", []any{"a"}, []any{1.5}, OpLt},
		{"bool + bool", []any{true}, []any{false}, OpAdd},
		{"int and int", []any{1}, []any{0}, OpAnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(mustSeries(t, "l", tt.left...), mustSeries(t, "r", tt.right...), tt.op)
			if !errors.Is(err, ErrUnsupportedOperation) {
				t.Errorf("Apply error = %v, want ErrUnsupportedOperation", err)
			}
		})
	}
}

// ============================================================================
// Null Policy Tests
// ============================================================================

func TestApply_DivisionByZero(t *testing.T) {
	result, err := mustSeries(t, "a", 10).Div(mustSeries(t, "b", 0))
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if result.Len() != 1 || result.NullCount() != 1 {
		t.Errorf("10 / 0 = %v, want one Null cell", result.Values())
	}

	result, err = mustSeries(t, "a", 1.0, 4.0).Div(mustSeries(t, "b", 0.0, 2.0))
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}
	if got := result.Values(); !reflect.DeepEqual(got, []any{nil, 2.0}) {
		t.Errorf("[1, 4] / [0, 2] = %v, want [nil 2]", got)
	}
}

func TestApply_NullPropagation(t *testing.T) {
	left := mustSeries(t, "l", 1, nil, 3)
	right := mustSeries(t, "r", 1, 2, nil)

	sum, err := left.Add(right)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := sum.Values(); !reflect.DeepEqual(got, []any{int64(2), nil, nil}) {
		t.Errorf("Add = %v, want [2 nil nil]", got)
	}

	gt, err := left.Gt(right)
	if err != nil {
		t.Fatalf("Gt failed: %v", err)
	}
	if got := gt.Values(); !reflect.DeepEqual(got, []any{false, nil, nil}) {
		t.Errorf("Gt = %v, want [false nil nil]", got)
	}
}

func TestApply_NullEquality(t *testing.T) {
	left := mustSeries(t, "l", nil, nil, 1, 2)
	right := mustSeries(t, "r", nil, 1, nil, 2)

	eq, err := left.Eq(right)
	if err != nil {
		t.Fatalf("Eq failed: %v", err)
	}
	if got := eq.Values(); !reflect.DeepEqual(got, []any{true, false, false, true}) {
		t.Errorf("Eq = %v, want [true false false true]", got)
	}

	neq, err := left.Neq(right)
	if err != nil {
		t.Fatalf("Neq failed: %v", err)
	}
	if got := neq.Values(); !reflect.DeepEqual(got, []any{false, true, true, false}) {
		t.Errorf("Neq = %v, want [false true true false]", got)
	}
}

func TestApply_NullKindOperand(t *testing.T) {
	nulls := NewSeriesFromColumn(NewNullColumn("n", 2))

	result, err := mustSeries(t, "s", "a", "b").Add(nulls)
	if err != nil {
		t.Fatalf("String + Null failed: %v", err)
	}
	if result.DType() != String || result.NullCount() != 2 {
		t.Errorf("String + Null = %s with %d nulls", result.DType(), result.NullCount())
	}

	result, err = nulls.Add(nulls)
	if err != nil {
		t.Fatalf("Null + Null failed: %v", err)
	}
	if result.DType() != Null {
		t.Errorf("Null + Null DType = %s, want Null", result.DType())
	}

	result, err = nulls.Eq(nulls)
	if err != nil {
		t.Fatalf("Null == Null failed: %v", err)
	}
	if got := result.Values(); !reflect.DeepEqual(got, []any{true, true}) {
		t.Errorf("Null == Null = %v, want [true true]", got)
	}
}

// ============================================================================
// Scalar and Frame Tests
// ============================================================================

func TestApplyScalar(t *testing.T) {
	s := mustSeries(t, "x", 1, 2, 3)

	doubled, err := s.MulScalar(2)
	if err != nil {
		t.Fatalf("MulScalar failed: %v", err)
	}
	if !reflect.DeepEqual(doubled.Int64(), []int64{2, 4, 6}) {
		t.Errorf("MulScalar(2) = %v", doubled.Values())
	}

	halved, err := s.DivScalar(2.0)
	if err != nil {
		t.Fatalf("DivScalar failed: %v", err)
	}
	if !reflect.DeepEqual(halved.Float64(), []float64{0.5, 1, 1.5}) {
		t.Errorf("DivScalar(2.0) = %v", halved.Values())
	}

	mask, err := s.GtScalar(1)
	if err != nil {
		t.Fatalf("GtScalar failed: %v", err)
	}
	if !reflect.DeepEqual(mask.Bools(), []bool{false, true, true}) {
		t.Errorf("GtScalar(1) = %v", mask.Values())
	}

	if _, err := s.AddScalar("1"); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("AddScalar(\"1\") error = %v, want ErrUnsupportedOperation", err)
	}

	withNull, err := s.AddScalar(nil)
	if err != nil {
		t.Fatalf("AddScalar(nil) failed: %v", err)
	}
	if withNull.NullCount() != 3 {
		t.Errorf("AddScalar(nil) NullCount = %d, want 3", withNull.NullCount())
	}
}

func TestApply_FrameColumns(t *testing.T) {
	df := newABFrame(t)
	a, _ := df.Column("a")
	b, _ := df.Column("b")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !reflect.DeepEqual(sum.Int64(), []int64{6, 8, 10, 12}) {
		t.Errorf("a + b = %v, want [6 8 10 12]", sum.Int64())
	}
	if sum.Name() != "a" {
		t.Errorf("Name() = %q, want a", sum.Name())
	}

	// the result is standalone
	if err := sum.SetAt(0, Int(0)); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if v, _ := a.At(0); v != Int(1) {
		t.Errorf("writing the result changed the operand to %v", v)
	}
}

func TestApply_KeepsLeftIndex(t *testing.T) {
	left, err := NewSeriesWithIndex("l", []any{1, 2}, []any{"x", "y"})
	if err != nil {
		t.Fatalf("NewSeriesWithIndex failed: %v", err)
	}
	result, err := left.Add(mustSeries(t, "r", 10, 20))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if v, err := result.Get("y"); err != nil || v != Int(22) {
		t.Errorf("Get(y) = %v, %v, want 22", v, err)
	}
}

// ============================================================================
// Parallel Path Tests
// ============================================================================

func TestApply_ParallelMatchesSequential(t *testing.T) {
	n := 10000
	left := make([]int64, n)
	right := make([]float64, n)
	for i := range left {
		left[i] = int64(i)
		right[i] = float64(i%7) - 3
	}
	l := NewSeriesInt64("l", left)
	r := NewSeriesFloat64("r", right)

	original := GetParallelConfig()
	defer SetParallelConfig(original)

	SetParallelConfig(&ParallelConfig{Enabled: false})
	sequential, err := l.Div(r)
	if err != nil {
		t.Fatalf("sequential Div failed: %v", err)
	}

	SetParallelConfig(&ParallelConfig{MinRowsForParallel: 100, MorselSize: 64, MaxWorkers: 4, Enabled: true})
	parallel, err := l.Div(r)
	if err != nil {
		t.Fatalf("parallel Div failed: %v", err)
	}

	if !reflect.DeepEqual(sequential.Values(), parallel.Values()) {
		t.Error("parallel and sequential results differ")
	}
	if parallel.NullCount() == 0 {
		t.Error("divisions by zero should yield Null cells")
	}
}

func TestBinaryOpString(t *testing.T) {
	if OpAdd.String() != "+" || OpNeq.String() != "!=" || OpAnd.String() != "and" {
		t.Error("BinaryOp.String() returned an unexpected symbol")
	}
	if !OpDiv.IsArithmetic() || OpDiv.IsComparison() || !OpLte.IsComparison() || !OpOr.IsLogical() {
		t.Error("BinaryOp classification is wrong")
	}
}
