package dfrs

import "cmp"

// evalColumns runs the kernel for op over two equally long columns.
// kind is the result kind already validated by resultKind.
func evalColumns(name string, l, r *Column, op BinaryOp, kind DType) *Column {
	n := l.Len()
	if kind == Null {
		return NewNullColumn(name, n)
	}

	out := &Column{name: name, dtype: kind, length: n}
	valid := make([]bool, n)

	switch {
	case op.IsArithmetic():
		switch kind {
		case Int64:
			out.ints = make([]int64, n)
			ParallelFor(n, arithKernel(op, l.ints, r.ints, l, r, out.ints, valid))
		case Float64:
			out.floats = make([]float64, n)
			a, b := asFloats(l), asFloats(r)
			defer a.release()
			defer b.release()
			ParallelFor(n, arithKernel(op, a.data, b.data, l, r, out.floats, valid))
		case String:
			out.strs = make([]string, n)
			ParallelFor(n, concatKernel(l.strs, r.strs, l, r, out.strs, valid))
		}

	case op.IsComparison():
		out.bools = make([]bool, n)
		switch operandKind(l.DType(), r.DType()) {
		case Float64:
			a, b := asFloats(l), asFloats(r)
			defer a.release()
			defer b.release()
			ParallelFor(n, compareKernel(op, a.data, b.data, l, r, out.bools, valid))
		case String:
			ParallelFor(n, compareKernel(op, l.strs, r.strs, l, r, out.bools, valid))
		case Bool:
			a, b := boolsAsInts(l), boolsAsInts(r)
			defer a.release()
			defer b.release()
			ParallelFor(n, compareKernel(op, a.data, b.data, l, r, out.bools, valid))
		default:
			ParallelFor(n, compareKernel(op, l.ints, r.ints, l, r, out.bools, valid))
		}

	case op.IsLogical():
		out.bools = make([]bool, n)
		ParallelFor(n, logicalKernel(op, l, r, out.bools, valid))
	}

	out.valid = finishValidity(valid)
	return out
}

// operandKind is the kind both sides of a comparison are read as.
func operandKind(left, right DType) DType {
	if left == Null {
		left = right
	}
	if right == Null {
		right = left
	}
	if left == Int64 && right == Int64 {
		return Int64
	}
	if left.IsNumeric() && right.IsNumeric() {
		return Float64
	}
	return left
}

func arithKernel[T int64 | float64](op BinaryOp, a, b []T, l, r *Column, out []T, valid []bool) func(start, end int) {
	return func(start, end int) {
		for i := start; i < end; i++ {
			if !l.IsValid(i) || !r.IsValid(i) {
				continue
			}
			x, y := a[i], b[i]
			switch op {
			case OpAdd:
				out[i] = x + y
			case OpSub:
				out[i] = x - y
			case OpMul:
				out[i] = x * y
			case OpDiv:
				if y == 0 {
					continue
				}
				out[i] = x / y
			}
			valid[i] = true
		}
	}
}

func concatKernel(a, b []string, l, r *Column, out []string, valid []bool) func(start, end int) {
	return func(start, end int) {
		for i := start; i < end; i++ {
			if !l.IsValid(i) || !r.IsValid(i) {
				continue
			}
			out[i] = a[i] + b[i]
			valid[i] = true
		}
	}
}

// compareKernel applies the comparison Null policy: == and != are total
// (Null == Null), ordering against Null yields Null.
func compareKernel[T cmp.Ordered](op BinaryOp, a, b []T, l, r *Column, out []bool, valid []bool) func(start, end int) {
	return func(start, end int) {
		for i := start; i < end; i++ {
			lok, rok := l.IsValid(i), r.IsValid(i)
			if !lok || !rok {
				switch op {
				case OpEq:
					out[i], valid[i] = !lok && !rok, true
				case OpNeq:
					out[i], valid[i] = lok != rok, true
				}
				continue
			}
			out[i] = compareOrdered(op, a[i], b[i])
			valid[i] = true
		}
	}
}

func compareOrdered[T cmp.Ordered](op BinaryOp, x, y T) bool {
	switch op {
	case OpEq:
		return x == y
	case OpNeq:
		return x != y
	case OpLt:
		return x < y
	case OpLte:
		return x <= y
	case OpGt:
		return x > y
	case OpGte:
		return x >= y
	default:
		return false
	}
}

func logicalKernel(op BinaryOp, l, r *Column, out []bool, valid []bool) func(start, end int) {
	return func(start, end int) {
		for i := start; i < end; i++ {
			if !l.IsValid(i) || !r.IsValid(i) {
				continue
			}
			if op == OpAnd {
				out[i] = l.bools[i] && r.bools[i]
			} else {
				out[i] = l.bools[i] || r.bools[i]
			}
			valid[i] = true
		}
	}
}

// asFloats returns numeric data as float64. Float64 columns are used
// directly; Int64 columns are widened into pooled scratch space.
func asFloats(c *Column) *scratch[float64] {
	switch c.dtype {
	case Float64:
		return &scratch[float64]{data: c.floats}
	case Int64:
		s := getFloat64Scratch(len(c.ints))
		for i, v := range c.ints {
			s.data[i] = float64(v)
		}
		return s
	default:
		return &scratch[float64]{}
	}
}

// boolsAsInts orders false before true.
func boolsAsInts(c *Column) *scratch[int64] {
	if c.dtype != Bool {
		return &scratch[int64]{}
	}
	s := getInt64Scratch(len(c.bools))
	for i, b := range c.bools {
		s.data[i] = 0
		if b {
			s.data[i] = 1
		}
	}
	return s
}

// finishValidity drops a mask in which every cell is valid.
func finishValidity(valid []bool) []bool {
	for _, ok := range valid {
		if !ok {
			return valid
		}
	}
	return nil
}
