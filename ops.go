package dfrs

// ============================================================================
// Binary Operations
// ============================================================================

// BinaryOp represents binary operation types
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpGt
	OpLt
	OpEq
	OpNeq
	OpGte
	OpLte
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// IsArithmetic reports whether op is +, -, * or /.
func (op BinaryOp) IsArithmetic() bool {
	return op == OpAdd || op == OpSub || op == OpMul || op == OpDiv
}

// IsComparison reports whether op produces a Bool from an ordering or
// equality test.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpGt, OpLt, OpEq, OpNeq, OpGte, OpLte:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op is "and" or "or".
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// resultKind applies the promotion rules to the kinds of two operands.
// A Null-kind operand adopts the kind of the other side.
func resultKind(op BinaryOp, left, right DType) (DType, error) {
	l, r := left, right
	if l == Null {
		l = r
	}
	if r == Null {
		r = l
	}
	unsupported := &UnsupportedOperationError{Op: op.String(), Left: left, Right: right}

	switch {
	case op.IsArithmetic():
		switch {
		case l == Null:
			return Null, nil
		case l == Int64 && r == Int64:
			return Int64, nil
		case l.IsNumeric() && r.IsNumeric():
			return Float64, nil
		case l == String && r == String && op == OpAdd:
			return String, nil
		}
	case op.IsComparison():
		switch {
		case l == Null:
			return Bool, nil
		case l.IsNumeric() && r.IsNumeric():
			return Bool, nil
		case l == r:
			return Bool, nil
		}
	case op.IsLogical():
		if (l == Bool || l == Null) && (r == Bool || r == Null) {
			return Bool, nil
		}
	}
	return Null, unsupported
}

// Apply evaluates left op right cell by cell. Operands must have the same
// length; cells are paired by position. The result is a new Series named
// after left and carrying left's index.
func Apply(left, right *Series, op BinaryOp) (*Series, error) {
	if left.Len() != right.Len() {
		return nil, &AlignmentError{Op: op, LeftLen: left.Len(), RightLen: right.Len()}
	}
	kind, err := resultKind(op, left.DType(), right.DType())
	if err != nil {
		return nil, err
	}

	col := evalColumns(left.Name(), left.col, right.col, op, kind)
	return &Series{col: col, index: left.index}, nil
}

// ApplyScalar evaluates s op scalar, broadcasting the scalar over every
// row. Strings are taken literally, not parsed; nil is Null.
func ApplyScalar(s *Series, op BinaryOp, scalar any) (*Series, error) {
	v, err := ValueOf(scalar)
	if err != nil {
		return nil, err
	}
	return Apply(s, &Series{col: broadcast(s.Name(), v, s.Len()), index: s.index}, op)
}

// broadcast repeats one value n times.
func broadcast(name string, v Value, n int) *Column {
	switch v.Kind() {
	case Int64:
		i, _ := v.Int64()
		data := make([]int64, n)
		for k := range data {
			data[k] = i
		}
		return &Column{name: name, dtype: Int64, length: n, ints: data}
	case Float64:
		f, _ := v.Float64()
		data := make([]float64, n)
		for k := range data {
			data[k] = f
		}
		return &Column{name: name, dtype: Float64, length: n, floats: data}
	case String:
		s, _ := v.Text()
		data := make([]string, n)
		for k := range data {
			data[k] = s
		}
		return &Column{name: name, dtype: String, length: n, strs: data}
	case Bool:
		b, _ := v.Bool()
		data := make([]bool, n)
		for k := range data {
			data[k] = b
		}
		return &Column{name: name, dtype: Bool, length: n, bools: data}
	default:
		return NewNullColumn(name, n)
	}
}

// Add returns s + other.
func (s *Series) Add(other *Series) (*Series, error) { return Apply(s, other, OpAdd) }

// Sub returns s - other.
func (s *Series) Sub(other *Series) (*Series, error) { return Apply(s, other, OpSub) }

// Mul returns s * other.
func (s *Series) Mul(other *Series) (*Series, error) { return Apply(s, other, OpMul) }

// Div returns s / other. Division by zero yields Null cells.
func (s *Series) Div(other *Series) (*Series, error) { return Apply(s, other, OpDiv) }

// Eq returns s == other. Null == Null is true.
func (s *Series) Eq(other *Series) (*Series, error) { return Apply(s, other, OpEq) }

// Neq returns s != other.
func (s *Series) Neq(other *Series) (*Series, error) { return Apply(s, other, OpNeq) }

// Lt returns s < other.
func (s *Series) Lt(other *Series) (*Series, error) { return Apply(s, other, OpLt) }

// Lte returns s <= other.
func (s *Series) Lte(other *Series) (*Series, error) { return Apply(s, other, OpLte) }

// Gt returns s > other.
func (s *Series) Gt(other *Series) (*Series, error) { return Apply(s, other, OpGt) }

// Gte returns s >= other.
func (s *Series) Gte(other *Series) (*Series, error) { return Apply(s, other, OpGte) }

// And returns the logical conjunction of two Bool series.
func (s *Series) And(other *Series) (*Series, error) { return Apply(s, other, OpAnd) }

// Or returns the logical disjunction of two Bool series.
func (s *Series) Or(other *Series) (*Series, error) { return Apply(s, other, OpOr) }

// AddScalar returns s + value for every element.
func (s *Series) AddScalar(value any) (*Series, error) { return ApplyScalar(s, OpAdd, value) }

// SubScalar returns s - value for every element.
func (s *Series) SubScalar(value any) (*Series, error) { return ApplyScalar(s, OpSub, value) }

// MulScalar returns s * value for every element.
func (s *Series) MulScalar(value any) (*Series, error) { return ApplyScalar(s, OpMul, value) }

// DivScalar returns s / value for every element.
func (s *Series) DivScalar(value any) (*Series, error) { return ApplyScalar(s, OpDiv, value) }

// EqScalar returns s == value for every element.
func (s *Series) EqScalar(value any) (*Series, error) { return ApplyScalar(s, OpEq, value) }

// GtScalar returns s > value for every element.
func (s *Series) GtScalar(value any) (*Series, error) { return ApplyScalar(s, OpGt, value) }

// LtScalar returns s < value for every element.
func (s *Series) LtScalar(value any) (*Series, error) { return ApplyScalar(s, OpLt, value) }
