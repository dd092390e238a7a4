package dfrs

// Index holds the row labels of a Series or DataFrame. A range index has
// labels 0..n-1 and stores nothing but its length.
type Index struct {
	n      int
	labels []Value
	lookup map[Value]int
}

// NewRangeIndex creates the default positional index of length n.
func NewRangeIndex(n int) *Index {
	return &Index{n: n}
}

// NewIndex creates an index from explicit labels. When a label repeats,
// lookups resolve to its first position.
func NewIndex(labels []any) (*Index, error) {
	values := make([]Value, len(labels))
	for i, l := range labels {
		v, err := ValueOf(l)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return newIndexFromValues(values), nil
}

func newIndexFromValues(values []Value) *Index {
	lookup := make(map[Value]int, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		lookup[labelKey(values[i])] = i
	}
	return &Index{n: len(values), labels: values, lookup: lookup}
}

// labelKey normalizes integral floats so Float(1) and Int(1) find the same row.
func labelKey(v Value) Value {
	if f, ok := v.Float64(); ok && v.Kind() == Float64 && f == float64(int64(f)) {
		return Int(int64(f))
	}
	return v
}

// Len returns the number of labels.
func (ix *Index) Len() int { return ix.n }

// IsRange reports whether the index is the default positional range.
func (ix *Index) IsRange() bool { return ix.labels == nil }

// Label returns the label at position i.
func (ix *Index) Label(i int) (Value, error) {
	if i < 0 || i >= ix.n {
		return NullValue(), &IndexOutOfRangeError{Index: i, Len: ix.n}
	}
	if ix.labels == nil {
		return Int(int64(i)), nil
	}
	return ix.labels[i], nil
}

// Position resolves a label to its row position.
func (ix *Index) Position(label Value) (int, bool) {
	if ix.labels == nil {
		i, ok := label.Int64()
		if !ok {
			f, isFloat := label.Float64()
			if !isFloat || label.Kind() != Float64 || f != float64(int64(f)) {
				return -1, false
			}
			i = int64(f)
		}
		if i < 0 || i >= int64(ix.n) {
			return -1, false
		}
		return int(i), true
	}
	pos, ok := ix.lookup[labelKey(label)]
	return pos, ok
}

// Labels returns all labels as Values.
func (ix *Index) Labels() []Value {
	out := make([]Value, ix.n)
	for i := range out {
		out[i], _ = ix.Label(i)
	}
	return out
}

// slice returns the sub-index [start, end). A sliced range index keeps its
// original labels, so it is stored explicitly unless start is 0.
func (ix *Index) slice(start, end int) *Index {
	if ix.labels == nil && start == 0 {
		return NewRangeIndex(end)
	}
	values := make([]Value, 0, end-start)
	for i := start; i < end; i++ {
		v, _ := ix.Label(i)
		values = append(values, v)
	}
	return newIndexFromValues(values)
}
