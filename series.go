package dfrs

// Series is a labeled one-dimensional sequence: one Column plus an Index.
// A Series returned by DataFrame.Column shares the frame's column and
// index, so cell writes through SetAt are visible in the frame.
type Series struct {
	col   *Column
	index *Index
}

// ============================================================================
// Creation
// ============================================================================

// NewSeries creates a standalone Series from raw values with a range index.
// The element kind is inferred the same way NewColumn does.
func NewSeries(name string, values []any) (*Series, error) {
	col, err := NewColumn(name, values)
	if err != nil {
		return nil, err
	}
	return &Series{col: col, index: NewRangeIndex(col.Len())}, nil
}

// NewSeriesWithIndex creates a standalone Series with explicit row labels.
func NewSeriesWithIndex(name string, values []any, labels []any) (*Series, error) {
	if len(values) != len(labels) {
		return nil, &ShapeMismatchError{Name: name, Want: len(values), Got: len(labels)}
	}
	col, err := NewColumn(name, values)
	if err != nil {
		return nil, err
	}
	index, err := NewIndex(labels)
	if err != nil {
		return nil, err
	}
	return &Series{col: col, index: index}, nil
}

// NewSeriesFromColumn wraps a column with a range index.
func NewSeriesFromColumn(col *Column) *Series {
	return &Series{col: col, index: NewRangeIndex(col.Len())}
}

// NewSeriesInt64 creates an Int64 Series from a Go slice.
func NewSeriesInt64(name string, data []int64) *Series {
	return NewSeriesFromColumn(NewColumnInt64(name, data))
}

// NewSeriesFloat64 creates a Float64 Series from a Go slice.
func NewSeriesFloat64(name string, data []float64) *Series {
	return NewSeriesFromColumn(NewColumnFloat64(name, data))
}

// NewSeriesString creates a String Series from a Go slice.
func NewSeriesString(name string, data []string) *Series {
	return NewSeriesFromColumn(NewColumnString(name, data))
}

// NewSeriesBool creates a Bool Series from a Go slice.
func NewSeriesBool(name string, data []bool) *Series {
	return NewSeriesFromColumn(NewColumnBool(name, data))
}

// ============================================================================
// Access
// ============================================================================

// Name returns the series name.
func (s *Series) Name() string { return s.col.Name() }

// DType returns the data type.
func (s *Series) DType() DType { return s.col.DType() }

// Len returns the number of elements.
func (s *Series) Len() int { return s.col.Len() }

// IsEmpty returns true if the series has no elements.
func (s *Series) IsEmpty() bool { return s.col.Len() == 0 }

// NullCount returns the number of null values.
func (s *Series) NullCount() int { return s.col.NullCount() }

// HasNulls returns true if the series has any null values.
func (s *Series) HasNulls() bool { return s.col.NullCount() > 0 }

// Index returns the row labels.
func (s *Series) Index() *Index { return s.index }

// Column returns the underlying column.
func (s *Series) Column() *Column { return s.col }

// Get looks up an element by row label. For a range index labels are
// positions, so Get(2) and At(2) agree.
func (s *Series) Get(label any) (Value, error) {
	key, err := ValueOf(label)
	if err != nil {
		return NullValue(), err
	}
	pos, ok := s.index.Position(key)
	if !ok {
		return NullValue(), &KeyNotFoundError{Key: key.String()}
	}
	return s.col.at(pos), nil
}

// At returns the element at a position, ignoring labels.
func (s *Series) At(pos int) (Value, error) {
	return s.col.Get(pos)
}

// SetAt replaces the element at a position.
func (s *Series) SetAt(pos int, v Value) error {
	return s.col.Set(pos, v)
}

// IsValid returns true if the element at position i is not null.
func (s *Series) IsValid(i int) bool { return s.col.IsValid(i) }

// Values returns the elements as plain Go values, nil for Null.
func (s *Series) Values() []any { return s.col.Values() }

// Int64 returns a copy of the data of an Int64 series, nil otherwise.
// Null cells read as 0.
func (s *Series) Int64() []int64 {
	if s.col.dtype != Int64 {
		return nil
	}
	return append([]int64{}, s.col.ints...)
}

// Float64 returns a copy of the data of a Float64 series, nil otherwise.
func (s *Series) Float64() []float64 {
	if s.col.dtype != Float64 {
		return nil
	}
	return append([]float64{}, s.col.floats...)
}

// Strings returns a copy of the data of a String series, nil otherwise.
func (s *Series) Strings() []string {
	if s.col.dtype != String {
		return nil
	}
	return append([]string{}, s.col.strs...)
}

// Bools returns a copy of the data of a Bool series, nil otherwise.
func (s *Series) Bools() []bool {
	if s.col.dtype != Bool {
		return nil
	}
	return append([]bool{}, s.col.bools...)
}

// ============================================================================
// Derived series
// ============================================================================

// Rename returns a copy of the series with a new name.
func (s *Series) Rename(name string) *Series {
	return &Series{col: s.col.Rename(name), index: s.index}
}

// Cast returns a copy of the series converted to dtype.
func (s *Series) Cast(dtype DType) (*Series, error) {
	col, err := s.col.Cast(dtype)
	if err != nil {
		return nil, err
	}
	return &Series{col: col, index: s.index}, nil
}

// Slice returns elements from start to end (exclusive), clamped to bounds.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if start > end {
		start = end
	}
	return &Series{col: s.col.slice(start, end), index: s.index.slice(start, end)}
}

// Head returns the first n elements.
func (s *Series) Head(n int) *Series {
	if n < 0 {
		n = 0
	}
	return s.Slice(0, n)
}

// Tail returns the last n elements.
func (s *Series) Tail(n int) *Series {
	if n < 0 {
		n = 0
	}
	return s.Slice(s.Len()-n, s.Len())
}

// String renders the series with the default display configuration.
func (s *Series) String() string {
	return SeriesStringWithConfig(s, DefaultDisplayConfig())
}

// StringWithConfig renders the series with an explicit configuration.
func (s *Series) StringWithConfig(cfg DisplayConfig) string {
	return SeriesStringWithConfig(s, cfg)
}
