package dfrs

import (
	"slices"
)

// DataFrame is an ordered set of equally long named columns that share
// one row index.
type DataFrame struct {
	columns []*Column
	lookup  map[string]int // column name -> position in columns
	index   *Index
}

// ColumnSpec is one entry of the ordered name -> raw values mapping
// accepted by FromColumns.
type ColumnSpec struct {
	Name   string
	Values []any
}

// Col is shorthand for building a ColumnSpec.
func Col(name string, values ...any) ColumnSpec {
	return ColumnSpec{Name: name, Values: values}
}

// ============================================================================
// Creation
// ============================================================================

// NewDataFrame creates a DataFrame from typed Series. All series must have
// the same length; the row index is positional. nil entries are skipped.
// Columns are copied, so later writes through the Series do not reach the
// frame.
func NewDataFrame(series ...*Series) (*DataFrame, error) {
	df := emptyDataFrame()

	height := -1
	for _, s := range series {
		if s == nil {
			continue
		}
		if height < 0 {
			height = s.Len()
		}
		if s.Len() != height {
			return nil, &ShapeMismatchError{Name: s.Name(), Want: height, Got: s.Len()}
		}
		if err := df.appendColumn(s.col.Clone()); err != nil {
			return nil, err
		}
	}
	if height > 0 {
		df.index = NewRangeIndex(height)
	}
	return df, nil
}

// FromColumns creates a DataFrame from an ordered list of name -> raw
// values pairs, inferring each column's kind.
func FromColumns(specs ...ColumnSpec) (*DataFrame, error) {
	df := emptyDataFrame()
	if len(specs) == 0 {
		return df, nil
	}

	height := len(specs[0].Values)
	for _, spec := range specs {
		if len(spec.Values) != height {
			return nil, &ShapeMismatchError{Name: spec.Name, Want: height, Got: len(spec.Values)}
		}
		col, err := NewColumn(spec.Name, spec.Values)
		if err != nil {
			return nil, err
		}
		if err := df.appendColumn(col); err != nil {
			return nil, err
		}
	}
	df.index = NewRangeIndex(height)
	return df, nil
}

// FromMap creates a DataFrame from a map of raw value slices. Go maps are
// unordered, so columns are placed in name order.
func FromMap(data map[string][]any) (*DataFrame, error) {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	slices.Sort(names)

	specs := make([]ColumnSpec, len(names))
	for i, name := range names {
		specs[i] = ColumnSpec{Name: name, Values: data[name]}
	}
	return FromColumns(specs...)
}

func emptyDataFrame() *DataFrame {
	return &DataFrame{
		lookup: make(map[string]int),
		index:  NewRangeIndex(0),
	}
}

func (df *DataFrame) appendColumn(col *Column) error {
	if col.Name() == "" {
		return &SchemaError{Message: "column name must not be empty"}
	}
	if _, exists := df.lookup[col.Name()]; exists {
		return &SchemaError{Message: "duplicate column name: " + col.Name()}
	}
	df.lookup[col.Name()] = len(df.columns)
	df.columns = append(df.columns, col)
	return nil
}

// ============================================================================
// Access
// ============================================================================

// Column returns the named column as a Series sharing the frame's column
// and row index.
func (df *DataFrame) Column(name string) (*Series, error) {
	pos, ok := df.lookup[name]
	if !ok {
		return nil, &KeyNotFoundError{Key: name}
	}
	return &Series{col: df.columns[pos], index: df.index}, nil
}

// ColumnByName returns the Series with the given name, or nil if not found.
func (df *DataFrame) ColumnByName(name string) *Series {
	s, err := df.Column(name)
	if err != nil {
		return nil
	}
	return s
}

// ColumnAt returns the column at a position as a Series.
func (df *DataFrame) ColumnAt(i int) (*Series, error) {
	if i < 0 || i >= len(df.columns) {
		return nil, &IndexOutOfRangeError{Index: i, Len: len(df.columns)}
	}
	return &Series{col: df.columns[i], index: df.index}, nil
}

// HasColumn reports whether a column exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.lookup[name]
	return ok
}

// Columns returns the names of all columns in insertion order.
func (df *DataFrame) Columns() []string {
	result := make([]string, len(df.columns))
	for i, col := range df.columns {
		result[i] = col.Name()
	}
	return result
}

// DTypes returns the column kinds in insertion order.
func (df *DataFrame) DTypes() []DType {
	result := make([]DType, len(df.columns))
	for i, col := range df.columns {
		result[i] = col.DType()
	}
	return result
}

// Schema returns the frame's schema.
func (df *DataFrame) Schema() *Schema {
	// names are unique, NewSchema cannot fail here
	schema, _ := NewSchema(df.Columns(), df.DTypes())
	return schema
}

// Height returns the number of rows in the DataFrame.
func (df *DataFrame) Height() int {
	return df.index.Len()
}

// Width returns the number of columns in the DataFrame.
func (df *DataFrame) Width() int {
	return len(df.columns)
}

// Shape returns (rows, columns).
func (df *DataFrame) Shape() (int, int) {
	return df.Height(), df.Width()
}

// Index returns the shared row index.
func (df *DataFrame) Index() *Index {
	return df.index
}

// Row returns the values of one row in column order.
func (df *DataFrame) Row(i int) ([]Value, error) {
	if i < 0 || i >= df.Height() {
		return nil, &IndexOutOfRangeError{Index: i, Len: df.Height()}
	}
	row := make([]Value, len(df.columns))
	for j, col := range df.columns {
		row[j] = col.at(i)
	}
	return row, nil
}

// ============================================================================
// Mutation
// ============================================================================

// SetColumn assigns raw values to a column, inferring a fresh kind. An
// existing column is replaced at its position; a new name is appended.
// The length must equal Height() unless the frame has no columns, in which
// case it sets the row count. On error the frame is left unchanged.
func (df *DataFrame) SetColumn(name string, values []any) error {
	if name == "" {
		return &SchemaError{Message: "column name must not be empty"}
	}
	if len(df.columns) > 0 && len(values) != df.Height() {
		return &ShapeMismatchError{Name: name, Want: df.Height(), Got: len(values)}
	}
	col, err := NewColumn(name, values)
	if err != nil {
		return err
	}
	df.install(col)
	return nil
}

// WithColumn assigns a typed Series under its own name, with the same
// length rules as SetColumn. The column is copied so the Series and the
// frame do not alias each other.
func (df *DataFrame) WithColumn(series *Series) error {
	if series == nil {
		return nil
	}
	if series.Name() == "" {
		return &SchemaError{Message: "column name must not be empty"}
	}
	if len(df.columns) > 0 && series.Len() != df.Height() {
		return &ShapeMismatchError{Name: series.Name(), Want: df.Height(), Got: series.Len()}
	}
	df.install(series.col.Clone())
	return nil
}

// install places an already validated column.
func (df *DataFrame) install(col *Column) {
	if pos, exists := df.lookup[col.Name()]; exists {
		df.columns[pos] = col
		return
	}
	if len(df.columns) == 0 {
		df.index = NewRangeIndex(col.Len())
	}
	df.lookup[col.Name()] = len(df.columns)
	df.columns = append(df.columns, col)
}

// ============================================================================
// Selection
// ============================================================================

// Select returns a new DataFrame with copies of the specified columns.
// Columns that don't exist are silently ignored.
func (df *DataFrame) Select(columns ...string) *DataFrame {
	result := emptyDataFrame()
	result.index = df.index

	for _, name := range columns {
		if pos, exists := df.lookup[name]; exists && !result.HasColumn(name) {
			_ = result.appendColumn(df.columns[pos].Clone())
		}
	}

	return result
}

// Drop returns a new DataFrame holding copies of the remaining columns.
func (df *DataFrame) Drop(columns ...string) *DataFrame {
	dropSet := make(map[string]bool)
	for _, name := range columns {
		dropSet[name] = true
	}

	result := emptyDataFrame()
	result.index = df.index

	for _, col := range df.columns {
		if !dropSet[col.Name()] {
			_ = result.appendColumn(col.Clone())
		}
	}

	return result
}

// Rename returns a new DataFrame with a column renamed.
func (df *DataFrame) Rename(oldName, newName string) (*DataFrame, error) {
	if _, exists := df.lookup[oldName]; !exists {
		return nil, &KeyNotFoundError{Key: oldName}
	}

	result := emptyDataFrame()
	result.index = df.index

	for _, col := range df.columns {
		if col.Name() == oldName {
			col = col.Rename(newName)
		} else {
			col = col.Clone()
		}
		if err := result.appendColumn(col); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Head returns a new DataFrame with the first n rows.
func (df *DataFrame) Head(n int) *DataFrame {
	if n < 0 {
		n = 0
	}
	return df.Slice(0, n)
}

// Tail returns a new DataFrame with the last n rows.
func (df *DataFrame) Tail(n int) *DataFrame {
	if n < 0 {
		n = 0
	}
	return df.Slice(df.Height()-n, df.Height())
}

// Slice returns a new DataFrame with rows from start to end (exclusive).
func (df *DataFrame) Slice(start, end int) *DataFrame {
	if start < 0 {
		start = 0
	}
	if end > df.Height() {
		end = df.Height()
	}
	if start > end {
		start = end
	}

	result := emptyDataFrame()
	result.index = df.index.slice(start, end)

	for _, col := range df.columns {
		_ = result.appendColumn(col.slice(start, end))
	}

	return result
}

// Clone returns a deep copy of the DataFrame.
func (df *DataFrame) Clone() *DataFrame {
	result := emptyDataFrame()
	result.index = df.index

	for _, col := range df.columns {
		_ = result.appendColumn(col.Clone())
	}

	return result
}

// String renders the frame with the default display configuration.
func (df *DataFrame) String() string {
	return df.StringWithConfig(DefaultDisplayConfig())
}
