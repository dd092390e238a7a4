package dfrs

import (
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ============================================================================
// Arrow Export
// ============================================================================

// ToArrow exports a DataFrame to an Arrow Record. Null cells become Arrow
// nulls and a Null-kind column becomes an Arrow null array.
// The caller is responsible for calling Release() on the returned Record.
func (df *DataFrame) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, df.Width())
	for i, col := range df.columns {
		arrowType, err := dtypeToArrowType(col.DType())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
		fields[i] = arrow.Field{Name: col.Name(), Type: arrowType, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	arrays := make([]arrow.Array, df.Width())
	for i, col := range df.columns {
		arr, err := columnToArrowArray(col, mem)
		if err != nil {
			for j := 0; j < i; j++ {
				arrays[j].Release()
			}
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
		arrays[i] = arr
	}

	record := array.NewRecord(schema, arrays, int64(df.Height()))

	// Record retains the arrays
	for _, arr := range arrays {
		arr.Release()
	}

	return record, nil
}

// ToArrowTable exports a DataFrame to an Arrow Table.
// The caller is responsible for calling Release() on the returned Table.
func (df *DataFrame) ToArrowTable(mem memory.Allocator) (arrow.Table, error) {
	record, err := df.ToArrow(mem)
	if err != nil {
		return nil, err
	}
	defer record.Release()

	return array.NewTableFromRecords(record.Schema(), []arrow.Record{record}), nil
}

// dtypeToArrowType converts a DType to an Arrow DataType
func dtypeToArrowType(dtype DType) (arrow.DataType, error) {
	switch dtype {
	case Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case String:
		return arrow.BinaryTypes.String, nil
	case Null:
		return arrow.Null, nil
	default:
		return nil, fmt.Errorf("unsupported dtype: %s", dtype)
	}
}

// columnToArrowArray converts a Column to an Arrow Array
func columnToArrowArray(c *Column, mem memory.Allocator) (arrow.Array, error) {
	switch c.DType() {
	case Float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.AppendValues(c.floats, c.valid)
		return builder.NewArray(), nil

	case Int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		builder.AppendValues(c.ints, c.valid)
		return builder.NewArray(), nil

	case Bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.AppendValues(c.bools, c.valid)
		return builder.NewArray(), nil

	case String:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.AppendValues(c.strs, c.valid)
		return builder.NewArray(), nil

	case Null:
		return array.NewNull(c.Len()), nil

	default:
		return nil, fmt.Errorf("unsupported dtype for Arrow export: %s", c.DType())
	}
}

// ============================================================================
// Arrow Import
// ============================================================================

// NewDataFrameFromArrow creates a DataFrame from an Arrow Record.
// Int32 and Float32 columns are widened to Int64 and Float64.
func NewDataFrameFromArrow(record arrow.Record) (*DataFrame, error) {
	if record == nil {
		return nil, fmt.Errorf("record is nil")
	}

	schema := record.Schema()
	df := emptyDataFrame()

	for i := 0; i < int(record.NumCols()); i++ {
		field := schema.Field(i)
		col, err := arrowArrayToColumn(field.Name, record.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", field.Name, err)
		}
		if err := df.appendColumn(col); err != nil {
			return nil, err
		}
	}

	df.index = NewRangeIndex(int(record.NumRows()))
	return df, nil
}

// NewDataFrameFromArrowTable creates a DataFrame from an Arrow Table,
// concatenating the chunks of each column.
func NewDataFrameFromArrowTable(table arrow.Table) (*DataFrame, error) {
	if table == nil {
		return nil, fmt.Errorf("table is nil")
	}

	schema := table.Schema()
	df := emptyDataFrame()

	for i := 0; i < int(table.NumCols()); i++ {
		field := schema.Field(i)
		chunks := table.Column(i).Data().Chunks()

		var col *Column
		for j, chunk := range chunks {
			part, err := arrowArrayToColumn(field.Name, chunk)
			if err != nil {
				return nil, fmt.Errorf("column %s chunk %d: %w", field.Name, j, err)
			}
			if col == nil {
				col = part
				continue
			}
			if col, err = concatColumns(col, part); err != nil {
				return nil, fmt.Errorf("column %s chunk %d: %w", field.Name, j, err)
			}
		}
		if col == nil {
			var err error
			if col, err = emptyColumnFor(field.Name, field.Type); err != nil {
				return nil, fmt.Errorf("column %s: %w", field.Name, err)
			}
		}
		if err := df.appendColumn(col); err != nil {
			return nil, err
		}
	}

	df.index = NewRangeIndex(int(table.NumRows()))
	return df, nil
}

// arrowArrayToColumn converts an Arrow Array to a Column. Data is copied
// out of the Arrow buffers, so the Column outlives the Record.
func arrowArrayToColumn(name string, arr arrow.Array) (*Column, error) {
	n := arr.Len()
	valid := arrowValidity(arr)

	var col *Column
	switch a := arr.(type) {
	case *array.Float64:
		col = NewColumnFloat64(name, a.Float64Values())
	case *array.Float32:
		data := make([]float64, n)
		for i, v := range a.Float32Values() {
			data[i] = float64(v)
		}
		col = &Column{name: name, dtype: Float64, length: n, floats: data}
	case *array.Int64:
		col = NewColumnInt64(name, a.Int64Values())
	case *array.Int32:
		data := make([]int64, n)
		for i, v := range a.Int32Values() {
			data[i] = int64(v)
		}
		col = &Column{name: name, dtype: Int64, length: n, ints: data}
	case *array.Boolean:
		data := make([]bool, n)
		for i := range data {
			data[i] = a.Value(i)
		}
		col = &Column{name: name, dtype: Bool, length: n, bools: data}
	case *array.String:
		data := make([]string, n)
		for i := range data {
			data[i] = strings.Clone(a.Value(i))
		}
		col = &Column{name: name, dtype: String, length: n, strs: data}
	case *array.LargeString:
		data := make([]string, n)
		for i := range data {
			data[i] = strings.Clone(a.Value(i))
		}
		col = &Column{name: name, dtype: String, length: n, strs: data}
	case *array.Null:
		return NewNullColumn(name, n), nil
	default:
		return nil, fmt.Errorf("unsupported Arrow type: %s", arr.DataType())
	}

	col.valid = valid
	return col, nil
}

// arrowValidity extracts the validity bitmap, nil when there are no nulls.
func arrowValidity(arr arrow.Array) []bool {
	if arr.NullN() == 0 {
		return nil
	}
	valid := make([]bool, arr.Len())
	for i := range valid {
		valid[i] = arr.IsValid(i)
	}
	return valid
}

func emptyColumnFor(name string, dt arrow.DataType) (*Column, error) {
	switch dt.ID() {
	case arrow.FLOAT64, arrow.FLOAT32:
		return NewColumnFloat64(name, nil), nil
	case arrow.INT64, arrow.INT32:
		return NewColumnInt64(name, nil), nil
	case arrow.BOOL:
		return NewColumnBool(name, nil), nil
	case arrow.STRING, arrow.LARGE_STRING:
		return NewColumnString(name, nil), nil
	case arrow.NULL:
		return NewNullColumn(name, 0), nil
	default:
		return nil, fmt.Errorf("unsupported Arrow type: %s", dt)
	}
}

// concatColumns appends b to a; both must have the same kind.
func concatColumns(a, b *Column) (*Column, error) {
	if a.DType() != b.DType() {
		return nil, &TypeMismatchError{Column: a.Name(), Want: a.DType(), Got: b.DType()}
	}

	out := &Column{name: a.name, dtype: a.dtype, length: a.length + b.length}
	switch a.dtype {
	case Int64:
		out.ints = append(append([]int64{}, a.ints...), b.ints...)
	case Float64:
		out.floats = append(append([]float64{}, a.floats...), b.floats...)
	case String:
		out.strs = append(append([]string{}, a.strs...), b.strs...)
	case Bool:
		out.bools = append(append([]bool{}, a.bools...), b.bools...)
	case Null:
		out.valid = make([]bool, out.length)
		return out, nil
	}

	if a.valid != nil || b.valid != nil {
		valid := make([]bool, 0, out.length)
		for i := 0; i < a.length; i++ {
			valid = append(valid, a.IsValid(i))
		}
		for i := 0; i < b.length; i++ {
			valid = append(valid, b.IsValid(i))
		}
		out.valid = valid
	}
	return out, nil
}
