package dfrs

import (
	"fmt"
	"strings"
)

// DType represents the element kind of a Column or the kind of a Value.
type DType uint8

const (
	// Numeric types
	Float64 DType = iota
	Int64

	// Other types
	Bool
	String

	// Null is the kind of a Null value, and of a column holding only nulls
	Null
)

// String returns the string representation of the DType
func (d DType) String() string {
	switch d {
	case Float64:
		return "Float64"
	case Int64:
		return "Int64"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Null:
		return "Null"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// ParseDType parses the name returned by DType.String, case-insensitively.
// A few common aliases are accepted ("int", "float", "str", "text").
func ParseDType(name string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float64", "float", "f64":
		return Float64, nil
	case "int64", "int", "integer", "i64":
		return Int64, nil
	case "bool", "boolean":
		return Bool, nil
	case "string", "str", "text", "utf8":
		return String, nil
	case "null":
		return Null, nil
	default:
		return Null, fmt.Errorf("unknown dtype %q", name)
	}
}

// IsNumeric returns true if the dtype is a numeric type
func (d DType) IsNumeric() bool {
	return d == Float64 || d == Int64
}

// IsFloat returns true if the dtype is a floating point type
func (d DType) IsFloat() bool {
	return d == Float64
}

// IsInteger returns true if the dtype is an integer type
func (d DType) IsInteger() bool {
	return d == Int64
}

// Size returns the size in bytes of one element, or -1 for variable size.
func (d DType) Size() int {
	switch d {
	case Float64, Int64:
		return 8
	case Bool:
		return 1
	case String:
		return -1
	default:
		return 0
	}
}

// Schema represents the schema of a DataFrame
type Schema struct {
	names  []string
	dtypes []DType
}

// NewSchema creates a new schema from column names and types
func NewSchema(names []string, dtypes []DType) (*Schema, error) {
	if len(names) != len(dtypes) {
		return nil, fmt.Errorf("names and dtypes must have same length: %d != %d", len(names), len(dtypes))
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, &SchemaError{Message: "duplicate column name: " + name}
		}
		seen[name] = true
	}

	return &Schema{
		names:  append([]string{}, names...),
		dtypes: append([]DType{}, dtypes...),
	}, nil
}

// Len returns the number of columns in the schema
func (s *Schema) Len() int {
	return len(s.names)
}

// Names returns the column names
func (s *Schema) Names() []string {
	return append([]string{}, s.names...)
}

// DTypes returns the column data types
func (s *Schema) DTypes() []DType {
	return append([]DType{}, s.dtypes...)
}

// GetDType returns the dtype for a column name
func (s *Schema) GetDType(name string) (DType, bool) {
	for i, n := range s.names {
		if n == name {
			return s.dtypes[i], true
		}
	}
	return Null, false
}

// GetIndex returns the index of a column name
func (s *Schema) GetIndex(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// String returns a string representation of the schema
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema{\n")
	for i, name := range s.names {
		fmt.Fprintf(&sb, "  %s: %s\n", name, s.dtypes[i])
	}
	sb.WriteString("}")
	return sb.String()
}
