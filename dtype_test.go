package dfrs

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// DType Tests
// ============================================================================

func TestDType_String(t *testing.T) {
	tests := []struct {
		dtype    DType
		expected string
	}{
		{Float64, "Float64"},
		{Int64, "Int64"},
		{Bool, "Bool"},
		{String, "String"},
		{Null, "Null"},
		{DType(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.dtype.String(); got != tt.expected {
				t.Errorf("DType(%d).String() = %q, want %q", tt.dtype, got, tt.expected)
			}
		})
	}
}

func TestParseDType(t *testing.T) {
	tests := []struct {
		name     string
		expected DType
	}{
		{"Int64", Int64},
		{"int", Int64},
		{" float ", Float64},
		{"FLOAT64", Float64},
		{"str", String},
		{"utf8", String},
		{"boolean", Bool},
		{"null", Null},
	}

	for _, tt := range tests {
		got, err := ParseDType(tt.name)
		if err != nil {
			t.Errorf("ParseDType(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDType(%q) = %s, want %s", tt.name, got, tt.expected)
		}
	}

	if _, err := ParseDType("decimal"); err == nil {
		t.Error("ParseDType(\"decimal\") should fail")
	}
}

func TestDType_IsNumeric(t *testing.T) {
	numeric := map[DType]bool{Float64: true, Int64: true, Bool: false, String: false, Null: false}
	for dt, want := range numeric {
		if got := dt.IsNumeric(); got != want {
			t.Errorf("%s.IsNumeric() = %v, want %v", dt, got, want)
		}
	}

	if !Float64.IsFloat() || Int64.IsFloat() {
		t.Error("IsFloat() should only hold for Float64")
	}
	if !Int64.IsInteger() || Float64.IsInteger() {
		t.Error("IsInteger() should only hold for Int64")
	}
}

func TestDType_Size(t *testing.T) {
	tests := []struct {
		dtype DType
		size  int
	}{
		{Float64, 8},
		{Int64, 8},
		{Bool, 1},
		{String, -1},
		{Null, 0},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

// ============================================================================
// Schema Tests
// ============================================================================

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema([]string{"a", "b"}, []DType{Int64, String})
	if err != nil {
		t.Fatalf("NewSchema failed: %v", err)
	}

	if schema.Len() != 2 {
		t.Errorf("Len() = %d, want 2", schema.Len())
	}

	dt, ok := schema.GetDType("b")
	if !ok || dt != String {
		t.Errorf("GetDType(b) = %s, %v, want String, true", dt, ok)
	}

	idx, ok := schema.GetIndex("a")
	if !ok || idx != 0 {
		t.Errorf("GetIndex(a) = %d, %v, want 0, true", idx, ok)
	}

	if _, ok := schema.GetIndex("missing"); ok {
		t.Error("GetIndex(missing) should report false")
	}
}

func TestNewSchema_LengthMismatch(t *testing.T) {
	if _, err := NewSchema([]string{"a", "b"}, []DType{Int64}); err == nil {
		t.Error("NewSchema should fail when names and dtypes differ in length")
	}
}

func TestNewSchema_DuplicateNames(t *testing.T) {
	_, err := NewSchema([]string{"a", "a"}, []DType{Int64, Int64})
	if !errors.Is(err, ErrSchema) {
		t.Errorf("NewSchema with duplicates error = %v, want ErrSchema", err)
	}
}

func TestSchema_Copies(t *testing.T) {
	schema, _ := NewSchema([]string{"a"}, []DType{Int64})

	names := schema.Names()
	names[0] = "changed"
	if schema.Names()[0] != "a" {
		t.Error("Names() should return a copy")
	}

	dtypes := schema.DTypes()
	dtypes[0] = String
	if schema.DTypes()[0] != Int64 {
		t.Error("DTypes() should return a copy")
	}
}

func TestSchema_String(t *testing.T) {
	schema, _ := NewSchema([]string{"x", "y"}, []DType{Float64, Bool})
	s := schema.String()

	for _, want := range []string{"x: Float64", "y: Bool"} {
		if !strings.Contains(s, want) {
			t.Errorf("Schema.String() = %q, missing %q", s, want)
		}
	}
}
