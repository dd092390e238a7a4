package dfrs

import (
	"errors"
	"testing"
)

func TestRangeIndex(t *testing.T) {
	ix := NewRangeIndex(3)

	if !ix.IsRange() || ix.Len() != 3 {
		t.Fatalf("NewRangeIndex(3): IsRange=%v Len=%d", ix.IsRange(), ix.Len())
	}

	label, err := ix.Label(2)
	if err != nil || label != Int(2) {
		t.Errorf("Label(2) = %v, %v, want 2", label, err)
	}
	if _, err := ix.Label(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Label(3) error = %v, want ErrIndexOutOfRange", err)
	}

	tests := []struct {
		label Value
		pos   int
		ok    bool
	}{
		{Int(1), 1, true},
		{Float(2), 2, true},
		{Float(1.5), -1, false},
		{Int(3), -1, false},
		{Int(-1), -1, false},
		{Str("1"), -1, false},
	}
	for _, tt := range tests {
		pos, ok := ix.Position(tt.label)
		if pos != tt.pos || ok != tt.ok {
			t.Errorf("Position(%v) = %d, %v, want %d, %v", tt.label, pos, ok, tt.pos, tt.ok)
		}
	}
}

func TestExplicitIndex(t *testing.T) {
	ix, err := NewIndex([]any{"a", "b", "a", 7})
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	if ix.IsRange() {
		t.Error("explicit index should not be a range index")
	}

	if pos, ok := ix.Position(Str("a")); !ok || pos != 0 {
		t.Errorf("Position(a) = %d, %v, want first occurrence 0", pos, ok)
	}
	if pos, ok := ix.Position(Float(7)); !ok || pos != 3 {
		t.Errorf("Position(7.0) = %d, %v, want 3", pos, ok)
	}
	if _, ok := ix.Position(Int(0)); ok {
		t.Error("explicit index should not fall back to positions")
	}

	labels := ix.Labels()
	if len(labels) != 4 || labels[1] != Str("b") {
		t.Errorf("Labels() = %v", labels)
	}
}

func TestIndexSlice(t *testing.T) {
	ix := NewRangeIndex(5)

	head := ix.slice(0, 2)
	if !head.IsRange() || head.Len() != 2 {
		t.Errorf("slice(0, 2) should stay a range index of length 2")
	}

	mid := ix.slice(2, 4)
	if label, _ := mid.Label(0); label != Int(2) {
		t.Errorf("slice(2, 4).Label(0) = %v, want original label 2", label)
	}
	if pos, ok := mid.Position(Int(3)); !ok || pos != 1 {
		t.Errorf("slice(2, 4).Position(3) = %d, %v, want 1", pos, ok)
	}
}
