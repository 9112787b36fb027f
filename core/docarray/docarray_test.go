// core/docarray/docarray_test.go
package docarray

import (
	"bytes"
	"testing"
)

func TestArrayAccessors(t *testing.T) {
	a, err := New([]uint32{0, 0, 1}, []uint32{0, 1, 1}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if a.StartDoc(2) != 1 || a.EndDoc(0) != 0 {
		t.Errorf("unexpected doc ids: start(2)=%d end(0)=%d", a.StartDoc(2), a.EndDoc(0))
	}
}

func TestArraySerializeRoundTrip(t *testing.T) {
	a, err := New([]uint32{0, 0, 1}, []uint32{0, 1, 1}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := Load(&buf, a.Len())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for k := 0; k < a.Len(); k++ {
		if got.StartDoc(k) != a.StartDoc(k) || got.EndDoc(k) != a.EndDoc(k) {
			t.Errorf("run %d: got (%d,%d), want (%d,%d)", k, got.StartDoc(k), got.EndDoc(k), a.StartDoc(k), a.EndDoc(k))
		}
	}
}

func TestDocRegistry(t *testing.T) {
	reg, err := NewRegistry(
		[]string{"chr1", "chr2"},
		[]int64{0, 10},
		[]int64{10, 20},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	id, ok := reg.ID("chr2")
	if !ok || id != 1 {
		t.Fatalf("ID(chr2) = (%d, %v), want (1, true)", id, ok)
	}
	name, ok := reg.Name(0)
	if !ok || name != "chr1" {
		t.Fatalf("Name(0) = (%q, %v), want (chr1, true)", name, ok)
	}
	if !reg.Contains(0, 5) {
		t.Error("Contains(0, 5) = false, want true")
	}
	if reg.Contains(0, 15) {
		t.Error("Contains(0, 15) = true, want false")
	}
	if !reg.Contains(1, 15) {
		t.Error("Contains(1, 15) = false, want true")
	}
}
