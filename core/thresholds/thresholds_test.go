// core/thresholds/thresholds_test.go
package thresholds

import (
	"bytes"
	"testing"
)

func TestAtRoundTrip(t *testing.T) {
	vals := []int{0, 3, 7, 7, 1, 0}
	v := New(vals, 7)
	if v.Len() != len(vals) {
		t.Fatalf("Len() = %d, want %d", v.Len(), len(vals))
	}
	for i, want := range vals {
		if got := v.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	vals := []int{0, 3, 7, 7, 1, 0, 123456}
	v := New(vals, 123456)

	var buf bytes.Buffer
	if _, err := v.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != v.Len() {
		t.Fatalf("Len() mismatch: got %d, want %d", got.Len(), v.Len())
	}
	for i, want := range vals {
		if g := got.At(i); g != want {
			t.Errorf("At(%d) = %d, want %d", i, g, want)
		}
	}
}

func TestLoadLegacy(t *testing.T) {
	vals := []int{0, 3, 7}
	var buf bytes.Buffer
	for _, v := range vals {
		var b8 [8]byte
		for i := 0; i < 8; i++ {
			b8[i] = byte(v >> (8 * i))
		}
		buf.Write(b8[:])
	}
	v, err := LoadLegacy(&buf, 7)
	if err != nil {
		t.Fatalf("LoadLegacy: %v", err)
	}
	for i, want := range vals {
		if got := v.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}
