// core/rindex/index_test.go
package rindex

import (
	"bytes"
	"testing"

	"msri-core/rlbwt"
	"msri-core/sample"
	"msri-core/thresholds"
)

// bananaIndex builds the Index for BWT("BANANA$") = "ANNB$AA", runs
// heads=[A,N,B,$,A] lengths=[1,2,1,1,2], run starts [0,1,3,4,5].
func bananaIndex(t *testing.T) *Index {
	t.Helper()
	bwt, err := rlbwt.New([]byte{'A', 'N', 'B', '$', 'A'}, []int{1, 2, 1, 1, 2})
	if err != nil {
		t.Fatalf("rlbwt.New: %v", err)
	}
	idx, err := New(bwt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return idx
}

func TestBuildFTerminatorAndPosition(t *testing.T) {
	idx := bananaIndex(t)
	if idx.TerminatorChar != '$' {
		t.Fatalf("TerminatorChar = %q, want '$'", idx.TerminatorChar)
	}
	if idx.TerminatorPosition != 4 {
		t.Fatalf("TerminatorPosition = %d, want 4", idx.TerminatorPosition)
	}
}

func TestBuildFValues(t *testing.T) {
	idx := bananaIndex(t)
	cases := []struct {
		c    byte
		want uint64
	}{
		{'$', 0},
		{'A', 1},
		{'B', 4},
		{'N', 5},
	}
	for _, c := range cases {
		if got := idx.F[c.c]; got != c.want {
			t.Errorf("F[%q] = %d, want %d", c.c, got, c.want)
		}
	}
}

func TestValidatePassesOnWellFormedIndex(t *testing.T) {
	idx := bananaIndex(t)
	th := thresholds.New([]int{0, 0, 0, 0, 0}, idx.Size())
	if err := Validate(idx, th); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLF(t *testing.T) {
	idx := bananaIndex(t)
	// bwt = "ANNB$AA" (positions 0..6); F['A']=1, F['N']=5.
	cases := []struct {
		pos  int
		c    byte
		want int
	}{
		{0, 'A', 1}, // F['A'] + 0 A's in bwt[0,0)
		{1, 'A', 2}, // F['A'] + 1 A in bwt[0,1)="A"
		{7, 'A', 4}, // F['A'] + 3 A's in the whole string
		{3, 'N', 7}, // F['N'] + 2 N's in bwt[0,3)="ANN"
		{7, 'N', 7}, // F['N'] + 2 N's in the whole string
	}
	for _, c := range cases {
		if got := LF(idx, c.pos, c.c); got != c.want {
			t.Errorf("LF(%d, %q) = %d, want %d", c.pos, c.c, got, c.want)
		}
	}
}

func TestSerializePMLRoundTrip(t *testing.T) {
	idx := bananaIndex(t)
	th := thresholds.New([]int{0, 1, 0, 2, 0}, idx.Size())

	var buf bytes.Buffer
	if err := SerializePML(&buf, idx, th); err != nil {
		t.Fatalf("SerializePML: %v", err)
	}

	gotIdx, gotTh, err := LoadPML(&buf)
	if err != nil {
		t.Fatalf("LoadPML: %v", err)
	}
	if gotIdx.TerminatorPosition != idx.TerminatorPosition {
		t.Errorf("TerminatorPosition = %d, want %d", gotIdx.TerminatorPosition, idx.TerminatorPosition)
	}
	if gotIdx.TerminatorChar != idx.TerminatorChar {
		t.Errorf("TerminatorChar = %q, want %q", gotIdx.TerminatorChar, idx.TerminatorChar)
	}
	if gotIdx.F != idx.F {
		t.Errorf("F mismatch")
	}
	for k := 0; k < th.Len(); k++ {
		if gotTh.At(k) != th.At(k) {
			t.Errorf("threshold[%d] = %d, want %d", k, gotTh.At(k), th.At(k))
		}
	}
}

func TestSerializeMSRoundTrip(t *testing.T) {
	idx := bananaIndex(t)
	th := thresholds.New([]int{0, 1, 0, 2, 0}, idx.Size())
	sa, err := sample.New([]int{0, 2, 3, 5, 6}, []int{1, 3, 4, 6, 0}, idx.Size())
	if err != nil {
		t.Fatalf("sample.New: %v", err)
	}

	var buf bytes.Buffer
	if err := SerializeMS(&buf, idx, th, sa); err != nil {
		t.Fatalf("SerializeMS: %v", err)
	}

	gotIdx, gotTh, gotSa, err := LoadMS(&buf)
	if err != nil {
		t.Fatalf("LoadMS: %v", err)
	}
	if gotIdx.TerminatorPosition != idx.TerminatorPosition {
		t.Errorf("TerminatorPosition = %d, want %d", gotIdx.TerminatorPosition, idx.TerminatorPosition)
	}
	for k := 0; k < th.Len(); k++ {
		if gotTh.At(k) != th.At(k) {
			t.Errorf("threshold[%d] = %d, want %d", k, gotTh.At(k), th.At(k))
		}
	}
	for k := 0; k < sa.Len(); k++ {
		if gotSa.Start(k) != sa.Start(k) || gotSa.Last(k) != sa.Last(k) {
			t.Errorf("sample[%d] mismatch", k)
		}
	}
}
