// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"testing"

	"msri-core/engine"
	"msri-core/rindex"
	"msri-core/rlbwt"
	"msri-core/thresholds"
	"msri/internal/patterns"
	"msri/internal/writers"
)

// pmlFixture builds a small PML engine over T = "BANANA$", matching
// core/engine's own fixture (heads/lengths for BWT "ANNB$AA").
func pmlFixture(t *testing.T) *engine.Engine {
	t.Helper()
	bwt, err := rlbwt.New([]byte{'A', 'N', 'B', '$', 'A'}, []int{1, 2, 1, 1, 2})
	if err != nil {
		t.Fatalf("rlbwt.New: %v", err)
	}
	idx, err := rindex.New(bwt)
	if err != nil {
		t.Fatalf("rindex.New: %v", err)
	}
	th := thresholds.New([]int{0, 7, 0, 0, 7}, idx.Size())
	return engine.NewPML(idx, th)
}

func TestForEachQuery_PreservesInputOrder(t *testing.T) {
	eng := pmlFixture(t)

	in := make(chan patterns.Pattern)
	go func() {
		defer close(in)
		words := [][]byte{[]byte("ANA"), []byte("NAN"), []byte("BAN"), []byte("A"), []byte("N")}
		for i, w := range words {
			in <- patterns.Pattern{ID: i, P: w}
		}
	}()

	var got []int
	err := ForEachQuery(context.Background(), Config{Threads: 4}, in, eng, func(r writers.QueryResult) error {
		got = append(got, r.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachQuery: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d results, want 5", len(got))
	}
	for i, id := range got {
		if id != i {
			t.Errorf("result[%d].ID = %d, want %d (out of order)", i, id, i)
		}
	}
}

func TestForEachQuery_VisitErrorPropagates(t *testing.T) {
	eng := pmlFixture(t)

	in := make(chan patterns.Pattern, 1)
	in <- patterns.Pattern{ID: 0, P: []byte("A")}
	close(in)

	wantErr := context.Canceled
	err := ForEachQuery(context.Background(), Config{Threads: 1}, in, eng, func(r writers.QueryResult) error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("ForEachQuery err = %v, want %v", err, wantErr)
	}
}
