// core/rindex/invariants.go
//
// Validate checks the quantified invariants of spec.md §8.1 against a
// loaded Index plus its thresholds. It is cheap (O(256) for F,
// O(r) for thresholds) and intended to run once right after Load.
package rindex

import "msri-core/thresholds"

// Validate reports an InvariantViolation LoadError if f's monotonicity
// or the thresholds' range is broken.
func Validate(idx *Index, th *thresholds.Vector) error {
	if idx.F[idx.TerminatorChar] != 0 {
		return &LoadError{Kind: InvariantViolation, Msg: "F[TerminatorChar] != 0"}
	}
	for c := 0; c < 255; c++ {
		if idx.F[c+1] < idx.F[c] {
			return &LoadError{Kind: InvariantViolation, Msg: "F is not monotone non-decreasing"}
		}
		want := idx.BWT.NumberOfLetter(byte(c))
		got := idx.F[c+1] - idx.F[c]
		if got != uint64(want) {
			return &LoadError{Kind: InvariantViolation, Msg: "F[c+1]-F[c] does not match occ(c, BWT)"}
		}
	}
	if got, want := idx.F[255]+uint64(idx.BWT.NumberOfLetter(255)), uint64(idx.Size()); got != want {
		return &LoadError{Kind: InvariantViolation, Msg: "F[255]+occ(255) != n"}
	}

	if th == nil {
		return nil
	}
	if th.Len() != idx.NumberOfRuns() {
		return &LoadError{Kind: InvariantViolation, Msg: "thresholds length does not match run count"}
	}
	n := idx.Size()
	for k := 0; k < th.Len(); k++ {
		v := th.At(k)
		if v < 0 || v > n {
			return &LoadError{Kind: InvariantViolation, Msg: "threshold value out of [0, n]"}
		}
	}
	return nil
}
