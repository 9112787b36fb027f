// core/rindex/index.go
//
// Package rindex holds the loaded r-index the Query Engine reads
// (spec.md §2/§3): the RLBWT plus the F-table and terminator position
// derived from it. Its archive format (serialize.go) stores the index
// together with the thresholds and, for MS, the SA samples; the
// document array and random-access text are loaded by their own
// packages and attached to the engine, not to the Index. The index is
// immutable after Load/New: every exported method is safe for
// concurrent use by many query goroutines (spec.md §5).
package rindex

import "msri-core/rlbwt"

// Index is the core r-index: the run-length BWT plus the F-table and
// terminator position derived from it (spec.md §3's entity table).
// TerminatorChar is discovered at build time, not fixed: it is
// whichever byte is the unique smallest symbol in T (spec.md §3, §6).
// It must not appear in query patterns.
type Index struct {
	BWT                *rlbwt.RLBWT
	F                  [256]uint64
	TerminatorPosition int
	TerminatorChar     byte
}

// New builds an Index from an already-constructed RLBWT, deriving F
// and the terminator position in one pass (spec.md §4.2).
func New(bwt *rlbwt.RLBWT) (*Index, error) {
	f, termPos, termChar, err := buildF(bwt)
	if err != nil {
		return nil, err
	}
	return &Index{BWT: bwt, F: f, TerminatorPosition: termPos, TerminatorChar: termChar}, nil
}

// Size returns n.
func (idx *Index) Size() int { return idx.BWT.Size() }

// NumberOfRuns returns r.
func (idx *Index) NumberOfRuns() int { return idx.BWT.NumberOfRuns() }
