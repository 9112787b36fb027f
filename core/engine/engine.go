// core/engine/engine.go
//
// Package engine implements the Query Engine of spec.md §2/§4.4-§4.6:
// a single Mode-tagged QueryEngine replacing the source's two wrapper
// classes (spec.md §9's re-architecture note). Both PML and MS share
// one backward-search loop shape; only the per-character transition
// and the emitted state differ (pml.go, ms.go).
package engine

import (
	"fmt"

	"msri-core/docarray"
	"msri-core/rindex"
	"msri-core/sample"
	"msri-core/textaccess"
	"msri-core/thresholds"
)

// Mode selects which transition table a QueryEngine runs.
type Mode int

const (
	// ModePML runs the Pseudo-Matching Length transition (spec.md §4.4).
	ModePML Mode = iota
	// ModeMS runs the Matching Statistics transition (spec.md §4.5).
	ModeMS
)

func (m Mode) String() string {
	switch m {
	case ModePML:
		return "pml"
	case ModeMS:
		return "ms"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Engine holds the loaded index plus everything one query's transition
// table needs. It is immutable after construction and safe for
// concurrent use by many goroutines running independent queries
// (spec.md §5): every Run call allocates its own state.
type Engine struct {
	mode Mode
	idx  *rindex.Index
	th   *thresholds.Vector
	sa   *sample.Arrays      // set only in ModeMS
	text textaccess.Source   // optional, ModeMS only: enables length reconstruction
	doc  *docarray.Array     // optional, both modes
}

// NewPML builds an Engine running the PML transition.
func NewPML(idx *rindex.Index, th *thresholds.Vector) *Engine {
	return &Engine{mode: ModePML, idx: idx, th: th}
}

// NewMS builds an Engine running the MS transition. sa must not be nil.
func NewMS(idx *rindex.Index, th *thresholds.Vector, sa *sample.Arrays) *Engine {
	return &Engine{mode: ModeMS, idx: idx, th: th, sa: sa}
}

// WithText attaches a random-access Source so Run can also reconstruct
// MS lengths via the forward sweep (spec.md §4.5). Only meaningful in
// ModeMS; ignored otherwise. Returns the receiver for chaining.
func (e *Engine) WithText(text textaccess.Source) *Engine {
	e.text = text
	return e
}

// WithDocArray attaches the optional document array so Run also emits
// per-position document ids (spec.md §4.6). Returns the receiver for
// chaining.
func (e *Engine) WithDocArray(doc *docarray.Array) *Engine {
	e.doc = doc
	return e
}

// Mode reports which transition table the engine runs.
func (e *Engine) Mode() Mode { return e.mode }

// Result holds one query's output arrays (spec.md §6's "output
// sequences"). Pointers is nil in ModePML. DocIDs is nil unless a
// document array was attached.
type Result struct {
	Lengths  []int
	Pointers []int
	DocIDs   []uint32
}

// Run answers one query for pattern P, dispatching on Mode. The
// returned slices are freshly allocated and owned by the caller
// (spec.md §5's "per-query buffers are caller-owned").
func (e *Engine) Run(p []byte) Result {
	switch e.mode {
	case ModeMS:
		return e.runMS(p)
	default:
		return e.runPML(p)
	}
}

// docIDForAbsentChar answers the document id reported when a pattern
// character occurs zero times in T. spec.md §9 leaves this case open;
// the original source looks up run_of_position(0), i.e. the document
// that owns BWT row 0. Isolated here so a caller wanting a sentinel id
// instead only has to change this one function.
func (e *Engine) docIDForAbsentChar() uint32 {
	return e.doc.StartDoc(e.idx.BWT.RunOfPosition(0))
}
