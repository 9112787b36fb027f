// core/docarray/docarray.go
//
// Package docarray implements the optional document array of
// spec.md §2/§4.6: for each BWT run, the document id at the run's
// first and last text position. Document ids are dense uint32s
// assigned by the external builder; this package only loads and
// looks them up.
package docarray

import (
	"encoding/binary"
	"fmt"
	"io"

	roaring "github.com/RoaringBitmap/roaring/v2"
)

// Array holds start_runs_doc and end_runs_doc, one uint32 per run.
type Array struct {
	startDoc []uint32
	endDoc   []uint32
	registry *DocRegistry
}

// New builds an Array from parallel per-run document-id slices.
func New(startDoc, endDoc []uint32, registry *DocRegistry) (*Array, error) {
	if len(startDoc) != len(endDoc) {
		return nil, fmt.Errorf("docarray: start/end length mismatch (%d vs %d)", len(startDoc), len(endDoc))
	}
	return &Array{startDoc: startDoc, endDoc: endDoc, registry: registry}, nil
}

// Len returns r, the number of runs.
func (a *Array) Len() int { return len(a.startDoc) }

// StartDoc returns start_runs_doc[k].
func (a *Array) StartDoc(k int) uint32 { return a.startDoc[k] }

// EndDoc returns end_runs_doc[k].
func (a *Array) EndDoc(k int) uint32 { return a.endDoc[k] }

// Registry returns the document id/name registry, or nil if the
// array was loaded without one (ids only, no names).
func (a *Array) Registry() *DocRegistry { return a.registry }

// WriteTo serializes the array as two equal-length uint32 streams
// (start_runs_doc, then end_runs_doc), each 4-byte little-endian.
func (a *Array) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, arr := range [][]uint32{a.startDoc, a.endDoc} {
		buf := make([]byte, 4*len(arr))
		for i, v := range arr {
			binary.LittleEndian.PutUint32(buf[i*4:], v)
		}
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("docarray: write: %w", err)
		}
	}
	return total, nil
}

// Load reconstructs an Array previously written by WriteTo. runs is the
// expected run count, used to size the read and detect truncation.
func Load(r io.Reader, runs int) (*Array, error) {
	startDoc, err := readUint32s(r, runs)
	if err != nil {
		return nil, fmt.Errorf("docarray: start_runs_doc: %w", err)
	}
	endDoc, err := readUint32s(r, runs)
	if err != nil {
		return nil, fmt.Errorf("docarray: end_runs_doc: %w", err)
	}
	return &Array{startDoc: startDoc, endDoc: endDoc}, nil
}

func readUint32s(r io.Reader, n int) ([]uint32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

// DocRegistry maps document names to dense uint32 ids and, for each
// id, the set of text positions belonging to that document. It is
// optional: callers that only need raw ids (as emitted by the engine)
// never need a DocRegistry at all.
type DocRegistry struct {
	toID   map[string]uint32
	toName []string
	spans  []*roaring.Bitmap
}

// NewRegistry builds a DocRegistry from an ordered list of (name,
// start, end) document spans over text positions [start, end).
func NewRegistry(names []string, starts, ends []int64) (*DocRegistry, error) {
	if len(names) != len(starts) || len(names) != len(ends) {
		t := len(names)
		return nil, fmt.Errorf("docarray: mismatched registry slices (names=%d starts=%d ends=%d)", t, len(starts), len(ends))
	}
	reg := &DocRegistry{
		toID:   make(map[string]uint32, len(names)),
		toName: make([]string, len(names)),
		spans:  make([]*roaring.Bitmap, len(names)),
	}
	for id, name := range names {
		reg.toID[name] = uint32(id)
		reg.toName[id] = name
		bm := roaring.New()
		bm.AddRange(uint64(starts[id]), uint64(ends[id]))
		reg.spans[id] = bm
	}
	return reg, nil
}

// ID returns the dense id for a document name.
func (r *DocRegistry) ID(name string) (uint32, bool) {
	id, ok := r.toID[name]
	return id, ok
}

// Name returns the document name for an id.
func (r *DocRegistry) Name(id uint32) (string, bool) {
	if int(id) >= len(r.toName) {
		return "", false
	}
	return r.toName[id], true
}

// Contains reports whether text position p falls within document id's
// span — the check needed by the document-array consistency property
// in spec.md §8.7, without a linear scan of run boundaries.
func (r *DocRegistry) Contains(id uint32, p int64) bool {
	if int(id) >= len(r.spans) {
		return false
	}
	return r.spans[id].Contains(uint32(p))
}
