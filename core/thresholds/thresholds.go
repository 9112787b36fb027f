// core/thresholds/thresholds.go
//
// Package thresholds stores the per-run threshold vector described in
// spec.md §4.4/§4.5: the BWT position, per run, at which the longest
// common suffix with T switches between the run above and the run
// below. Values are bit-packed (width = ceil(log2(n+1))) following
// the "opaque bit-packed non-negative-integer vector" design note.
package thresholds

import (
	"encoding/binary"
	"fmt"
	"io"

	"msri-core/bitpack"
)

// Vector holds one threshold value per BWT run.
type Vector struct {
	vals *bitpack.Vector
}

// New builds a Vector from plain values, sized against maxVal (pass
// n, the text length, since thresholds lie in [0, n]).
func New(values []int, maxVal int) *Vector {
	width := bitpack.WidthFor(uint64(maxVal))
	v := bitpack.New(len(values), width)
	for i, val := range values {
		v.Set(i, uint64(val))
	}
	return &Vector{vals: v}
}

// Len returns r, the number of runs (and thresholds).
func (t *Vector) Len() int { return t.vals.Len() }

// At returns the threshold for run k.
func (t *Vector) At(k int) int { return int(t.vals.At(k)) }

// WriteTo serializes the vector: 8-byte count, 8-byte bit width, then
// the packed words.
func (t *Vector) WriteTo(w io.Writer) (int64, error) {
	var total int64
	hdr := make([]byte, 16)
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(t.vals.Len()))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(t.vals.Width()))
	n, err := w.Write(hdr)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("thresholds: write header: %w", err)
	}

	words := t.vals.Words()
	wbuf := make([]byte, 8*len(words))
	for i, word := range words {
		binary.LittleEndian.PutUint64(wbuf[i*8:], word)
	}
	n, err = w.Write(wbuf)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("thresholds: write words: %w", err)
	}
	return total, nil
}

// Load reconstructs a Vector previously written by WriteTo.
func Load(r io.Reader) (*Vector, error) {
	hdr := make([]byte, 16)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("thresholds: read header: %w", err)
	}
	count := int(binary.LittleEndian.Uint64(hdr[0:8]))
	width := uint(binary.LittleEndian.Uint64(hdr[8:16]))
	if count < 0 || width == 0 || width > 64 {
		return nil, fmt.Errorf("thresholds: implausible header count=%d width=%d", count, width)
	}

	nbits := uint64(count) * uint64(width)
	nwords := int((nbits + 63) / 64)
	wbuf := make([]byte, 8*nwords)
	if _, err := io.ReadFull(r, wbuf); err != nil {
		return nil, fmt.Errorf("thresholds: read words: %w", err)
	}
	words := make([]uint64, nwords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(wbuf[i*8:])
	}

	return &Vector{vals: bitpack.FromWords(words, count, width)}, nil
}

// LoadLegacy reads a plain stream of 8-byte little-endian thresholds,
// one per run, as produced by a threshold builder that predates the
// bit-packed archive format (kept for compatibility with externally
// built <ref>.thr_bv-equivalent files of the older fixed-width shape).
func LoadLegacy(r io.Reader, n int) (*Vector, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("thresholds: read legacy stream: %w", err)
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("thresholds: legacy stream size %d not a multiple of 8", len(raw))
	}
	count := len(raw) / 8
	values := make([]int, count)
	for i := range values {
		values[i] = int(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return New(values, n), nil
}
