// core/sample/sample.go
//
// Package sample implements the SA-sample arrays of spec.md §2/§3:
// samples_start[k] and samples_last[k], the suffix-array value at the
// first and last BWT position of run k, used by the MS engine's
// backward-search snapping rule (spec.md §4.5).
package sample

import (
	"encoding/binary"
	"fmt"
	"io"

	"msri-core/bitpack"
)

const pairBytes = 10 // two 5-byte little-endian fields per run

// Arrays holds both sample vectors, bit-packed.
type Arrays struct {
	start *bitpack.Vector
	last  *bitpack.Vector
}

// New builds Arrays from plain values, sized against n (values lie in [0, n)).
func New(startVals, lastVals []int, n int) (*Arrays, error) {
	if len(startVals) != len(lastVals) {
		return nil, fmt.Errorf("sample: start/last length mismatch (%d vs %d)", len(startVals), len(lastVals))
	}
	width := bitpack.WidthFor(uint64(n))
	start := bitpack.New(len(startVals), width)
	last := bitpack.New(len(lastVals), width)
	for i, v := range startVals {
		start.Set(i, uint64(v))
	}
	for i, v := range lastVals {
		last.Set(i, uint64(v))
	}
	return &Arrays{start: start, last: last}, nil
}

// Len returns r, the number of runs.
func (a *Arrays) Len() int { return a.start.Len() }

// Start returns samples_start[k].
func (a *Arrays) Start(k int) int { return int(a.start.At(k)) }

// Last returns samples_last[k].
func (a *Arrays) Last(k int) int { return int(a.last.At(k)) }

// LoadSampleFile reads an <ref>.ssa or <ref>.esa stream: a sequence of
// (left, right) 5-byte little-endian pairs, one per run. The decoded
// value per run is right-1, or n-1 when right is 0 (spec.md §6). A
// stream whose size is not a multiple of 10 bytes is rejected with a
// plain error (not a rindex.LoadError). The function is not given r,
// so it does not check the size against 2*r*5: it returns one value
// for every pair the stream holds.
func LoadSampleFile(r io.Reader, n int) ([]int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sample: read: %w", err)
	}
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("sample: stream size %d not a multiple of 5", len(raw))
	}
	if len(raw)%pairBytes != 0 {
		return nil, fmt.Errorf("sample: stream size %d not a multiple of %d", len(raw), pairBytes)
	}
	count := len(raw) / pairBytes
	values := make([]int, count)
	for i := 0; i < count; i++ {
		off := i * pairBytes
		right := readUint40LE(raw[off+5 : off+10])
		var v uint64
		if right == 0 {
			v = uint64(n - 1)
		} else {
			v = right - 1
		}
		values[i] = int(v)
	}
	return values, nil
}

func readUint40LE(b []byte) uint64 {
	var v uint64
	for i := 0; i < 5; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// writeVector serializes a single bit-packed vector (used for both
// samples_last and samples_start, written independently per the
// archive order in spec.md §4.7).
func writeVector(w io.Writer, v *bitpack.Vector) (int64, error) {
	var total int64
	hdr := make([]byte, 16)
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(v.Len()))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(v.Width()))
	n, err := w.Write(hdr)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("sample: write header: %w", err)
	}
	words := v.Words()
	wbuf := make([]byte, 8*len(words))
	for i, word := range words {
		binary.LittleEndian.PutUint64(wbuf[i*8:], word)
	}
	n, err = w.Write(wbuf)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("sample: write words: %w", err)
	}
	return total, nil
}

func loadVector(r io.Reader) (*bitpack.Vector, error) {
	hdr := make([]byte, 16)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("sample: read header: %w", err)
	}
	count := int(binary.LittleEndian.Uint64(hdr[0:8]))
	width := uint(binary.LittleEndian.Uint64(hdr[8:16]))
	if count < 0 || width == 0 || width > 64 {
		return nil, fmt.Errorf("sample: implausible header count=%d width=%d", count, width)
	}
	nbits := uint64(count) * uint64(width)
	nwords := int((nbits + 63) / 64)
	wbuf := make([]byte, 8*nwords)
	if _, err := io.ReadFull(r, wbuf); err != nil {
		return nil, fmt.Errorf("sample: read words: %w", err)
	}
	words := make([]uint64, nwords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(wbuf[i*8:])
	}
	return bitpack.FromWords(words, count, width), nil
}

// WriteLast serializes samples_last (written first in the archive, per spec.md §4.7).
func (a *Arrays) WriteLast(w io.Writer) (int64, error) { return writeVector(w, a.last) }

// WriteStart serializes samples_start (written last in the archive, per spec.md §4.7).
func (a *Arrays) WriteStart(w io.Writer) (int64, error) { return writeVector(w, a.start) }

// LoadLast and LoadStart read back the respective vectors. Callers
// assemble a complete Arrays once both halves are available.
func LoadLast(r io.Reader) (*bitpack.Vector, error)  { return loadVector(r) }
func LoadStart(r io.Reader) (*bitpack.Vector, error) { return loadVector(r) }

// FromVectors assembles Arrays from already-loaded start/last vectors.
func FromVectors(start, last *bitpack.Vector) (*Arrays, error) {
	if start.Len() != last.Len() {
		return nil, fmt.Errorf("sample: start/last length mismatch (%d vs %d)", start.Len(), last.Len())
	}
	return &Arrays{start: start, last: last}, nil
}
