// core/rlbwt/load.go
package rlbwt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// sampleBytes is the on-disk width of a 5-byte little-endian length
// field, used both for run lengths (builder output) and SA samples
// (see core/sample).
const sampleBytes = 5

// LoadHeadsLengths builds an RLBWT from a run-heads stream (one byte
// per run) and a run-lengths stream (5-byte little-endian per run),
// the <ref>.bwt.heads / <ref>.bwt.len pair described in spec.md §6.
func LoadHeadsLengths(heads io.Reader, lengths io.Reader) (*RLBWT, error) {
	headBytes, err := io.ReadAll(heads)
	if err != nil {
		return nil, fmt.Errorf("rlbwt: read heads: %w", err)
	}
	lenBytes, err := io.ReadAll(lengths)
	if err != nil {
		return nil, fmt.Errorf("rlbwt: read lengths: %w", err)
	}
	if len(lenBytes)%sampleBytes != 0 {
		return nil, fmt.Errorf("rlbwt: length stream size %d not a multiple of %d", len(lenBytes), sampleBytes)
	}
	if len(headBytes) != len(lenBytes)/sampleBytes {
		return nil, fmt.Errorf("rlbwt: %d heads but %d lengths", len(headBytes), len(lenBytes)/sampleBytes)
	}

	runLens := make([]int, len(headBytes))
	for k := range runLens {
		runLens[k] = int(readUint40LE(lenBytes[k*sampleBytes:]))
	}
	return New(headBytes, runLens)
}

// LoadPlain builds an RLBWT by run-length encoding a plain BWT byte
// stream (the <ref>.bwt file).
func LoadPlain(r io.Reader) (*RLBWT, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rlbwt: read bwt: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("rlbwt: empty bwt stream")
	}

	var heads []byte
	var lens []int
	cur := raw[0]
	run := 1
	for i := 1; i < len(raw); i++ {
		if raw[i] == cur {
			run++
			continue
		}
		heads = append(heads, cur)
		lens = append(lens, run)
		cur = raw[i]
		run = 1
	}
	heads = append(heads, cur)
	lens = append(lens, run)

	return New(heads, lens)
}

// WriteTo serializes the RLBWT in the archive's internal format: an
// 8-byte run count, the run-heads bytes, then 5-byte little-endian
// run lengths. Loaders reconstruct r from the count rather than from
// the caller's context.
func (b *RLBWT) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(b.r))
	n, err := w.Write(countBuf[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("rlbwt: write run count: %w", err)
	}

	n, err = w.Write(b.runHeads)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("rlbwt: write heads: %w", err)
	}

	lenBuf := make([]byte, sampleBytes*b.r)
	for k, l := range b.runLength {
		writeUint40LE(lenBuf[k*sampleBytes:], uint64(l))
	}
	n, err = w.Write(lenBuf)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("rlbwt: write lengths: %w", err)
	}
	return total, nil
}

// Load reconstructs an RLBWT previously written by WriteTo.
func Load(r io.Reader) (*RLBWT, error) {
	var countBuf [8]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, fmt.Errorf("rlbwt: read run count: %w", err)
	}
	r64 := binary.LittleEndian.Uint64(countBuf[:])
	count := int(r64)
	if count < 0 || uint64(count) != r64 {
		return nil, fmt.Errorf("rlbwt: implausible run count %d", r64)
	}

	heads := make([]byte, count)
	if _, err := io.ReadFull(r, heads); err != nil {
		return nil, fmt.Errorf("rlbwt: read heads: %w", err)
	}

	lenBuf := make([]byte, sampleBytes*count)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, fmt.Errorf("rlbwt: read lengths: %w", err)
	}
	lens := make([]int, count)
	for k := range lens {
		lens[k] = int(readUint40LE(lenBuf[k*sampleBytes:]))
	}

	return New(heads, lens)
}

func readUint40LE(b []byte) uint64 {
	var v uint64
	for i := 0; i < sampleBytes; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func writeUint40LE(dst []byte, v uint64) {
	for i := 0; i < sampleBytes; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
