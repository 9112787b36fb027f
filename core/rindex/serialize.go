// core/rindex/serialize.go
//
// Serialize/Load realize the archive format of spec.md §4.7: a fixed
// byte order combining the Index, thresholds, and (for MS) the SA
// sample arrays into one self-contained stream. The document array
// and random-access text live in separate files, loaded on demand
// (spec.md §4.7 last line).
package rindex

import (
	"encoding/binary"
	"fmt"
	"io"

	"msri-core/rlbwt"
	"msri-core/sample"
	"msri-core/thresholds"
)

// SerializePML writes the PML archive: terminator_position, F, the
// RLBWT, then thresholds.
func SerializePML(w io.Writer, idx *Index, th *thresholds.Vector) error {
	if err := writeHeader(w, idx); err != nil {
		return err
	}
	if _, err := idx.BWT.WriteTo(w); err != nil {
		return fmt.Errorf("rindex: write bwt: %w", err)
	}
	if _, err := th.WriteTo(w); err != nil {
		return fmt.Errorf("rindex: write thresholds: %w", err)
	}
	return nil
}

// LoadPML reads back an archive written by SerializePML.
func LoadPML(r io.Reader) (*Index, *thresholds.Vector, error) {
	idx, err := readHeaderAndBWT(r)
	if err != nil {
		return nil, nil, err
	}
	th, err := thresholds.Load(r)
	if err != nil {
		return nil, nil, fmt.Errorf("rindex: load thresholds: %w", err)
	}
	if err := Validate(idx, th); err != nil {
		return nil, nil, err
	}
	return idx, th, nil
}

// SerializeMS writes the MS archive: terminator_position, F, the
// RLBWT, samples_last, thresholds, samples_start — the exact order of
// spec.md §4.7.
func SerializeMS(w io.Writer, idx *Index, th *thresholds.Vector, sa *sample.Arrays) error {
	if err := writeHeader(w, idx); err != nil {
		return err
	}
	if _, err := idx.BWT.WriteTo(w); err != nil {
		return fmt.Errorf("rindex: write bwt: %w", err)
	}
	if _, err := sa.WriteLast(w); err != nil {
		return fmt.Errorf("rindex: write samples_last: %w", err)
	}
	if _, err := th.WriteTo(w); err != nil {
		return fmt.Errorf("rindex: write thresholds: %w", err)
	}
	if _, err := sa.WriteStart(w); err != nil {
		return fmt.Errorf("rindex: write samples_start: %w", err)
	}
	return nil
}

// LoadMS reads back an archive written by SerializeMS.
func LoadMS(r io.Reader) (*Index, *thresholds.Vector, *sample.Arrays, error) {
	idx, err := readHeaderAndBWT(r)
	if err != nil {
		return nil, nil, nil, err
	}
	lastV, err := sample.LoadLast(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("rindex: load samples_last: %w", err)
	}
	th, err := thresholds.Load(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("rindex: load thresholds: %w", err)
	}
	startV, err := sample.LoadStart(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("rindex: load samples_start: %w", err)
	}
	sa, err := sample.FromVectors(startV, lastV)
	if err != nil {
		return nil, nil, nil, &LoadError{Kind: InvariantViolation, Msg: "sample arrays mismatch", Err: err}
	}
	if err := Validate(idx, th); err != nil {
		return nil, nil, nil, err
	}
	return idx, th, sa, nil
}

func writeHeader(w io.Writer, idx *Index) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(idx.TerminatorPosition))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("rindex: write terminator_position: %w", err)
	}

	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], 256)
	if _, err := w.Write(countBuf[:]); err != nil {
		return fmt.Errorf("rindex: write F count: %w", err)
	}
	fbuf := make([]byte, 8*256)
	for c := 0; c < 256; c++ {
		binary.LittleEndian.PutUint64(fbuf[c*8:], idx.F[c])
	}
	if _, err := w.Write(fbuf); err != nil {
		return fmt.Errorf("rindex: write F: %w", err)
	}
	return nil
}

func readHeaderAndBWT(r io.Reader) (*Index, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "read terminator_position", Err: err}
	}
	termPos := int(binary.LittleEndian.Uint64(buf[:]))

	var countBuf [8]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "read F count", Err: err}
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count != 256 {
		return nil, &LoadError{Kind: LoadFormat, Msg: fmt.Sprintf("F has %d entries, want 256", count)}
	}
	fbuf := make([]byte, 8*256)
	if _, err := io.ReadFull(r, fbuf); err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "read F", Err: err}
	}
	var f [256]uint64
	for c := 0; c < 256; c++ {
		f[c] = binary.LittleEndian.Uint64(fbuf[c*8:])
	}

	bwt, err := rlbwt.Load(r)
	if err != nil {
		return nil, &LoadError{Kind: LoadIO, Msg: "load bwt", Err: err}
	}

	return &Index{BWT: bwt, F: f, TerminatorPosition: termPos, TerminatorChar: bwt.Access(termPos)}, nil
}
