// core/textaccess/textaccess.go
//
// Package textaccess implements the random-access text facility of
// spec.md §2.6/§4.9: CharAt(i) for i in [0, n), used only by the MS
// engine's forward length-reconstruction sweep (spec.md §4.5). The
// core depends only on the Source contract; how T is actually stored
// (plain, memory-mapped, grammar-compressed) is an implementation
// choice made by whoever built the index.
package textaccess

import (
	"fmt"
	"sync"
)

// Source provides random access to the reference text. CharAt must
// be reentrant: many query goroutines may call it concurrently on a
// shared Source (spec.md §5).
type Source interface {
	CharAt(i int64) (byte, error)
	Len() int64
}

// InMemory is a Source backed by a plain in-memory byte slice. Used
// for small references and in tests.
type InMemory struct {
	text []byte
}

// NewInMemory wraps text as a Source. It does not copy.
func NewInMemory(text []byte) *InMemory { return &InMemory{text: text} }

func (m *InMemory) CharAt(i int64) (byte, error) {
	if i < 0 || i >= int64(len(m.text)) {
		return 0, fmt.Errorf("textaccess: index %d out of range [0, %d)", i, len(m.text))
	}
	return m.text[i], nil
}

func (m *InMemory) Len() int64 { return int64(len(m.text)) }

// Decompressor is the contract an external grammar/SLP representation
// of T must satisfy to be wrapped by SLPAdapter. Construction and the
// grammar itself are out of scope (spec.md §1); the core only ever
// calls Expand.
type Decompressor interface {
	// Expand writes T[from:from+length) into dst[:length].
	Expand(dst []byte, from, length int64) error
	Len() int64
}

// SLPAdapter wraps a Decompressor and satisfies Source by expanding
// one blockSize-aligned block at a time and answering CharAt from a
// cache of the most recently expanded block, which amortizes the cost
// of sequential scans (the MS
// forward sweep walks mostly-increasing positions). The cache is
// shared mutable state, so CharAt must serialize access to stay
// reentrant under the many-goroutines-one-Source contract (spec.md
// §5, core/engine's Engine is explicitly safe for concurrent Run
// calls against one attached Source).
type SLPAdapter struct {
	dec       Decompressor
	blockSize int64

	mu         sync.Mutex
	blockStart int64
	block      []byte
}

// NewSLPAdapter wraps dec. blockSize controls the read-ahead cache
// granularity; 0 selects a default of 64 bytes.
func NewSLPAdapter(dec Decompressor, blockSize int64) *SLPAdapter {
	if blockSize <= 0 {
		blockSize = 64
	}
	return &SLPAdapter{dec: dec, blockSize: blockSize, blockStart: -1}
}

func (s *SLPAdapter) CharAt(i int64) (byte, error) {
	if i < 0 || i >= s.dec.Len() {
		return 0, fmt.Errorf("textaccess: index %d out of range [0, %d)", i, s.dec.Len())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blockStart < 0 || i < s.blockStart || i >= s.blockStart+int64(len(s.block)) {
		start := (i / s.blockSize) * s.blockSize
		length := s.blockSize
		if start+length > s.dec.Len() {
			length = s.dec.Len() - start
		}
		buf := make([]byte, length)
		if err := s.dec.Expand(buf, start, length); err != nil {
			return 0, fmt.Errorf("textaccess: expand [%d,%d): %w", start, start+length, err)
		}
		s.blockStart = start
		s.block = buf
	}
	return s.block[i-s.blockStart], nil
}

func (s *SLPAdapter) Len() int64 { return s.dec.Len() }
