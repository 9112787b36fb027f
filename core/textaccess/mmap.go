// core/textaccess/mmap.go
package textaccess

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// MappedFile is a Source backed by a memory-mapped flat reconstructed
// text file. This is the realistic production path for large T: the
// process never holds T resident, and the OS page cache serves hot
// ranges across repeated queries.
type MappedFile struct {
	r   *mmap.ReaderAt
	len int64
}

// OpenMappedFile memory-maps path, a file containing exactly T's
// bytes (no header, no terminator stripped).
func OpenMappedFile(path string) (*MappedFile, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textaccess: open %s: %w", path, err)
	}
	return &MappedFile{r: r, len: int64(r.Len())}, nil
}

func (m *MappedFile) CharAt(i int64) (byte, error) {
	if i < 0 || i >= m.len {
		return 0, fmt.Errorf("textaccess: index %d out of range [0, %d)", i, m.len)
	}
	var b [1]byte
	if _, err := m.r.ReadAt(b[:], i); err != nil {
		return 0, fmt.Errorf("textaccess: read at %d: %w", i, err)
	}
	return b[0], nil
}

func (m *MappedFile) Len() int64 { return m.len }

// Close unmaps the underlying file.
func (m *MappedFile) Close() error { return m.r.Close() }
