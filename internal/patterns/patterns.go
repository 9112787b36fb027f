// internal/patterns/patterns.go
//
// Package patterns reads the query pattern stream for cmd/msquery
// (SPEC_FULL.md §4.10, the "Pattern Source" ambient component). It is
// explicitly outside the query core: its only job is handing the core
// real []byte patterns, mirroring the teacher's core/fasta scoped
// open/close and gzip/stdin conventions.
package patterns

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Pattern is one query record: an id plus the raw pattern bytes.
type Pattern struct {
	ID int
	P  []byte
}

// multiReadCloser closes a gzip reader then its underlying file.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patterns: open %s: %w", path, err)
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("patterns: gunzip %s: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// StreamCtx opens path and emits one Pattern per record, honoring
// ctx cancellation between records. fasta selects the record shape:
// true parses ">id" header/sequence-line blocks, false treats every
// non-blank line as its own pattern with an auto-assigned id.
func StreamCtx(ctx context.Context, path string, fasta bool) (<-chan Pattern, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}

	out := make(chan Pattern, 8)
	go func() {
		defer rc.Close()
		defer close(out)

		sc := bufio.NewScanner(rc)
		const maxLine = 16 * 1024 * 1024
		sc.Buffer(make([]byte, 64*1024), maxLine)

		id := 0
		emit := func(p []byte) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- Pattern{ID: id, P: p}:
				id++
				return true
			}
		}

		if !fasta {
			for sc.Scan() {
				line := bytes.TrimSpace(sc.Bytes())
				if len(line) == 0 {
					continue
				}
				if !emit(append([]byte(nil), line...)) {
					return
				}
			}
			return
		}

		var seq []byte
		flush := func() bool {
			if len(seq) == 0 {
				return true
			}
			ok := emit(seq)
			seq = nil
			return ok
		}
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			if line[0] == '>' {
				if !flush() {
					return
				}
				continue
			}
			seq = append(seq, bytes.TrimSpace(line)...)
		}
		flush()
	}()
	return out, nil
}
