// internal/writers/query.go
//
// TSV writer for msquery results (SPEC_FULL.md §4.11), reusing the
// registry.go format-dispatch pattern the teacher's product writers
// are structured around, adapted to one output kind instead of
// three. Unlike the teacher, this registry is actually load-bearing:
// StartQueryWriter is the only place results reach stdout, and it
// dispatches every record through WriteQuery.
package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"
)

// QueryResult is one pattern's answer, ready to serialize. Pointers and
// DocIDs are nil when the mode/attachment didn't produce them.
type QueryResult struct {
	ID       int
	Lengths  []int
	Pointers []int
	DocIDs   []uint32
}

func init() {
	RegisterQuery("text", writeQueryTSV)
}

var QueryWriters = map[string]func(io.Writer, interface{}) error{}

// RegisterQuery registers a query-result format handler (idempotent, last-wins).
func RegisterQuery(format string, fn func(io.Writer, interface{}) error) {
	QueryWriters[format] = fn
}

// WriteQuery dispatches to the registered handler for format.
func WriteQuery(format string, w io.Writer, payload interface{}) error {
	fn, ok := QueryWriters[format]
	if !ok {
		return fmt.Errorf("unknown query output format %q (no writer registered)", format)
	}
	return fn(w, payload)
}

// StartQueryWriter spins up a channel-fed writer goroutine that
// dispatches every QueryResult through WriteQuery(format, ...), the
// same registry cmd/msquery's -output flag selects from. header is
// only honored for "text" (TSV); other formats ignore it.
func StartQueryWriter(out io.Writer, format string, header bool, bufSize int) (chan<- QueryResult, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan QueryResult, bufSize)
	done := make(chan error, 1)

	go func() {
		if _, ok := QueryWriters[format]; !ok {
			done <- fmt.Errorf("unknown query output format %q (no writer registered)", format)
			return
		}
		bw := bufio.NewWriterSize(out, 64<<10)
		if format == "text" && header {
			if _, err := bw.WriteString("id\tlengths\tpointers\tdoc_ids\n"); err != nil {
				done <- err
				return
			}
		}
		for r := range in {
			if err := WriteQuery(format, bw, r); err != nil {
				done <- err
				return
			}
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}

func writeQueryTSV(w io.Writer, payload interface{}) error {
	r, ok := payload.(QueryResult)
	if !ok {
		return fmt.Errorf("writers: query TSV writer given %T, want QueryResult", payload)
	}
	var b strings.Builder
	writeQueryLine(&b, r)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeQueryLine(b *strings.Builder, r QueryResult) {
	b.WriteString(strconv.Itoa(r.ID))
	b.WriteByte('\t')
	writeIntCSV(b, r.Lengths)
	b.WriteByte('\t')
	writeIntCSV(b, r.Pointers)
	b.WriteByte('\t')
	writeUint32CSV(b, r.DocIDs)
	b.WriteByte('\n')
}

func writeIntCSV(b *strings.Builder, vals []int) {
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
}

func writeUint32CSV(b *strings.Builder, vals []uint32) {
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
