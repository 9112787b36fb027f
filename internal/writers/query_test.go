package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
)

func TestWriteQueryTSV(t *testing.T) {
	tests := []struct {
		name string
		r    QueryResult
		want string
	}{
		{
			name: "ms with pointers and doc ids",
			r:    QueryResult{ID: 3, Lengths: []int{3, 2, 1}, Pointers: []int{1, 2, 1}, DocIDs: []uint32{0, 0, 1}},
			want: "3\t3,2,1\t1,2,1\t0,0,1\n",
		},
		{
			name: "pml omits pointers",
			r:    QueryResult{ID: 1, Lengths: []int{1, 0, 1}},
			want: "1\t1,0,1\t\t\n",
		},
		{
			name: "no doc ids attached",
			r:    QueryResult{ID: 0, Lengths: []int{2}, Pointers: []int{5}},
			want: "0\t2\t5\t\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteQuery("text", &buf, tt.r); err != nil {
				t.Fatalf("WriteQuery: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteQueryJSONL(t *testing.T) {
	tests := []struct {
		name       string
		r          QueryResult
		wantFields []string // substrings that must appear
		wantAbsent []string // substrings that must not appear
	}{
		{
			name:       "ms carries pointers and doc ids",
			r:          QueryResult{ID: 2, Lengths: []int{3}, Pointers: []int{1}, DocIDs: []uint32{4}},
			wantFields: []string{`"pointers":[1]`, `"doc_ids":[4]`},
		},
		{
			name:       "pml omits pointers and doc ids",
			r:          QueryResult{ID: 1, Lengths: []int{1, 0, 1}},
			wantAbsent: []string{"pointers", "doc_ids"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteQuery("jsonl", &buf, tt.r); err != nil {
				t.Fatalf("WriteQuery: %v", err)
			}
			var decoded wireQueryResult
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("bad json: %v\n%s", err, buf.String())
			}
			for _, want := range tt.wantFields {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("output %q missing %q", buf.String(), want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(buf.String(), absent) {
					t.Fatalf("output %q should omit %q", buf.String(), absent)
				}
			}
		})
	}
}

func TestWriteQuery_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteQuery("xml", &buf, QueryResult{ID: 0})
	if err == nil || !strings.Contains(err.Error(), "unknown query output format") {
		t.Fatalf("want unknown-format error, got: %v", err)
	}
}

func TestStartQueryWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartQueryWriter(&buf, "text", true, 2)
	in <- QueryResult{ID: 0, Lengths: []int{3, 2, 1}, Pointers: []int{1, 2, 1}}
	in <- QueryResult{ID: 1, Lengths: []int{1}, DocIDs: []uint32{7}}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines: %v", len(lines), lines)
	}
	if lines[0] != "id\tlengths\tpointers\tdoc_ids" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "0\t3,2,1\t1,2,1\t" {
		t.Fatalf("unexpected row 0: %q", lines[1])
	}
	if lines[2] != "1\t1\t\t7" {
		t.Fatalf("unexpected row 1: %q", lines[2])
	}
}

func TestStartQueryWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartQueryWriter(&buf, "jsonl", false, 2)
	in <- QueryResult{ID: 0, Lengths: []int{3, 2, 1}, Pointers: []int{1, 2, 1}}
	in <- QueryResult{ID: 1, Lengths: []int{1}}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	var n int
	for sc.Scan() {
		n++
		var v wireQueryResult
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("bad json line %d: %v\n%s", n, err, sc.Text())
		}
	}
	if n != 2 {
		t.Fatalf("want 2 lines, got %d", n)
	}
}

func TestStartQueryWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartQueryWriter(&buf, "nope", false, 1)
	close(in)
	err := <-done
	if err == nil || !strings.Contains(err.Error(), "unknown query output format") {
		t.Fatalf("want unknown-format error, got: %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"epipe", syscall.EPIPE, true},
		{"wrapped epipe", &pathErr{syscall.EPIPE}, true},
		{"closed pipe", io.ErrClosedPipe, true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBrokenPipe(tt.err); got != tt.want {
				t.Fatalf("IsBrokenPipe(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type pathErr struct{ err error }

func (p *pathErr) Error() string { return "path: " + p.err.Error() }
func (p *pathErr) Unwrap() error { return p.err }
