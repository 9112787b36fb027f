// core/rlbwt/rlbwt.go
//
// Package rlbwt implements the run-length encoded Burrows-Wheeler
// Transform described in spec.md §4.1: a sequence of (character,
// run-length) pairs supporting access/rank/select/run_of_position
// over the decoded BWT without ever materializing it.
package rlbwt

import (
	"fmt"
	"sort"

	"github.com/hillbig/rsdic"
)

// RLBWT is an immutable run-length BWT. All operations are read-only
// and safe for concurrent use by many readers once built or loaded.
type RLBWT struct {
	runHeads  []byte
	runLength []int
	runStart  []int // prefix sum; runStart[k] is the first BWT position of run k

	n int // bwt.size()
	r int // number of runs

	boundary *rsdic.RSDic // one bit per BWT position, set at each run start
	charRk   *charRank    // per-character rank/select over the run-heads string
	cumLen   map[byte][]int
	occCount map[byte]int
}

// New builds an RLBWT from parallel run-heads/run-lengths slices.
// heads[k] is the character of run k; lengths[k] is its length.
func New(heads []byte, lengths []int) (*RLBWT, error) {
	if len(heads) != len(lengths) {
		return nil, fmt.Errorf("rlbwt: heads/lengths length mismatch (%d vs %d)", len(heads), len(lengths))
	}
	r := len(heads)
	runStart := make([]int, r)
	n := 0
	for k, l := range lengths {
		if l <= 0 {
			return nil, fmt.Errorf("rlbwt: run %d has non-positive length %d", k, l)
		}
		runStart[k] = n
		n += l
	}

	boundary := rsdic.New()
	nextStart := 0
	for i := 0; i < n; i++ {
		isStart := nextStart < r && i == runStart[nextStart]
		boundary.PushBack(isStart)
		if isStart {
			nextStart++
		}
	}

	charRk := buildCharRank(heads)

	occCount := make(map[byte]int)
	runsOf := make(map[byte]int)
	for k, h := range heads {
		occCount[h] += lengths[k]
		runsOf[h]++
	}

	cumLen := make(map[byte][]int, len(runsOf))
	for h, cnt := range runsOf {
		cumLen[h] = make([]int, cnt+1)
	}
	counters := make(map[byte]int)
	for k, h := range heads {
		j := counters[h]
		cumLen[h][j+1] = cumLen[h][j] + lengths[k]
		counters[h] = j + 1
	}

	return &RLBWT{
		runHeads:  append([]byte(nil), heads...),
		runLength: append([]int(nil), lengths...),
		runStart:  runStart,
		n:         n,
		r:         r,
		boundary:  boundary,
		charRk:    charRk,
		cumLen:    cumLen,
		occCount:  occCount,
	}, nil
}

// Size returns n, the length of the decoded BWT.
func (b *RLBWT) Size() int { return b.n }

// NumberOfRuns returns r.
func (b *RLBWT) NumberOfRuns() int { return b.r }

// RunOfPosition returns the id of the run containing BWT position i.
func (b *RLBWT) RunOfPosition(i int) int {
	return int(b.boundary.Rank(uint64(i+1), true)) - 1
}

// RunStart returns the first BWT position of run k.
func (b *RLBWT) RunStart(k int) int { return b.runStart[k] }

// RunLength returns the length of run k.
func (b *RLBWT) RunLength(k int) int { return b.runLength[k] }

// RunHead returns the character of run k.
func (b *RLBWT) RunHead(k int) byte { return b.runHeads[k] }

// Access returns BWT[i].
func (b *RLBWT) Access(i int) byte {
	return b.runHeads[b.RunOfPosition(i)]
}

// NumberOfLetter returns occ(c, BWT), the total count of c in the BWT.
func (b *RLBWT) NumberOfLetter(c byte) int { return b.occCount[c] }

// Rank returns the number of occurrences of c in BWT[0, i).
func (b *RLBWT) Rank(i int, c byte) int {
	if b.occCount[c] == 0 {
		return 0
	}
	if i <= 0 {
		return 0
	}
	pos := i - 1
	rID := b.RunOfPosition(pos)
	cRunIdx := b.charRk.rank(c, rID)
	base := b.cumLen[c][cRunIdx]
	if b.runHeads[rID] == c {
		offset := pos - b.runStart[rID] + 1
		return base + offset
	}
	return base
}

// Select returns the position of the (k+1)-th occurrence of c in the
// BWT (k is 0-indexed: Select(0, c) is the first occurrence).
func (b *RLBWT) Select(k int, c byte) int {
	cum := b.cumLen[c]
	idx := predecessorIndex(cum, k)
	rID := b.charRk.selectK(c, idx)
	within := k - cum[idx]
	return b.runStart[rID] + within
}

// predecessorIndex returns the largest idx such that cum[idx] <= k.
func predecessorIndex(cum []int, k int) int {
	idx := sort.Search(len(cum), func(i int) bool { return cum[i] > k }) - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}
