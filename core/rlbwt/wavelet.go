// core/rlbwt/wavelet.go
//
// charRank is a wavelet-tree rank/select structure over the run-heads
// string (length r, one byte per run — not the decoded BWT of length
// n). It answers, in O(log sigma): how many runs with head c precede
// run k (rank), and which run is the k-th c-run (select). Combined
// with the per-character cumulative run-length tables in rlbwt.go,
// this gives rank/select on the decoded BWT without ever storing it.
package rlbwt

import (
	"fmt"

	"github.com/mozu0/bitvector"
	"github.com/mozu0/huffman"
)

type charRank struct {
	codes map[byte]string
	nodes map[byte][]*bitvector.BitVector
}

func buildCharRank(heads []byte) *charRank {
	counts := make(map[byte]int)
	for _, h := range heads {
		counts[h]++
	}

	var keys []byte
	var freqs []int
	for k, c := range counts {
		keys = append(keys, k)
		freqs = append(freqs, c)
	}

	codes := make(map[byte]string, len(keys))
	if len(keys) == 1 {
		codes[keys[0]] = ""
	} else if len(keys) > 1 {
		huffCodes := huffman.FromInts(freqs)
		for i, k := range keys {
			codes[k] = huffCodes[i]
		}
	}

	sizes := make(map[string]int)
	for _, h := range heads {
		code := codes[h]
		for j := range code {
			sizes[code[:j]]++
		}
	}

	builders := make(map[string]*bitvector.Builder, len(sizes))
	for prefix, size := range sizes {
		builders[prefix] = bitvector.NewBuilder(size)
	}

	idx := make(map[string]int)
	for _, h := range heads {
		code := codes[h]
		for j := range code {
			prefix := code[:j]
			if code[j] == '1' {
				builders[prefix].Set(idx[prefix])
			}
			idx[prefix]++
		}
	}

	bvs := make(map[string]*bitvector.BitVector, len(builders))
	for prefix, b := range builders {
		bvs[prefix] = b.Build()
	}

	nodes := make(map[byte][]*bitvector.BitVector, len(keys))
	for _, k := range keys {
		code := codes[k]
		for j := range code {
			nodes[k] = append(nodes[k], bvs[code[:j]])
		}
	}

	return &charRank{codes: codes, nodes: nodes}
}

// rank returns the number of runs with head c among the first k runs
// (runHeads[0:k]).
func (cr *charRank) rank(c byte, k int) int {
	code, ok := cr.codes[c]
	if !ok {
		return 0
	}
	nodes := cr.nodes[c]
	i := k
	for j := range nodes {
		if code[j] == '1' {
			i = nodes[j].Rank1(i)
		} else {
			i = nodes[j].Rank0(i)
		}
	}
	return i
}

// selectK returns the run id of the (k+1)-th (0-indexed) run with head c.
func (cr *charRank) selectK(c byte, k int) int {
	code, ok := cr.codes[c]
	if !ok {
		panic(fmt.Sprintf("rlbwt: selectK on absent character %q", c))
	}
	nodes := cr.nodes[c]
	r := k
	for j := len(nodes) - 1; j >= 0; j-- {
		if code[j] == '1' {
			r = nodes[j].Select1(r)
		} else {
			r = nodes[j].Select0(r)
		}
	}
	return r
}
