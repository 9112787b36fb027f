// core/engine/pml.go
//
// runPML implements the PML transition of spec.md §4.4: a backward
// scan over P producing, for every start position, a pseudo-matching
// length: a step whose character matches BWT[pos] adds 1, and a
// mismatch that snaps to another run resets the length to 0. The value
// never exceeds the length of the longest substring of P from that
// position occurring in T, but is not always equal to it (for
// T = "BANANA$", P = "ANA" it is [1,0,1], against the exact [3,2,1]).
package engine

import "msri-core/rindex"

func (e *Engine) runPML(p []byte) Result {
	m := len(p)
	lengths := make([]int, m)
	var docIDs []uint32
	if e.doc != nil {
		docIDs = make([]uint32, m)
	}

	n := e.idx.Size()
	pos := n - 1
	length := 0
	currDoc := uint32(0)
	if e.doc != nil {
		currDoc = e.doc.EndDoc(e.doc.Len() - 1)
	}

	for j := m - 1; j >= 0; j-- {
		c := p[j]
		switch {
		case e.idx.BWT.NumberOfLetter(c) == 0:
			length = 0
			if e.doc != nil {
				currDoc = e.docIDForAbsentChar()
			}
		case e.idx.BWT.Access(pos) == c:
			length++
		default:
			rnk := e.idx.BWT.Rank(pos, c)
			thr := n + 1
			nextPos := pos
			if rnk < e.idx.BWT.NumberOfLetter(c) {
				sel := e.idx.BWT.Select(rnk, c)
				rj := e.idx.BWT.RunOfPosition(sel)
				thr = e.th.At(rj)
				length = 0
				nextPos = sel
				if e.doc != nil {
					currDoc = e.doc.StartDoc(rj)
				}
			}
			if pos < thr {
				rnk--
				sel := e.idx.BWT.Select(rnk, c)
				rj := e.idx.BWT.RunOfPosition(sel)
				length = 0
				nextPos = sel
				if e.doc != nil {
					currDoc = e.doc.EndDoc(rj)
				}
			}
			pos = nextPos
		}

		lengths[j] = length
		if e.doc != nil {
			docIDs[j] = currDoc
		}
		pos = rindex.LF(e.idx, pos, c)
	}

	return Result{Lengths: lengths, DocIDs: docIDs}
}
