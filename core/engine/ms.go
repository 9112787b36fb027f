// core/engine/ms.go
//
// runMS implements the MS transition of spec.md §4.5: a backward scan
// over P producing, for every start position, a candidate reference
// pointer. ReconstructLengths is the separate forward-sweep
// post-processing step spec.md §9 calls out as its own function
// (gated here by ModeMS rather than folded into the backward scan).
package engine

import (
	"msri-core/rindex"
	"msri-core/textaccess"
)

func (e *Engine) runMS(p []byte) Result {
	m := len(p)
	pointers := make([]int, m)
	var docIDs []uint32
	if e.doc != nil {
		docIDs = make([]uint32, m)
	}

	n := e.idx.Size()
	r := e.idx.NumberOfRuns()
	pos := n - 1
	sample := e.sa.Last(r - 1)
	currDoc := uint32(0)
	if e.doc != nil {
		currDoc = e.doc.EndDoc(r - 1)
	}

	for j := m - 1; j >= 0; j-- {
		c := p[j]
		switch {
		case e.idx.BWT.NumberOfLetter(c) == 0:
			sample = 0
			if e.doc != nil {
				currDoc = e.docIDForAbsentChar()
			}
		case e.idx.BWT.Access(pos) == c:
			sample--
		default:
			rnk := e.idx.BWT.Rank(pos, c)
			thr := n + 1
			nextPos := pos
			if rnk < e.idx.BWT.NumberOfLetter(c) {
				sel := e.idx.BWT.Select(rnk, c)
				rj := e.idx.BWT.RunOfPosition(sel)
				thr = e.th.At(rj)
				// sel's BWT char is c, so its SA value sits one text
				// position past the one c actually matches.
				sample = (e.sa.Start(rj) + n - 1) % n
				nextPos = sel
				if e.doc != nil {
					currDoc = e.doc.StartDoc(rj)
				}
			}
			if pos < thr {
				rnk--
				sel := e.idx.BWT.Select(rnk, c)
				rj := e.idx.BWT.RunOfPosition(sel)
				sample = (e.sa.Last(rj) + n - 1) % n
				nextPos = sel
				if e.doc != nil {
					currDoc = e.doc.EndDoc(rj)
				}
			}
			pos = nextPos
		}

		pointers[j] = sample
		if e.doc != nil {
			docIDs[j] = currDoc
		}
		pos = rindex.LF(e.idx, pos, c)
	}

	res := Result{Pointers: pointers, DocIDs: docIDs}
	if e.text != nil {
		res.Lengths = ReconstructLengths(p, pointers, e.text)
	}
	return res
}

// ReconstructLengths runs the forward sweep of spec.md §4.5 over an
// already-computed pointers array, using text.CharAt for the
// character comparisons. It is the one place the MS path touches
// Random-Access Text; the backward scan above never does.
func ReconstructLengths(p []byte, pointers []int, text textaccess.Source) []int {
	m := len(p)
	n := text.Len()
	lengths := make([]int, m)
	l := 0
	for i := 0; i < m; i++ {
		pos := pointers[i]
		for i+l < m && int64(pos+l) < n && (i == 0 || pos != pointers[i-1]+1) {
			ch, err := text.CharAt(int64(pos + l))
			if err != nil || p[i+l] != ch {
				break
			}
			l++
		}
		lengths[i] = l
		if l > 0 {
			l--
		}
	}
	return lengths
}
