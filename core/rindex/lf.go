// core/rindex/lf.go
package rindex

// LF computes the LF mapping at position pos for character c:
// LF(i, c) = F[c] + rank(i, c) (spec.md §4.3). This is the only
// mapping the backward-search engines use; unrestricted LF(i) is
// never needed.
func LF(idx *Index, pos int, c byte) int {
	return int(idx.F[c]) + idx.BWT.Rank(pos, c)
}
