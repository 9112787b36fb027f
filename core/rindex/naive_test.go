// core/rindex/naive_test.go
//
// naiveLongestMatch brute-forces the longest substring of P starting
// at i that occurs anywhere in T, for cross-checking the engines on
// small reference texts (spec.md §8, testable property 3).
package rindex

func naiveLongestMatch(t, p []byte, i int) (length int, pos int) {
	best := 0
	bestPos := -1
	for start := 0; start <= len(t); start++ {
		l := 0
		for i+l < len(p) && start+l < len(t) && p[i+l] == t[start+l] {
			l++
		}
		if l > best {
			best = l
			bestPos = start
		}
	}
	if bestPos < 0 {
		bestPos = 0
	}
	return best, bestPos
}
