// Package fuzzy scores how far apart two keys are for approximate lookups.
package fuzzy

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single byte insertions, deletions and substitutions turning one
// into the other.
//
// The classic (len(a)+1) x (len(b)+1) table is filled row by row keeping only
// the previous row, so memory stays O(len(b)).
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
