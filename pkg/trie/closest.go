package trie

import (
	"github.com/bastiangx/addrdict/pkg/fuzzy"
)

// ResolveClosest collects every record below last, picks the key with the
// smallest edit distance to query (ties go to the lexicographically smallest
// key) and keeps only the records stored under that key.
func (t *Trie[R]) ResolveClosest(last *Node[R], query string, res *Result[R]) {
	if last == nil {
		return
	}

	start := res.Len()
	walk(last, func(n *Node[R]) bool {
		res.addNode(n)
		return true
	})
	if res.Len() == start {
		res.truncate(start)
		return
	}

	best := bestKey(query, res.keys[start:])

	kept := start
	for i := start; i < res.Len(); i++ {
		if res.keys[i] == best {
			res.Matches[kept] = res.Matches[i]
			res.keys[kept] = res.keys[i]
			kept++
		}
	}
	res.truncate(kept)
	res.StrCmps++
}

// bestKey scores each distinct candidate once.
func bestKey(query string, candidates []string) string {
	tested := make(map[string]struct{}, len(candidates))
	best, bestDist := "", 0
	for _, cand := range candidates {
		if _, seen := tested[cand]; seen {
			continue
		}
		tested[cand] = struct{}{}

		dist := fuzzy.Distance(query, cand)
		if len(tested) == 1 || dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best
}
