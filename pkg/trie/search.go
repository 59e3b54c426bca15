package trie

import "strings"

// Lookup is the outcome of an exact search. When Found is true Node is the
// node terminating the key; otherwise Node is the deepest node reached on the
// search path, nil when the trie is empty or the key is empty.
type Lookup[R any] struct {
	Found bool
	Node  *Node[R]
}

// ExactSearch looks key up and appends the records of an exact match to res.
// Comparison counters on res are advanced as the path is walked. A key is
// read up to its first NUL byte.
func (t *Trie[R]) ExactSearch(key string, res *Result[R]) Lookup[R] {
	key = queryKey(key)
	if t.root == nil || key == "" {
		return Lookup[R]{}
	}
	kb, total := keyBits(key)

	var last *Node[R]
	curr := 0
	for node := t.root; node != nil; {
		res.NodeCmps++
		match := matchBits(kb, curr, total, node.stem, node.stemBits)
		res.BitCmps += match

		if match < node.stemBits {
			// the mismatching bit is compared too
			res.BitCmps++
			return Lookup[R]{Node: node}
		}
		last = node

		curr += node.stemBits
		if curr >= total {
			res.StrCmps++
			res.addNode(node)
			return Lookup[R]{Found: true, Node: node}
		}
		node = node.child[GetBit(kb, curr)]
	}
	return Lookup[R]{Node: last}
}

// Search answers a query with an exact match when the key is present and
// with the closest key below the deepest matched node otherwise.
func (t *Trie[R]) Search(key string) *Result[R] {
	key = queryKey(key)
	res := NewResult[R](t.size)

	lookup := t.ExactSearch(key, res)
	switch {
	case lookup.Found:
		res.Outcome = Found
	case lookup.Node != nil:
		t.ResolveClosest(lookup.Node, key, res)
		if res.Len() > 0 {
			res.Outcome = Closest
		}
	}
	return res
}

// queryKey cuts key at its first NUL byte, which would otherwise be read as
// the terminator.
func queryKey(key string) string {
	if i := strings.IndexByte(key, 0); i >= 0 {
		return key[:i]
	}
	return key
}
