// Package trie implements a bitwise PATRICIA trie keyed by text identifiers.
//
// Keys are read as bit strings of (len(key)+1)*8 bits, the trailing zero
// terminator included, so no key's bit string is a prefix of another's. Each
// node stores the stem of bits consumed since its parent; a mismatch part way
// through a stem splits the node into a branching parent and two children.
//
// Lookups are instrumented: every search reports how many bits, nodes and
// strings were compared. When a key is not present the search falls back to
// the subtree below the deepest matched node and returns the records of the
// key with the smallest edit distance to the query.
//
// The trie is built once and then queried. Insertions must not run
// concurrently with each other or with searches; once building stops the trie
// is read-only and may be shared between goroutines.
package trie

import (
	"fmt"
	"strings"
)

// DefaultMaxKeyLength bounds key length in bytes, and with it the trie depth.
const DefaultMaxKeyLength = 512

// Trie owns every node, stem and record inserted into it.
type Trie[R any] struct {
	root      *Node[R]
	size      int
	maxKeyLen int
	released  bool
}

// New creates an empty trie accepting keys up to DefaultMaxKeyLength bytes.
func New[R any]() *Trie[R] {
	return NewWithLimit[R](DefaultMaxKeyLength)
}

// NewWithLimit creates an empty trie accepting keys up to maxKeyLen bytes.
// A non-positive limit falls back to DefaultMaxKeyLength.
func NewWithLimit[R any](maxKeyLen int) *Trie[R] {
	if maxKeyLen <= 0 {
		maxKeyLen = DefaultMaxKeyLength
	}
	return &Trie[R]{maxKeyLen: maxKeyLen}
}

// Len returns the number of insertions, duplicates included.
func (t *Trie[R]) Len() int {
	return t.size
}

// Root returns the root node, nil for an empty trie.
func (t *Trie[R]) Root() *Node[R] {
	return t.root
}

// ValidateKey reports whether key can be stored in the trie.
func (t *Trie[R]) ValidateKey(key string) error {
	switch {
	case t.released:
		return ErrReleased
	case key == "":
		return ErrEmptyKey
	case strings.IndexByte(key, 0) >= 0:
		return ErrKeyContainsNUL
	case len(key) > t.maxKeyLen:
		return fmt.Errorf("%w: %d > %d bytes", ErrKeyTooLong, len(key), t.maxKeyLen)
	}
	return nil
}

// Insert stores rec under key. Records inserted under the same key are kept
// in arrival order on one node.
func (t *Trie[R]) Insert(key string, rec R) error {
	if err := t.ValidateKey(key); err != nil {
		return err
	}
	kb, total := keyBits(key)

	slot := &t.root
	curr := 0
	for {
		node := *slot
		if node == nil {
			*slot = newLeaf(kb, curr, total, key, rec)
			break
		}

		match := matchBits(kb, curr, total, node.stem, node.stemBits)
		if match < node.stemBits {
			*slot = split(node, kb, curr, total, match, key, rec)
			break
		}

		curr += node.stemBits
		if curr == total {
			node.addRecord(key, rec)
			break
		}
		slot = &node.child[GetBit(kb, curr)]
	}

	t.size++
	return nil
}

// newLeaf creates a node holding the key bits from curr to the end.
func newLeaf[R any](kb []byte, curr, total int, key string, rec R) *Node[R] {
	leaf := newNode[R](CopyBitRange(kb, curr, total-curr), total-curr)
	leaf.addRecord(key, rec)
	return leaf
}

// split replaces node with a parent holding the first match bits of its stem.
// The shortened node and a new leaf for the key become the parent's children.
func split[R any](node *Node[R], kb []byte, curr, total, match int, key string, rec R) *Node[R] {
	branch := curr + match
	if branch >= total {
		panic(fmt.Sprintf("trie: key %q ends inside a stem at bit %d", key, branch))
	}

	parent := newNode[R](CopyBitRange(node.stem, 0, match), match)

	rest := node.stemBits - match
	node.stem = CopyBitRange(node.stem, match, rest)
	node.stemBits = rest

	leaf := newLeaf(kb, branch, total, key, rec)

	oldBit, newBit := GetBit(node.stem, 0), GetBit(kb, branch)
	if oldBit == newBit {
		panic(fmt.Sprintf("trie: split of %q at bit %d does not diverge", key, branch))
	}
	parent.child[oldBit] = node
	parent.child[newBit] = leaf
	return parent
}

// Walk visits every key in pre-order (node, left, right) with its records.
// Returning false from fn stops the walk.
func (t *Trie[R]) Walk(fn func(key string, records []R) bool) {
	walk(t.root, func(n *Node[R]) bool {
		if len(n.records) == 0 {
			return true
		}
		return fn(n.key, n.records)
	})
}

// walk runs fn over the subtree rooted at n in pre-order using an explicit stack.
func walk[R any](n *Node[R], fn func(*Node[R]) bool) {
	if n == nil {
		return
	}
	stack := []*Node[R]{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top) {
			return
		}
		if top.child[1] != nil {
			stack = append(stack, top.child[1])
		}
		if top.child[0] != nil {
			stack = append(stack, top.child[0])
		}
	}
}

// Release tears the trie down, dropping every node, stem and record.
// The trie cannot be used afterwards.
func (t *Trie[R]) Release() {
	if t.root != nil {
		stack := []*Node[R]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for i, c := range n.child {
				if c != nil {
					stack = append(stack, c)
					n.child[i] = nil
				}
			}
			clear(n.records)
			n.records = nil
			n.stem = nil
		}
	}
	t.root = nil
	t.size = 0
	t.released = true
}
