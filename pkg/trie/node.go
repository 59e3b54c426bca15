package trie

// Node is a single trie vertex. Its stem holds the bits consumed between the
// parent and this node. A node has either no children or two of them; only
// nodes that end exactly at a key's terminator carry records.
type Node[R any] struct {
	stem     []byte
	stemBits int
	child    [2]*Node[R]
	key      string
	records  []R
}

func newNode[R any](stem []byte, stemBits int) *Node[R] {
	return &Node[R]{
		stem:     stem,
		stemBits: stemBits,
	}
}

// StemBits returns the number of bits in the node's stem.
func (n *Node[R]) StemBits() int {
	return n.stemBits
}

// Stem returns a copy of the node's stem bytes.
func (n *Node[R]) Stem() []byte {
	return CopyBitRange(n.stem, 0, n.stemBits)
}

// Key returns the key that terminates at this node, or "" for inner nodes.
func (n *Node[R]) Key() string {
	return n.key
}

// Records returns the records attached to this node in insertion order.
func (n *Node[R]) Records() []R {
	return n.records
}

// Child returns the left (0) or right (1) child.
func (n *Node[R]) Child(bit int) *Node[R] {
	return n.child[bit&1]
}

// IsLeaf reports whether the node has no children.
func (n *Node[R]) IsLeaf() bool {
	return n.child[0] == nil && n.child[1] == nil
}

func (n *Node[R]) addRecord(key string, rec R) {
	n.key = key
	n.records = append(n.records, rec)
}
