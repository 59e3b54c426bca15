package trie

// Outcome classifies how a search was answered.
type Outcome int

const (
	NotFound Outcome = iota
	Found            // exact key match
	Closest          // nearest key by edit distance
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Closest:
		return "closest"
	default:
		return "notfound"
	}
}

// Result accumulates the records matched by one query and the number of
// bit, node and string comparisons spent on it.
type Result[R any] struct {
	Outcome  Outcome
	Matches  []R
	BitCmps  int
	NodeCmps int
	StrCmps  int

	// keys[i] is the key Matches[i] was stored under
	keys []string
}

// NewResult creates an empty result whose match list can hold capacity
// records without growing.
func NewResult[R any](capacity int) *Result[R] {
	if capacity < 0 {
		capacity = 0
	}
	return &Result[R]{
		Matches: make([]R, 0, capacity),
		keys:    make([]string, 0, capacity),
	}
}

// Len returns the number of matched records.
func (r *Result[R]) Len() int {
	return len(r.Matches)
}

// Keys returns the key of every matched record, parallel to Matches.
func (r *Result[R]) Keys() []string {
	return r.keys
}

func (r *Result[R]) add(key string, rec R) {
	r.Matches = append(r.Matches, rec)
	r.keys = append(r.keys, key)
}

func (r *Result[R]) addNode(n *Node[R]) {
	for _, rec := range n.records {
		r.add(n.key, rec)
	}
}

// truncate drops every match from index n on.
func (r *Result[R]) truncate(n int) {
	clear(r.Matches[n:])
	r.Matches = r.Matches[:n]
	r.keys = r.keys[:n]
}
