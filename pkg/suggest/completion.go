// Package suggest offers prefix completion over dictionary keys, backed by a
// patricia trie from go-patricia.
package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Suggestion is a key that starts with the requested prefix.
type Suggestion struct {
	Key   string
	Count int
}

// Completer maps each key to the number of records stored under it.
type Completer struct {
	trie      *patricia.Trie
	totalKeys int
	maxCount  int
}

// NewCompleter creates an empty completion index.
func NewCompleter() *Completer {
	return &Completer{
		trie: patricia.NewTrie(),
	}
}

// AddKey counts one more record for key.
func (c *Completer) AddKey(key string) {
	prefix := patricia.Prefix(key)
	count := 1
	if item := c.trie.Get(prefix); item != nil {
		count = item.(int) + 1
		c.trie.Set(prefix, count)
	} else {
		c.trie.Insert(prefix, count)
		c.totalKeys++
	}
	if count > c.maxCount {
		c.maxCount = count
	}
}

// Complete returns keys under prefix, most records first and then by key.
// A non-positive limit returns every match.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	var suggestions []Suggestion

	visit := func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for key %s", item, p)
			return nil
		}
		suggestions = append(suggestions, Suggestion{
			Key:   string(p),
			Count: count,
		})
		return nil
	}

	var err error
	if prefix == "" {
		err = c.trie.Visit(visit)
	} else {
		err = c.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Key < suggestions[j].Key
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Stats returns counters about the indexed keys.
func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"totalKeys": c.totalKeys,
		"maxCount":  c.maxCount,
	}
}
