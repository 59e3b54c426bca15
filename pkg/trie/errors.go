package trie

import "errors"

var (
	ErrEmptyKey       = errors.New("trie: empty key")
	ErrKeyContainsNUL = errors.New("trie: key contains a NUL byte")
	ErrKeyTooLong     = errors.New("trie: key exceeds maximum length")
	ErrReleased       = errors.New("trie: used after Release")
)
