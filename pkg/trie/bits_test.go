package trie

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBit(t *testing.T) {
	data := []byte{0b10110000, 0b00000001}
	expected := []int{1, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	for i, want := range expected {
		assert.Equal(t, want, GetBit(data, i), "bit %d", i)
	}
}

func TestCopyBitRange(t *testing.T) {
	src := []byte{0b10110110, 0b01101101}

	testCases := []struct {
		name     string
		start, n int
		expected []byte
	}{
		{"empty", 3, 0, []byte{}},
		{"aligned whole byte", 0, 8, []byte{0b10110110}},
		{"aligned partial", 8, 3, []byte{0b01100000}},
		{"aligned both bytes", 0, 16, []byte{0b10110110, 0b01101101}},
		{"unaligned within byte", 2, 4, []byte{0b11010000}},
		{"unaligned across bytes", 5, 7, []byte{0b11001100}},
		{"unaligned to end", 3, 13, []byte{0b10110011, 0b01101000}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CopyBitRange(src, tc.start, tc.n))
		})
	}
}

func TestCopyBitRangeMatchesGetBit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := make([]byte, 16)
	rng.Read(src)

	for iter := 0; iter < 500; iter++ {
		start := rng.Intn(len(src) * 8)
		n := rng.Intn(len(src)*8 - start + 1)

		out := CopyBitRange(src, start, n)
		require.Len(t, out, (n+7)/8)
		for i := 0; i < n; i++ {
			require.Equal(t, GetBit(src, start+i), GetBit(out, i), "start=%d n=%d bit=%d", start, n, i)
		}
		for i := n; i < len(out)*8; i++ {
			require.Zero(t, GetBit(out, i), "padding bit %d not zero", i)
		}
	}
}

func TestKeyBitsIncludesTerminator(t *testing.T) {
	kb, total := keyBits("AB")
	assert.Equal(t, []byte{'A', 'B', 0}, kb)
	assert.Equal(t, 24, total)
}

func TestMatchBitsBound(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for iter := 0; iter < 500; iter++ {
		key := make([]byte, 1+rng.Intn(6))
		rng.Read(key)
		stem := make([]byte, 1+rng.Intn(6))
		rng.Read(stem)

		total := len(key) * 8
		start := rng.Intn(total + 1)
		stemBits := rng.Intn(len(stem)*8 + 1)

		match := matchBits(key, start, total, stem, stemBits)
		assert.LessOrEqual(t, match, min(total-start, stemBits))
		assert.GreaterOrEqual(t, match, 0)
	}
}

func TestMatchBitsStopsAtMismatch(t *testing.T) {
	key := []byte{0b11110000}
	stem := []byte{0b11100000}
	assert.Equal(t, 3, matchBits(key, 0, 8, stem, 8))
	assert.Equal(t, 2, matchBits(key, 0, 8, stem, 2))
	assert.Equal(t, 0, matchBits(key, 8, 8, stem, 8))
}
