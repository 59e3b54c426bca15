package trie

const bitsPerByte = 8

// GetBit returns bit i of data, most significant bit first within each byte.
// i must lie inside the bit length of data.
func GetBit(data []byte, i int) int {
	return int(data[i/bitsPerByte]>>(bitsPerByte-1-i%bitsPerByte)) & 1
}

// CopyBitRange returns a new slice holding n bits of src starting at bit start,
// left aligned and padded with zero bits up to the next byte boundary.
func CopyBitRange(src []byte, start, n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, (n+bitsPerByte-1)/bitsPerByte)

	// byte aligned source: plain copy, then clear the tail padding
	if start%bitsPerByte == 0 {
		copy(out, src[start/bitsPerByte:])
		if rem := n % bitsPerByte; rem != 0 {
			out[len(out)-1] &= byte(0xFF << (bitsPerByte - rem))
		}
		return out
	}

	for i := 0; i < n; i++ {
		if GetBit(src, start+i) == 1 {
			out[i/bitsPerByte] |= 1 << (bitsPerByte - 1 - i%bitsPerByte)
		}
	}
	return out
}

// keyBits returns the key with its terminator byte and its total bit length.
func keyBits(key string) ([]byte, int) {
	kb := make([]byte, len(key)+1)
	copy(kb, key)
	return kb, len(kb) * bitsPerByte
}

// matchBits counts the leading bits of stem that equal the key bits starting
// at start. The count never exceeds min(total-start, stemBits).
func matchBits(key []byte, start, total int, stem []byte, stemBits int) int {
	limit := total - start
	if limit < 0 {
		limit = 0
	}
	if stemBits < limit {
		limit = stemBits
	}
	for i := 0; i < limit; i++ {
		if GetBit(key, start+i) != GetBit(stem, i) {
			return i
		}
	}
	return limit
}
