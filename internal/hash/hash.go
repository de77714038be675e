package hash

import "github.com/cespare/xxhash/v2"

// LabelMultiplier is the multiplier of the label-table rolling hash.
const LabelMultiplier = 0x492

// Label computes the rolling hash of a label name.
// The hash of the empty name is 0. Arithmetic wraps at 32 bits.
func Label(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*LabelMultiplier + uint32(name[i])
	}

	return h
}

// LabelChecksum returns the bucket of name in a table with groupCount buckets.
// A table without buckets places every label in bucket 0.
func LabelChecksum(name string, groupCount uint32) uint32 {
	if groupCount == 0 {
		return 0
	}

	return Label(name) % groupCount
}

// Fingerprint computes the xxHash64 of serialized container bytes.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
