package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// zeroSubstitute replaces a zero hash, which callers reserve for "absent".
const zeroSubstitute = 0x9e3779b97f4a7c15

// NonZeroID is ID with the zero value remapped to a fixed non-zero constant.
func NonZeroID(data string) uint64 {
	if h := ID(data); h != 0 {
		return h
	}

	return zeroSubstitute
}

// Payloads computes the xxHash64 of the concatenation of parts without
// materializing it.
func Payloads(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
