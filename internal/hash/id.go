package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// tablecodec uses it to fingerprint a table's column-name schema so a
// decoder can reject payloads whose layout does not match the header.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Schema computes the xxHash64 fingerprint of an ordered list of column
// names. The names are joined with a unit separator so that
// ["ab","c"] and ["a","bc"] hash differently.
func Schema(names []string) uint64 {
	d := xxhash.New()
	for i, name := range names {
		if i > 0 {
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString(name)
	}

	return d.Sum64()
}
