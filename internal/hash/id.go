// Package hash provides the non-cryptographic string hashing used to key
// rtdb's in-memory per-series field maps.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of data, used as the bucket key for field names
// within a series store.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
