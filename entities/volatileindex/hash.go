//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2026 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package volatileindex

import (
	"fmt"
	"hash/maphash"

	"github.com/spaolacci/murmur3"
)

// Hasher produces a hash code for a key, consistent with the equality
// relation SlowGroupIndex's grouping table uses (K's built-in ==). The
// table does not use a Hasher's output directly: through maskHash, the
// zero-value key always hashes to 0 and every other hash is masked to a
// non-negative value before use.
type Hasher[K comparable] func(K) uint64

// defaultHasher hashes an arbitrary comparable key using maphash.Comparable
// seeded once per index. No dependency in the retrieval pack hashes an
// arbitrary comparable type parameter directly — the available hashing
// libraries (murmur3, and transitively cespare/xxhash/v2) all operate on
// byte slices — so the generic default is taken from the standard library.
// See DESIGN.md for the full justification. Callers with byte-representable
// keys can opt into MurmurHasher instead via SlowGroupConfig.Hasher.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// MurmurHasher builds a Hasher for keys that can be rendered as bytes,
// using github.com/spaolacci/murmur3. toBytes controls the rendering; a nil
// toBytes falls back to fmt.Sprintf("%v", k), which is adequate for keys
// that are already strings, integers, or otherwise render uniquely.
func MurmurHasher[K comparable](toBytes func(K) []byte) Hasher[K] {
	if toBytes == nil {
		toBytes = func(k K) []byte {
			return []byte(fmt.Sprintf("%v", k))
		}
	}
	return func(k K) uint64 {
		return murmur3.Sum64(toBytes(k))
	}
}

// maskHash masks non-null hash codes to non-negative values. uint64 has no
// sign bit to speak of, but the mask is kept
// for parity with the original int32 hash codes it was written against,
// and to guarantee table bucket = hash % len never needs a second
// non-negativity check downstream. It is a no-op for the zero key, whose
// hash is defined as exactly 0 regardless of what the underlying Hasher
// produces.
func maskHash[K comparable](h Hasher[K], k K) uint64 {
	var zero K
	if k == zero {
		return 0
	}
	return h(k) & 0x7fffffffffffffff
}
