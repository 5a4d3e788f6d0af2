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

// grouping is one contiguous, equal-key run inside a SlowGroupIndex's
// ordered array, plus its place in the index's own singly-linked hash
// chain. A Go map from K to (start, stop) would do the same job with far
// less code; this custom table is kept because reproducing it is the
// entire point of this variant — see DESIGN.md.
type grouping[K comparable] struct {
	key      K
	hash     uint64
	start    int
	stop     int
	hashNext *grouping[K]
}

// groupingTable buckets groupings by hash mod table length, chains linked
// via hashNext, sized to the next prime-ish number at or above
// 2*distinctKeys+1, with a floor of 7.
type groupingTable[K comparable] struct {
	slots []*grouping[K]
}

func newGroupingTable[K comparable](distinctKeys int) *groupingTable[K] {
	return &groupingTable[K]{slots: make([]*grouping[K], tableSize(distinctKeys))}
}

func (t *groupingTable[K]) insert(g *grouping[K]) {
	slot := int(g.hash % uint64(len(t.slots)))
	g.hashNext = t.slots[slot]
	t.slots[slot] = g
}

func (t *groupingTable[K]) find(hash uint64, key K) *grouping[K] {
	slot := int(hash % uint64(len(t.slots)))
	for g := t.slots[slot]; g != nil; g = g.hashNext {
		if g.hash == hash && g.key == key {
			return g
		}
	}
	return nil
}

// tableSize picks the smallest prime at or above max(7, 2*n+1).
func tableSize(n int) int {
	size := 2*n + 1
	if size < 7 {
		size = 7
	}
	for !isPrime(size) {
		size += 2
	}
	return size
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
