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

import "time"

// GroupedElement is one element of a SlowGroupIndex lookup result. A
// failing key selector does not stop iteration here: it is attached to
// the element's own wrapper instead, and only becomes visible to the
// caller when Err is inspected — exceptions as data, not control flow,
// until the caller chooses to look.
type GroupedElement[E any] struct {
	Value   E
	pending error
}

// Err returns the key-build or probe failure pending on this element, if
// any. A zero-value GroupedElement (e.g. from a bucket miss reached via
// Cursor.Value after Next returned false) always reports nil.
func (g GroupedElement[E]) Err() error { return g.pending }

// SlowGroupConfig configures BuildSlowGroup.
type SlowGroupConfig[K comparable] struct {
	BuildConfig
	// Hasher hashes a key for the grouping table. A nil Hasher defaults to
	// hash/maphash.Comparable, seeded once per built index.
	Hasher Hasher[K]
}

// SlowGroupIndex is the grouping-style variant: Lookup returns wrapped
// elements instead of raising directly, so a caller can distinguish "this
// element matched and is valid" from "this element's key could not be
// computed" without losing either kind of result.
type SlowGroupIndex[E any, K comparable] struct {
	ordered        []E
	table          *groupingTable[K]
	hasher         Hasher[K]
	keyFailureList []GroupedElement[E]
	source         []E
	stats          Stats
	metrics        *Metrics
}

// BuildSlowGroup computes a key per element; successes are clustered into
// contiguous, key-equal runs (first-seen key order, source order within a
// run) and indexed by a custom hash table; failures are set aside on a
// side list rather than inserted into the ordered array.
func BuildSlowGroup[E any, K comparable](source Source[E], key KeySelector[E, K], cfg SlowGroupConfig[K]) (*SlowGroupIndex[E, K], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if key == nil {
		return nil, ErrNilKeySelector
	}
	cfg.BuildConfig = cfg.BuildConfig.withDefaults()
	start := time.Now()

	elements, sourceErr := drain(source)

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = defaultHasher[K]()
	}

	type run struct {
		key   K
		elems []E
	}
	order := make([]K, 0)
	runs := make(map[K]*run)
	var keyFailureList []GroupedElement[E]

	for _, e := range elements {
		k, err := key(e)
		if err != nil {
			keyFailureList = append(keyFailureList, GroupedElement[E]{Value: e, pending: err})
			continue
		}
		r, ok := runs[k]
		if !ok {
			r = &run{key: k}
			runs[k] = r
			order = append(order, k)
		}
		r.elems = append(r.elems, e)
	}
	if sourceErr != nil {
		var zero E
		keyFailureList = append(keyFailureList, GroupedElement[E]{Value: zero, pending: sourceErr})
	}

	ordered := make([]E, 0, len(elements))
	table := newGroupingTable[K](len(order))
	for _, k := range order {
		r := runs[k]
		s := len(ordered)
		ordered = append(ordered, r.elems...)
		h := maskHash(hasher, k)
		table.insert(&grouping[K]{key: k, hash: h, start: s, stop: len(ordered)})
	}

	idx := &SlowGroupIndex[E, K]{
		ordered:        ordered,
		table:          table,
		hasher:         hasher,
		keyFailureList: keyFailureList,
		source:         elements,
		metrics:        cfg.Metrics,
	}
	idx.stats = Stats{Elements: len(elements), DistinctKeys: len(order), KeyFailures: len(keyFailureList)}
	logBuildComplete(cfg.Logger, "slow_group", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures)
	cfg.Metrics.OnBuild("slow_group", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures, time.Since(start))
	return idx, nil
}

// Lookup evaluates deferredKey. If it fails, every source element is
// yielded, each wrapped with that same failure, mirroring the original's
// argument-exception path without its shared-mutable-wrapper hazard (see
// DESIGN.md): this call is safe to run concurrently with other lookups.
// On success, the matching grouping's range is yielded, followed by every
// element whose own key could not be computed at build time — a quirk
// inherited from the source design. A miss returns Empty without those
// trailing elements.
func (idx *SlowGroupIndex[E, K]) Lookup(deferredKey DeferredKey[K]) Cursor[GroupedElement[E]] {
	start := time.Now()
	k, err := deferredKey()
	if err != nil {
		idx.metrics.OnLookup("slow_group", LookupFailure, time.Since(start))
		return newArgumentErrorCursor(idx.source, err)
	}

	h := maskHash(idx.hasher, k)
	g := idx.table.find(h, k)
	if g == nil {
		idx.metrics.OnLookup("slow_group", LookupMiss, time.Since(start))
		return Empty[GroupedElement[E]]()
	}
	idx.metrics.OnLookup("slow_group", LookupHit, time.Since(start))
	return newGroupCursor(idx.ordered[g.start:g.stop], idx.keyFailureList)
}

// Stats reports the shape of the sealed index.
func (idx *SlowGroupIndex[E, K]) Stats() Stats { return idx.stats }

// groupCursor yields a matched run followed by the trailing key-failure
// list. It is allocated fresh per Lookup call and holds no state shared
// with any other cursor.
type groupCursor[E any] struct {
	matched  []E
	trailing []GroupedElement[E]
	pos      int
}

func newGroupCursor[E any](matched []E, trailing []GroupedElement[E]) Cursor[GroupedElement[E]] {
	if len(matched) == 0 && len(trailing) == 0 {
		return Empty[GroupedElement[E]]()
	}
	return &groupCursor[E]{matched: matched, trailing: trailing, pos: -1}
}

func (c *groupCursor[E]) Next() bool {
	c.pos++
	return c.pos < len(c.matched)+len(c.trailing)
}

func (c *groupCursor[E]) Value() GroupedElement[E] {
	if c.pos < len(c.matched) {
		return GroupedElement[E]{Value: c.matched[c.pos]}
	}
	return c.trailing[c.pos-len(c.matched)]
}

func (c *groupCursor[E]) Err() error { return nil }

// argumentErrorCursor wraps every element of source with the same probe
// failure. Unlike the original it owns its own backing slice reference
// only — no mutable buffer is shared across Lookup calls.
type argumentErrorCursor[E any] struct {
	source []E
	err    error
	pos    int
}

func newArgumentErrorCursor[E any](source []E, err error) Cursor[GroupedElement[E]] {
	if len(source) == 0 {
		return Empty[GroupedElement[E]]()
	}
	return &argumentErrorCursor[E]{source: source, err: err, pos: -1}
}

func (c *argumentErrorCursor[E]) Next() bool {
	c.pos++
	return c.pos < len(c.source)
}

func (c *argumentErrorCursor[E]) Value() GroupedElement[E] {
	return GroupedElement[E]{Value: c.source[c.pos], pending: c.err}
}

func (c *argumentErrorCursor[E]) Err() error { return nil }
