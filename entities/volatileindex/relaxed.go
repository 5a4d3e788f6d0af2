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

// RelaxedIndex is the fastest, least faithful variant: every key-selector
// failure, at build time or at lookup time, is silently discarded. A
// lookup can therefore return fewer elements than the naive nested scan
// would have produced before raising — that is the whole trade.
//
// Once built, RelaxedIndex does not retain the source: nothing in its
// lookup path ever needs to re-examine it.
type RelaxedIndex[E any, K comparable] struct {
	buckets map[K][]E
	stats   Stats
	metrics *Metrics
}

// BuildRelaxed drains source, keeping only the elements for which key
// succeeds. If source itself fails partway through (Source.Err() is
// non-nil after the last successful Next), no special handling is needed:
// whatever was already observed is exactly what a "rebuild from the valid
// prefix" would have produced, since every failure here is swallowed
// anyway.
func BuildRelaxed[E any, K comparable](source Source[E], key KeySelector[E, K], cfg BuildConfig) (*RelaxedIndex[E, K], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if key == nil {
		return nil, ErrNilKeySelector
	}
	cfg = cfg.withDefaults()
	start := time.Now()

	buckets := make(map[K][]E)
	failures := 0
	elements := 0
	for source.Next() {
		e := source.Value()
		elements++
		k, err := key(e)
		if err != nil {
			failures++
			continue
		}
		buckets[k] = append(buckets[k], e)
	}

	idx := &RelaxedIndex[E, K]{
		buckets: buckets,
		stats: Stats{
			Elements:     elements,
			DistinctKeys: len(buckets),
			KeyFailures:  failures,
		},
		metrics: cfg.Metrics,
	}
	logBuildComplete(cfg.Logger, "relaxed", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures)
	cfg.Metrics.OnBuild("relaxed", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures, time.Since(start))
	return idx, nil
}

// Lookup evaluates deferredKey and returns its bucket, or Empty if the
// probe fails or no element shares that key. Lookup never fails.
func (idx *RelaxedIndex[E, K]) Lookup(deferredKey DeferredKey[K]) Cursor[E] {
	start := time.Now()
	k, err := deferredKey()
	if err != nil {
		idx.metrics.OnLookup("relaxed", LookupFailure, time.Since(start))
		return Empty[E]()
	}
	bucket, ok := idx.buckets[k]
	if !ok {
		idx.metrics.OnLookup("relaxed", LookupMiss, time.Since(start))
		return Empty[E]()
	}
	idx.metrics.OnLookup("relaxed", LookupHit, time.Since(start))
	return newSliceCursor(bucket)
}

// Stats reports the shape of the sealed index.
func (idx *RelaxedIndex[E, K]) Stats() Stats { return idx.stats }
