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

// keyFailure pairs a source element with the error its key selector
// raised, in the order the element was encountered.
type keyFailure[E any] struct {
	element E
	err     error
}

// PartlyRelaxedIndex retains every key-build failure, like StrictIndex,
// but only raises one from Lookup when a caller-supplied residual
// predicate says the failing element would actually have survived the
// rest of the outer filter. This lets a query rewriter push the remainder
// of an outer WHERE clause into the lookup call instead of the index
// inventing failures the original query would have filtered away.
type PartlyRelaxedIndex[E any, K comparable] struct {
	source   []E
	key      KeySelector[E, K]
	buckets  map[K][]E
	failures []keyFailure[E]
	stats    Stats
	metrics  *Metrics
}

// BuildPartlyRelaxed iterates the whole source — unlike StrictIndex it
// never stops at the first key-build failure. Every failure is recorded,
// in source order, for Lookup to consult later.
func BuildPartlyRelaxed[E any, K comparable](source Source[E], key KeySelector[E, K], cfg BuildConfig) (*PartlyRelaxedIndex[E, K], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if key == nil {
		return nil, ErrNilKeySelector
	}
	cfg = cfg.withDefaults()
	start := time.Now()

	elements, sourceErr := drain(source)

	idx := &PartlyRelaxedIndex[E, K]{
		source:  elements,
		key:     key,
		buckets: make(map[K][]E),
		metrics: cfg.Metrics,
	}
	for _, e := range elements {
		k, err := key(e)
		if err != nil {
			idx.failures = append(idx.failures, keyFailure[E]{element: e, err: err})
			continue
		}
		idx.buckets[k] = append(idx.buckets[k], e)
	}
	if sourceErr != nil {
		var zero E
		idx.failures = append(idx.failures, keyFailure[E]{element: zero, err: sourceErr})
	}

	idx.stats = Stats{Elements: len(elements), DistinctKeys: len(idx.buckets), KeyFailures: len(idx.failures)}
	logBuildComplete(cfg.Logger, "partly_relaxed", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures)
	cfg.Metrics.OnBuild("partly_relaxed", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures, time.Since(start))
	return idx, nil
}

// Lookup evaluates deferredKey, then decides whether a stored key-build
// failure should surface instead of the bucket. Unlike StrictIndex, a
// reachable failure here is raised immediately, before any element of the
// bucket is yielded — the bucket is never returned alongside it. residual
// may be nil, meaning no residual predicate was supplied: every stored
// failure is then considered reachable unconditionally.
func (idx *PartlyRelaxedIndex[E, K]) Lookup(deferredKey DeferredKey[K], keyBeforeCriterion bool, residual Predicate[E]) Cursor[E] {
	start := time.Now()
	criterion, err := deferredKey()
	if err != nil {
		if len(idx.source) == 0 {
			idx.metrics.OnLookup("partly_relaxed", LookupMiss, time.Since(start))
			return Empty[E]()
		}
		if residual == nil {
			if keyBeforeCriterion {
				if _, kerr := idx.key(idx.source[0]); kerr != nil {
					idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
					return newErrCursor[E](kerr)
				}
			}
			idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
			return newErrCursor[E](err)
		}
		for _, e := range idx.source {
			if !residual(e) {
				continue
			}
			if keyBeforeCriterion {
				if _, kerr := idx.key(e); kerr != nil {
					idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
					return newErrCursor[E](kerr)
				}
			}
			idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
			return newErrCursor[E](err)
		}
		idx.metrics.OnLookup("partly_relaxed", LookupMiss, time.Since(start))
		return Empty[E]()
	}

	bucket := idx.buckets[criterion]
	if residual != nil {
		bucket = filterElements(bucket, residual)
	}

	if len(idx.failures) > 0 {
		if residual == nil {
			idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
			return newErrCursor[E](idx.failures[0].err)
		}
		for _, f := range idx.failures {
			if residual(f.element) {
				idx.metrics.OnLookup("partly_relaxed", LookupFailure, time.Since(start))
				return newErrCursor[E](f.err)
			}
		}
	}

	if len(bucket) == 0 {
		idx.metrics.OnLookup("partly_relaxed", LookupMiss, time.Since(start))
		return Empty[E]()
	}
	idx.metrics.OnLookup("partly_relaxed", LookupHit, time.Since(start))
	return newSliceCursor(bucket)
}

func filterElements[E any](items []E, keep Predicate[E]) []E {
	if len(items) == 0 {
		return items
	}
	out := make([]E, 0, len(items))
	for _, e := range items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Stats reports the shape of the sealed index.
func (idx *PartlyRelaxedIndex[E, K]) Stats() Stats { return idx.stats }
