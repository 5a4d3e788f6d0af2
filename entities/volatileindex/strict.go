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

// StrictConfig configures BuildStrict.
//
// NonStaticEqualsOnKeyOperand models a language where an equality
// comparison against a null reference can itself fail (e.g. a
// user-overridden Equals method dereferencing something). Go's built-in
// == on a comparable K cannot fail, so when this flag is set,
// NullEqualsProbe stands in for that call: it is invoked whenever a
// computed key is the zero value of K, and any error it returns is
// treated exactly like a key-build failure. Leaving NullEqualsProbe nil
// with the flag set is legal and simply never raises.
type StrictConfig[K comparable] struct {
	BuildConfig
	NonStaticEqualsOnKeyOperand bool
	NullEqualsProbe             func(K) error
}

// StrictIndex reproduces the naive nested scan's exception order exactly:
// the same failure, surfacing at the same causal point, that evaluating
// the un-indexed expression element-by-element would have produced.
type StrictIndex[E any, K comparable] struct {
	source          []E
	key             KeySelector[E, K]
	buckets         map[K][]E
	firstKeyFailure error
	validPrefix     int
	nonStaticEquals bool
	nullEqualsProbe func(K) error
	stats           Stats
	metrics         *Metrics
}

// BuildStrict iterates source in order, stopping the moment a key fails:
// everything after that point is unseen by the index, matching the naive
// scan's "it would never have gotten there" behavior. If the source
// itself fails before any key-build failure was recorded, that failure
// becomes the stored first-key-failure instead — from the caller's
// perspective the two are indistinguishable, since both mean "the naive
// scan would have raised here, having already produced this many rows".
func BuildStrict[E any, K comparable](source Source[E], key KeySelector[E, K], cfg StrictConfig[K]) (*StrictIndex[E, K], error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if key == nil {
		return nil, ErrNilKeySelector
	}
	cfg.BuildConfig = cfg.BuildConfig.withDefaults()
	start := time.Now()

	elements, sourceErr := drain(source)

	idx := &StrictIndex[E, K]{
		source:          elements,
		key:             key,
		buckets:         make(map[K][]E),
		nonStaticEquals: cfg.NonStaticEqualsOnKeyOperand,
		nullEqualsProbe: cfg.NullEqualsProbe,
		metrics:         cfg.Metrics,
	}

	var zero K
	for i, e := range elements {
		k, err := key(e)
		if err == nil && idx.nonStaticEquals && k == zero && idx.nullEqualsProbe != nil {
			err = idx.nullEqualsProbe(k)
		}
		if err != nil {
			idx.firstKeyFailure = err
			idx.validPrefix = i
			idx.stats = Stats{Elements: i, DistinctKeys: len(idx.buckets), KeyFailures: 1}
			logBuildComplete(cfg.Logger, "strict", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures)
			cfg.Metrics.OnBuild("strict", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures, time.Since(start))
			return idx, nil
		}
		idx.buckets[k] = append(idx.buckets[k], e)
		idx.validPrefix = i + 1
	}

	failures := 0
	if sourceErr != nil {
		idx.firstKeyFailure = sourceErr
		failures = 1
	}
	idx.stats = Stats{Elements: len(elements), DistinctKeys: len(idx.buckets), KeyFailures: failures}
	logBuildComplete(cfg.Logger, "strict", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures)
	cfg.Metrics.OnBuild("strict", idx.stats.Elements, idx.stats.DistinctKeys, idx.stats.KeyFailures, time.Since(start))
	return idx, nil
}

// Lookup reproduces the three-way exception ordering the naive scan could
// exhibit, selected by keyBeforeCriterion and nonStaticEquals:
//
//  1. deferredKey is evaluated first. If it fails and the retained source
//     is empty, the naive scan would never have examined an element
//     either, so the result is Empty. If it fails and the source is
//     non-empty, keyBeforeCriterion decides whether key(source[0]) gets a
//     chance to fail *instead* — modeling a naive expression that
//     evaluates the key operand before the probe criterion.
//  2. Once a key is in hand, nonStaticEquals decides whether the
//     equals-null probe runs for a zero-value key.
//  3. Finally, the bucket is returned — trailed by the stored
//     first-key-failure, if any, on the cursor's final advance.
func (idx *StrictIndex[E, K]) Lookup(deferredKey DeferredKey[K], keyBeforeCriterion, nonStaticEquals bool) Cursor[E] {
	start := time.Now()
	criterion, err := deferredKey()
	if err != nil {
		if len(idx.source) == 0 {
			idx.metrics.OnLookup("strict", LookupMiss, time.Since(start))
			return Empty[E]()
		}
		if keyBeforeCriterion {
			if _, kerr := idx.key(idx.source[0]); kerr != nil {
				idx.metrics.OnLookup("strict", LookupFailure, time.Since(start))
				return newErrCursor[E](kerr)
			}
		}
		idx.metrics.OnLookup("strict", LookupFailure, time.Since(start))
		return newErrCursor[E](err)
	}

	var zero K
	if nonStaticEquals && criterion == zero && idx.nullEqualsProbe != nil {
		if eqErr := idx.nullEqualsProbe(criterion); eqErr != nil {
			idx.metrics.OnLookup("strict", LookupFailure, time.Since(start))
			return newErrCursor[E](eqErr)
		}
	}

	bucket := idx.buckets[criterion]
	if idx.firstKeyFailure != nil {
		idx.metrics.OnLookup("strict", LookupHit, time.Since(start))
		return newTrailingErrorCursor(bucket, idx.firstKeyFailure)
	}
	if len(bucket) == 0 {
		idx.metrics.OnLookup("strict", LookupMiss, time.Since(start))
		return Empty[E]()
	}
	idx.metrics.OnLookup("strict", LookupHit, time.Since(start))
	return newSliceCursor(bucket)
}

// Stats reports the shape of the sealed index, including the valid prefix
// length as Elements when the build stopped early on a key failure.
func (idx *StrictIndex[E, K]) Stats() Stats { return idx.stats }
