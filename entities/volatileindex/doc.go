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

// Package volatileindex implements the "volatile index" family: auxiliary,
// in-memory hash indexes that accelerate repeated equality-keyed lookups
// inside a nested filter expression (the classic "for each row, find the
// other rows with the same key" pattern), without changing when and how the
// key-deriving expression's failures become visible to the caller.
//
// # Motivation
//
// A plain hash index built once and probed many times is trivial. The hard
// part is that the key selector is caller-supplied and may fail on a
// per-element basis (a missing field, a division by zero, an out-of-range
// conversion). The naive, un-indexed nested scan evaluates that selector
// lazily, one element at a time, so a caller iterating it observes failures
// interleaved with results, in a specific order, possibly never reaching a
// failure at all if it stops early. A single eager pre-build erases that
// ordering unless the index is deliberately designed to preserve it.
//
// This package offers four variants that each choose a different point on
// that trade-off:
//
//   - [RelaxedIndex] discards every failure. Fastest, but a lookup can
//     silently return fewer rows than the naive scan would have produced
//     before failing.
//   - [StrictIndex] reproduces the naive scan's failure, at the same
//     causal point, exactly.
//   - [PartlyRelaxedIndex] keeps every key-build failure but only raises one
//     when a residual predicate (the rest of the outer filter) says the
//     failing element would actually have been reached.
//   - [SlowGroupIndex] hands back per-element wrappers that carry a pending
//     failure instead of raising it, letting the caller decide when (or
//     whether) to inspect it.
//
// # Internals
//
// All four variants are built once, eagerly, from a [Source] and are
// immutable afterwards ("Sealed": a Build* call returns a finished index,
// and only Lookup and Stats are available on it). A [Cursor] is the lazy result of a lookup; for [StrictIndex] a
// cursor may yield some elements and then fail on its final advance,
// mirroring "throw at the end of a lazy sequence". [PartlyRelaxedIndex]
// instead raises a reachable stored failure immediately, ahead of any
// bucket element — its fidelity concern is whether a failure was reachable
// at all, not when in the cursor it appears.
package volatileindex
