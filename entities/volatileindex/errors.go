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

import "github.com/pkg/errors"

// ErrNilSource and ErrNilKeySelector are the two eager, non-recoverable
// precondition failures a Build* call can raise. They are ordinary
// sentinel errors, not part of the naive-scan-fidelity contract described
// in the package documentation: a caller passing a nil source or key
// selector has a programming error, not a data-dependent failure.
var (
	ErrNilSource       = errors.New("volatileindex: source must not be nil")
	ErrNilKeySelector  = errors.New("volatileindex: key selector must not be nil")
	ErrGroupingCorrupt = errors.New("volatileindex: grouping table is corrupt")
)

// KeySelector derives the comparison key for an element. Any error it
// returns is a "key-build failure", not a Go plumbing error — it is
// treated as data by every variant except RelaxedIndex, which discards it.
type KeySelector[E any, K comparable] func(E) (K, error)

// DeferredKey is the probe supplied at lookup time. It is deferred rather
// than pre-evaluated so that a failure while computing it can be routed by
// each index variant's own lookup ordering.
type DeferredKey[K any] func() (K, error)

// Predicate is the "rest of the outer filter" a caller can pass to
// PartlyRelaxedIndex.Lookup as a residual predicate.
type Predicate[E any] func(E) bool
