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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartlyRelaxedIndex_NoPredicateRaisesStoredFailureImmediately(t *testing.T) {
	p1 := ptr(1)
	source := []item{{P: p1, V: "one"}, {P: nil, V: "null"}, {P: ptr(2), V: "two"}}
	idx, err := BuildPartlyRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 1, nil }, false, nil))
	assert.Same(t, errNullDeref, cerr)
	assert.Empty(t, got)
}

func TestPartlyRelaxedIndex_PredicateExcludesFailingElement(t *testing.T) {
	source := []item{{P: ptr(1), V: "one"}, {P: nil, V: "null"}, {P: ptr(2), V: "two"}}
	idx, err := BuildPartlyRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	excludeNull := func(e item) bool { return e.P != nil }
	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 1, nil }, false, excludeNull))
	require.NoError(t, cerr)
	assert.Equal(t, []item{source[0]}, got)
}

func TestPartlyRelaxedIndex_PredicateAdmitsFailingElement(t *testing.T) {
	source := []item{{P: ptr(1)}, {P: nil}, {P: ptr(2)}}
	idx, err := BuildPartlyRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	admitAll := func(item) bool { return true }
	_, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 1, nil }, false, admitAll))
	assert.Same(t, errNullDeref, cerr)
}

func TestPartlyRelaxedIndex_CriterionFailsWithPredicateScanningSource(t *testing.T) {
	source := []item{{P: ptr(1)}, {P: ptr(2)}}
	idx, err := BuildPartlyRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	criterionErr := errors.New("criterion failed")
	matchesSecond := func(e item) bool { return e.P != nil && *e.P == 2 }
	_, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 0, criterionErr }, false, matchesSecond))
	assert.Same(t, criterionErr, cerr)

	matchesNone := func(item) bool { return false }
	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 0, criterionErr }, false, matchesNone))
	require.NoError(t, cerr)
	assert.Empty(t, got)
}

func TestPartlyRelaxedIndex_EmptySourceWithFailingCriterion(t *testing.T) {
	idx, err := BuildPartlyRelaxed[item, int](SliceSource([]item{}), pointerKey, BuildConfig{})
	require.NoError(t, err)

	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 0, errors.New("boom") }, false, nil))
	require.NoError(t, cerr)
	assert.Empty(t, got)
}

func TestPartlyRelaxedIndex_BucketFilteredByPredicate(t *testing.T) {
	source := []item{{P: ptr(1), V: "keep"}, {P: ptr(1), V: "drop"}}
	idx, err := BuildPartlyRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	keepOnly := func(e item) bool { return e.V == "keep" }
	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 1, nil }, false, keepOnly))
	require.NoError(t, cerr)
	assert.Equal(t, []item{source[0]}, got)
}

func TestPartlyRelaxedIndex_NilPreconditions(t *testing.T) {
	_, err := BuildPartlyRelaxed[item, int](nil, pointerKey, BuildConfig{})
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = BuildPartlyRelaxed[item, int](SliceSource([]item{}), nil, BuildConfig{})
	assert.ErrorIs(t, err, ErrNilKeySelector)
}
