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

type item struct {
	P *int
	V string
}

func ptr(v int) *int { return &v }

var errNullDeref = errors.New("null dereference")

func pointerKey(e item) (int, error) {
	if e.P == nil {
		return 0, errNullDeref
	}
	return *e.P, nil
}

func drainCursor[E any](t *testing.T, c Cursor[E]) ([]E, error) {
	t.Helper()
	var out []E
	for c.Next() {
		out = append(out, c.Value())
	}
	return out, c.Err()
}

func TestRelaxedIndex_LookupReturnsMatchingBucketInSourceOrder(t *testing.T) {
	source := []item{{P: ptr(10), V: "a"}, {P: ptr(20), V: "b"}, {P: ptr(10), V: "c"}, {P: ptr(30), V: "d"}}
	idx, err := BuildRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 10, nil }))
	require.NoError(t, cerr)
	assert.Equal(t, []item{source[0], source[2]}, got)

	got, cerr = drainCursor(t, idx.Lookup(func() (int, error) { return 99, nil }))
	require.NoError(t, cerr)
	assert.Empty(t, got)
}

func TestRelaxedIndex_SwallowsKeyFailures(t *testing.T) {
	source := []item{{P: ptr(1)}, {P: nil}, {P: ptr(2)}}
	idx, err := BuildRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 1, nil }))
	require.NoError(t, cerr)
	assert.Equal(t, []item{source[0]}, got)
	assert.Equal(t, 1, idx.Stats().KeyFailures)
}

func TestRelaxedIndex_FailingProbeYieldsEmpty(t *testing.T) {
	source := []item{{P: ptr(1)}}
	idx, err := BuildRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 0, errors.New("probe failed") }))
	require.NoError(t, cerr)
	assert.Empty(t, got)
}

func TestRelaxedIndex_MissReturnsIdenticalEmpty(t *testing.T) {
	source := []item{{P: ptr(1)}}
	idx, err := BuildRelaxed[item, int](SliceSource(source), pointerKey, BuildConfig{})
	require.NoError(t, err)

	a := idx.Lookup(func() (int, error) { return 404, nil })
	b := idx.Lookup(func() (int, error) { return 405, nil })
	assert.Equal(t, Empty[item](), a)
	assert.Equal(t, Empty[item](), b)
}

func TestRelaxedIndex_SourceFailsMidIteration(t *testing.T) {
	source := []item{{P: ptr(1)}, {P: ptr(2)}, {P: ptr(3)}}
	src := FailingSource(source, 2, errors.New("upstream exploded"))
	idx, err := BuildRelaxed[item, int](src, pointerKey, BuildConfig{})
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Stats().Elements)
	got, cerr := drainCursor(t, idx.Lookup(func() (int, error) { return 2, nil }))
	require.NoError(t, cerr)
	assert.Equal(t, []item{source[1]}, got)
}

func TestRelaxedIndex_NilPreconditions(t *testing.T) {
	_, err := BuildRelaxed[item, int](nil, pointerKey, BuildConfig{})
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = BuildRelaxed[item, int](SliceSource([]item{}), nil, BuildConfig{})
	assert.ErrorIs(t, err, ErrNilKeySelector)
}
