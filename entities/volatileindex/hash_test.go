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

	"github.com/stretchr/testify/assert"
)

func TestMaskHash_ZeroKeyIsAlwaysZero(t *testing.T) {
	h := defaultHasher[string]()
	assert.Equal(t, uint64(0), maskHash(h, ""))

	hi := defaultHasher[int]()
	assert.Equal(t, uint64(0), maskHash(hi, 0))
}

func TestMaskHash_NonZeroKeyIsStable(t *testing.T) {
	h := defaultHasher[string]()
	a := maskHash(h, "hello")
	b := maskHash(h, "hello")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, maskHash(h, "world"))
}

func TestMurmurHasher_DefaultByteEncoding(t *testing.T) {
	h := MurmurHasher[int](nil)
	assert.Equal(t, h(42), h(42))
	assert.NotEqual(t, h(42), h(43))
}

func TestMurmurHasher_CustomByteEncoding(t *testing.T) {
	h := MurmurHasher[string](func(s string) []byte { return []byte(s) })
	assert.Equal(t, h("abc"), h("abc"))
	assert.NotEqual(t, h("abc"), h("abd"))
}
