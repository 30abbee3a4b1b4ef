package bitword

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsFor(t *testing.T) {
	assert.Equal(t, 0, WordsFor(0))
	assert.Equal(t, 1, WordsFor(1))
	assert.Equal(t, 1, WordsFor(Bits))
	assert.Equal(t, 2, WordsFor(Bits+1))
}

func TestSetClearTest(t *testing.T) {
	words := make([]Word, WordsFor(100))
	Set(words, 0)
	Set(words, 63)
	Set(words, 99)
	assert.True(t, Test(words, 0))
	assert.True(t, Test(words, 63))
	assert.True(t, Test(words, 99))
	assert.False(t, Test(words, 50))
	assert.Equal(t, 3, Count(words))

	Clear(words, 63)
	assert.False(t, Test(words, 63))
	assert.Equal(t, 2, Count(words))
}

func TestGather(t *testing.T) {
	const n = 150
	src := make([]Word, WordsFor(n))
	mask := make([]Word, WordsFor(n))
	// src bit i set for i%3 == 0, mask keeps even columns.
	for i := 0; i < n; i++ {
		if i%3 == 0 {
			Set(src, i)
		}
		if i%2 == 0 {
			Set(mask, i)
		}
	}

	dst := make([]Word, WordsFor(Count(mask)))
	written := Gather(dst, src, mask)
	require.Equal(t, n/2, written)

	// Even column 2k lands at position k; it is set iff 2k%3 == 0.
	for k := 0; k < written; k++ {
		assert.Equal(t, (2*k)%3 == 0, Test(dst, k), "position %d", k)
	}
}

func TestKernelEquivalence(t *testing.T) {
	prev := ActiveKernel()
	defer useKernel(prev)

	rng := rand.New(rand.NewSource(4711))
	a := make([]Word, 37)
	b := make([]Word, 37)
	for i := range a {
		a[i] = Word(rng.Uint64())
		b[i] = Word(rng.Uint64())
	}

	useKernel(Native)
	count, andCount := Count(a), AndCount(a, b)

	useKernel(Table)
	assert.Equal(t, Table, ActiveKernel())
	assert.Equal(t, count, Count(a))
	assert.Equal(t, andCount, AndCount(a, b))

	dst := make([]Word, len(a))
	And(dst, a, b)
	assert.Equal(t, andCount, Count(dst))
}

func TestParseKernel(t *testing.T) {
	k, ok := ParseKernel(" Table ")
	assert.True(t, ok)
	assert.Equal(t, Table, k)

	k, ok = ParseKernel("hardware")
	assert.True(t, ok)
	assert.Equal(t, Native, k)

	_, ok = ParseKernel("avx9000")
	assert.False(t, ok)
	assert.Equal(t, "table", Table.String())
}
