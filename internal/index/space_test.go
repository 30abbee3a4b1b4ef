package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New([]string{"rs1", "rs2", "rs3"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	i, ok := s.Index("rs2")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "rs3", s.ID(2))
	assert.Equal(t, []int{0, 1, 2}, s.Active())

	_, ok = s.Index("rs9")
	assert.False(t, ok)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = New([]string{"a", ""})
	assert.ErrorIs(t, err, ErrEmptyID)

	s, err := New(nil)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Active())
}

func TestResolve(t *testing.T) {
	s, err := New([]string{"p1", "p2", "p3", "p4"})
	require.NoError(t, err)

	pos, unknown := s.Resolve([]string{"p4", "x", "p1", "y"})
	assert.Equal(t, []int{3, 0}, pos)
	assert.Equal(t, []string{"x", "y"}, unknown)
}

func TestExclude(t *testing.T) {
	s, err := New([]string{"p1", "p2", "p3", "p4"})
	require.NoError(t, err)

	unknown := s.Exclude([]string{"p2", "zz"})
	assert.Equal(t, []string{"zz"}, unknown)
	assert.False(t, s.IsActive(1))
	assert.True(t, s.IsActive(0))
	assert.False(t, s.IsActive(-1))
	assert.Equal(t, 3, s.ActiveCount())
	assert.Equal(t, []int{0, 2, 3}, s.Active())
}

func TestExclude_ConcurrentReaders(t *testing.T) {
	ids := make([]string, 256)
	for i := range ids {
		ids[i] = fmt.Sprintf("rs%d", i)
	}
	s, err := New(ids)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, id := range ids {
			s.Exclude([]string{id})
		}
	}()
	go func() {
		defer wg.Done()
		prev := len(ids)
		for range 500 {
			active := s.Active()
			// Positions only ever leave the set.
			assert.LessOrEqual(t, len(active), prev)
			prev = len(active)
			_ = s.IsActive(len(ids) - 1)
			_ = s.ActiveCount()
		}
	}()
	wg.Wait()

	assert.Empty(t, s.Active())
	assert.Zero(t, s.ActiveCount())
}
