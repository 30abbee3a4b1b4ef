package pool

import (
	"sync"

	"github.com/hupe1980/episcan/internal/store"
)

// Scratch holds decode buffers for the two rows of a pair.
type Scratch struct {
	A *store.Planes
	B *store.Planes

	words int
}

// Pool hands out Scratch buffers of a fixed word length.
type Pool struct {
	words int
	p     sync.Pool
}

// New returns a pool of buffers holding words words per plane.
func New(words int) *Pool {
	pl := &Pool{words: words}
	pl.p.New = func() any {
		return &Scratch{
			A:     store.NewPlanes(words),
			B:     store.NewPlanes(words),
			words: words,
		}
	}
	return pl
}

// Get retrieves a Scratch from the pool. Its contents are unspecified.
func (pl *Pool) Get() *Scratch {
	return pl.p.Get().(*Scratch)
}

// Put returns sc to the pool for reuse. Buffers of another length are dropped.
func (pl *Pool) Put(sc *Scratch) {
	if sc == nil || sc.words != pl.words {
		return
	}
	pl.p.Put(sc)
}

// Words returns the plane length of the pooled buffers.
func (pl *Pool) Words() int { return pl.words }
