package blobstore

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a Store and keeps whole-blob copies of everything it
// reads in a second, usually local, Store.
//
// Inputs are scanned several times per run (header pass, data pass), so the
// cache turns repeated remote reads into local ones. Writes go to the inner
// store and invalidate the cached copy.
type CachingStore struct {
	inner Store
	cache Store
	fill  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner, cache Store) *CachingStore {
	return &CachingStore{inner: inner, cache: cache}
}

// Open serves name from the cache, filling it from the inner store on a miss.
// Concurrent misses for the same name share one fill.
func (s *CachingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.cache.Open(ctx, name)
	if err == nil {
		s.hits.Add(1)
		return rc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	s.misses.Add(1)
	if _, err, _ := s.fill.Do(name, func() (any, error) {
		return nil, s.populate(ctx, name)
	}); err != nil {
		return nil, err
	}
	return s.cache.Open(ctx, name)
}

func (s *CachingStore) populate(ctx context.Context, name string) error {
	src, err := s.inner.Open(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := s.cache.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = Abort(dst)
		return err
	}
	return dst.Close()
}

// Create writes through to the inner store.
func (s *CachingStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := s.cache.Delete(ctx, name); err != nil {
		return nil, err
	}
	return s.inner.Create(ctx, name)
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.cache.Delete(ctx, name); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes name from both stores.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	if err := s.cache.Delete(ctx, name); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List lists the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns hit and miss counts.
func (s *CachingStore) Stats() CacheStats {
	return CacheStats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}
