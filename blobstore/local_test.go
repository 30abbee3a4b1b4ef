package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	name := "inputs/chr1.geno"
	data := []byte("marker i1 i2\nrs1 AA AG\n")

	w, err := store.Create(ctx, name)
	require.NoError(t, err)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before Close.
	_, err = store.Open(ctx, name)
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, w.Close())
	_, err = os.Stat(filepath.Join(tmpDir, "inputs", "chr1.geno"))
	require.NoError(t, err)

	got, err := ReadAll(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Put(ctx, "inputs/chr2.geno", []byte("x")))
	require.NoError(t, store.Put(ctx, "pheno.txt", []byte("y")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"inputs/chr1.geno", "inputs/chr2.geno", "pheno.txt"}, names)

	names, err = store.List(ctx, "inputs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"inputs/chr1.geno", "inputs/chr2.geno"}, names)

	require.NoError(t, store.Delete(ctx, "pheno.txt"))
	require.NoError(t, store.Delete(ctx, "pheno.txt"))
	_, err = store.Open(ctx, "pheno.txt")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStore_Abort(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "report.tsv")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, Abort(w))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = w.Write([]byte("more"))
	assert.Error(t, err)
	assert.Error(t, w.Close())
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("abc")
	require.NoError(t, store.Put(ctx, "a", src))
	src[0] = 'x'

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	w, err := store.Create(ctx, "b")
	require.NoError(t, err)
	_, _ = io.WriteString(w, "hello")
	_, err = store.Open(ctx, "b")
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, w.Close())
	assert.Error(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	w, err = store.Create(ctx, "c")
	require.NoError(t, err)
	_, _ = io.WriteString(w, "discard")
	require.NoError(t, Abort(w))
	_, err = store.Open(ctx, "c")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Delete(ctx, "a"))
	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}
