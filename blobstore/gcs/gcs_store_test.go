package gcs

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_KeyMapping(t *testing.T) {
	s := &Store{prefix: "study-42"}
	assert.Equal(t, "study-42/chr1.geno", s.key("chr1.geno"))
	assert.Equal(t, "out/pairs.tsv", s.rel("study-42/out/pairs.tsv"))
	assert.NoError(t, s.Close())
}

// TestGCSStore_Integration runs against the emulator named by STORAGE_EMULATOR_HOST.
func TestGCSStore_Integration(t *testing.T) {
	if os.Getenv("STORAGE_EMULATOR_HOST") == "" {
		t.Skip("STORAGE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	client, err := storage.NewClient(ctx)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	bucket := "test-episcan"
	_ = client.Bucket(bucket).Create(ctx, "test-project", nil)

	store := NewStore(client, bucket, "it/")
	require.NoError(t, store.Put(ctx, "pheno.txt", []byte("i1 1\n")))

	got, err := blobstore.ReadAll(ctx, store, "pheno.txt")
	require.NoError(t, err)
	assert.Equal(t, "i1 1\n", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"pheno.txt"}, names)

	require.NoError(t, store.Delete(ctx, "pheno.txt"))
	_, err = store.Open(ctx, "pheno.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
