package loader

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/internal/compress"
)

func putCompressed(t *testing.T, s blobstore.Store, name, content string) {
	t.Helper()
	var buf bytes.Buffer
	w, err := compress.NewWriter(name, &buf)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, s.Put(context.Background(), name, buf.Bytes()))
}

func TestLoadStudy(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"geno.txt", "geno.txt.gz", "geno.txt.zst", "geno.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			src := blobstore.NewMemoryStore()
			putCompressed(t, src, name, demoMatrix)
			putCompressed(t, src, "pheno.txt.gz", "i1 2\ni2 2\ni3 1\ni4 1\n")

			study, rep, err := LoadStudy(ctx, src, name, []episcan.Option{episcan.WithWorkers(2)}, WithIORateLimit(1<<20))
			require.NoError(t, err)
			defer study.Close()

			assert.Equal(t, []string{"rs1", "rs2", "rs3", "rs4"}, study.Markers())
			assert.Equal(t, 2, rep.Loaded)
			assert.Len(t, rep.Rejected, 2)

			ph, err := LoadPhenotypes(ctx, src, "pheno.txt.gz")
			require.NoError(t, err)
			sel, err := study.Select(ctx, ph.Cases, ph.Controls)
			require.NoError(t, err)
			assert.Equal(t, 2, sel.Cases)

			ccd, err := study.CaseControlDistribution("rs2")
			require.NoError(t, err)
			// rs2: CC CT | TT CC
			assert.Equal(t, 1, ccd.Case.HomMajor)
			assert.Equal(t, 1, ccd.Case.Het)
			assert.Equal(t, 1, ccd.Control.HomMinor)
			assert.Equal(t, 1, ccd.Control.HomMajor)
		})
	}
}

func TestLoadStudy_NotFound(t *testing.T) {
	_, _, err := LoadStudy(context.Background(), blobstore.NewMemoryStore(), "absent.txt", nil)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = LoadPhenotypes(context.Background(), blobstore.NewMemoryStore(), "absent.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadStudy_DuplicateMarkers(t *testing.T) {
	src := blobstore.NewMemoryStore()
	require.NoError(t, src.Put(context.Background(), "g.txt", []byte("marker a\nrs1 AA\nrs1 AG\n")))
	_, _, err := LoadStudy(context.Background(), src, "g.txt", nil)
	assert.ErrorIs(t, err, episcan.ErrInvalidOptions)
}
