package plink

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/loader"
)

const testFAM = `f1 s1 0 0 1 2
f2 s2 0 0 2 2
f3 s3 0 0 1 1
f4 s4 0 0 2 1
f5 s5 0 0 1 -9
`

const testBIM = "1\trs1\t0\t100\tA\tG\n1\trs2\t0\t200\tC\tT\n1\trs3\t0\t300\tA\tAT\n"

// encodeBED packs per-variant codes into a SNP-major .bed image.
func encodeBED(variants ...[]byte) []byte {
	out := []byte{0x6c, 0x1b, 0x01}
	for _, codes := range variants {
		buf := make([]byte, (len(codes)+3)/4)
		for i, c := range codes {
			buf[i/4] |= c << (uint(i%4) * 2)
		}
		out = append(out, buf...)
	}
	return out
}

func testFileset(t *testing.T, s blobstore.Store) Fileset {
	t.Helper()
	ctx := context.Background()
	fs := Files("data/study")
	require.NoError(t, s.Put(ctx, fs.FAM, []byte(testFAM)))
	require.NoError(t, s.Put(ctx, fs.BIM, []byte(testBIM)))
	require.NoError(t, s.Put(ctx, fs.BED, encodeBED(
		[]byte{0, 2, 3, 1, 0},
		[]byte{3, 3, 0, 2, 0},
		[]byte{2, 0, 0, 0, 0},
	)))
	return fs
}

func TestBEDReader(t *testing.T) {
	img := encodeBED([]byte{0, 1, 2, 3, 3, 2})
	bed, err := NewBEDReader(bytes.NewReader(img), 6)
	require.NoError(t, err)

	calls := make([]string, 6)
	require.NoError(t, bed.Next("C", "T", calls))
	assert.Equal(t, []string{"CC", "00", "CT", "TT", "TT", "CT"}, calls)
	assert.ErrorIs(t, bed.Next("C", "T", calls), io.EOF)
	assert.Error(t, bed.Next("C", "T", make([]string, 2)))
}

func TestBEDReader_Header(t *testing.T) {
	_, err := NewBEDReader(bytes.NewReader([]byte{0x6c, 0x1b, 0x00}), 1)
	assert.ErrorIs(t, err, ErrSampleMajor)

	_, err = NewBEDReader(bytes.NewReader([]byte{1, 2, 3}), 1)
	assert.ErrorIs(t, err, ErrMagic)

	_, err = NewBEDReader(bytes.NewReader([]byte{0x6c}), 1)
	assert.ErrorIs(t, err, ErrMagic)

	bed, err := NewBEDReader(bytes.NewReader([]byte{0x6c, 0x1b, 0x01, 0xff}), 5)
	require.NoError(t, err)
	err = bed.Next("A", "G", make([]string, 5))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadFAM(t *testing.T) {
	samples, err := ReadFAM(context.Background(), strings.NewReader(testFAM), "x.fam")
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, Sample{FamilyID: "f1", ID: "s1", Status: loader.StatusCase}, samples[0])
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, IDs(samples))

	p := Phenotypes(samples)
	assert.Equal(t, []string{"s1", "s2"}, p.Cases)
	assert.Equal(t, []string{"s3", "s4"}, p.Controls)
	assert.Equal(t, []string{"s5"}, p.Missing)

	_, err = ReadFAM(context.Background(), strings.NewReader("f1 s1 0 0 1\n"), "x.fam")
	assert.ErrorIs(t, err, loader.ErrColumnCount)
	_, err = ReadFAM(context.Background(), strings.NewReader("f1 s1 0 0 1 5\n"), "x.fam")
	assert.ErrorIs(t, err, loader.ErrStatus)
}

func TestLoad(t *testing.T) {
	stores := map[string]blobstore.Store{
		"local":  blobstore.NewLocalStore(t.TempDir()),
		"memory": blobstore.NewMemoryStore(),
	}
	for name, src := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			fs := testFileset(t, src)

			ds, err := Load(ctx, src, fs, []episcan.Option{episcan.WithWorkers(1)}, loader.WithWorkers(2))
			require.NoError(t, err)
			defer ds.Study.Close()

			require.Len(t, ds.Variants, 3)
			assert.Equal(t, Variant{Chromosome: "1", ID: "rs2", Position: 200, Allele1: "C", Allele2: "T"}, ds.Variants[1])
			assert.Equal(t, 3, ds.Report.Rows)
			assert.Equal(t, 2, ds.Report.Loaded)
			require.Len(t, ds.Report.Rejected, 1)
			var le *loader.LineError
			require.True(t, errors.As(ds.Report.Rejected[0], &le))
			assert.Equal(t, "rs3", le.Marker)

			d, err := ds.Study.Distribution("rs1")
			require.NoError(t, err)
			assert.Equal(t, 2, d.HomMajor)
			assert.Equal(t, 1, d.Het)
			assert.Equal(t, 1, d.HomMinor)
			assert.Equal(t, 1, d.Missing)

			g, err := ds.Study.Genotype("rs2", "s1")
			require.NoError(t, err)
			assert.Equal(t, "AA", g.String())

			_, err = ds.Study.Select(ctx, ds.Phenotypes.Cases, ds.Phenotypes.Controls)
			require.NoError(t, err)
			ccd, err := ds.Study.CaseControlDistribution("rs2")
			require.NoError(t, err)
			// rs2 roles: TT=AA, CC=aa, CT=Aa.
			assert.Equal(t, 2, ccd.Case.HomMajor)
			assert.Equal(t, 1, ccd.Control.HomMinor)
			assert.Equal(t, 1, ccd.Control.Het)
		})
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	src := blobstore.NewMemoryStore()
	_, err := Load(context.Background(), src, Files("absent"), nil)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	fs := testFileset(t, src)
	require.NoError(t, src.Put(context.Background(), fs.BED, []byte{0x6c, 0x1b, 0x01, 0x00}))
	_, err = Load(context.Background(), src, fs, nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
