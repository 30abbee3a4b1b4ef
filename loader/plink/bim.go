package plink

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/genomisc"
	"github.com/carbocation/pfx"

	"github.com/hupe1980/episcan/blobstore"
)

// Variant is one line of a .bim file.
type Variant struct {
	Chromosome string
	ID         string
	Position   uint32
	Allele1    string
	Allele2    string
}

// ReadBIM reads the variants of a .bim file at path.
func ReadBIM(path string) ([]Variant, error) {
	bim, err := genomisc.OpenBIM(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer func() { _ = bim.Close() }()

	var out []Variant
	for row := bim.Read(); row != nil; row = bim.Read() {
		out = append(out, Variant{
			Chromosome: row.Chromosome,
			ID:         row.VariantID,
			Position:   row.Coordinate,
			Allele1:    row.Allele1,
			Allele2:    row.Allele2,
		})
	}
	if err := bim.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	return out, nil
}

// fetchBIM reads name from src. The .bim reader needs a file path, so blobs
// outside a LocalStore are copied to a temporary file first.
func fetchBIM(ctx context.Context, src blobstore.Store, name string) ([]Variant, error) {
	if ls, ok := src.(*blobstore.LocalStore); ok {
		return ReadBIM(filepath.Join(ls.Root(), filepath.FromSlash(name)))
	}

	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	tmp, err := os.CreateTemp("", "episcan-*.bim")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, err = io.Copy(tmp, rc)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, pfx.Err(err)
	}
	return ReadBIM(tmp.Name())
}
