package plink

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/loader"
)

// Fileset names the three files of a PLINK binary dataset.
type Fileset struct {
	BED string
	BIM string
	FAM string
}

// Files returns the fileset sharing prefix.
func Files(prefix string) Fileset {
	return Fileset{BED: prefix + ".bed", BIM: prefix + ".bim", FAM: prefix + ".fam"}
}

// Dataset is a loaded fileset.
type Dataset struct {
	Study      *episcan.Study
	Variants   []Variant
	Samples    []Sample
	Phenotypes loader.Phenotypes
	Report     loader.Report
}

// Load reads fs from src into a new study. Variants whose alleles the study
// cannot parse are rejected like any other row.
func Load(ctx context.Context, src blobstore.Store, fs Fileset, studyOpts []episcan.Option, opts ...loader.Option) (*Dataset, error) {
	famRC, err := src.Open(ctx, fs.FAM)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fs.FAM, err)
	}
	samples, err := ReadFAM(ctx, famRC, fs.FAM)
	_ = famRC.Close()
	if err != nil {
		return nil, err
	}

	variants, err := fetchBIM(ctx, src, fs.BIM)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.BIM, err)
	}

	ids := make([]string, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
	}
	study, err := episcan.New(ids, IDs(samples), studyOpts...)
	if err != nil {
		return nil, err
	}

	rep, err := loadBED(ctx, src, fs.BED, study, variants, len(samples), opts)
	if err != nil {
		return nil, errors.Join(err, study.Close())
	}

	return &Dataset{
		Study:      study,
		Variants:   variants,
		Samples:    samples,
		Phenotypes: Phenotypes(samples),
		Report:     rep,
	}, nil
}

func loadBED(ctx context.Context, src blobstore.Store, name string, sink loader.RowSink, variants []Variant, samples int, opts []loader.Option) (loader.Report, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return loader.Report{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	bed, err := NewBEDReader(rc, samples)
	if err != nil {
		return loader.Report{}, fmt.Errorf("%s: %w", name, err)
	}

	i := 0
	next := func() (loader.Row, error) {
		if i == len(variants) {
			return loader.Row{}, io.EOF
		}
		v := variants[i]
		i++
		// Fresh slice per row; workers may still hold the previous one.
		calls := make([]string, samples)
		if err := bed.Next(v.Allele1, v.Allele2, calls); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return loader.Row{}, fmt.Errorf("%s: variant %s: %w", name, v.ID, err)
		}
		return loader.Row{Line: i, Marker: v.ID, Calls: calls}, nil
	}
	return loader.Feed(ctx, name, sink, next, opts...)
}
