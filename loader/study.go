package loader

import (
	"context"
	"errors"

	"github.com/carbocation/pfx"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
)

// LoadStudy reads the matrix name from src in two passes: one for the
// identifiers, which sizes the study, and one for the calls.
//
// The study is returned together with the report even when rows were
// rejected. It is closed and nil when the second pass fails.
func LoadStudy(ctx context.Context, src blobstore.Store, name string, studyOpts []episcan.Option, opts ...Option) (*episcan.Study, Report, error) {
	o := applyOptions(opts)

	r, err := Open(ctx, src, name, o.rc)
	if err != nil {
		return nil, Report{}, err
	}
	h, err := ReadHeader(ctx, r, name)
	if cerr := r.Close(); err == nil && cerr != nil {
		err = pfx.Err(cerr)
	}
	if err != nil {
		return nil, Report{}, err
	}

	study, err := episcan.New(h.Markers, h.Individuals, studyOpts...)
	if err != nil {
		return nil, Report{}, err
	}

	r, err = Open(ctx, src, name, o.rc)
	if err != nil {
		return nil, Report{}, errors.Join(err, study.Close())
	}
	rep, err := ReadMatrix(ctx, r, name, study, opts...)
	if cerr := r.Close(); err == nil && cerr != nil {
		err = pfx.Err(cerr)
	}
	if err != nil {
		return nil, rep, errors.Join(err, study.Close())
	}
	return study, rep, nil
}

// LoadPhenotypes reads a phenotype file from src.
func LoadPhenotypes(ctx context.Context, src blobstore.Store, name string, opts ...Option) (Phenotypes, error) {
	o := applyOptions(opts)
	r, err := Open(ctx, src, name, o.rc)
	if err != nil {
		return Phenotypes{}, err
	}
	defer func() { _ = r.Close() }()
	return ReadPhenotypes(ctx, r, name)
}
