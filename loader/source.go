package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/carbocation/pfx"

	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/internal/compress"
	"github.com/hupe1980/episcan/internal/resource"
)

// Open opens name from src, rate limited by rc and decompressed according
// to its extension.
func Open(ctx context.Context, src blobstore.Store, name string, rc *resource.Controller) (io.ReadCloser, error) {
	raw, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	dec, err := compress.NewReader(name, resource.NewRateLimitedReader(ctx, raw, rc))
	if err != nil {
		_ = raw.Close()
		return nil, pfx.Err(err)
	}
	return &source{ReadCloser: dec, raw: raw}, nil
}

// source closes the decoder and then the underlying blob.
type source struct {
	io.ReadCloser
	raw io.Closer
}

func (s *source) Close() error {
	err := s.ReadCloser.Close()
	if cerr := s.raw.Close(); err == nil {
		err = cerr
	}
	return err
}
