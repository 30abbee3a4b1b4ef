package report

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/codec"
	"github.com/hupe1980/episcan/internal/compress"
)

// Sink consumes pair results. Close flushes and publishes the output.
type Sink interface {
	Write(r episcan.PairResult) error
	Close() error
}

// SummaryWriter is implemented by sinks that store the scan summary.
type SummaryWriter interface {
	WriteSummary(s episcan.ScanSummary) error
}

// Option configures Create.
type Option func(*options)

type options struct {
	codec codec.Codec
}

// WithCodec selects the record codec of JSON-lines output.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// Create opens a sink for name in dst, choosing the format from the name.
//
// Text formats stream through blobstore.Store.Create and any compression
// encoder. SQLite is written to a local file; for stores other than a
// LocalStore the file is uploaded on Close.
func Create(ctx context.Context, dst blobstore.Store, name string, opts ...Option) (Sink, error) {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}

	switch FormatFor(name) {
	case SQLite:
		return createSQLite(ctx, dst, name)
	}

	blob, err := dst.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	enc, err := compress.NewWriter(name, blob)
	if err != nil {
		_ = blobstore.Abort(blob)
		return nil, pfx.Err(err)
	}

	var inner Sink
	if FormatFor(name) == JSONL {
		inner = NewJSONL(enc, o.codec)
	} else {
		inner = NewTSV(enc)
	}
	return &streamSink{Sink: inner, enc: enc, blob: blob}, nil
}

// streamSink closes the format writer, the encoder and the blob in order.
type streamSink struct {
	Sink
	enc  io.WriteCloser
	blob io.WriteCloser
}

func (s *streamSink) Close() error {
	if err := errors.Join(s.Sink.Close(), s.enc.Close()); err != nil {
		_ = blobstore.Abort(s.blob)
		return err
	}
	return s.blob.Close()
}

func createSQLite(ctx context.Context, dst blobstore.Store, name string) (Sink, error) {
	if ls, ok := dst.(*blobstore.LocalStore); ok {
		p := filepath.Join(ls.Root(), filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, pfx.Err(err)
		}
		return OpenSQLite(p)
	}

	dir, err := os.MkdirTemp("", "episcan-report-*")
	if err != nil {
		return nil, pfx.Err(err)
	}
	tmp := filepath.Join(dir, "pairs.db")
	db, err := OpenSQLite(tmp)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}
	return &uploadSink{SQLiteSink: db, ctx: ctx, dst: dst, name: name, dir: dir, path: tmp}, nil
}

// uploadSink copies a finished database file into a remote store.
type uploadSink struct {
	*SQLiteSink
	ctx  context.Context
	dst  blobstore.Store
	name string
	dir  string
	path string
}

func (s *uploadSink) Close() error {
	defer func() { _ = os.RemoveAll(s.dir) }()
	if err := s.SQLiteSink.Close(); err != nil {
		return err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() { _ = f.Close() }()

	w, err := s.dst.Create(s.ctx, s.name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		_ = blobstore.Abort(w)
		return pfx.Err(err)
	}
	return w.Close()
}
