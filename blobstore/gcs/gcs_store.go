package gcs

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"cloud.google.com/go/storage"
	"github.com/hupe1980/episcan/blobstore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var _ blobstore.Store = (*Store)(nil)

// Store implements blobstore.Store for a GCS bucket.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	owned  bool
}

// NewStore wraps an existing client. The caller keeps ownership of client.
func NewStore(client *storage.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: client.Bucket(bucket),
		prefix: strings.Trim(rootPrefix, "/"),
	}
}

// New creates a client with default credentials. Close releases it.
func New(ctx context.Context, bucket, rootPrefix string, opts ...option.ClientOption) (*Store, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	s := NewStore(client, bucket, rootPrefix)
	s.owned = true
	return s, nil
}

// Close closes the client if New created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Store) rel(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(strings.TrimPrefix(key, s.prefix), "/")
}

// Open streams the object.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(s.key(name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, blobstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create streams a write; the object is committed on Close.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	ctx, cancel := context.WithCancel(ctx)
	return &writer{w: s.bucket.Object(s.key(name)).NewWriter(ctx), cancel: cancel}, nil
}

// Put writes a blob atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = blobstore.Abort(w)
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.bucket.Object(s.key(name)).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	full := s.key(prefix)
	if strings.HasSuffix(prefix, "/") && !strings.HasSuffix(full, "/") {
		full += "/"
	}

	var names []string
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: full})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		if name := s.rel(attrs.Name); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// writer wraps storage.Writer; cancelling its context discards the upload.
type writer struct {
	w      *storage.Writer
	cancel context.CancelFunc
	closed atomic.Bool
}

func (w *writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *writer) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return errors.New("gcs: writer already closed")
	}
	defer w.cancel()
	return w.w.Close()
}

func (w *writer) Abort() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	w.cancel()
	_ = w.w.Close()
	return nil
}
