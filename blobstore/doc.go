// Package blobstore provides the object-storage abstraction used to read
// genotype inputs and write scan reports.
//
// Store is the interface for reading and writing named blobs. Blobs are
// streamed: inputs are decoded line by line and reports are written as they
// are produced. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system, atomic create via rename
//   - MemoryStore: in-memory, for tests
//   - CachingStore: read-through cache of a remote store in a local one
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and S3-compatible servers
//   - gcs.Store: Google Cloud Storage
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (io.ReadCloser, error)
//	    Create(ctx, name) (io.WriteCloser, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Open must return an error satisfying errors.Is(err, ErrNotFound) when the
// blob does not exist. A blob written through Create becomes visible only
// after Close returns nil.
package blobstore
