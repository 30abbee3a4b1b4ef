// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("studies/chr1/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// # Features
//
//   - Streaming reads straight from GetObject
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible servers
package s3
