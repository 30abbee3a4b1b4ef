package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/episcan/blobstore"
	"github.com/hupe1980/episcan/blobstore/gcs"
	"github.com/hupe1980/episcan/blobstore/minio"
	"github.com/hupe1980/episcan/blobstore/s3"
)

// location is a parsed input or output address.
//
//	/data/geno.txt.zst            local file
//	s3://bucket/dir/geno.txt      Amazon S3
//	gs://bucket/dir/geno.txt      Google Cloud Storage
//	minio://host:9000/bucket/key  MinIO
type location struct {
	Scheme string
	Host   string
	Bucket string
	Dir    string
	Name   string
}

func parseLocation(raw string) (location, error) {
	if !strings.Contains(raw, "://") {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return location{}, err
		}
		return location{Scheme: "file", Dir: filepath.Dir(abs), Name: filepath.Base(abs)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return location{}, err
	}
	p := strings.TrimPrefix(u.Path, "/")
	loc := location{Scheme: u.Scheme}

	switch u.Scheme {
	case "file":
		return parseLocation(u.Path)
	case "s3", "gs":
		loc.Bucket = u.Host
	case "minio":
		loc.Host = u.Host
		bucket, rest, _ := strings.Cut(p, "/")
		loc.Bucket, p = bucket, rest
	default:
		return location{}, fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
	if loc.Bucket == "" || p == "" || strings.HasSuffix(p, "/") {
		return location{}, fmt.Errorf("location %q needs a bucket and an object name", raw)
	}
	loc.Dir, loc.Name = path.Split(p)
	loc.Dir = strings.TrimSuffix(loc.Dir, "/")
	return loc, nil
}

// open returns a store rooted at the location's directory. Remote stores are
// wrapped in a local read-through cache when cfg.CacheDir is set.
func (l location) open(ctx context.Context, cfg Config) (blobstore.Store, func() error, error) {
	noop := func() error { return nil }

	var (
		st      blobstore.Store
		closeFn = noop
	)
	switch l.Scheme {
	case "file":
		return blobstore.NewLocalStore(l.Dir), noop, nil
	case "s3":
		var opts []s3.Option
		opts = append(opts, s3.WithPrefix(l.Dir))
		if cfg.S3.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.S3.Region))
		}
		if cfg.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3.Endpoint))
		}
		s, err := s3.New(ctx, l.Bucket, opts...)
		if err != nil {
			return nil, nil, err
		}
		st = s
	case "gs":
		s, err := gcs.New(ctx, l.Bucket, l.Dir)
		if err != nil {
			return nil, nil, err
		}
		st, closeFn = s, s.Close
	case "minio":
		access, secret := cfg.MinIO.AccessKey, cfg.MinIO.SecretKey
		if access == "" {
			access = os.Getenv("MINIO_ACCESS_KEY")
		}
		if secret == "" {
			secret = os.Getenv("MINIO_SECRET_KEY")
		}
		s, err := minio.Dial(l.Host, access, secret, cfg.MinIO.Secure, l.Bucket, l.Dir)
		if err != nil {
			return nil, nil, err
		}
		st = s
	default:
		return nil, nil, fmt.Errorf("unsupported location scheme %q", l.Scheme)
	}

	if cfg.CacheDir != "" {
		cache := blobstore.NewLocalStore(filepath.Join(cfg.CacheDir, l.Scheme, l.Host, l.Bucket, filepath.FromSlash(l.Dir)))
		st = blobstore.NewCachingStore(st, cache)
	}
	return st, closeFn, nil
}
