// Package gcs provides a Google Cloud Storage implementation of blobstore.Store.
//
//	client, err := storage.NewClient(ctx)
//	store := gcs.NewStore(client, "my-bucket", "study-42/")
//
// When STORAGE_EMULATOR_HOST is set the client talks to the emulator instead.
package gcs
