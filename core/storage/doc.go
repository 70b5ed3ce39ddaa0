// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that record files can live in AWS S3 or a
// self-hosted MinIO instance instead of the local filesystem. Only the
// operations needed to read inputs and publish the reconciled output are
// exposed.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Checks that an input object exists.
//   - GetObject: Retrieves content as a stream.
//   - PutObject: Uploads the reconciled output.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "records")
package storage
