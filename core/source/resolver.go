package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"record-reconciler/core/recordio"
	"record-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrStorageUnavailable is returned for s3:// locations when no storage client is configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// Sink receives reconciled lines and publishes them only on Commit.
type Sink interface {
	// Write appends one record.
	Write(fields []string) error
	// Count returns the number of records written.
	Count() int
	// Commit publishes the output at its destination.
	Commit(ctx context.Context) error
	// Abort discards everything written. It is a no-op after Commit.
	Abort()
}

// Resolver opens input locations and creates output sinks.
type Resolver struct {
	client        storage.Client
	defaultBucket string
}

// NewResolver creates a Resolver. client may be nil when only local paths are used.
func NewResolver(client storage.Client, defaultBucket string) *Resolver {
	return &Resolver{client: client, defaultBucket: defaultBucket}
}

func (r *Resolver) bucket(loc Location) string {
	if loc.Bucket != "" {
		return loc.Bucket
	}
	return r.defaultBucket
}

// Check verifies that an input location exists without reading it.
func (r *Resolver) Check(ctx context.Context, loc Location) error {
	if !loc.IsObject() {
		if _, err := os.Stat(loc.Path); err != nil {
			return fmt.Errorf("failed to stat %s: %w", loc, err)
		}
		return nil
	}
	if r.client == nil {
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, loc)
	}
	if _, err := r.client.StatObject(ctx, r.bucket(loc), loc.Key, minio.StatObjectOptions{}); err != nil {
		return fmt.Errorf("failed to stat %s: %w", loc, err)
	}
	return nil
}

// Open opens an input location for reading.
func (r *Resolver) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	if !loc.IsObject() {
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", loc, err)
		}
		return f, nil
	}
	if r.client == nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, loc)
	}
	obj, err := r.client.GetObject(ctx, r.bucket(loc), loc.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}
	return obj, nil
}

// Create prepares an output sink for loc.
func (r *Resolver) Create(ctx context.Context, loc Location, delimiter string) (Sink, error) {
	if !loc.IsObject() {
		f, err := recordio.CreateAtomic(loc.Path, delimiter)
		if err != nil {
			return nil, err
		}
		return &fileSink{AtomicFile: f}, nil
	}
	if r.client == nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, loc)
	}

	// Spool locally so the upload size is known and nothing is published on failure.
	tmp, err := os.CreateTemp("", "reconciled-*.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	return &objectSink{
		Writer: recordio.NewWriter(tmp, delimiter),
		file:   tmp,
		client: r.client,
		bucket: r.bucket(loc),
		key:    loc.Key,
	}, nil
}

type fileSink struct {
	*recordio.AtomicFile
}

func (s *fileSink) Commit(context.Context) error {
	return s.AtomicFile.Commit()
}

type objectSink struct {
	*recordio.Writer
	file   *os.File
	client storage.Client
	bucket string
	key    string
	done   bool
}

func (s *objectSink) Commit(ctx context.Context) error {
	if s.done {
		return fmt.Errorf("output s3://%s/%s already closed", s.bucket, s.key)
	}
	defer s.Abort()

	if err := s.Writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush spool file: %w", err)
	}
	size, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to size spool file: %w", err)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind spool file: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key, s.file, size, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func (s *objectSink) Abort() {
	if s.done {
		return
	}
	s.done = true
	_ = s.file.Close()
	_ = os.Remove(s.file.Name())
}
