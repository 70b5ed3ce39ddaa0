package source

import (
	"errors"
	"fmt"
	"strings"
)

// objectScheme prefixes locations stored in object storage.
const objectScheme = "s3://"

// ErrInvalidLocation is returned for empty or unparsable locations.
var ErrInvalidLocation = errors.New("invalid location")

// Location points at a record file on local disk or in object storage.
type Location struct {
	// Raw is the location as given by the user.
	Raw string

	// Path is the filesystem path for local locations.
	Path string

	// Bucket and Key identify an object for s3:// locations.
	// Bucket may be empty, meaning the configured default bucket.
	Bucket string
	Key    string
}

// Parse parses "s3://bucket/key", "s3:///key" (default bucket) or a local path.
func Parse(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	if !strings.HasPrefix(raw, objectScheme) {
		return Location{Raw: raw, Path: raw}, nil
	}

	rest := strings.TrimPrefix(raw, objectScheme)
	bucket, key, found := strings.Cut(rest, "/")
	key = strings.TrimLeft(key, "/")
	if !found || key == "" {
		return Location{}, fmt.Errorf("%w: %q has no object key", ErrInvalidLocation, raw)
	}
	return Location{Raw: raw, Bucket: bucket, Key: key}, nil
}

// IsObject reports whether the location lives in object storage.
func (l Location) IsObject() bool {
	return l.Key != ""
}

func (l Location) String() string {
	return l.Raw
}
