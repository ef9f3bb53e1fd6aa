// Package dictstore opens word lists and compiled dictionaries by location: a local
// path, or gs://bucket/object for Cloud Storage.
package dictstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
)

// ErrUnavailable is returned when a location cannot be opened or created.
var ErrUnavailable = errors.New("resource unavailable")

const gsScheme = "gs://"

// ParseLocation splits a gs://bucket/object location. ok is false for local paths.
func ParseLocation(loc string) (bucket, object string, ok bool, err error) {
	rest, isGS := strings.CutPrefix(loc, gsScheme)
	if !isGS {
		return "", "", false, nil
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", true, fmt.Errorf("%w: %q is not gs://bucket/object", ErrUnavailable, loc)
	}
	return bucket, object, true, nil
}

// Store opens locations. The Cloud Storage client is only created on first use of a
// gs:// location.
type Store struct {
	mu     sync.Mutex
	client *storage.Client
}

func New() *Store {
	return &Store{}
}

func (s *Store) storageClient(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: storage.NewClient: %v", ErrUnavailable, err)
		}
		s.client = client
	}
	return s.client, nil
}

// Open returns a reader for loc.
func (s *Store) Open(ctx context.Context, loc string) (io.ReadCloser, error) {
	bucket, object, isGS, err := ParseLocation(loc)
	if err != nil {
		return nil, err
	}
	if !isGS {
		f, err := os.Open(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return f, nil
	}

	client, err := s.storageClient(ctx)
	if err != nil {
		return nil, err
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, loc)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, loc, err)
	}
	return r, nil
}

// Create returns a writer for loc. For Cloud Storage the object only appears once
// the writer is closed without error.
func (s *Store) Create(ctx context.Context, loc string) (io.WriteCloser, error) {
	bucket, object, isGS, err := ParseLocation(loc)
	if err != nil {
		return nil, err
	}
	if !isGS {
		f, err := os.Create(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return f, nil
	}

	client, err := s.storageClient(ctx)
	if err != nil {
		return nil, err
	}
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	return w, nil
}

// Close releases the Cloud Storage client, if one was created.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
