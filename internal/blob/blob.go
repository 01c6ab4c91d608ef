package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("object not found")

type Object struct {
	Key  string
	Size int64
}

// Store is a flat key/value object store. Keys are slash separated; List
// returns every object under a prefix ordered by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Download(ctx context.Context, key, path string) (int64, error)
}
