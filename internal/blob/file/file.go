package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"playstrategy.org/puzzletools/internal/blob"
)

// FileStore treats a local directory as a bucket.
type FileStore struct {
	root string
}

func NewFileStore(c *Config) (*FileStore, error) {
	if c == nil {
		return nil, errors.New("need file store config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return nil, fmt.Errorf("file store root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("file store root %v is not a directory", c.Root)
	}
	return &FileStore{root: c.Root}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%v: %w", key, blob.ErrNotFound)
	}
	return data, err
}

func (f *FileStore) Put(_ context.Context, key string, data []byte) error {
	target := f.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func (f *FileStore) List(ctx context.Context, prefix string) ([]blob.Object, error) {
	var result []blob.Object
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		result = append(result, blob.Object{Key: key, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(result, func(a, b blob.Object) int {
		return strings.Compare(a.Key, b.Key)
	})
	return result, nil
}

func (f *FileStore) Download(_ context.Context, key, path string) (int64, error) {
	src, err := os.Open(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%v: %w", key, blob.ErrNotFound)
	} else if err != nil {
		return 0, err
	}
	defer src.Close()
	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return n, err
	}
	return n, dst.Close()
}
