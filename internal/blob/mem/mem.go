package mem

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"playstrategy.org/puzzletools/internal/blob"
)

type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%v: %w", key, blob.ErrNotFound)
	}
	return slices.Clone(data), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = slices.Clone(data)
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]blob.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []blob.Object
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			result = append(result, blob.Object{Key: k, Size: int64(len(v))})
		}
	}
	slices.SortFunc(result, func(a, b blob.Object) int {
		return strings.Compare(a.Key, b.Key)
	})
	return result, nil
}

func (m *MemoryStore) Download(ctx context.Context, key, path string) (int64, error) {
	data, err := m.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Add seeds an object, mostly for tests and dry runs.
func (m *MemoryStore) Add(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = []byte(value)
}
