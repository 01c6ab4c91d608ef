package manifests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/emirpasic/gods/maps/treemap"
	"playstrategy.org/puzzletools/internal/blob"
)

const DefaultImportManifestKey = "manifests/db_manifest.json"

// ImportManifest records which generator batches have been imported, keyed
// by variant then month (YYYY-MM). Generator lists are duplicate free; their
// order is insertion order and carries no meaning.
type ImportManifest map[string]map[string][]string

type Entry struct {
	Variant    string
	Month      string
	Generators []string
}

// Register marks variant/month/generator as imported and reports whether the
// manifest changed.
func (m ImportManifest) Register(variant, month, generator string) bool {
	months := m[variant]
	if months == nil {
		months = make(map[string][]string)
		m[variant] = months
	}
	gens := months[month]
	if slices.Contains(gens, generator) {
		return false
	}
	months[month] = append(gens, generator)
	return true
}

func (m ImportManifest) Has(variant, month, generator string) bool {
	return slices.Contains(m[variant][month], generator)
}

func (m ImportManifest) Clone() ImportManifest {
	result := make(ImportManifest, len(m))
	for variant, months := range m {
		cm := make(map[string][]string, len(months))
		for month, gens := range months {
			cm[month] = slices.Clone(gens)
		}
		result[variant] = cm
	}
	return result
}

// Entries flattens the manifest into rows ordered by variant then month.
func (m ImportManifest) Entries() []Entry {
	tm := treemap.NewWithStringComparator()
	for variant, months := range m {
		for month, gens := range months {
			tm.Put(variant+"\x00"+month, Entry{
				Variant:    variant,
				Month:      month,
				Generators: slices.Clone(gens),
			})
		}
	}
	result := make([]Entry, 0, tm.Size())
	for _, v := range tm.Values() {
		result = append(result, v.(Entry))
	}
	return result
}

func (m ImportManifest) Marshal() ([]byte, error) {
	if m == nil {
		m = ImportManifest{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseImportManifest(data []byte) (ImportManifest, error) {
	var m ImportManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = ImportManifest{}
	}
	return m, nil
}

// ImportManifestStore keeps the manifest as a single document in a blob
// store. Saves replace the whole document; there is no versioning, so two
// concurrent runs can lose each other's registrations.
type ImportManifestStore struct {
	blobs blob.Store
	key   string
}

func NewImportManifestStore(b blob.Store, key string) (*ImportManifestStore, error) {
	if b == nil {
		return nil, errors.New("need blob store for import manifest")
	}
	if key == "" {
		key = DefaultImportManifestKey
	}
	return &ImportManifestStore{blobs: b, key: key}, nil
}

func (s *ImportManifestStore) Key() string {
	return s.key
}

// Load returns an empty manifest when no document exists yet.
func (s *ImportManifestStore) Load(ctx context.Context) (ImportManifest, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		return ImportManifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading import manifest: %w", err)
	}
	m, err := ParseImportManifest(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing import manifest %v: %w", s.key, err)
	}
	return m, nil
}

func (s *ImportManifestStore) Save(ctx context.Context, m ImportManifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("error encoding import manifest: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("error saving import manifest: %w", err)
	}
	return nil
}
