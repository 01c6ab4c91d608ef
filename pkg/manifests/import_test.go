package manifests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"playstrategy.org/puzzletools/internal/blob"
	"playstrategy.org/puzzletools/internal/blob/mem"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name  string
		start ImportManifest
		add   [][3]string
		want  ImportManifest
	}{
		{
			name:  "empty",
			start: ImportManifest{},
			add:   [][3]string{{"atomic", "2025-11", "brute-force-endgame"}},
			want: ImportManifest{
				"atomic": {"2025-11": {"brute-force-endgame"}},
			},
		},
		{
			name:  "twice",
			start: ImportManifest{},
			add: [][3]string{
				{"atomic", "2025-11", "brute-force-endgame"},
				{"atomic", "2025-11", "brute-force-endgame"},
			},
			want: ImportManifest{
				"atomic": {"2025-11": {"brute-force-endgame"}},
			},
		},
		{
			name: "existing-variant",
			start: ImportManifest{
				"atomic": {"2025-10": {"a"}},
			},
			add: [][3]string{{"atomic", "2025-11", "a"}},
			want: ImportManifest{
				"atomic": {"2025-10": {"a"}, "2025-11": {"a"}},
			},
		},
		{
			name:  "several-generators",
			start: ImportManifest{},
			add: [][3]string{
				{"linesOfAction", "2025-11", "a"},
				{"linesOfAction", "2025-11", "b"},
				{"linesOfAction", "2025-11", "a"},
			},
			want: ImportManifest{
				"linesOfAction": {"2025-11": {"a", "b"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, a := range tt.add {
				tt.start.Register(a[0], a[1], a[2])
			}
			assert.Equal(t, tt.want, tt.start)
		})
	}
}

func TestRegisterReportsChange(t *testing.T) {
	m := ImportManifest{}
	assert.True(t, m.Register("atomic", "2025-11", "gen"))
	assert.False(t, m.Register("atomic", "2025-11", "gen"))
	assert.True(t, m.Has("atomic", "2025-11", "gen"))
	assert.False(t, m.Has("atomic", "2025-12", "gen"))
	assert.False(t, m.Has("chess", "2025-11", "gen"))
}

func TestRegisterOrderIndependent(t *testing.T) {
	first := ImportManifest{}
	first.Register("atomic", "2025-11", "a")
	first.Register("atomic", "2025-11", "b")

	second := ImportManifest{}
	second.Register("atomic", "2025-11", "b")
	second.Register("atomic", "2025-11", "a")

	assert.ElementsMatch(t, []string{"a", "b"}, first["atomic"]["2025-11"])
	assert.ElementsMatch(t, first["atomic"]["2025-11"], second["atomic"]["2025-11"])
}

func TestClone(t *testing.T) {
	m := ImportManifest{"atomic": {"2025-11": {"a"}}}
	c := m.Clone()
	c.Register("atomic", "2025-11", "b")
	c.Register("chess", "2025-11", "a")
	assert.Equal(t, ImportManifest{"atomic": {"2025-11": {"a"}}}, m)
	assert.Len(t, c, 2)
}

func TestEntries(t *testing.T) {
	m := ImportManifest{
		"linesOfAction": {"2025-11": {"x"}},
		"atomic":        {"2025-12": {"b", "a"}, "2025-02": {"c"}},
	}
	assert.Equal(t, []Entry{
		{Variant: "atomic", Month: "2025-02", Generators: []string{"c"}},
		{Variant: "atomic", Month: "2025-12", Generators: []string{"b", "a"}},
		{Variant: "linesOfAction", Month: "2025-11", Generators: []string{"x"}},
	}, m.Entries())
}

func TestMarshal(t *testing.T) {
	m := ImportManifest{"atomic": {"2025-11": {"brute-force-endgame"}}}
	data, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "atomic": {
    "2025-11": [
      "brute-force-endgame"
    ]
  }
}
`, string(data))

	data, err = ImportManifest(nil).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestParseImportManifest(t *testing.T) {
	m, err := ParseImportManifest([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)

	_, err = ParseImportManifest([]byte("{"))
	assert.Error(t, err)
}

type brokenStore struct {
	blob.Store
}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		s, err := NewImportManifestStore(mem.NewMemoryStore(), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultImportManifestKey, s.Key())
		m, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
		assert.True(t, m.Register("atomic", "2025-11", "gen"))
	})

	t.Run("malformed", func(t *testing.T) {
		b := mem.NewMemoryStore()
		b.Add(DefaultImportManifestKey, "not json")
		s, err := NewImportManifestStore(b, "")
		require.NoError(t, err)
		_, err = s.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("null-variant", func(t *testing.T) {
		b := mem.NewMemoryStore()
		b.Add(DefaultImportManifestKey, `{"atomic": null}`)
		s, err := NewImportManifestStore(b, "")
		require.NoError(t, err)
		m, err := s.Load(ctx)
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			assert.True(t, m.Register("atomic", "2025-11", "gen"))
		})
		assert.True(t, m.Has("atomic", "2025-11", "gen"))
	})

	t.Run("read-failure", func(t *testing.T) {
		s, err := NewImportManifestStore(brokenStore{}, "")
		require.NoError(t, err)
		_, err = s.Load(ctx)
		assert.ErrorContains(t, err, "connection reset")
	})

	_, err := NewImportManifestStore(nil, "")
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := mem.NewMemoryStore()
	s, err := NewImportManifestStore(b, "custom/manifest.json")
	require.NoError(t, err)

	m := ImportManifest{
		"atomic":        {"2025-11": {"a", "b"}},
		"linesOfAction": {"2025-10": {"brute-force-endgame"}, "2025-11": {"c"}},
	}
	require.NoError(t, s.Save(ctx, m))

	raw, err := b.Get(ctx, "custom/manifest.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"atomic\": {")

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
