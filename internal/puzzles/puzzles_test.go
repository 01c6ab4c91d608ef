package puzzles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependAssignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles_7vV2t81N.json")
	raw := `[{"line":"e2e4 e7e5"}]` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	require.NoError(t, PrependAssignment(path))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var puzzles="+raw, string(got))

	stripped, err := StripAssignment(got)
	require.NoError(t, err)
	assert.Equal(t, raw, string(stripped))
}

func TestPrependAssignmentMissingFile(t *testing.T) {
	assert.Error(t, PrependAssignment(filepath.Join(t.TempDir(), "nope.json")))
}

func TestStripAssignment(t *testing.T) {
	_, err := StripAssignment([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNoAssignment)

	got, err := StripAssignment([]byte("\n  var puzzles=[]"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestRating(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{"", 1000},
		{"e2e4", 1000},
		{"e2e4 e7e5", 1000},
		{"e2e4 e7e5 g1f3", 1200},
		{"  a b c d  ", 1200},
		{"a b c d e", 1400},
		{strings.Repeat("m ", 40), 2800},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.line))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	doc := map[string]any{"line": "a b c"}
	ApplyDefaults(doc)
	assert.Equal(t, 1.0, doc["vote"])
	assert.Equal(t, 0, doc["plays"])
	assert.Equal(t, map[string]any{"r": 1200.0, "d": 500.0, "v": 0.09}, doc["glicko"])

	kept := map[string]any{"vote": 0.5, "plays": 12, "glicko": "custom"}
	ApplyDefaults(kept)
	assert.Equal(t, map[string]any{"vote": 0.5, "plays": 12, "glicko": "custom"}, kept)
}

func TestRandomID(t *testing.T) {
	for range 100 {
		id := RandomID()
		assert.Len(t, id, IDLength)
		for _, c := range id {
			assert.Contains(t, idChars, string(c))
		}
	}
}

func TestUniqueID(t *testing.T) {
	ids := []string{"aaaaa", "bbbbb", "ccccc"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	taken := map[string]bool{"aaaaa": true, "bbbbb": true}
	id, err := UniqueID(gen, func(s string) (bool, error) { return taken[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "ccccc", id)

	_, err = UniqueID(RandomID, func(string) (bool, error) { return false, errors.New("db down") })
	assert.ErrorContains(t, err, "db down")
}
