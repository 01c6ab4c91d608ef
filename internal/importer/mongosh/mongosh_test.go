package mongosh

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	k := koanf.New(".")
	c, err := NewConfig(k, "localhost:27017", "importPuzzle.mjs")
	require.NoError(t, err)
	assert.Equal(t, DefaultBinary, c.Binary)
	assert.Equal(t, DefaultDatabase, c.Database)
	require.NoError(t, c.Validate())

	require.NoError(t, k.Load(confmap.Provider(map[string]any{
		"mongosh.binary": "/opt/mongosh/bin/mongosh",
		"database":       "playstrategy",
	}, "."), nil))
	c, err = NewConfig(k, "", "")
	require.NoError(t, err)
	assert.Equal(t, "/opt/mongosh/bin/mongosh", c.Binary)
	assert.Equal(t, "playstrategy", c.Database)
	assert.Error(t, c.Validate())
}

func TestArgs(t *testing.T) {
	m, err := NewImporter(&Config{
		Binary:   "mongosh",
		Database: "lichess",
		Host:     "localhost:27017",
		Script:   "/srv/importPuzzle.mjs",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"--host", "localhost:27017", "lichess",
		"--eval", "var jsonFile='puzzles_1.json'",
		"/srv/importPuzzle.mjs",
	}, m.args("puzzles_1.json"))

	cmd := m.genCmd(context.Background(), "/tmp/work/puzzles_1.json")
	assert.Equal(t, "/tmp/work", cmd.Dir)
	assert.Equal(t, "var jsonFile='puzzles_1.json'", cmd.Args[5])
}

func TestImportExitStatus(t *testing.T) {
	for _, bin := range []string{"true", "false"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%v not available", bin)
		}
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "puzzles.json")

	ok, err := NewImporter(&Config{Binary: "true", Database: "lichess", Host: "h", Script: "s.mjs"})
	require.NoError(t, err)
	res, err := ok.Import(ctx, path)
	require.NoError(t, err)
	assert.True(t, res.OK)

	failing, err := NewImporter(&Config{Binary: "false", Database: "lichess", Host: "h", Script: "s.mjs"})
	require.NoError(t, err)
	res, err = failing.Import(ctx, path)
	require.NoError(t, err)
	assert.False(t, res.OK)
}

func TestImportMissingBinary(t *testing.T) {
	m, err := NewImporter(&Config{Binary: "definitely-not-mongosh", Database: "lichess", Host: "h", Script: "s.mjs"})
	require.NoError(t, err)
	_, err = m.Import(context.Background(), filepath.Join(t.TempDir(), "p.json"))
	assert.Error(t, err)
}

func TestJoinOutput(t *testing.T) {
	assert.Equal(t, "out", joinOutput("out\n", ""))
	assert.Equal(t, "err", joinOutput("", "err\n"))
	assert.Equal(t, "out\nerr", joinOutput("out\n", "err"))
}
