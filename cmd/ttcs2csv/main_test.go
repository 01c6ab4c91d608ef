package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	err := app.Run(context.Background(), append([]string{"ttcs2csv"}, args...))
	return out.String(), err
}

func TestArgumentCount(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`[]`), 0o644))
	out := filepath.Join(dir, "out.csv")

	for _, args := range [][]string{
		{},
		{in},
		{in, out, "extra"},
	} {
		stdout, err := run(t, args...)
		require.Error(t, err, args)
		var exitErr cli.ExitCoder
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, usageExitCode, exitErr.ExitCode())
		assert.Contains(t, stdout, "Usage: ttcs2csv input.json output.csv")
		assert.NoFileExists(t, out)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(in, []byte(`[{"lib":"x"},{"lib":"y"},{"lib":"z"}]`), 0o644))

	stdout, err := run(t, in, out)
	require.NoError(t, err)
	assert.Equal(t, "Wrote 3 records to "+out+"\n", stdout)
	assert.FileExists(t, out)
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")
	_, err := run(t, filepath.Join(dir, "missing.json"), out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}
