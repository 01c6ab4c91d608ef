package mongosh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"playstrategy.org/puzzletools/internal/importer"
)

// Importer hands each file to an import script running inside mongosh.
// The script reads the file named by the jsonFile variable.
type Importer struct {
	binary   string
	database string
	host     string
	script   string
}

func NewImporter(c *Config) (*Importer, error) {
	if c == nil {
		return nil, errors.New("need mongosh config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	script, err := filepath.Abs(c.Script)
	if err != nil {
		return nil, err
	}
	return &Importer{
		binary:   c.Binary,
		database: c.Database,
		host:     c.Host,
		script:   script,
	}, nil
}

func (m *Importer) args(file string) []string {
	return []string{
		"--host", m.host, m.database,
		"--eval", fmt.Sprintf("var jsonFile='%v'", file),
		m.script,
	}
}

func (m *Importer) genCmd(ctx context.Context, path string) *exec.Cmd {
	args := m.args(filepath.Base(path))
	log.Debugf("%v %v", m.binary, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, m.binary, args...)
	cmd.Dir = filepath.Dir(path)
	return cmd
}

func (m *Importer) Import(ctx context.Context, path string) (importer.Result, error) {
	cmd := m.genCmd(ctx, path)
	output := bytes.NewBuffer([]byte{})
	errorout := bytes.NewBuffer([]byte{})
	cmd.Stdout = output
	cmd.Stderr = errorout
	err := cmd.Run()
	res := importer.Result{
		OK:     err == nil,
		Output: joinOutput(output.String(), errorout.String()),
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return res, fmt.Errorf("error running %v: %w", m.binary, err)
	}
	return res, nil
}

func joinOutput(stdout, stderr string) string {
	stdout = strings.TrimRight(stdout, "\n")
	stderr = strings.TrimRight(stderr, "\n")
	switch {
	case stderr == "":
		return stdout
	case stdout == "":
		return stderr
	}
	return stdout + "\n" + stderr
}
