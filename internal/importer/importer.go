package importer

import (
	"context"
	"errors"
)

// Result describes one import attempt. A failed import has OK false and is
// not an error: callers log Output and move on.
type Result struct {
	OK     bool
	Output string
}

type Importer interface {
	Import(ctx context.Context, path string) (Result, error)
}

var ErrUnsupportedImporter = errors.New("unsupported importer")
