package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"playstrategy.org/puzzletools/internal/blob"
	"playstrategy.org/puzzletools/internal/importer"
	"playstrategy.org/puzzletools/internal/puzzles"
	"playstrategy.org/puzzletools/pkg/manifests"
)

type Report struct {
	Candidates      int
	Imported        int
	Failed          int
	Skipped         int
	ManifestUpdated bool
}

func (r Report) String() string {
	return fmt.Sprintf("%v candidates, %v imported, %v failed, %v skipped", r.Candidates, r.Imported, r.Failed, r.Skipped)
}

// Ingester moves puzzle batches from the blob store into the database one
// file at a time, and records completed batches in the import manifest.
type Ingester struct {
	blobs     blob.Store
	manifests *manifests.ImportManifestStore
	importer  importer.Importer
	workDir   string
	log       *log.Logger
}

func NewIngester(blobs blob.Store, ms *manifests.ImportManifestStore, imp importer.Importer, workDir string, logger *log.Logger) (*Ingester, error) {
	if blobs == nil {
		return nil, errors.New("need blob store")
	}
	if ms == nil {
		return nil, errors.New("need import manifest store")
	}
	if imp == nil {
		return nil, errors.New("need importer")
	}
	if logger == nil {
		logger = log.Default()
	}
	if workDir == "" {
		workDir = "."
	}
	return &Ingester{
		blobs:     blobs,
		manifests: ms,
		importer:  imp,
		workDir:   workDir,
		log:       logger,
	}, nil
}

// Run imports every JSON file of the batch. The manifest is written back
// only when at least one file imported cleanly; failed imports are logged
// and do not stop the run.
func (i *Ingester) Run(ctx context.Context, b Batch) (*Report, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	objects, err := i.blobs.List(ctx, b.Prefix())
	if err != nil {
		return nil, fmt.Errorf("error listing batch %v: %w", b, err)
	}
	manifest, err := i.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{}
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			report.Skipped++
			i.log.Debug("skipping non json object", "key", obj.Key)
			continue
		}
		report.Candidates++
		ok, err := i.importObject(ctx, obj)
		if err != nil {
			return report, err
		}
		if ok {
			report.Imported++
		} else {
			report.Failed++
		}
	}
	if report.Imported > 0 {
		manifest.Register(b.Variant, b.Month, b.Generator)
		if err := i.manifests.Save(ctx, manifest); err != nil {
			return report, err
		}
		report.ManifestUpdated = true
		i.log.Infof("DB manifest updated for %v", b)
	}
	return report, nil
}

func (i *Ingester) importObject(ctx context.Context, obj blob.Object) (bool, error) {
	local := filepath.Join(i.workDir, path.Base(obj.Key))
	defer func() {
		if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
			i.log.Warn("error removing local file", "file", local, "err", err)
		}
	}()

	n, err := i.blobs.Download(ctx, obj.Key, local)
	if err != nil {
		return false, fmt.Errorf("error downloading %v: %w", obj.Key, err)
	}
	i.log.Info(fmt.Sprintf("Downloaded %v to %v", obj.Key, local), "size", humanize.Bytes(uint64(n)))

	if err := puzzles.PrependAssignment(local); err != nil {
		return false, fmt.Errorf("error preparing %v: %w", local, err)
	}
	i.log.Infof("Prepended '%v' to %v", puzzles.AssignmentPrefix, local)

	i.log.Infof("Running import for %v", local)
	res, err := i.importer.Import(ctx, local)
	if err != nil {
		return false, fmt.Errorf("error importing %v: %w", local, err)
	}
	if res.Output != "" {
		i.log.Info(res.Output)
	}
	if !res.OK {
		i.log.Errorf("Import failed for %v.", local)
		return false, nil
	}
	i.log.Infof("Imported %v successfully.", local)
	return true, nil
}
