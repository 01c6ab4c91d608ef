package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"playstrategy.org/puzzletools/internal/blob"
	filestore "playstrategy.org/puzzletools/internal/blob/file"
	"playstrategy.org/puzzletools/internal/blob/s3"
	"playstrategy.org/puzzletools/internal/importer"
	"playstrategy.org/puzzletools/internal/importer/mongo"
	"playstrategy.org/puzzletools/internal/importer/mongosh"
	"playstrategy.org/puzzletools/internal/ingest"
	"playstrategy.org/puzzletools/pkg/manifests"
)

func setupLogger(c *ingest.Config) {
	if c.Debug {
		log.Default().SetLevel(log.DebugLevel)
		log.Default().SetReportCaller(true)
	}
}

// openRunLogger logs to stdout and appends to the configured log file. Every
// line carries the run id so interleaved runs in the file can be told apart.
func openRunLogger(c *ingest.Config) (*log.Logger, func() error, error) {
	if dir := filepath.Dir(c.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("error creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	logger := log.NewWithOptions(io.MultiWriter(os.Stdout, f), log.Options{
		ReportTimestamp: true,
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger.With("run", uuid.NewString()), f.Close, nil
}

func newStore(ctx context.Context, c *ingest.Config) (blob.Store, error) {
	switch c.Store {
	case "s3":
		store, err := s3.NewS3Store(ctx, c.S3Config)
		if err != nil {
			return nil, fmt.Errorf("invalid s3 store: %w", err)
		}
		return store, nil
	case "file":
		store, err := filestore.NewFileStore(c.FileConfig)
		if err != nil {
			return nil, fmt.Errorf("invalid file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid store: %v", c.Store)
	}
}

func newImporter(k *koanf.Koanf, c *ingest.Config, target, script string) (importer.Importer, error) {
	switch c.Importer {
	case "mongosh":
		config, err := mongosh.NewConfig(k, target, script)
		if err != nil {
			return nil, fmt.Errorf("error creating mongosh config: %w", err)
		}
		if _, err := os.Stat(config.Script); err != nil {
			return nil, fmt.Errorf("import script: %w", err)
		}
		return mongosh.NewImporter(config)
	case "mongo":
		config, err := mongo.NewConfig(k, target)
		if err != nil {
			return nil, fmt.Errorf("error creating mongo config: %w", err)
		}
		log.Debug("native importer ignores import script", "script", script)
		return mongo.NewImporter(config)
	default:
		return nil, fmt.Errorf("%w: %v", importer.ErrUnsupportedImporter, c.Importer)
	}
}

func loadConfig(ctx context.Context, configFile string, cliflags map[string]any) (*koanf.Koanf, *ingest.Config, error) {
	k, err := LoadConfigs(ctx, configFile, cliflags)
	if err != nil {
		return nil, nil, fmt.Errorf("error generating config blob: %w", err)
	}
	c, err := ingest.NewConfig(k)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("error validating config: %w", err)
	}
	setupLogger(c)
	return k, c, nil
}

func setupManifestStore(ctx context.Context, configFile string, cliflags map[string]any) (*ingest.Config, blob.Store, *manifests.ImportManifestStore, error) {
	_, c, err := loadConfig(ctx, configFile, cliflags)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := newStore(ctx, c)
	if err != nil {
		return nil, nil, nil, err
	}
	ms, err := manifests.NewImportManifestStore(store, c.ManifestKey)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, store, ms, nil
}

func LoadConfigs(_ context.Context, configFile string, cliflags map[string]any) (*koanf.Koanf, error) {
	k := koanf.New(".")
	fileConf := koanf.New(".")
	envConf := koanf.New(".")
	cliConf := koanf.New(".")
	if configFile != "" {
		err := fileConf.Load(file.Provider(configFile), toml.Parser())
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}
	err := envConf.Load(env.Provider("PUZZLECTL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PUZZLECTL_")), "__", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading config from env: %w", err)
	}
	err = cliConf.Load(confmap.Provider(cliflags, "."), nil)
	if err != nil {
		return nil, err
	}
	for _, conf := range []*koanf.Koanf{fileConf, envConf, cliConf} {
		if err := k.Merge(conf); err != nil {
			return nil, fmt.Errorf("error building config: %w", err)
		}
	}
	return k, nil
}

func validateBatch(args []string) (ingest.Batch, error) {
	if len(args) < 3 {
		return ingest.Batch{}, errors.New("need variant, month and generator")
	}
	b := ingest.Batch{Variant: args[0], Month: args[1], Generator: args[2]}
	return b, b.Validate()
}

// registerBatch records b in the manifest and prints the document diff. The
// manifest is saved only when it changed and dryRun is unset.
func registerBatch(ctx context.Context, ms *manifests.ImportManifestStore, b ingest.Batch, dryRun bool, w io.Writer) error {
	m, err := ms.Load(ctx)
	if err != nil {
		return err
	}
	before := m.Clone()
	m.Register(b.Variant, b.Month, b.Generator)
	diff, changed, err := renderManifestDiff(before, m)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(w, "%v already recorded\n", b)
		return nil
	}
	fmt.Fprintln(w, diff)
	if dryRun {
		return nil
	}
	if err := ms.Save(ctx, m); err != nil {
		return err
	}
	fmt.Fprintf(w, "%v recorded in %v\n", b, ms.Key())
	return nil
}

func listBatch(ctx context.Context, store blob.Store, ms *manifests.ImportManifestStore, b ingest.Batch, w io.Writer) error {
	objects, err := store.List(ctx, b.Prefix())
	if err != nil {
		return fmt.Errorf("error listing batch: %w", err)
	}
	m, err := ms.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, renderObjects(objects))
	if m.Has(b.Variant, b.Month, b.Generator) {
		fmt.Fprintf(w, "%v is recorded in %v\n", b, ms.Key())
	} else {
		fmt.Fprintf(w, "%v has not been imported\n", b)
	}
	return nil
}
