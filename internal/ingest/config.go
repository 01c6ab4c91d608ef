package ingest

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/v2"
	"playstrategy.org/puzzletools/internal/blob/file"
	"playstrategy.org/puzzletools/internal/blob/s3"
	"playstrategy.org/puzzletools/pkg/manifests"
)

const (
	DefaultLogFile  = "puzzles.log"
	DefaultStore    = "s3"
	DefaultImporter = "mongosh"
)

type Config struct {
	Debug       bool
	LogFile     string
	WorkDir     string
	ManifestKey string
	Store       string
	Importer    string
	S3Config    *s3.Config
	FileConfig  *file.Config
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	var err error
	c.Debug = k.Bool("debug")
	c.LogFile = k.String("log_file")
	c.WorkDir = k.String("work_dir")
	c.ManifestKey = k.String("manifest_key")
	c.Store = k.String("store")
	c.Importer = k.String("importer")
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if c.ManifestKey == "" {
		c.ManifestKey = manifests.DefaultImportManifestKey
	}
	if c.Store == "" {
		c.Store = DefaultStore
	}
	if c.Importer == "" {
		c.Importer = DefaultImporter
	}
	switch c.Store {
	case "s3":
		c.S3Config, err = s3.NewConfig(k)
		if err != nil {
			return nil, err
		}
	case "file":
		c.FileConfig, err = file.NewConfig(k)
		if err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case "s3":
		if c.S3Config == nil {
			return errors.New("need s3 config")
		}
		if err := c.S3Config.Validate(); err != nil {
			return err
		}
	case "file":
		if c.FileConfig == nil {
			return errors.New("need file store config")
		}
		if err := c.FileConfig.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	switch c.Importer {
	case "mongosh", "mongo":
	default:
		return fmt.Errorf("unsupported importer %q", c.Importer)
	}
	if c.WorkDir == "" {
		return errors.New("need work directory")
	}
	return nil
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Debug mode: %v\n", c.Debug)
	result += fmt.Sprintf("Log file: %v\n", c.LogFile)
	result += fmt.Sprintf("Work dir: %v\n", c.WorkDir)
	result += fmt.Sprintf("Manifest key: %v\n", c.ManifestKey)
	result += fmt.Sprintf("Store: %v\n", c.Store)
	if c.S3Config != nil {
		result += c.S3Config.String()
	}
	if c.FileConfig != nil {
		result += c.FileConfig.String()
	}
	result += fmt.Sprintf("Importer: %v\n", c.Importer)
	return result
}
