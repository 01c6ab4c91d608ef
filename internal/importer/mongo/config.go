package mongo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/v2"
)

const (
	DefaultDatabase   = "lichess"
	DefaultCollection = "puzzle2_puzzle"
)

type Config struct {
	URI        string `toml:"uri" json:"uri" yaml:"uri"`
	Database   string `toml:"database" json:"database" yaml:"database"`
	Collection string `toml:"collection" json:"collection" yaml:"collection"`
}

// NewConfig accepts either a full connection string or a bare host:port
// target as used by mongosh --host.
func NewConfig(k *koanf.Koanf, target string) (*Config, error) {
	var c Config
	c.URI = target
	if target != "" && !strings.HasPrefix(target, "mongodb://") && !strings.HasPrefix(target, "mongodb+srv://") {
		c.URI = "mongodb://" + target
	}
	c.Database = k.String("database")
	c.Collection = k.String("mongo.collection")
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.URI == "" {
		return errors.New("need mongo connection uri")
	}
	if c.Database == "" {
		return errors.New("need mongo database")
	}
	if c.Collection == "" {
		return errors.New("need mongo collection")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("URI: %v\nDatabase: %v\nCollection: %v\n", c.URI, c.Database, c.Collection)
}
