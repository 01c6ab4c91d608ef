package mongosh

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/v2"
)

const (
	DefaultBinary   = "mongosh"
	DefaultDatabase = "lichess"
)

type Config struct {
	Binary   string `toml:"binary" json:"binary" yaml:"binary"`
	Database string `toml:"database" json:"database" yaml:"database"`
	Host     string `toml:"host" json:"host" yaml:"host"`
	Script   string `toml:"script" json:"script" yaml:"script"`
}

func NewConfig(k *koanf.Koanf, host, script string) (*Config, error) {
	var c Config
	c.Binary = k.String("mongosh.binary")
	c.Database = k.String("database")
	c.Host = host
	c.Script = script
	if c.Binary == "" {
		c.Binary = DefaultBinary
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("need database host for mongosh")
	}
	if c.Script == "" {
		return errors.New("need import script for mongosh")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Binary: %v\nDatabase: %v\nHost: %v\nScript: %v\n", c.Binary, c.Database, c.Host, c.Script)
}
