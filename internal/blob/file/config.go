package file

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	Root string `toml:"root" json:"root" yaml:"root"`
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.Root = k.String("file.root")
	return &c, nil
}

func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("need root directory for file store")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Root: %v\n", c.Root)
}
