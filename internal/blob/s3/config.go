package s3

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/v2"
)

const DefaultBucket = "playstrategy-puzzles"

type Config struct {
	Bucket    string `toml:"bucket" json:"bucket" yaml:"bucket"`
	Region    string `toml:"region" json:"region" yaml:"region"`
	Profile   string `toml:"profile" json:"profile" yaml:"profile"`
	Endpoint  string `toml:"endpoint" json:"endpoint" yaml:"endpoint"`
	PathStyle bool   `koanf:"path_style" toml:"path_style" json:"path_style" yaml:"path_style"`
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.Bucket = k.String("s3.bucket")
	c.Region = k.String("s3.region")
	c.Profile = k.String("s3.profile")
	c.Endpoint = k.String("s3.endpoint")
	c.PathStyle = k.Bool("s3.path_style")
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("need s3 bucket")
	}
	return nil
}

func (c Config) String() string {
	var result string
	result += fmt.Sprintf("Bucket: %v\n", c.Bucket)
	if c.Region != "" {
		result += fmt.Sprintf("Region: %v\n", c.Region)
	}
	if c.Profile != "" {
		result += fmt.Sprintf("Profile: %v\n", c.Profile)
	}
	if c.Endpoint != "" {
		result += fmt.Sprintf("Endpoint: %v\n", c.Endpoint)
		result += fmt.Sprintf("Path style: %v\n", c.PathStyle)
	}
	return result
}
