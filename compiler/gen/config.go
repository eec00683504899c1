package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultHeader is written at the top of every generated file unless
// overridden with WithHeader.
const DefaultHeader = "Code generated by buildgen. DO NOT EDIT."

// Config controls code generation.
type Config struct {
	// Target is the output directory.
	Target string `yaml:"target"`
	// Package is the package name of the generated files. Defaults to
	// the base name of Target.
	Package string `yaml:"package"`
	// Header is the comment placed at the top of each generated file.
	Header string `yaml:"header"`
	// Workers limits parallel file generation. Defaults to GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Cache skips re-emitting definitions whose fingerprint is unchanged.
	Cache bool `yaml:"cache"`
}

// ConfigFromFile loads a YAML configuration file and applies opts on top of
// it, so flags override file values.
func ConfigFromFile(path string, opts ...Option) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, NewConfigError("File", path, err.Error())
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// normalize fills defaults and validates the config for generation.
func (c *Config) normalize() error {
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	if c.Package == "" {
		c.Package = filepath.Base(c.Target)
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}
