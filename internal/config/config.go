// Package config builds the immutable run configuration of verup from
// defaults, an optional project config file, the environment and CLI flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Default values.
const (
	DefaultPackage = "package.json"
	DefaultBump    = "1"
)

// Config file names, in lookup order.
const (
	YAMLConfigFile = ".verup.yaml"
	TOMLConfigFile = ".verup.toml"
)

// Config is the run configuration. It is passed by value: once built, a run
// never mutates it.
type Config struct {
	// Package is the manifest file name searched for (package.json, composer.json, ...).
	Package string `yaml:"package" toml:"package"`

	// Name restricts the search to a manifest with this package name.
	Name string `yaml:"name" toml:"name"`

	// Dir is the directory the search starts from; empty means the working directory.
	Dir string `yaml:"dir" toml:"dir"`

	// Bump is the bump spec ("1", "1.0", "1.0.0") or a bump label.
	Bump string `yaml:"bump" toml:"bump"`

	// Theme names the huh theme used by the confirmation prompt.
	Theme string `yaml:"theme" toml:"theme"`

	DryRun  bool `yaml:"dry-run" toml:"dry-run"`
	Confirm bool `yaml:"confirm" toml:"confirm"`
	NoColor bool `yaml:"no-color" toml:"no-color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Package: DefaultPackage,
		Bump:    DefaultBump,
	}
}

// LoadConfigFn is a function variable for loading the configuration from the
// working directory. It can be overridden in tests.
var LoadConfigFn = loadConfig

func loadConfig() (Config, error) {
	cfg := Default()

	fileCfg, err := readConfigFile(".")
	if err != nil {
		return Config{}, err
	}
	if fileCfg != nil {
		cfg = cfg.Merge(*fileCfg)
	}

	if envPackage := os.Getenv("VERUP_PACKAGE"); envPackage != "" {
		cleanPath := filepath.Clean(envPackage)
		if strings.Contains(cleanPath, "..") {
			return Config{}, fmt.Errorf("invalid VERUP_PACKAGE: path traversal not allowed")
		}
		cfg.Package = cleanPath
	}
	if envName := os.Getenv("VERUP_NAME"); envName != "" {
		cfg.Name = envName
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}

	return cfg, nil
}

// readConfigFile loads .verup.yaml, or .verup.toml when no YAML file exists.
// It returns nil when neither is present.
func readConfigFile(dir string) (*Config, error) {
	yamlPath := filepath.Join(dir, YAMLConfigFile)
	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", YAMLConfigFile, err)
		}
		return &cfg, nil
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", YAMLConfigFile, err)
	}

	tomlPath := filepath.Join(dir, TOMLConfigFile)
	data, err = os.ReadFile(tomlPath)
	switch {
	case err == nil:
		var cfg Config
		decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", TOMLConfigFile, err)
		}
		return &cfg, nil
	case os.IsNotExist(err):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to read %s: %w", TOMLConfigFile, err)
	}
}

// Merge returns a copy of c with every non-zero field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Package != "" {
		c.Package = o.Package
	}
	if o.Name != "" {
		c.Name = o.Name
	}
	if o.Dir != "" {
		c.Dir = o.Dir
	}
	if o.Bump != "" {
		c.Bump = o.Bump
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	c.DryRun = c.DryRun || o.DryRun
	c.Confirm = c.Confirm || o.Confirm
	c.NoColor = c.NoColor || o.NoColor
	return c
}
