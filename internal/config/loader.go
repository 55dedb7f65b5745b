package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an explicitly named config file does not
// exist.
var ErrNotFound = errors.New("config file not found")

// fileNames lists the config file names Discover looks for, in order.
var fileNames = []string{
	"kantfmt.yml",
	"kantfmt.yaml",
	".kantfmt.yml",
	".kantfmt.yaml",
}

// Discover returns the path of the first config file in dir, or "" when
// there is none.
func Discover(dir string) string {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the config file at configPath. An empty configPath means the
// file discovered in the working directory, or DefaultConfig when there is
// none.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		return loadFile(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadDir(wd)
}

// LoadDir loads the config file discovered in dir, or DefaultConfig.
func LoadDir(dir string) (*Config, error) {
	path := Discover(dir)
	if path == "" {
		return DefaultConfig(), nil
	}
	return loadFile(path)
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a YAML config on top of DefaultConfig, so settings missing
// from r keep their defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}
