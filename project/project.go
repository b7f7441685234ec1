// Package project loads the solidforge.yaml descriptor that names a
// project's entry script, default evaluation detail, and build output path
// (§2 ambient stack, §4.9 build pipeline).
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "solidforge.yaml"

// Config represents the project configuration from solidforge.yaml.
type Config struct {
	Name   string `yaml:"name"`
	Entry  string `yaml:"entry"`
	Detail int    `yaml:"detail,omitempty"`
	Output string `yaml:"output,omitempty"`
	Seed   int64  `yaml:"seed,omitempty"`
}

// FindProjectRoot walks up from the current working directory looking for
// solidforge.yaml. Returns the directory containing it, or an error if none
// is found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", configFileName, cwd)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the solidforge.yaml file from the given
// project root, applying defaults for detail and output.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if config.Name == "" {
		return nil, fmt.Errorf("'name' field is required in %s", configFileName)
	}
	if config.Entry == "" {
		return nil, fmt.Errorf("'entry' field is required in %s", configFileName)
	}
	if config.Detail <= 0 {
		config.Detail = 16
	}
	if config.Output == "" {
		config.Output = "build/" + config.Name + ".mesh.json"
	}

	return &config, nil
}

// EntryPath resolves the project's entry script to an absolute path.
func (c *Config) EntryPath(projectRoot string) string {
	return filepath.Join(projectRoot, c.Entry)
}

// OutputPath resolves the project's configured output path to an absolute
// path.
func (c *Config) OutputPath(projectRoot string) string {
	return filepath.Join(projectRoot, c.Output)
}
