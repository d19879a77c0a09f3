// Package config loads the optional per-project fmuedit configuration.
//
// Settings come from fmuedit.yaml in the project directory, overridden by a
// .env file in the same directory, overridden by FMUEDIT_* process
// environment variables. Everything is optional; the zero configuration is
// valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

const (
	// ConfigFileName is the project configuration file.
	ConfigFileName = "fmuedit.yaml"

	// EnvFileName is the optional dotenv override file.
	EnvFileName = ".env"
)

// Environment variables recognized as overrides.
const (
	EnvOutputDir = "FMUEDIT_OUTPUT_DIR"
	EnvSuffix    = "FMUEDIT_SUFFIX"
	EnvVerbose   = "FMUEDIT_VERBOSE"
)

// ProjectConfig holds the batch defaults a project may pin down.
type ProjectConfig struct {
	OutputDir string `yaml:"output_dir,omitempty"`
	Suffix    string `yaml:"suffix,omitempty"`
	Verbose   bool   `yaml:"verbose,omitempty"`
}

// Load reads fmuedit.yaml from sourcePath. A missing file yields
// fmuedit.ErrConfigNotFound; callers that treat the file as optional check
// with errors.Is.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", fmuedit.ErrConfigNotFound, configPath)
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	return &cfg, nil
}

// LoadWithOverrides builds the effective configuration for sourcePath: the
// yaml file when present, then the .env file when present, then process
// environment variables. Later sources win.
func LoadWithOverrides(sourcePath string) (*ProjectConfig, error) {
	cfg, err := Load(sourcePath)
	if err != nil {
		if !errors.Is(err, fmuedit.ErrConfigNotFound) {
			return nil, err
		}
		cfg = &ProjectConfig{}
	}

	envPath := filepath.Join(sourcePath, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		fileEnv, err := godotenv.Read(envPath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", envPath, err)
		}
		cfg.apply(func(key string) (string, bool) {
			value, ok := fileEnv[key]
			return value, ok
		})
	}

	cfg.apply(os.LookupEnv)
	return cfg, nil
}

func (c *ProjectConfig) apply(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvOutputDir); ok {
		c.OutputDir = value
	}
	if value, ok := lookup(EnvSuffix); ok {
		c.Suffix = value
	}
	if value, ok := lookup(EnvVerbose); ok {
		if verbose, err := strconv.ParseBool(value); err == nil {
			c.Verbose = verbose
		}
	}
}
