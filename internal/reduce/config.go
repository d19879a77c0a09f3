package reduce

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// Config is the parsed parameter_reduction_config.json.
type Config struct {
	KeepElements   []string `json:"keep_elements"`
	DeleteElements []string `json:"delete_elements"`
}

// LoadConfig reads the reduction configuration from the given directory.
// A missing file yields fmuedit.ErrConfigNotFound; invalid glob patterns are
// rejected at load time so matching later cannot fail.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, fmuedit.ReductionConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", fmuedit.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses reduction configuration bytes. The source name is used
// in error messages only.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	for _, list := range [][]string{cfg.KeepElements, cfg.DeleteElements} {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("parsing %s: invalid glob pattern %q", source, pattern)
			}
		}
	}
	return &cfg, nil
}
