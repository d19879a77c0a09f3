package reduce

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/simtoolkit/fmuedit/internal/fmu"
	"github.com/simtoolkit/fmuedit/internal/logging"
	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// Plan returns the names of the parameter-causality variables the
// configuration condemns, in document order. Delete patterns mark, keep
// patterns unmark; keep is evaluated last and therefore wins.
func Plan(session *fmu.Session, cfg *Config) []string {
	parameter := model.CausalityParameter

	var doomed []string
	for _, variable := range session.Query(fmu.Query{Causality: &parameter}) {
		remove := false
		for _, pattern := range cfg.DeleteElements {
			if matchName(pattern, variable.Name) {
				remove = true
			}
		}
		for _, pattern := range cfg.KeepElements {
			if matchName(pattern, variable.Name) {
				remove = false
			}
		}
		if remove {
			doomed = append(doomed, variable.Name)
		}
	}
	return doomed
}

// Apply stages removal of every condemned variable on the session and
// returns how many were removed.
func Apply(session *fmu.Session, cfg *Config) (int, error) {
	doomed := Plan(session, cfg)
	for _, name := range doomed {
		if err := session.Remove(name); err != nil {
			return 0, fmt.Errorf("removing %q: %w", name, err)
		}
	}
	return len(doomed), nil
}

// matchName matches a variable name against a glob pattern. Patterns are
// validated at config load time, so a malformed pattern cannot surface here.
func matchName(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// Options configures the batch directory driver.
type Options struct {
	// OutputDir receives the reduced archives. Empty means in place: outputs
	// land next to their sources and may overwrite them.
	OutputDir string

	// Suffix is appended to output file stems. A non-empty suffix is
	// normalized to start with an underscore.
	Suffix string

	Logger fmuedit.Logger
}

// Summary reports what a directory run did.
type Summary struct {
	Processed int      // archives processed
	Removed   int      // variables removed across all archives
	Outputs   []string // paths written, in processing order
}

// Directory reduces every .fmu archive in dirPath according to the
// parameter_reduction_config.json found there. Each archive is an
// independent unit of work; the run aborts on the first failing file so a
// broken input never yields a silently incomplete batch.
func Directory(dirPath string, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dirPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dirPath)
	}

	cfg, err := LoadConfig(dirPath)
	if err != nil {
		return nil, err
	}

	suffix := normalizeSuffix(opts.Suffix)
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = dirPath
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dirPath, err)
	}

	logger.Info("reducing fmu model descriptions in %s", dirPath)

	summary := &Summary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fmuedit.ArchiveSuffix) {
			continue
		}

		sourcePath := filepath.Join(dirPath, entry.Name())
		session, err := fmu.Load(sourcePath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", sourcePath, err)
		}

		removed, err := Apply(session, cfg)
		if err != nil {
			return nil, fmt.Errorf("reducing %s: %w", sourcePath, err)
		}

		stem := strings.TrimSuffix(entry.Name(), fmuedit.ArchiveSuffix)
		outPath, err := session.SaveCopy(outputDir, stem+suffix)
		if err != nil {
			return nil, fmt.Errorf("saving %s: %w", sourcePath, err)
		}

		logger.Verbose("%s: removed %d parameters", entry.Name(), removed)
		summary.Processed++
		summary.Removed += removed
		summary.Outputs = append(summary.Outputs, outPath)
	}

	return summary, nil
}

// normalizeSuffix forces a non-empty suffix to start with an underscore.
func normalizeSuffix(suffix string) string {
	if suffix == "" {
		return ""
	}
	if !strings.HasPrefix(suffix, "_") {
		return "_" + suffix
	}
	return suffix
}
