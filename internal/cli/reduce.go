package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/config"
	"github.com/simtoolkit/fmuedit/internal/logging"
	"github.com/simtoolkit/fmuedit/internal/reduce"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <directory>",
	Short: "Batch-reduce parameters across a directory of FMUs",
	Long: `Reduce the parameter set of every .fmu archive in a directory.

The directory must contain a parameter_reduction_config.json naming two glob
lists: delete_elements marks parameter-causality variables for removal,
keep_elements unmarks them again. Keep always wins on conflict. Variables
with any other causality are never touched.

Defaults for --output-dir and --suffix can be pinned in fmuedit.yaml or a
.env file next to the processed directory; flags win over both.

Examples:
  # Reduce in place
  fmuedit reduce ./testrig_fmus

  # Keep sources, write rig_reduced.fmu siblings elsewhere
  fmuedit reduce ./testrig_fmus --output-dir ./out --suffix reduced`,
	Args: RequireDirectoryPath,
	RunE: runReduce,
}

var reduceFlags struct {
	outputDir string
	suffix    string
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().StringVar(&reduceFlags.outputDir, "output-dir", "", "Directory for reduced archives (default: in place)")
	reduceCmd.Flags().StringVar(&reduceFlags.suffix, "suffix", "", "Suffix appended to output file stems")
}

func resetReduceFlags() {
	reduceFlags.outputDir = ""
	reduceFlags.suffix = ""
}

func runReduce(cmd *cobra.Command, args []string) error {
	dirPath := args[0]

	cfg, err := config.LoadWithOverrides(dirPath)
	if err != nil {
		return err
	}

	opts := reduce.Options{
		OutputDir: cfg.OutputDir,
		Suffix:    cfg.Suffix,
		Logger:    logging.NewConsoleLogger(getVerboseFlag(cmd) || cfg.Verbose),
	}
	if cmd.Flags().Changed("output-dir") {
		opts.OutputDir = reduceFlags.outputDir
	}
	if cmd.Flags().Changed("suffix") {
		opts.Suffix = reduceFlags.suffix
	}

	summary, err := reduce.Directory(dirPath, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d archive(s), removed %d parameter(s)\n",
		summary.Processed, summary.Removed)
	return nil
}
