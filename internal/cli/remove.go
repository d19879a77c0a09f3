package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/fmu"
)

var removeCmd = &cobra.Command{
	Use:   "remove <archive.fmu> <variable>...",
	Short: "Remove scalar variables from a model description",
	Long: `Remove one or more scalar variables and write a new archive.

Removal is staged on the in-memory session and applied when the new archive
is rendered; all other archive members are preserved byte for byte. A name
that does not resolve to exactly one variable fails the whole command before
anything is written.

By default the source archive is overwritten in place; use --output-dir and
--output-name to write elsewhere.

Examples:
  fmuedit remove ./pump.fmu pRated
  fmuedit remove ./pump.fmu par001 par002 --output-dir ./out`,
	Args: RequireArchiveAndVariable,
	RunE: runRemove,
}

var removeFlags struct {
	outputDir  string
	outputName string
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVar(&removeFlags.outputDir, "output-dir", "", "Directory for the new archive (default: alongside the source)")
	removeCmd.Flags().StringVar(&removeFlags.outputName, "output-name", "", "File name for the new archive (default: the source name)")
}

func resetRemoveFlags() {
	removeFlags.outputDir = ""
	removeFlags.outputName = ""
}

func runRemove(cmd *cobra.Command, args []string) error {
	archivePath, names := args[0], args[1:]

	session, err := fmu.Load(archivePath, newLogger(cmd))
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := session.Remove(name); err != nil {
			return err
		}
	}

	outputDir := removeFlags.outputDir
	if outputDir == "" {
		outputDir = filepath.Dir(archivePath)
	}

	target, err := session.SaveCopy(outputDir, removeFlags.outputName)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Removed %d variable(s), wrote %s\n", len(names), target)
	return nil
}
