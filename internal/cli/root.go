package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/logging"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

const asciiLogo = `  __                          _ _ _
 / _|_ __ ___  _   _  ___  __| (_) |_
| |_| '_ ' _ \| | | |/ _ \/ _' | | __|
|  _| | | | | | |_| |  __/ (_| | | |_
|_| |_| |_| |_|\__,_|\___|\__,_|_|\__|`

var rootCmd = &cobra.Command{
	Use:   "fmuedit",
	Short: "Edit FMI 2.0 co-simulation model descriptions",
	Long: asciiLogo + `

fmuedit opens the modelDescription.xml inside an FMU archive, lets you query,
edit and remove scalar variables, and writes a new archive in which every
other member is preserved byte for byte.

Only FMI 2.0 co-simulation FMUs are supported.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Configuration file missing or invalid
  20 - Malformed model description
  21 - Unsupported simulation type (model exchange only)
  22 - Archive integrity error
  23 - Scalar variable not found
  24 - Field not declared in source description`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for fmuedit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the console logger every command hands to the session
// layer.
func newLogger(cmd *cobra.Command) fmuedit.Logger {
	return logging.NewConsoleLogger(getVerboseFlag(cmd))
}
