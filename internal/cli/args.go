package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireArchivePath validates that exactly one archive path argument is
// provided. Returns a helpful error message with usage and examples if
// missing or too many.
func RequireArchivePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <archive.fmu>

Usage: %s

Example:
  %s ./pump.fmu`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireDirectoryPath validates that exactly one directory argument is
// provided.
func RequireDirectoryPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <directory>

Usage: %s

Example:
  %s ./testrig_fmus`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireArchiveAndVariable validates an archive path followed by at least
// one variable name.
func RequireArchiveAndVariable(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`missing required arguments: <archive.fmu> <variable>...

Usage: %s

Example:
  %s ./pump.fmu QAInput`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
