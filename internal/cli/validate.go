package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/fmu"
	"github.com/simtoolkit/fmuedit/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <archive.fmu>",
	Short: "Check a model description against the FMI 2.0 schema rules",
	Long: `Check the model description of an FMU against the FMI 2.0 rules.

Structural problems (missing sections, unparseable XML, model-exchange-only
FMUs) fail the load itself. Everything validate reports on top of that is
advisory: malformed GUIDs, duplicate variable names, parameters without
start values and similar conformance findings.

Examples:
  fmuedit validate ./pump.fmu
  fmuedit validate ./pump.fmu --json`,
	Args: RequireArchivePath,
	RunE: runValidate,
}

var validateFlags struct {
	jsonOutput bool
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.jsonOutput, "json", false, "Output findings as JSON")
}

func resetValidateFlags() {
	validateFlags.jsonOutput = false
}

func runValidate(cmd *cobra.Command, args []string) error {
	session, err := fmu.Load(args[0], newLogger(cmd))
	if err != nil {
		return err
	}

	result := schema.Check(session.Model())

	if validateFlags.jsonOutput {
		out := map[string]any{
			"archive":  args[0],
			"valid":    result.Valid,
			"findings": result.Findings,
		}
		jsonBytes, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	if result.Valid {
		fmt.Fprintln(os.Stderr, valueStyle.Render("✓")+" model description conforms")
		return nil
	}

	fmt.Fprintf(os.Stderr, "%d finding(s):\n", len(result.Findings))
	for _, finding := range result.Findings {
		fmt.Fprintf(os.Stderr, "  %s %s\n", errorStyle.Render("✗"), finding)
	}
	return nil
}
