package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/fmu"
	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

var setCmd = &cobra.Command{
	Use:   "set <archive.fmu> <variable>",
	Short: "Edit fields of one scalar variable",
	Long: `Edit fields of a scalar variable and write a new archive.

The edit is all-or-nothing: every requested field is validated before any is
applied. A field can only be set when the source description already declares
it; fmuedit rewrites existing attributes, it never invents new ones.

The start value is parsed according to the variable's declared data type.

By default the source archive is overwritten in place; use --output-dir and
--output-name to write elsewhere.

Examples:
  # Change a start value
  fmuedit set ./pump.fmu QAInput --start 69

  # Reclassify and move the result
  fmuedit set ./pump.fmu pRated --causality parameter --output-dir ./out`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := RequireArchiveAndVariable(cmd, args); err != nil {
			return err
		}
		if len(args) > 2 {
			return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runSet,
}

var setFlags struct {
	start          string
	causality      string
	initial        string
	unit           string
	description    string
	valueReference uint32
	outputDir      string
	outputName     string
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVar(&setFlags.start, "start", "", "New start value")
	setCmd.Flags().StringVar(&setFlags.causality, "causality", "", "New causality")
	setCmd.Flags().StringVar(&setFlags.initial, "initial", "", "New initial qualifier")
	setCmd.Flags().StringVar(&setFlags.unit, "unit", "", "New unit")
	setCmd.Flags().StringVar(&setFlags.description, "description", "", "New description")
	setCmd.Flags().Uint32Var(&setFlags.valueReference, "value-reference", 0, "New value reference")
	setCmd.Flags().StringVar(&setFlags.outputDir, "output-dir", "", "Directory for the new archive (default: alongside the source)")
	setCmd.Flags().StringVar(&setFlags.outputName, "output-name", "", "File name for the new archive (default: the source name)")
}

func resetSetFlags() {
	setFlags.start = ""
	setFlags.causality = ""
	setFlags.initial = ""
	setFlags.unit = ""
	setFlags.description = ""
	setFlags.valueReference = 0
	setFlags.outputDir = ""
	setFlags.outputName = ""
}

// buildFieldSet translates the flag set into a field edit for the given
// variable. The start literal needs the variable's data type, so resolution
// happens before this is called.
func buildFieldSet(cmd *cobra.Command, variable *model.ScalarVariable) (fmu.FieldSet, error) {
	var set fmu.FieldSet

	if setFlags.causality != "" {
		causality, err := model.ParseCausality(setFlags.causality)
		if err != nil {
			return fmu.FieldSet{}, err
		}
		set.Causality = &causality
	}
	if setFlags.initial != "" {
		initial, err := model.ParseInitial(setFlags.initial)
		if err != nil {
			return fmu.FieldSet{}, err
		}
		set.Initial = &initial
	}
	if cmd.Flags().Changed("unit") {
		unit := setFlags.unit
		set.Unit = &unit
	}
	if cmd.Flags().Changed("description") {
		description := setFlags.description
		set.Description = &description
	}
	if cmd.Flags().Changed("value-reference") {
		ref := setFlags.valueReference
		set.ValueReference = &ref
	}
	if cmd.Flags().Changed("start") {
		start, err := parseStartLiteral(variable.DataType, setFlags.start)
		if err != nil {
			return fmu.FieldSet{}, err
		}
		set.Start = start
	}

	return set, nil
}

// parseStartLiteral converts a command-line start value to the typed
// representation matching the variable's data type.
func parseStartLiteral(dataType model.DataType, text string) (any, error) {
	switch dataType {
	case model.TypeReal:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("start value %q is not a valid Real", text)
		}
		return value, nil
	case model.TypeInteger:
		value, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("start value %q is not a valid Integer", text)
		}
		return value, nil
	case model.TypeBoolean:
		value, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("start value %q is not a valid Boolean", text)
		}
		return value, nil
	default:
		// Strings and enumerations carry their values as text.
		return text, nil
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	archivePath, variableName := args[0], args[1]

	session, err := fmu.Load(archivePath, newLogger(cmd))
	if err != nil {
		return err
	}

	variable, ok := session.GetByName(variableName)
	if !ok {
		return fmt.Errorf("%w: %q", fmuedit.ErrVariableNotFound, variableName)
	}

	set, err := buildFieldSet(cmd, variable)
	if err != nil {
		return err
	}

	if err := session.SetFields(variableName, set); err != nil {
		return err
	}

	outputDir := setFlags.outputDir
	if outputDir == "" {
		outputDir = filepath.Dir(archivePath)
	}

	target, err := session.SaveCopy(outputDir, setFlags.outputName)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Updated %s in %s\n", variableName, target)
	return nil
}
