package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simtoolkit/fmuedit/internal/fmu"
	"github.com/simtoolkit/fmuedit/internal/model"
)

var queryCmd = &cobra.Command{
	Use:   "query <archive.fmu>",
	Short: "List scalar variables matching a pattern",
	Long: `List the scalar variables of an FMU's model description.

Every given filter must match exactly; filters left unset impose no
constraint. No filters at all lists every variable in document order.

Examples:
  # Everything
  fmuedit query ./pump.fmu

  # All inputs
  fmuedit query ./pump.fmu --causality input

  # One variable, as JSON
  fmuedit query ./pump.fmu --name QAInput --json`,
	Args: RequireArchivePath,
	RunE: runQuery,
}

var queryFlags struct {
	name           string
	causality      string
	variability    string
	initial        string
	dataType       string
	unit           string
	valueReference uint32
	jsonOutput     bool
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryFlags.name, "name", "", "Exact variable name")
	queryCmd.Flags().StringVar(&queryFlags.causality, "causality", "", "Causality (parameter, input, output, ...)")
	queryCmd.Flags().StringVar(&queryFlags.variability, "variability", "", "Variability (constant, fixed, tunable, discrete, continuous)")
	queryCmd.Flags().StringVar(&queryFlags.initial, "initial", "", "Initial qualifier (exact, approx, calculated)")
	queryCmd.Flags().StringVar(&queryFlags.dataType, "type", "", "Data type (real, integer, boolean, string, enumeration)")
	queryCmd.Flags().StringVar(&queryFlags.unit, "unit", "", "Declared unit")
	queryCmd.Flags().Uint32Var(&queryFlags.valueReference, "value-reference", 0, "Value reference")
	queryCmd.Flags().BoolVar(&queryFlags.jsonOutput, "json", false, "Output matches as JSON")
}

func resetQueryFlags() {
	queryFlags.name = ""
	queryFlags.causality = ""
	queryFlags.variability = ""
	queryFlags.initial = ""
	queryFlags.dataType = ""
	queryFlags.unit = ""
	queryFlags.valueReference = 0
	queryFlags.jsonOutput = false
}

// buildQuery translates the flag set into a query pattern.
func buildQuery(cmd *cobra.Command) (fmu.Query, error) {
	query := fmu.Query{
		Name: queryFlags.name,
		Unit: queryFlags.unit,
	}

	if queryFlags.causality != "" {
		causality, err := model.ParseCausality(queryFlags.causality)
		if err != nil {
			return fmu.Query{}, err
		}
		query.Causality = &causality
	}
	if queryFlags.variability != "" {
		variability, err := model.ParseVariability(queryFlags.variability)
		if err != nil {
			return fmu.Query{}, err
		}
		query.Variability = &variability
	}
	if queryFlags.initial != "" {
		initial, err := model.ParseInitial(queryFlags.initial)
		if err != nil {
			return fmu.Query{}, err
		}
		query.Initial = &initial
	}
	if queryFlags.dataType != "" {
		dataType, err := model.ParseDataType(queryFlags.dataType)
		if err != nil {
			return fmu.Query{}, err
		}
		query.DataType = &dataType
	}
	if cmd.Flags().Changed("value-reference") {
		ref := queryFlags.valueReference
		query.ValueReference = &ref
	}

	return query, nil
}

// jsonVariable is the machine-readable projection of a scalar variable.
type jsonVariable struct {
	Name           string  `json:"name"`
	ValueReference *uint32 `json:"value_reference,omitempty"`
	DataType       string  `json:"data_type"`
	Causality      string  `json:"causality,omitempty"`
	Variability    string  `json:"variability,omitempty"`
	Initial        string  `json:"initial,omitempty"`
	Start          any     `json:"start,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	Description    string  `json:"description,omitempty"`
}

func toJSONVariable(v *model.ScalarVariable) jsonVariable {
	out := jsonVariable{
		Name:           v.Name,
		ValueReference: v.ValueReference,
		DataType:       v.DataType.String(),
		Start:          v.Start,
	}
	if v.Causality != nil {
		out.Causality = v.Causality.String()
	}
	if v.Variability != nil {
		out.Variability = v.Variability.String()
	}
	if v.Initial != nil {
		out.Initial = v.Initial.String()
	}
	if v.Unit != nil {
		out.Unit = *v.Unit
	}
	if v.Description != nil {
		out.Description = *v.Description
	}
	return out
}

func runQuery(cmd *cobra.Command, args []string) error {
	query, err := buildQuery(cmd)
	if err != nil {
		return err
	}

	session, err := fmu.Load(args[0], newLogger(cmd))
	if err != nil {
		return err
	}

	matched := session.Query(query)

	if queryFlags.jsonOutput {
		variables := make([]jsonVariable, 0, len(matched))
		for _, v := range matched {
			variables = append(variables, toJSONVariable(v))
		}
		result := map[string]any{
			"archive":   args[0],
			"matched":   len(matched),
			"variables": variables,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	if len(matched) == 0 {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("no matching variables"))
		return nil
	}

	fmt.Fprintf(os.Stderr, "%d matching variable(s):\n\n", len(matched))
	for _, variable := range matched {
		printVariable(variable)
	}
	return nil
}

// printVariable writes one variable in the human-readable block format.
func printVariable(v *model.ScalarVariable) {
	fmt.Fprintf(os.Stderr, "%s  %s\n",
		nameStyle.Render(v.Name), mutedStyle.Render("("+v.DataType.Tag()+")"))

	if v.ValueReference != nil {
		printAttr("valueReference", fmt.Sprintf("%d", *v.ValueReference))
	}
	if v.Causality != nil {
		printAttr("causality", v.Causality.String())
	}
	if v.Variability != nil {
		printAttr("variability", v.Variability.String())
	}
	if v.Initial != nil {
		printAttr("initial", v.Initial.String())
	}
	if v.HasStart() {
		printAttr("start", v.StartString())
	}
	if v.Unit != nil {
		printAttr("unit", *v.Unit)
	}
	if v.Description != nil {
		printAttr("description", *v.Description)
	}
	fmt.Fprintln(os.Stderr)
}

func printAttr(name, value string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n",
		attrStyle.Render(name+":"), valueStyle.Render(value))
}
