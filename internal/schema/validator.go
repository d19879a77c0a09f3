package schema

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

// ValidationResult contains the outcome of a conformance check.
// If Valid is false, Findings contains human-readable messages.
type ValidationResult struct {
	Valid    bool
	Findings []string
}

// AddFinding appends a finding and marks the result as non-conforming.
func (v *ValidationResult) AddFinding(format string, args ...interface{}) {
	v.Valid = false
	v.Findings = append(v.Findings, fmt.Sprintf(format, args...))
}

// ErrorString returns all findings joined with semicolons.
// Returns empty string if there are none.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Findings, "; ")
}

// Check inspects a parsed model description for schema-shape conformance.
// Findings are advisory; the caller decides whether to log or display them.
func Check(md *model.ModelDescription) ValidationResult {
	result := ValidationResult{Valid: true}

	if md.FMIVersion != fmuedit.SupportedFMIVersion {
		result.AddFinding("fmiVersion is %q, expected %q", md.FMIVersion, fmuedit.SupportedFMIVersion)
	}
	if md.ModelName == "" {
		result.AddFinding("modelName attribute is empty")
	}
	if md.CoSimulation.ModelIdentifier == "" {
		result.AddFinding("CoSimulation has no modelIdentifier")
	}

	checkGUID(md.GUID, &result)

	switch md.VariableNamingConvention {
	case "", "flat", "structured":
	default:
		result.AddFinding("variableNamingConvention %q is not flat or structured", md.VariableNamingConvention)
	}

	if md.NumberOfEventIndicators < 0 {
		result.AddFinding("numberOfEventIndicators is negative")
	}
	if md.CoSimulation.MaxOutputDerivativeOrder < 0 {
		result.AddFinding("maxOutputDerivativeOrder is negative")
	}

	checkVariables(md.Variables, &result)

	return result
}

// checkGUID verifies the GUID has the UUID shape exporting tools write.
// FMI only requires an opaque string, so a non-UUID value is a finding, not
// an error.
func checkGUID(guid string, result *ValidationResult) {
	if guid == "" {
		result.AddFinding("guid attribute is empty")
		return
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(guid, "{"), "}")
	if _, err := uuid.Parse(trimmed); err != nil {
		result.AddFinding("guid %q does not have UUID form", guid)
	}
}

func checkVariables(variables []*model.ScalarVariable, result *ValidationResult) {
	seen := make(map[string]int, len(variables))
	for _, variable := range variables {
		seen[variable.Name]++

		if variable.Causality == nil {
			continue
		}
		switch *variable.Causality {
		case model.CausalityParameter:
			if !variable.HasStart() {
				result.AddFinding("parameter %q has no start value", variable.Name)
			}
		case model.CausalityIndependent:
			if variable.HasStart() {
				result.AddFinding("independent variable %q declares a start value", variable.Name)
			}
		}
	}

	for name, count := range seen {
		if count > 1 {
			result.AddFinding("variable name %q occurs %d times", name, count)
		}
	}
}
