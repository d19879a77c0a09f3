package model

import (
	"fmt"
	"strconv"
)

// ScalarVariable is one declared model variable.
//
// Optional attributes are pointers; nil means the attribute was absent from
// the source document. Start is one of float64, int, bool or string matching
// DataType, or nil when the source declared no start attribute. DataType is
// fixed at parse time and reflects which value child element existed in the
// source.
type ScalarVariable struct {
	Name           string
	ValueReference *uint32
	Causality      *Causality
	Variability    *Variability
	Initial        *Initial
	DataType       DataType
	Start          any
	Unit           *string
	Description    *string

	// CanHandleMultipleSetPerTimeInstant is informational only.
	CanHandleMultipleSetPerTimeInstant *bool
}

// HasStart reports whether the source document declared a start value.
func (v *ScalarVariable) HasStart() bool {
	return v.Start != nil
}

// StartString renders the start value the way the serializer writes it back
// onto the value element. Returns "" when no start value is set.
func (v *ScalarVariable) StartString() string {
	return FormatStart(v.Start)
}

// FormatStart converts a typed start value to its attribute string form.
func FormatStart(start any) string {
	switch s := start.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

// DefaultExperiment holds the simulation-run defaults. All attributes are
// optional, but the section itself is required in every supported FMU.
type DefaultExperiment struct {
	StartTime *float64
	StopTime  *float64
	Tolerance *float64
	StepSize  *float64
}

// CoSimulation describes the execution capabilities of a co-simulation FMU.
type CoSimulation struct {
	ModelIdentifier                     string
	NeedsExecutionTool                  bool
	CanHandleVariableCommunicationStep  bool
	CanInterpolateInputs                bool
	MaxOutputDerivativeOrder            int
	CanRunAsynchronously                bool
	CanBeInstantiatedOnlyOncePerProcess bool
	CanNotUseMemoryManagementFunctions  bool
	CanGetAndSetFMUState                bool
	CanSerializeFMUState                bool
	ProvidesDirectionalDerivative       bool
}

// ModelDescription is the root aggregate parsed from modelDescription.xml.
// Exactly one exists per loaded archive; it is the sole mutable owner of the
// scalar variable collection exposed to callers.
type ModelDescription struct {
	FMIVersion               string
	ModelName                string
	GUID                     string
	Description              string
	Author                   string
	Version                  string
	Copyright                string
	License                  string
	GenerationTool           string
	GenerationDateAndTime    string
	VariableNamingConvention string
	NumberOfEventIndicators  int

	CoSimulation      CoSimulation
	DefaultExperiment DefaultExperiment

	// Variables preserves document order.
	Variables []*ScalarVariable
}
