package model

import "fmt"

// Causality describes a variable's role in the model's input/output contract.
type Causality int

const (
	CausalityParameter Causality = iota
	CausalityCalculatedParameter
	CausalityInput
	CausalityOutput
	CausalityLocal
	CausalityIndependent
)

var causalityNames = map[Causality]string{
	CausalityParameter:           "parameter",
	CausalityCalculatedParameter: "calculatedParameter",
	CausalityInput:               "input",
	CausalityOutput:              "output",
	CausalityLocal:               "local",
	CausalityIndependent:         "independent",
}

// String returns the attribute spelling defined by the FMI 2.0 standard.
func (c Causality) String() string {
	if name, ok := causalityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Causality(%d)", int(c))
}

// ParseCausality converts an attribute value to a Causality.
func ParseCausality(s string) (Causality, error) {
	for c, name := range causalityNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown causality %q", s)
}

// Variability describes when a variable's value may change.
type Variability int

const (
	VariabilityConstant Variability = iota
	VariabilityFixed
	VariabilityTunable
	VariabilityDiscrete
	VariabilityContinuous
)

var variabilityNames = map[Variability]string{
	VariabilityConstant:   "constant",
	VariabilityFixed:      "fixed",
	VariabilityTunable:    "tunable",
	VariabilityDiscrete:   "discrete",
	VariabilityContinuous: "continuous",
}

// String returns the attribute spelling defined by the FMI 2.0 standard.
func (v Variability) String() string {
	if name, ok := variabilityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variability(%d)", int(v))
}

// ParseVariability converts an attribute value to a Variability.
func ParseVariability(s string) (Variability, error) {
	for v, name := range variabilityNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variability %q", s)
}

// Initial describes how a variable's initial value is determined.
type Initial int

const (
	InitialExact Initial = iota
	InitialApprox
	InitialCalculated
)

var initialNames = map[Initial]string{
	InitialExact:      "exact",
	InitialApprox:     "approx",
	InitialCalculated: "calculated",
}

// String returns the attribute spelling defined by the FMI 2.0 standard.
func (i Initial) String() string {
	if name, ok := initialNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Initial(%d)", int(i))
}

// ParseInitial converts an attribute value to an Initial.
func ParseInitial(s string) (Initial, error) {
	for i, name := range initialNames {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown initial qualifier %q", s)
}

// DataType identifies which typed value element a scalar variable declares.
// It is derived from the tag of the variable's single value child during
// parsing and is immutable afterwards.
type DataType int

const (
	TypeReal DataType = iota
	TypeInteger
	TypeBoolean
	TypeString
	TypeEnumeration
)

var dataTypeNames = map[DataType]string{
	TypeReal:        "real",
	TypeInteger:     "integer",
	TypeBoolean:     "boolean",
	TypeString:      "string",
	TypeEnumeration: "enumeration",
}

// dataTypeTags maps each DataType to its canonical value-element tag.
var dataTypeTags = map[DataType]string{
	TypeReal:        "Real",
	TypeInteger:     "Integer",
	TypeBoolean:     "Boolean",
	TypeString:      "String",
	TypeEnumeration: "Enumeration",
}

// String returns the lower-case symbolic name (real, integer, ...).
func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}

// Tag returns the canonical XML value-element tag (Real, Integer, ...).
func (d DataType) Tag() string {
	if tag, ok := dataTypeTags[d]; ok {
		return tag
	}
	return ""
}

// ParseDataType converts a symbolic name (real, integer, ...) to a DataType.
func ParseDataType(s string) (DataType, error) {
	for d, name := range dataTypeNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", s)
}

// DataTypeForTag derives a DataType from a value-element tag. Any tag other
// than Real, Integer, Boolean or Enumeration is treated as a string variable;
// enumerations and strings carry their values identically.
func DataTypeForTag(tag string) DataType {
	switch tag {
	case "Real":
		return TypeReal
	case "Integer":
		return TypeInteger
	case "Boolean":
		return TypeBoolean
	case "Enumeration":
		return TypeEnumeration
	default:
		return TypeString
	}
}
