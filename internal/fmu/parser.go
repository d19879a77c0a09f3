package fmu

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/simtoolkit/fmuedit/internal/model"
	"github.com/simtoolkit/fmuedit/pkg/fmuedit"
)

const (
	rootTag              = "fmiModelDescription"
	modelVariablesTag    = "ModelVariables"
	scalarVariableTag    = "ScalarVariable"
	defaultExperimentTag = "DefaultExperiment"
	coSimulationTag      = "CoSimulation"
	modelExchangeTag     = "ModelExchange"
)

// parseDocument reads raw XML bytes into a retained etree document.
func parseDocument(data []byte, source string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, "",
			fmt.Sprintf("not well-formed XML: %v", err),
			"Check that all tags are properly closed and attributes are quoted.")
	}
	if doc.Root() == nil {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, "",
			"document has no root element", "")
	}
	return doc, nil
}

// buildModel transforms the retained document into the value model. The
// transform is pure and order-preserving: variable order in the result equals
// document order. Structural absences abort the build; optional attribute
// absences never do.
func buildModel(doc *etree.Document, source string) (*model.ModelDescription, error) {
	root := doc.Root()
	if root.Tag != rootTag {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, root.Tag,
			fmt.Sprintf("unexpected root element %q, want %q", root.Tag, rootTag), "")
	}

	md := &model.ModelDescription{
		FMIVersion:               root.SelectAttrValue("fmiVersion", ""),
		ModelName:                root.SelectAttrValue("modelName", ""),
		GUID:                     root.SelectAttrValue("guid", ""),
		Description:              root.SelectAttrValue("description", ""),
		Author:                   root.SelectAttrValue("author", ""),
		Version:                  root.SelectAttrValue("version", ""),
		Copyright:                root.SelectAttrValue("copyright", ""),
		License:                  root.SelectAttrValue("license", ""),
		GenerationTool:           root.SelectAttrValue("generationTool", ""),
		GenerationDateAndTime:    root.SelectAttrValue("generationDateAndTime", ""),
		VariableNamingConvention: root.SelectAttrValue("variableNamingConvention", ""),
	}
	if raw := root.SelectAttrValue("numberOfEventIndicators", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			md.NumberOfEventIndicators = n
		}
	}

	coSim := root.SelectElement(coSimulationTag)
	if coSim == nil {
		if root.SelectElement(modelExchangeTag) != nil {
			return nil, newDescriptionError(fmuedit.ErrUnsupportedSimulationType, source, modelExchangeTag,
				"model-exchange FMUs are not supported",
				"Only FMI 2.0 co-simulation FMUs can be edited. Re-export the model with a CoSimulation section.")
		}
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, coSimulationTag,
			"no simulation type section found", "")
	}
	md.CoSimulation = parseCoSimulation(coSim)

	experiment := root.SelectElement(defaultExperimentTag)
	if experiment == nil {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, defaultExperimentTag,
			"DefaultExperiment section is missing",
			"Every supported FMU declares a DefaultExperiment; the exporting tool normally writes it.")
	}
	md.DefaultExperiment = parseDefaultExperiment(experiment)

	variables := root.SelectElement(modelVariablesTag)
	if variables == nil {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, modelVariablesTag,
			"ModelVariables section is missing", "")
	}

	elements := variables.SelectElements(scalarVariableTag)
	if len(elements) == 0 {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, modelVariablesTag,
			"ModelVariables declares no ScalarVariable elements", "")
	}

	md.Variables = make([]*model.ScalarVariable, 0, len(elements))
	for i, element := range elements {
		variable, err := parseScalarVariable(element, i, source)
		if err != nil {
			return nil, err
		}
		md.Variables = append(md.Variables, variable)
	}

	return md, nil
}

// parseScalarVariable converts one ScalarVariable element. The data type is
// derived from the tag of the single required value child; the start value is
// converted with the type-appropriate conversion only when the attribute is
// present.
func parseScalarVariable(element *etree.Element, index int, source string) (*model.ScalarVariable, error) {
	name := element.SelectAttrValue("name", "")
	if name == "" {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, scalarVariableTag,
			fmt.Sprintf("ScalarVariable #%d has no name attribute", index), "")
	}

	variable := &model.ScalarVariable{Name: name}

	rawRef := element.SelectAttrValue("valueReference", "")
	ref, err := strconv.ParseUint(rawRef, 10, 32)
	if err != nil {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, scalarVariableTag,
			fmt.Sprintf("variable %q has missing or invalid valueReference %q", name, rawRef), "")
	}
	ref32 := uint32(ref)
	variable.ValueReference = &ref32

	if raw := element.SelectAttrValue("causality", ""); raw != "" {
		if causality, err := model.ParseCausality(raw); err == nil {
			variable.Causality = &causality
		}
	}
	if raw := element.SelectAttrValue("variability", ""); raw != "" {
		if variability, err := model.ParseVariability(raw); err == nil {
			variable.Variability = &variability
		}
	}
	if raw := element.SelectAttrValue("initial", ""); raw != "" {
		if initial, err := model.ParseInitial(raw); err == nil {
			variable.Initial = &initial
		}
	}
	if attr := element.SelectAttr("unit"); attr != nil {
		unit := attr.Value
		variable.Unit = &unit
	}
	if attr := element.SelectAttr("description"); attr != nil {
		description := attr.Value
		variable.Description = &description
	}
	if raw := element.SelectAttrValue("canHandleMultipleSetPerTimeInstant", ""); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			variable.CanHandleMultipleSetPerTimeInstant = &b
		}
	}

	children := element.ChildElements()
	if len(children) == 0 {
		return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, scalarVariableTag,
			fmt.Sprintf("variable %q has no value element", name),
			"Each ScalarVariable carries exactly one typed value child (Real, Integer, Boolean, String or Enumeration).")
	}
	valueElement := children[0]
	variable.DataType = model.DataTypeForTag(valueElement.Tag)

	// An empty start attribute counts as no start value at all.
	if attr := valueElement.SelectAttr("start"); attr != nil && attr.Value != "" {
		start, err := parseStart(variable.DataType, attr.Value)
		if err != nil {
			return nil, newDescriptionError(fmuedit.ErrMalformedDescription, source, valueElement.Tag,
				fmt.Sprintf("variable %q has start %q which is not a valid %s", name, attr.Value, variable.DataType), "")
		}
		variable.Start = start
	}

	return variable, nil
}

// parseStart converts a start attribute using the type-appropriate conversion.
func parseStart(dataType model.DataType, raw string) (any, error) {
	switch dataType {
	case model.TypeReal:
		return strconv.ParseFloat(raw, 64)
	case model.TypeInteger:
		return strconv.Atoi(raw)
	case model.TypeBoolean:
		return strconv.ParseBool(raw)
	default:
		// Enumerations and strings carry their values identically.
		return raw, nil
	}
}

func parseDefaultExperiment(element *etree.Element) model.DefaultExperiment {
	return model.DefaultExperiment{
		StartTime: floatAttr(element, "startTime"),
		StopTime:  floatAttr(element, "stopTime"),
		Tolerance: floatAttr(element, "tolerance"),
		StepSize:  floatAttr(element, "stepSize"),
	}
}

func parseCoSimulation(element *etree.Element) model.CoSimulation {
	return model.CoSimulation{
		ModelIdentifier:                     element.SelectAttrValue("modelIdentifier", ""),
		NeedsExecutionTool:                  boolAttr(element, "needsExecutionTool"),
		CanHandleVariableCommunicationStep:  boolAttr(element, "canHandleVariableCommunicationStepSize"),
		CanInterpolateInputs:                boolAttr(element, "canInterpolateInputs"),
		MaxOutputDerivativeOrder:            intAttr(element, "maxOutputDerivativeOrder"),
		CanRunAsynchronously:                boolAttr(element, "canRunAsynchronuously"),
		CanBeInstantiatedOnlyOncePerProcess: boolAttr(element, "canBeInstantiatedOnlyOncePerProcess"),
		CanNotUseMemoryManagementFunctions:  boolAttr(element, "canNotUseMemoryManagementFunctions"),
		CanGetAndSetFMUState:                boolAttr(element, "canGetAndSetFMUstate"),
		CanSerializeFMUState:                boolAttr(element, "canSerializeFMUstate"),
		ProvidesDirectionalDerivative:       boolAttr(element, "providesDirectionalDerivative"),
	}
}

func floatAttr(element *etree.Element, name string) *float64 {
	raw := element.SelectAttrValue(name, "")
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func boolAttr(element *etree.Element, name string) bool {
	b, err := strconv.ParseBool(element.SelectAttrValue(name, "false"))
	if err != nil {
		return false
	}
	return b
}

func intAttr(element *etree.Element, name string) int {
	n, err := strconv.Atoi(element.SelectAttrValue(name, "0"))
	if err != nil {
		return 0
	}
	return n
}
