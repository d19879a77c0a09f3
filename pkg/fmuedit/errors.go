package fmuedit

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := session.SetStartValue("QAInput", 69)
//	if errors.Is(err, fmuedit.ErrVariableNotFound) {
//	    // Handle unknown variable name
//	}
var (
	// ErrVariableNotFound indicates a variable name did not resolve to exactly
	// one scalar variable in the loaded model description.
	ErrVariableNotFound = errors.New("scalar variable not found")

	// ErrFieldNotDeclared indicates an attempt to set a field that was absent
	// from the source model description. The serializer can only rewrite
	// attributes and tags that already exist; it never synthesizes structure.
	ErrFieldNotDeclared = errors.New("field not declared in source model description")

	// ErrDataTypeConflict indicates an attempt to change a variable's data
	// type to something other than the type parsed from the source document.
	ErrDataTypeConflict = errors.New("data type conflicts with source declaration")

	// ErrMalformedDescription indicates the model description XML is missing
	// required structural sections. No partial model is returned.
	ErrMalformedDescription = errors.New("malformed model description")

	// ErrUnsupportedSimulationType indicates a model-exchange-only FMU.
	// Only FMI 2.0 co-simulation is supported.
	ErrUnsupportedSimulationType = errors.New("unsupported simulation type")

	// ErrArchiveIntegrity indicates an expected archive member was missing or
	// unreadable at load or copy time.
	ErrArchiveIntegrity = errors.New("archive integrity error")

	// ErrConfigNotFound indicates a required configuration file was missing.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrConfigNotFound):
		return ExitConfigError
	case errors.Is(err, ErrMalformedDescription):
		return ExitMalformedDescription
	case errors.Is(err, ErrUnsupportedSimulationType):
		return ExitUnsupportedSimulation
	case errors.Is(err, ErrArchiveIntegrity):
		return ExitArchiveError
	case errors.Is(err, ErrVariableNotFound):
		return ExitVariableNotFound
	case errors.Is(err, ErrFieldNotDeclared), errors.Is(err, ErrDataTypeConflict):
		return ExitFieldNotDeclared
	}

	// Cobra reports flag and argument misuse as plain errors.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "missing required argument") ||
		strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
