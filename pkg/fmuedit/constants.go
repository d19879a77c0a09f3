package fmuedit

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess               = 0  // Operation completed successfully
	ExitGeneralError          = 1  // Unknown or unclassified error
	ExitUsageError            = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic                 = 3  // Internal panic (unexpected crash)
	ExitConfigError           = 10 // Invalid or missing configuration
	ExitMalformedDescription  = 20 // Model description XML missing required sections
	ExitUnsupportedSimulation = 21 // Model-exchange-only FMU
	ExitArchiveError          = 22 // Archive member missing or unreadable
	ExitVariableNotFound      = 23 // Variable name did not resolve uniquely
	ExitFieldNotDeclared      = 24 // Field absent from source model description
)

const (
	// ModelDescriptionMember is the archive member holding the FMI metadata.
	// Fixed by the FMI standard; always at the archive root.
	ModelDescriptionMember = "modelDescription.xml"

	// ArchiveSuffix is the file extension of FMU archives.
	ArchiveSuffix = ".fmu"

	// ReductionConfigName is the per-directory configuration file consumed by
	// the batch reduction driver.
	ReductionConfigName = "parameter_reduction_config.json"

	// SupportedFMIVersion is the only FMI version this tool edits.
	SupportedFMIVersion = "2.0"
)
