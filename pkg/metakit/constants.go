package metakit

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitValidationFailed = 11 // Structural validation reported errors
	ExitMergeRefused     = 12 // Merge inputs were empty, undetected or mixed
	ExitUnsupportedInput = 13 // Document could not be read as a known dialect
)

const (
	// FloatPrecision is the number of decimal places used for every
	// floating-point scalar the serializer writes.
	FloatPrecision = 6

	// MaxContextLength is the maximum number of characters of the offending
	// line carried in a validation issue.
	MaxContextLength = 80

	// IndentUnit is the indentation used by the serializer per nesting level.
	IndentUnit = "  "

	// XMLProlog is the declaration written at the top of every serialized document.
	XMLProlog = `<?xml version="1.0" encoding="UTF-8"?>`

	// DefaultKitName is the kit name given to records that have no kit of their own.
	DefaultKitName = "0_default_modkit"

	// DefaultSequencer is the siren flash pattern used when a light carries none.
	DefaultSequencer = "10101010101010101010101010101010"

	// DefaultSirenColor is the light color used when a light carries none.
	DefaultSirenColor = "0xFFFF0000"

	// LayoutRecordName names the synthetic record that receives layout data
	// when no existing record can take it.
	LayoutRecordName = "vehiclelayouts"

	// MetaFileExtension and XMLFileExtension are the extensions the workspace
	// scanner treats as meta documents.
	MetaFileExtension = ".meta"
	XMLFileExtension  = ".xml"
)
