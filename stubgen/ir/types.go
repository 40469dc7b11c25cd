// Package ir defines the Intermediate Representation shared by the stubgen pipeline.
//
// A TypeDescriptor is the normalized, recursive form of a resolved source
// annotation. Readers produce raw annotation strings, the annotation package
// parses them into descriptors, and generators render descriptors into
// target language syntax.
package ir

import "fmt"

// Source represents a location in a scanned source file.
type Source struct {
	File string
	Line int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// String returns "file:line", or just the file when the line is unknown.
func (s Source) String() string {
	if s.Line > 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return s.File
}

// Warning codes reported by the pipeline.
const (
	WarnEnumerationFailed = "enumeration_failed" // reader failed; run continues with no records
	WarnInvalidRecord     = "invalid_record"     // record is not an object or has no usable name/path
	WarnInvalidMethods    = "invalid_methods"    // record "methods" is not a sequence
	WarnInvalidMethod     = "invalid_method"     // method is not an object or has no name
	WarnInvalidParameters = "invalid_parameters" // method "parameters" is not a sequence
	WarnInvalidParameter  = "invalid_parameter"  // parameter is not an object or has no name
	WarnNoClass           = "no_class"           // scanned file declares no class
	WarnInvalidPath       = "invalid_path"       // output path rejected by the sink
	WarnDuplicatePath     = "duplicate_path"     // two records map to the same output file
)

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// Record is the record (class) name that triggered the warning, if applicable.
	Record string

	// Member is the method or parameter name that triggered the warning, if applicable.
	Member string
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	s := w.Code + ": " + w.Message
	if w.Source != nil && !w.Source.IsZero() {
		s = w.Source.String() + ": " + s
	}
	return s
}
