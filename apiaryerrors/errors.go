// Package apiaryerrors provides structured error types for apiary.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell apart the stages of client
// generation and react accordingly.
//
// # Error Categories
//
//   - ValidationError: the contract is missing or malformed
//   - EnvironmentError: the requested environment is unnamed or undeclared
//   - GenerationError: source rendering or persistence failed
//   - CompilationError: the generated source did not compile cleanly
//   - LoadError: the compiled unit could not be located or constructed
//   - GenerationFailure: the top-level wrapper returned by the orchestrator
//
// # Usage with errors.As
//
//	client, err := a.GenerateClient(c, "local")
//	if err != nil {
//	    var compErr *apiaryerrors.CompilationError
//	    if errors.As(err, &compErr) {
//	        for _, d := range compErr.Diagnostics {
//	            log.Println(d)
//	        }
//	    }
//	}
package apiaryerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/induct/apiary/internal/severity"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates a malformed or incomplete contract.
	ErrValidation = errors.New("validation error")

	// ErrEnvironment indicates an unknown or unnamed environment.
	ErrEnvironment = errors.New("environment error")

	// ErrGeneration indicates a rendering or persistence failure.
	ErrGeneration = errors.New("generation error")

	// ErrTargetExists indicates the artifact file is already present.
	ErrTargetExists = errors.New("target file already exists")

	// ErrCompilation indicates the generated source did not compile cleanly.
	ErrCompilation = errors.New("compilation error")

	// ErrLoad indicates the compiled unit could not be loaded.
	ErrLoad = errors.New("load error")

	// ErrUnitNotFound indicates no unit is registered under the requested name.
	ErrUnitNotFound = errors.New("unit not registered")

	// ErrStaleUnit indicates the linked unit was generated for a different
	// environment than the one requested.
	ErrStaleUnit = errors.New("linked unit is stale")

	// ErrGenerationFailure indicates a client generation run failed.
	ErrGenerationFailure = errors.New("client generation failed")
)

// Severity is the level of a Diagnostic.
type Severity = severity.Severity

const (
	// SeverityError marks parse, import and type errors.
	SeverityError = severity.SeverityError
	// SeverityWarning marks soft type errors such as unused imports.
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo marks informational notes.
	SeverityInfo = severity.SeverityInfo
)

// ValidationError represents a contract that cannot be generated from.
type ValidationError struct {
	// Contract is the contract name, if known
	Contract string
	// Field is the location of the offending value, e.g. "calls[0].params[1].name"
	Field string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Contract != "" {
		msg += " in contract " + e.Contract
	}
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// EnvironmentError reports an environment name that could not be resolved.
type EnvironmentError struct {
	// Contract is the contract name
	Contract string
	// Name is the requested environment; empty when none was given
	Name string
	// Available lists the declared environment names in order
	Available []string
}

// Error returns a human-readable error message.
func (e *EnvironmentError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("environment error: no environment name given for contract %s", e.Contract)
	}
	msg := fmt.Sprintf("environment error: contract %s declares no environment %q", e.Contract, e.Name)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}

// GenerationError represents a failure to render or persist generated source.
type GenerationError struct {
	// Op is the failing step: "render", "mkdir" or "write"
	Op string
	// Path is the artifact location, if known
	Path string
	// Exists is true when the artifact file was already present
	Exists bool
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerationError) Error() string {
	msg := "generation error"
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Exists {
		msg += ": target file already exists at " + e.Path
		return msg
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerationError) Is(target error) bool {
	if target == ErrTargetExists {
		return e.Exists
	}
	return target == ErrGeneration
}

// Diagnostic is a single message produced while compiling generated source.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	File     string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int      `json:"column,omitempty" yaml:"column,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// Location returns "file:line:column", omitting unknown parts.
func (d Diagnostic) Location() string {
	if d.File == "" {
		return ""
	}
	if d.Line <= 0 {
		return d.File
	}
	if d.Column <= 0 {
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
}

// String formats the diagnostic the way the go tool prints errors.
func (d Diagnostic) String() string {
	loc := d.Location()
	if loc == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
}

// CompilationError represents generated source that did not compile cleanly.
// Either Diagnostics is non-empty or Cause describes why the compiler could
// not be run.
type CompilationError struct {
	// Path is the compiled file
	Path string
	// Diagnostics holds every message the compiler emitted
	Diagnostics []Diagnostic
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *CompilationError) Error() string {
	msg := "compilation error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if n := len(e.Diagnostics); n > 0 {
		msg += fmt.Sprintf(": %d diagnostic(s): %s", n, e.Diagnostics[0].String())
		if n > 1 {
			msg += fmt.Sprintf(" (and %d more)", n-1)
		}
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *CompilationError) Is(target error) bool {
	return target == ErrCompilation
}

// LoadError represents a compiled unit that could not be loaded or constructed.
type LoadError struct {
	// Unit is the fully-qualified unit name
	Unit string
	// Path is the artifact location, if known
	Path string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Unit != "" {
		msg += " for " + e.Unit
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// GenerationFailure is returned by the orchestrator when any stage fails.
// It names the contract and the failing stage; the stage error is available
// through Unwrap.
type GenerationFailure struct {
	// Contract is the name of the contract being generated
	Contract string
	// Stage is the failing pipeline stage: validate, resolve, render,
	// materialize or load
	Stage string
	// Cause is the stage error
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerationFailure) Error() string {
	msg := "failed to generate client for contract " + e.Contract
	if e.Stage != "" {
		msg += " at " + e.Stage
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerationFailure) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerationFailure) Is(target error) bool {
	return target == ErrGenerationFailure
}
