// Package diag implements the diagnostic taxonomy and sink plumbing described
// in §6-7: a fixed enumeration of error codes, a three-level severity, and a
// synchronous sink callback the compile context forwards every diagnostic to.
package diag

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// Severity is one of {note, warning, error}. Emitting at Error sets the
// owning context's failed flag; warnings never do.
type Severity uint8

// The three recognised severities.
const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "?"
	}
}

// Code is a fixed enumeration of diagnostic kinds (§6-7).
type Code uint16

// Recognised diagnostic codes.
const (
	// allocation failure
	AllocationFailure Code = iota
	// duplicate definition
	DuplicateDefinition
	// missing semantic on an entry-point I/O leaf
	MissingSemantic
	// identifier not resolved, or entry point not found
	NotDefined
	// mismatched operands, illegal cast
	TypeError
	// illegal cast specifically (a TypeError subclass kept distinct for
	// diagnostics that want to say exactly what went wrong)
	InvalidCast
	// malformed profile string
	InvalidProfile
	// syntax error surfaced by the external parser
	SyntaxError
	// reserved for redefinition errors raised outside symbols.Scope's own
	// error return (e.g. redeclaring an intrinsic as a user function)
	Redefinition
)

func (c Code) String() string {
	switch c {
	case AllocationFailure:
		return "allocation_failure"
	case DuplicateDefinition:
		return "duplicate_definition"
	case MissingSemantic:
		return "missing_semantic"
	case NotDefined:
		return "not_defined"
	case TypeError:
		return "type_error"
	case InvalidCast:
		return "invalid_cast"
	case InvalidProfile:
		return "invalid_profile"
	case SyntaxError:
		return "syntax_error"
	case Redefinition:
		return "redefinition"
	default:
		return "?"
	}
}

// Diagnostic is a single message reported by the compiler.
type Diagnostic struct {
	File     *source.File
	Span     source.Span
	Severity Severity
	Code     Code
	Message  string
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped like any other Go error.
func (d Diagnostic) Error() string {
	if d.File != nil {
		line := d.File.FindEnclosingLine(d.Span)
		return fmt.Sprintf("%s:%d: %s: [%s] %s", d.File.Name(), line.Number(), d.Severity, d.Code, d.Message)
	}
	//
	return fmt.Sprintf("%s: [%s] %s", d.Severity, d.Code, d.Message)
}

// Sink receives every diagnostic emitted during a compile. Implementations
// must be synchronous and single-threaded, per §5.
type Sink interface {
	Report(Diagnostic)
}

// CollectingSink accumulates diagnostics in memory; used in tests and
// whenever a caller wants to inspect every diagnostic after the fact rather
// than stream them.
type CollectingSink struct {
	Diagnostics []Diagnostic
}

// Report appends d to the collected list.
func (s *CollectingSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic was at Error severity.
func (s *CollectingSink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	//
	return false
}

// LogrusSink adapts a diagnostic stream onto a logrus logger, the way the
// command-line front end reports diagnostics to the terminal.
type LogrusSink struct {
	Logger *log.Logger
}

// NewLogrusSink constructs a sink writing to the standard logrus logger.
func NewLogrusSink() *LogrusSink {
	return &LogrusSink{Logger: log.StandardLogger()}
}

// Report logs d at the logrus level matching its severity.
func (s *LogrusSink) Report(d Diagnostic) {
	entry := s.Logger.WithFields(log.Fields{"code": d.Code.String()})
	//
	if d.File != nil {
		line := d.File.FindEnclosingLine(d.Span)
		entry = entry.WithFields(log.Fields{"file": d.File.Name(), "line": line.Number()})
	}
	//
	switch d.Severity {
	case Note:
		entry.Debug(d.Message)
	case Warning:
		entry.Warn(d.Message)
	case Error:
		entry.Error(d.Message)
	}
}
