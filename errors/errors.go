package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the failure occurred
type Phase string

const (
	PhaseParse        Phase = "parse"        // identity string parsing
	PhaseCanonicalize Phase = "canonicalize" // decoration stripping
	PhaseResolve      Phase = "resolve"      // catalog lookups
	PhaseRegister     Phase = "register"     // registry population
	PhaseRead         Phase = "read"         // stream and resource reading
	PhaseLoad         Phase = "load"         // module loading
)

// Kind categorizes the failure
type Kind string

const (
	KindMalformedIdentity Kind = "malformed_identity"
	KindTypeNotFound      Kind = "type_not_found"
	KindModuleNotFound    Kind = "module_not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindIO                Kind = "io"
	KindNotFound          Kind = "not_found"
	KindRegistration      Kind = "registration"
	KindUnsupported       Kind = "unsupported"
)

// Reason is a structured explanation attached to a failure so callers can
// branch on it without matching message text.
type Reason interface {
	Message() string
}

// TypeNotDefined reports that a type name parsed but no type is registered under it.
type TypeNotDefined struct {
	Name string
}

// Message implements Reason
func (r TypeNotDefined) Message() string {
	return "Undefined type: " + r.Name
}

// ModuleNotLoaded reports that no loaded module matched an identity.
type ModuleNotLoaded struct {
	Identity string
}

// Message implements Reason
func (r ModuleNotLoaded) Message() string {
	return "Module not loaded: " + r.Identity
}

// Error is the resolution failure returned throughout the module.
// Input carries the offending string verbatim for diagnostics.
type Error struct {
	Reason Reason
	Cause  error
	Phase  Phase
	Kind   Kind
	Input  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Input != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Input))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Reason != nil {
		b.WriteString(" (")
		b.WriteString(e.Reason.Message())
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ReasonOf returns the structured reason attached to err, if any.
func ReasonOf(err error) Reason {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Reason
	}
	return nil
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Input sets the offending input string
func (b *Builder) Input(s string) *Builder {
	b.err.Input = s
	return b
}

// Reason attaches a structured reason
func (b *Builder) Reason(r Reason) *Builder {
	b.err.Reason = r
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	e := b.err
	return &e
}

// Convenience constructors for common failure patterns

// Malformed creates a malformed identity error
func Malformed(phase Phase, input, detail string, args ...any) *Error {
	return New(phase, KindMalformedIdentity).Input(input).Detail(detail, args...).Build()
}

// TypeNotFound creates a type-not-found error carrying a TypeNotDefined reason
func TypeNotFound(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindTypeNotFound,
		Input:  name,
		Detail: fmt.Sprintf("no type registered for %s", name),
		Reason: TypeNotDefined{Name: name},
	}
}

// ModuleNotFound creates a module-not-found error
func ModuleNotFound(identity string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindModuleNotFound,
		Input:  identity,
		Detail: "no loaded module matches",
		Reason: ModuleNotLoaded{Identity: identity},
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// IO wraps an I/O failure from a stream or resource
func IO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration creates a registration error
func Registration(module, name, detail string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Input:  name,
		Detail: fmt.Sprintf("register %s in %s: %s", name, module, detail),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, input, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Input:  input,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, input string, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Input:  input,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
