package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // typed AST or tree to bytes/tree
	PhaseDecode   Phase = "decode"   // bytes/tree to tree or typed AST
	PhaseValidate Phase = "validate" // union narrowing and value checks
	PhaseParse    Phase = "parse"    // JSON and text input
	PhaseRegistry Phase = "registry" // primitive registration
	PhaseConfig   Phase = "config"   // CLI configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidNaturalBytes         Kind = "invalid_natural_bytes"
	KindInvalidIntegerBytes         Kind = "invalid_integer_bytes"
	KindInvalidPrimitiveApplication Kind = "invalid_primitive_application"
	KindInvalidInstruction          Kind = "invalid_michelson_instruction"
	KindInvalidData                 Kind = "invalid_michelson_data"
	KindInvalidType                 Kind = "invalid_michelson_type"
	KindInvalidSection              Kind = "invalid_michelson_section"
	KindInvalidAnnotation           Kind = "invalid_annotation"
	KindDepthExceeded               Kind = "depth_exceeded"
	KindUnknownTag                  Kind = "unknown_tag"
	KindOutOfBounds                 Kind = "out_of_bounds"
	KindMalformed                   Kind = "malformed"
	KindTypeMismatch                Kind = "type_mismatch"
	KindNegative                    Kind = "negative"
	KindRegistration                Kind = "registration"
	KindInvalidEncoded              Kind = "invalid_encoded"
	KindInvalidInput                Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Prim   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Prim != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Prim != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", prim ")
			b.WriteString(e.Prim)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("prim ")
			b.WriteString(e.Prim)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Prim != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
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
// A target without a Phase matches on Kind alone.
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

// Sentinels for errors.Is checks. They carry no phase so they match any phase.
var (
	ErrInvalidNaturalBytes         = &Error{Kind: KindInvalidNaturalBytes}
	ErrInvalidIntegerBytes         = &Error{Kind: KindInvalidIntegerBytes}
	ErrInvalidPrimitiveApplication = &Error{Kind: KindInvalidPrimitiveApplication}
	ErrInvalidMichelsonInstruction = &Error{Kind: KindInvalidInstruction}
	ErrInvalidMichelsonData        = &Error{Kind: KindInvalidData}
	ErrInvalidMichelsonType        = &Error{Kind: KindInvalidType}
	ErrInvalidMichelsonSection     = &Error{Kind: KindInvalidSection}
	ErrInvalidAnnotation           = &Error{Kind: KindInvalidAnnotation}
	ErrDepthExceeded               = &Error{Kind: KindDepthExceeded}
	ErrUnknownTag                  = &Error{Kind: KindUnknownTag}
	ErrOutOfBounds                 = &Error{Kind: KindOutOfBounds}
	ErrMalformed                   = &Error{Kind: KindMalformed}
	ErrInvalidEncoded              = &Error{Kind: KindInvalidEncoded}
)

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

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Prim sets the primitive name
func (b *Builder) Prim(name string) *Builder {
	b.err.Prim = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidNaturalBytes is returned when a natural decoder is handed no bytes
func InvalidNaturalBytes() *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidNaturalBytes,
		Detail: "empty input",
	}
}

// InvalidIntegerBytes is returned when an integer decoder is handed no bytes
func InvalidIntegerBytes() *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidIntegerBytes,
		Detail: "empty input",
	}
}

// InvalidPrimitiveApplication creates a prim mismatch or arity error
func InvalidPrimitiveApplication(path []string, prim, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidPrimitiveApplication,
		Path:   path,
		Prim:   prim,
		Detail: detail,
	}
}

// NotMember creates a narrowing error for a value outside the requested union
func NotMember(kind Kind, goType string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   kind,
		GoType: goType,
	}
}

// DepthExceeded creates a recursion limit error
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("nesting exceeds limit of %d", limit),
		Value:  limit,
	}
}

// TypeMismatch creates a tree shape mismatch error
func TypeMismatch(phase Phase, path []string, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: "expected " + want,
	}
}

// UnknownTag creates an unknown encoding tag error
func UnknownTag(phase Phase, what string, tag byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTag,
		Detail: fmt.Sprintf("unknown %s tag 0x%02x", what, tag),
		Value:  tag,
	}
}

// OutOfBounds creates a truncated input error
func OutOfBounds(phase Phase, path []string, want, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", want, have),
		Value:  want,
	}
}

// Malformed creates an invalid input shape error
func Malformed(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Path:   path,
		Detail: detail,
	}
}

// Registration creates a registry construction error
func Registration(goType, detail string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindRegistration,
		GoType: goType,
		Detail: detail,
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformed,
		Detail: "parse " + what,
		Cause:  cause,
	}
}
