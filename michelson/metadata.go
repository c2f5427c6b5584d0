package michelson

import (
	"strings"
	"unicode"

	"github.com/wippyai/michelson/errors"
)

// AnnotationKind is the prefix character of an annotation.
type AnnotationKind byte

const (
	TypeAnnotation     AnnotationKind = ':'
	VariableAnnotation AnnotationKind = '@'
	FieldAnnotation    AnnotationKind = '%'
)

func (k AnnotationKind) String() string {
	switch k {
	case TypeAnnotation:
		return "type"
	case VariableAnnotation:
		return "variable"
	case FieldAnnotation:
		return "field"
	default:
		return "unknown"
	}
}

// Annotation is a prefixed annotation such as "%from" or ":amount".
type Annotation string

// ParseAnnotation validates the prefix of s. Whitespace is rejected anywhere
// in s; a bare prefix such as "@" is accepted.
func ParseAnnotation(s string) (Annotation, error) {
	if s == "" {
		return "", errors.New(errors.PhaseValidate, errors.KindInvalidAnnotation).
			Detail("empty annotation").
			Build()
	}
	switch AnnotationKind(s[0]) {
	case TypeAnnotation, VariableAnnotation, FieldAnnotation:
	default:
		return "", errors.New(errors.PhaseValidate, errors.KindInvalidAnnotation).
			Value(s).
			Detail("unknown annotation prefix %q", s[:1]).
			Build()
	}
	// The binary encoding joins annotations with spaces.
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return "", errors.New(errors.PhaseValidate, errors.KindInvalidAnnotation).
			Value(s).
			Detail("whitespace at offset %d", i).
			Build()
	}
	return Annotation(s), nil
}

// Kind returns the annotation's prefix kind.
func (a Annotation) Kind() AnnotationKind {
	if a == "" {
		return 0
	}
	return AnnotationKind(a[0])
}

// Value returns the annotation without its prefix.
func (a Annotation) Value() string {
	if a == "" {
		return ""
	}
	return string(a[1:])
}

// Metadata holds the annotations of a primitive that accepts them.
type Metadata struct {
	Annotations []Annotation
}

// NewMetadata validates annots and returns them as Metadata.
func NewMetadata(annots ...string) (Metadata, error) {
	if len(annots) == 0 {
		return Metadata{}, nil
	}
	out := make([]Annotation, 0, len(annots))
	for _, s := range annots {
		a, err := ParseAnnotation(s)
		if err != nil {
			return Metadata{}, err
		}
		out = append(out, a)
	}
	return Metadata{Annotations: out}, nil
}

// MustMetadata is like NewMetadata but panics on invalid input.
func MustMetadata(annots ...string) Metadata {
	m, err := NewMetadata(annots...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Metadata) ofKind(k AnnotationKind) []Annotation {
	var out []Annotation
	for _, a := range m.Annotations {
		if a.Kind() == k {
			out = append(out, a)
		}
	}
	return out
}

// TypeAnnotations returns the ":" annotations.
func (m Metadata) TypeAnnotations() []Annotation { return m.ofKind(TypeAnnotation) }

// VariableAnnotations returns the "@" annotations.
func (m Metadata) VariableAnnotations() []Annotation { return m.ofKind(VariableAnnotation) }

// FieldAnnotations returns the "%" annotations.
func (m Metadata) FieldAnnotations() []Annotation { return m.ofKind(FieldAnnotation) }

func (m Metadata) strings() []string {
	if len(m.Annotations) == 0 {
		return nil
	}
	out := make([]string, len(m.Annotations))
	for i, a := range m.Annotations {
		out[i] = string(a)
	}
	return out
}
