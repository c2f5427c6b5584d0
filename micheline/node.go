package micheline

import (
	"bytes"

	"github.com/wippyai/michelson/number"
)

// Node is a Micheline expression.
type Node interface {
	node()
}

// Int is an integer literal.
type Int struct {
	Value number.Integer
}

// String is a string literal.
type String struct {
	Value string
}

// Bytes is a byte literal.
type Bytes struct {
	Value []byte
}

// PrimitiveApplication is a named primitive applied to arguments.
// Nil and empty Args/Annots are equivalent.
type PrimitiveApplication struct {
	Prim   string
	Args   []Node
	Annots []string
}

// Sequence is an ordered list of expressions.
type Sequence []Node

func (Int) node()                   {}
func (String) node()                {}
func (Bytes) node()                 {}
func (*PrimitiveApplication) node() {}
func (Sequence) node()              {}

// NewInt creates an integer literal.
func NewInt(v int64) Int {
	return Int{Value: number.NewInteger(v)}
}

// NewString creates a string literal.
func NewString(s string) String {
	return String{Value: s}
}

// NewBytes creates a byte literal.
func NewBytes(b []byte) Bytes {
	return Bytes{Value: b}
}

// Prim creates a primitive application without annotations.
func Prim(name string, args ...Node) *PrimitiveApplication {
	if len(args) == 0 {
		args = nil
	}
	return &PrimitiveApplication{Prim: name, Args: args}
}

// WithAnnots returns a copy of p carrying annots.
func (p *PrimitiveApplication) WithAnnots(annots ...string) *PrimitiveApplication {
	clone := *p
	if len(annots) == 0 {
		annots = nil
	}
	clone.Annots = annots
	return &clone
}

// Seq creates a sequence.
func Seq(items ...Node) Sequence {
	if items == nil {
		return Sequence{}
	}
	return Sequence(items)
}

// IsSequence reports whether n is a Sequence.
func IsSequence(n Node) bool {
	_, ok := n.(Sequence)
	return ok
}

// IsPrimitiveApplication reports whether n is a primitive application.
func IsPrimitiveApplication(n Node) bool {
	p, ok := n.(*PrimitiveApplication)
	return ok && p != nil
}

// Equal reports whether two trees are structurally identical.
// Nil and empty argument and annotation lists compare equal.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		return ok && x.Value.Equal(y.Value)
	case String:
		y, ok := b.(String)
		return ok && x.Value == y.Value
	case Bytes:
		y, ok := b.(Bytes)
		return ok && bytes.Equal(x.Value, y.Value)
	case *PrimitiveApplication:
		y, ok := b.(*PrimitiveApplication)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		if x.Prim != y.Prim || len(x.Args) != len(y.Args) || len(x.Annots) != len(y.Annots) {
			return false
		}
		for i := range x.Annots {
			if x.Annots[i] != y.Annots[i] {
				return false
			}
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return false
}
