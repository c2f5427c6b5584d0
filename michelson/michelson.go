package michelson

import (
	"reflect"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/number"
)

// Michelson is any typed node: data, instruction, type or script section.
type Michelson interface {
	michelson()
}

// Data is a Michelson value. Instructions are data too, since lambdas carry code.
type Data interface {
	Michelson
	data()
}

// Instruction is a Michelson instruction or a sequence of instructions.
type Instruction interface {
	Data
	instruction()
}

// Type is a Michelson type expression.
type Type interface {
	Michelson
	typ()
}

// Section is a top-level script section (parameter, storage, code, view).
type Section interface {
	Michelson
	section()
}

// Family markers. Each registered struct embeds exactly one of them and carries
// its primitive name and binary tag in the marker's struct tag.
type (
	dataPrim    struct{}
	instrPrim   struct{}
	typePrim    struct{}
	sectionPrim struct{}
)

func (dataPrim) michelson() {}
func (dataPrim) data()      {}

func (instrPrim) michelson()   {}
func (instrPrim) data()        {}
func (instrPrim) instruction() {}

func (typePrim) michelson() {}
func (typePrim) typ()       {}

func (sectionPrim) michelson() {}
func (sectionPrim) section()   {}

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

func (Int) michelson()    {}
func (Int) data()         {}
func (String) michelson() {}
func (String) data()      {}
func (Bytes) michelson()  {}
func (Bytes) data()       {}

// NewInt creates an integer literal.
func NewInt(v int64) Int {
	return Int{Value: number.NewInteger(v)}
}

// NewNat creates a non-negative integer literal.
func NewNat(v uint64) Int {
	return Int{Value: number.NewNatural(v).Integer()}
}

// Sequence is an ordered list of nodes. It is the only case that is never
// looked up in the registry. A sequence is an instruction when all of its
// items are instructions and data when all of its items are data.
type Sequence []Michelson

func (Sequence) michelson()   {}
func (Sequence) data()        {}
func (Sequence) instruction() {}

// Seq creates a sequence.
func Seq(items ...Michelson) Sequence {
	if items == nil {
		return Sequence{}
	}
	return Sequence(items)
}

// AsData narrows m to the data union.
func AsData(m Michelson) (Data, error) {
	switch v := m.(type) {
	case Sequence:
		for _, item := range v {
			if _, err := AsData(item); err != nil {
				return nil, err
			}
		}
		return v, nil
	case Data:
		return v, nil
	}
	return nil, errors.NotMember(errors.KindInvalidData, typeName(m))
}

// AsInstruction narrows m to the instruction union.
func AsInstruction(m Michelson) (Instruction, error) {
	switch v := m.(type) {
	case Sequence:
		for _, item := range v {
			if _, err := AsInstruction(item); err != nil {
				return nil, err
			}
		}
		return v, nil
	case Instruction:
		return v, nil
	}
	return nil, errors.NotMember(errors.KindInvalidInstruction, typeName(m))
}

// AsType narrows m to the type union.
func AsType(m Michelson) (Type, error) {
	if v, ok := m.(Type); ok {
		return v, nil
	}
	return nil, errors.NotMember(errors.KindInvalidType, typeName(m))
}

// AsSection narrows m to a script section.
func AsSection(m Michelson) (Section, error) {
	if v, ok := m.(Section); ok {
		return v, nil
	}
	return nil, errors.NotMember(errors.KindInvalidSection, typeName(m))
}

// Equal reports whether two typed nodes map to the same Micheline tree.
func Equal(a, b Michelson) bool {
	return Default().Equal(a, b)
}

func typeName(m Michelson) string {
	if m == nil {
		return "nil"
	}
	return reflect.TypeOf(m).String()
}
