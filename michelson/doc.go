// Package michelson is the typed view of Micheline: every primitive the
// protocol knows is a Go struct, grouped into four unions.
//
//	Data         literals, Unit, Pair, Left, Some, Elt, ... and instructions
//	Instruction  PUSH, DIP, IF, LAMBDA, ... and instruction sequences
//	Type         nat, pair, map, lambda, ...
//	Section      parameter, storage, code, view
//
// A struct declares its primitive through an embedded family marker and its
// arguments through field tags:
//
//	type Dip struct {
//		instrPrim `michelson:"DIP,0x1f"`
//		N         *number.Natural `michelson:"optional"`
//		Body      Instruction     `michelson:"boxed"`
//	}
//
// Field roles are "arg" (required scalar or node), "optional" (pointer or
// interface, nil when absent), "boxed" (recursive node) and "rest,min=N"
// (variadic tail). An embedded Metadata field makes the primitive accept
// annotations. The Registry compiles these declarations once into name and
// tag indices.
//
// A Transcoder maps typed nodes to Micheline trees and back. Decoding
// dispatches on the primitive name, fills the struct field by field and
// narrows nested nodes to the union each field declares:
//
//	node, _ := micheline.UnmarshalJSON(src)
//	instr, err := michelson.Default().InstructionFromMicheline(node)
//
// Sequence is the one node that never goes through the registry. It belongs to
// Instruction when all of its items are instructions and to Data when all of
// its items are data; AsInstruction and AsData check this.
package michelson
