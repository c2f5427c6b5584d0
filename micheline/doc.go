// Package micheline implements the untyped expression tree that Michelson
// programs and values travel in, plus its JSON and binary encodings.
//
// A Node is one of five shapes:
//
//	Int                   integer literal (arbitrary precision)
//	String                string literal
//	Bytes                 byte literal
//	*PrimitiveApplication named primitive with ordered args and annotations
//	Sequence              ordered list of nodes
//
// The tree knows nothing about which primitive names exist. The binary codec
// takes a PrimTable that maps names to their one-byte tags; the michelson
// package provides the table built from its registry.
//
// JSON follows the node RPC format:
//
//	{"int":"42"}  {"string":"tz1..."}  {"bytes":"0a0b"}
//	{"prim":"PUSH","args":[{"prim":"nat"},{"int":"1"}],"annots":["@x"]}
//	[ ... ]
//
// Binary uses the expression encoding shared by PACK and operation bodies:
// one tag byte per node, zarith integers, big-endian uint32 length prefixes
// for strings, bytes, sequences, generic argument lists and annotations.
package micheline
