// Package tezos is the root of a Go implementation of the Michelson data
// encoding: the Micheline expression tree, its JSON and binary forms, and a
// typed view of every protocol primitive.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	tezos/
//	├── number/          Arbitrary-precision naturals and integers, zarith codec
//	├── cursor/          Consumable byte buffer for decode sessions
//	├── micheline/       Untyped expression tree, JSON and PACK binary forms
//	├── michelson/       Typed primitives, registry and transcoder
//	├── encoded/         Base58check prefixes and script expression hashes
//	├── errors/          Structured error types for debugging
//	└── cmd/michelson/   Command line encoder, decoder and inspector
//
// # Quick Start
//
// Validate Micheline JSON and pack it:
//
//	node, err := micheline.UnmarshalJSON([]byte(`{"prim":"Pair","args":[{"int":"1"},{"int":"2"}]}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := michelson.Default().DataFromMicheline(node)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	packed, err := michelson.Marshal(data)
//	fmt.Printf("%x\n", packed)                // 05070700010002
//	fmt.Println(encoded.ScriptExprHash(packed)) // expr...
//
// # Typed Primitives
//
// Every primitive is a Go struct registered under its name and tag:
//
//   - Data: Unit, Pair, Left, Right, Some, None, Elt, Lambda_rec and literals
//   - Instructions: the stack, arithmetic, control and domain operations
//   - Types: nat, pair, or, map, big_map, lambda, ticket, ...
//   - Sections: parameter, storage, code, view
//
// # Thread Safety
//
// Registry and Transcoder are immutable after construction and safe for
// concurrent use. A cursor.Cursor belongs to a single decode session and must
// not be shared.
//
// # Limits
//
// Encoding and decoding stop with a depth_exceeded error once nesting passes
// the configured limit (1024 by default). Trailing primitive arguments beyond
// what a typed struct declares are ignored.
package tezos
