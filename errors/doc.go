// Package errors provides structured error types for the Michelson encoding core.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the argument path, the Go type and primitive name involved,
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidPrimitiveApplication).
//		Path("PUSH", "args[1]").
//		Prim("PUSH").
//		Detail("argument list exhausted").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidNaturalBytes()
//	err := errors.DepthExceeded(errors.PhaseEncode, path, 1024)
//
// All errors implement the standard error interface and support errors.Is/As.
// The exported sentinels (ErrInvalidPrimitiveApplication and friends) carry no
// phase and match any *Error of the same Kind.
package errors
