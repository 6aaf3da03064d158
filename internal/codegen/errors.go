package codegen

import (
	"errors"

	"cgen/internal/emit"
	"cgen/internal/pool"
	"cgen/internal/registry"
)

// Failure taxonomy of a generation session. All of these are terminal:
// nothing is retried and no partial output survives; the caller discards
// the session.
var (
	// ErrInvalidOption reports an unrecognized configuration key or a
	// malformed option value.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidName reports a base name unusable as a namespace prefix.
	ErrInvalidName = errors.New("invalid name")
	// ErrTypeMismatch reports a local variable redeclared with a different
	// type or reference form.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrStaleInterface reports a legacy call pattern, such as passing a
	// full filename where only a path prefix is expected.
	ErrStaleInterface = errors.New("stale interface usage")

	// ErrUndefinedSymbol reports resolution of a never-defined shorthand.
	ErrUndefinedSymbol = registry.ErrUndefined
	// ErrDuplicateSymbol reports a conflicting, non-idempotent definition.
	ErrDuplicateSymbol = registry.ErrDuplicate
	// ErrConstantNotFound reports a read-only lookup miss in a constant pool.
	ErrConstantNotFound = pool.ErrNotFound
	// ErrUnbalancedIndentation reports emitted text whose braces do not
	// balance by finalization time.
	ErrUnbalancedIndentation = emit.ErrUnbalanced
)
