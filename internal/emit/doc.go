// Package emit provides the low-level text accumulation used by the code
// generator: append-only output sections with a fixed concatenation order,
// and an indentation-aware line buffer that tracks brace depth.
package emit
