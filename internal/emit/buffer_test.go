package emit

import (
	"errors"
	"testing"
)

func TestBufferIndentsNestedBlocks(t *testing.T) {
	b := NewBuffer(2)
	b.Emit("int f(void) {\n")
	b.Emit("if (x) {\n")
	b.Emit("return 1;\n")
	b.Emit("}\n")
	b.Emit("return 0;\n")
	b.Emit("}\n")

	var s Section
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "int f(void) {\n" +
		"  if (x) {\n" +
		"    return 1;\n" +
		"  }\n" +
		"  return 0;\n" +
		"}\n"
	if got := s.String(); got != want {
		t.Fatalf("formatted output mismatch:\ngot:\n%swant:\n%s", got, want)
	}
	if err := b.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestBufferClosingBraceAlignsWithOpener(t *testing.T) {
	b := NewBuffer(4)
	b.Emit("while (1) {\n")
	b.Emit("body();\n")
	b.Emit("}\n")

	var s Section
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "while (1) {\n    body();\n}\n"
	if got := s.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBufferMultilineEmit(t *testing.T) {
	b := NewBuffer(2)
	b.Emit("a {\nb;\nc;\n}\n")

	var s Section
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "a {\n  b;\n  c;\n}\n"
	if got := s.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBufferExcessClosingBraceIsSticky(t *testing.T) {
	b := NewBuffer(2)
	b.Emit("}\n")
	if err := b.Err(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("Err = %v, want ErrUnbalanced", err)
	}

	// Writes after the violation are dropped.
	b.Emit("int x;\n")
	var s Section
	if err := b.Flush(&s); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("Flush = %v, want ErrUnbalanced", err)
	}
	if s.Len() != 0 {
		t.Fatalf("section received %d bytes after error", s.Len())
	}
}

func TestBufferFinalizeAtNonzeroDepth(t *testing.T) {
	b := NewBuffer(2)
	b.Emit("int f(void) {\n")
	if err := b.Finalize(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("Finalize = %v, want ErrUnbalanced", err)
	}
}

func TestBufferFlushMidBlockKeepsDepth(t *testing.T) {
	b := NewBuffer(2)
	b.Emit("f() {\n")

	var s Section
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if b.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", b.Depth())
	}

	b.Emit("x;\n")
	b.Emit("}\n")
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "f() {\n  x;\n}\n"
	if got := s.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if err := b.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestBufferEmitf(t *testing.T) {
	b := NewBuffer(2)
	b.Emitf("case %d: return %s;\n", 3, "casadi_s0")

	var s Section
	if err := b.Flush(&s); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := s.String(), "case 3: return casadi_s0;\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
