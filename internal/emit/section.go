package emit

import "strings"

// Section is an append-only text accumulator for one of the fixed output
// sections of a generated file (header declarations, auxiliary bodies,
// main body). The relative order of sections in the final file is decided
// by the assembler, not by insertion order.
type Section struct {
	b strings.Builder
}

func (s *Section) WriteString(text string) {
	s.b.WriteString(text)
}

func (s *Section) WriteByte(c byte) {
	// strings.Builder.WriteByte never fails
	_ = s.b.WriteByte(c)
}

// String returns everything written so far.
func (s *Section) String() string { return s.b.String() }

func (s *Section) Len() int { return s.b.Len() }

func (s *Section) Empty() bool { return s.b.Len() == 0 }
