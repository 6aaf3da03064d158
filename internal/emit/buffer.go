package emit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnbalanced reports that emitted text closed more braces than it opened,
// or that a buffer was finalized at nonzero depth.
var ErrUnbalanced = errors.New("unbalanced indentation")

// Buffer accumulates generated source text line by line, maintaining the
// running brace depth and prefixing each new line with indentation. A line
// whose pending content starts with '}' is indented one level less, so
// closing braces align with the construct they close.
//
// Brace recognition is naive: string and comment literals are not parsed,
// so callers must avoid embedding literal braces in emitted text.
//
// Errors are sticky in the manner of bufio.Writer: the first depth
// violation is recorded and reported by Err, Flush and Finalize, and all
// subsequent writes are dropped.
type Buffer struct {
	indent  int // spaces per level
	depth   int
	newline bool
	buf     strings.Builder
	err     error
}

// NewBuffer returns an empty buffer starting a new line at depth zero.
// indent is the number of spaces per nesting level.
func NewBuffer(indent int) *Buffer {
	return &Buffer{indent: indent, newline: true}
}

// Emit appends text, splitting on newline characters.
func (b *Buffer) Emit(text string) {
	if b.err != nil {
		return
	}
	off := 0
	for {
		pos := strings.IndexByte(text[off:], '\n')
		if pos < 0 {
			b.segment(text[off:])
			return
		}
		b.segment(text[off : off+pos])
		if b.err != nil {
			return
		}
		b.buf.WriteByte('\n')
		b.newline = true
		off += pos + 1
	}
}

// Emitf appends formatted text, splitting on newline characters.
func (b *Buffer) Emitf(format string, args ...any) {
	b.Emit(fmt.Sprintf(format, args...))
}

// segment appends one newline-free chunk, indenting if at start of line.
func (b *Buffer) segment(s string) {
	if s == "" {
		return
	}
	if b.newline {
		shift := 0
		if s[0] == '}' {
			shift = -1
		}
		if b.depth+shift < 0 {
			b.err = fmt.Errorf("%w: closing brace at depth 0", ErrUnbalanced)
			return
		}
		b.buf.WriteString(strings.Repeat(" ", b.indent*(b.depth+shift)))
		b.newline = false
	}
	b.buf.WriteString(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			b.depth++
		case '}':
			b.depth--
			if b.depth < 0 {
				b.err = fmt.Errorf("%w: %d closing braces in excess", ErrUnbalanced, -b.depth)
				return
			}
		}
	}
}

// Depth returns the current nesting depth.
func (b *Buffer) Depth() int { return b.depth }

// Err returns the first depth violation recorded so far, if any.
func (b *Buffer) Err() error { return b.err }

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int { return b.buf.Len() }

// Flush atomically moves all buffered text into dst and clears the buffer.
// Depth carries over: a flush in the middle of a block is fine as long as
// the block is closed before Finalize.
func (b *Buffer) Flush(dst *Section) error {
	if b.err != nil {
		return b.err
	}
	dst.WriteString(b.buf.String())
	b.buf.Reset()
	return nil
}

// Finalize verifies the buffer returned to depth zero.
func (b *Buffer) Finalize() error {
	if b.err != nil {
		return b.err
	}
	if b.depth != 0 {
		return fmt.Errorf("%w: finalized at depth %d", ErrUnbalanced, b.depth)
	}
	return nil
}
