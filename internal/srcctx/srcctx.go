// Package srcctx recovers human-readable line/column context from a byte
// offset into a source buffer. It is used to annotate invariant-violation
// panics raised by the tokenizer with a pointer into the offending input,
// in the style of a compiler error message.
package srcctx

import (
	"fmt"
	"strings"
)

// Locate returns the 1-based line and column for offset in input, plus a
// two-line "context" string showing the source line and a caret under the
// offending column. offset is a byte offset; line/col are counted the same
// way the tokenizer counts them (bytes since the last line start).
func Locate(input string, offset int) (line, col int, context string) {
	line = 1
	lastLineStart := 0
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			lastLineStart = i + 1
		}
	}
	if offset > len(input) {
		offset = len(input)
	}
	col = offset - lastLineStart + 1

	end := lastLineStart
	for end < len(input) && input[end] != '\n' {
		end++
	}
	context = fmt.Sprintf("%5d: %s\n%s^", line, input[lastLineStart:end], strings.Repeat(" ", col+6))
	return
}

// Describe is a convenience wrapper for building a message suitable for a
// panic: a first line combining the given reason with the position,
// followed by Locate's two-line context.
func Describe(input string, offset int, reason string) string {
	line, col, context := Locate(input, offset)
	return fmt.Sprintf("%s at %d:%d\n%s", reason, line, col, context)
}
