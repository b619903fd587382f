package combinator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a location in the input. Line and Column are 1-based,
// Offset is a byte index.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Cursor tracks the parse position over an immutable input.
type Cursor struct {
	input  string
	offset int
	line   int
	column int
}

func NewCursor(input string) *Cursor {
	return &Cursor{
		input:  input,
		line:   1,
		column: 1,
	}
}

func (c *Cursor) Position() Position {
	return Position{
		Offset: c.offset,
		Line:   c.line,
		Column: c.column,
	}
}

// SkipWhitespace advances past spaces, tabs, carriage returns and newlines.
func (c *Cursor) SkipWhitespace() {
	for c.offset < len(c.input) {
		ch := c.input[c.offset]
		if ch != ' ' && ch != '\t' && ch != '\r' && ch != '\n' {
			break
		}
		if ch == '\n' {
			c.line++
			c.column = 1
		} else {
			c.column++
		}
		c.offset++
	}
}

// Match skips whitespace and reports whether text starts at the cursor.
// It does not consume text.
func (c *Cursor) Match(text string) bool {
	c.SkipWhitespace()
	return strings.HasPrefix(c.input[c.offset:], text)
}

// Consume advances past text. Newlines inside text are not re-detected:
// the column moves by the number of characters in text.
func (c *Cursor) Consume(text string) {
	c.offset += len(text)
	if c.offset > len(c.input) {
		c.offset = len(c.input)
	}
	c.column += utf8.RuneCountInString(text)
}

func (c *Cursor) Copy() *Cursor {
	cp := *c
	return &cp
}

// restore moves c to the position recorded in snapshot.
func (c *Cursor) restore(snapshot *Cursor) {
	c.offset = snapshot.offset
	c.line = snapshot.line
	c.column = snapshot.column
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.input)
}

func (c *Cursor) Rest() string {
	return c.input[c.offset:]
}
