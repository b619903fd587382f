package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pcomb/combinator"
)

// Diagnose parses text with root, requiring the whole text to match, and
// returns no diagnostics on success or one error at the deepest failure.
func Diagnose(root *combinator.Combinator, text string) []protocol.Diagnostic {
	out := combinator.Run(root, text, combinator.RequireEOF())
	if out.OK() {
		return []protocol.Diagnostic{}
	}

	deepest := out.Failure.Deepest()
	start := position(text, deepest.Pos.Offset)
	end := start
	if deepest.Pos.Offset < len(text) {
		_, size := utf8.DecodeRuneInString(text[deepest.Pos.Offset:])
		end = position(text, deepest.Pos.Offset+size)
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  deepest.Message,
	}}
}

// position converts a byte offset into a zero-based LSP position whose
// character counts UTF-16 code units.
func position(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, character protocol.UInteger
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			character = 0
			continue
		}
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{Line: line, Character: character}
}
