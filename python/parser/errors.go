package parser

import (
	"fmt"
	"strings"
)

// LexError reports an invalid character, an unterminated literal, or
// inconsistent indentation. It is always fatal to the current parse.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ParseError reports a token sequence that does not match the grammar.
// Found is the offending token; Expected lists the token kinds that would
// have been accepted at that position.
type ParseError struct {
	Pos      Position
	Found    Token
	Expected []TokenKind
	Message  string
}

func (e *ParseError) Error() string {
	found := e.Found.Kind.String()
	if e.Found.Kind == TokName || e.Found.Kind == TokInt || e.Found.Kind == TokFloat || e.Found.Kind == TokString {
		found = fmt.Sprintf("%s %q", found, e.Found.Text)
	}
	msg := e.Message
	if msg == "" {
		msg = "unexpected " + found
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		return fmt.Sprintf("%s: %s (expected %s)", e.Pos, msg, strings.Join(names, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

// DivergenceError reports a disagreement between the two parser backends
// on the same input. It is produced only by CrossCheck; a normal parse
// never returns it.
type DivergenceError struct {
	Reference string // outcome summary of the reference backend
	Fast      string // outcome summary of the fast backend
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("parser backends diverge: reference: %s; fast: %s", e.Reference, e.Fast)
}
