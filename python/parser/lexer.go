package parser

import (
	"fmt"
	"strings"
)

// lexer scans Python source into semantic tokens. Whitespace, comments,
// blank lines and backslash continuations are never tokens; they travel
// as trivia on the nearest semantic token (see attachTrivia for the
// attribution rule). Block structure is synthesized: Indent and Dedent
// are zero-width virtual tokens derived from the indentation stack.
type lexer struct {
	input []byte
	file  string

	pos    int
	line   int
	column int

	depth        int      // open bracket depth; newlines inside brackets are trivia
	indents      []string // indentation stack, innermost last
	atLineStart  bool
	lastRealKind TokenKind
	sawRealToken bool

	pendingStart int // offset of the first byte not yet owned by a token
	toks         []Token
}

func newLexer(input []byte, file string) *lexer {
	return &lexer{
		input:       input,
		file:        file,
		line:        1,
		column:      1,
		indents:     []string{""},
		atLineStart: true,
	}
}

func (l *lexer) position() Position {
	return Position{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// emit appends a semantic token whose text spans [start.Offset, l.pos).
// Everything between the previous token and start becomes leading trivia.
func (l *lexer) emit(kind TokenKind, start Position) {
	end := l.position()
	l.toks = append(l.toks, Token{
		Kind:    kind,
		Text:    string(l.input[start.Offset:end.Offset]),
		Leading: string(l.input[l.pendingStart:start.Offset]),
		Span:    Span{Start: start, End: end},
	})
	l.pendingStart = end.Offset
	l.lastRealKind = kind
	l.sawRealToken = true
}

// emitVirtual appends a zero-width token that owns no text and no trivia.
func (l *lexer) emitVirtual(kind TokenKind) {
	pos := l.position()
	pos.Offset = l.pendingStart // virtual tokens sit before any pending trivia
	l.toks = append(l.toks, Token{Kind: kind, Span: Span{Start: pos, End: pos}})
}

func (l *lexer) run() error {
	for {
		if l.atLineStart && l.depth == 0 {
			if err := l.startLine(); err != nil {
				return err
			}
			l.atLineStart = false
		}
		l.skipLineTrivia()
		if l.pos >= len(l.input) {
			break
		}
		ch := l.peek()
		if ch == '\n' || ch == '\r' {
			start := l.position()
			if ch == '\r' && l.peekN(1) == '\n' {
				l.advanceN(2)
			} else {
				l.advance()
			}
			l.emit(TokNewline, start)
			l.atLineStart = true
			continue
		}
		if err := l.scanToken(); err != nil {
			return err
		}
	}

	// A logical line that runs into EOF still terminates: synthesize an
	// empty Newline so every statement line ends the same way.
	if l.sawRealToken && l.lastRealKind != TokNewline {
		l.emit(TokNewline, l.position())
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emitVirtual(TokDedent)
	}
	l.emit(TokEOF, l.position())
	return nil
}

// startLine consumes blank and comment-only lines (they stay in the
// pending trivia) and adjusts the indentation stack for the first content
// line. Indentation is compared textually: an indent must extend the
// enclosing level as a prefix, and a dedent must land exactly on an outer
// level.
func (l *lexer) startLine() error {
	for {
		lineStart := l.pos
		for l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\x0c' {
			l.advance()
		}
		ch := l.peek()
		if ch == 0 && l.pos >= len(l.input) {
			return nil
		}
		if ch == '#' {
			for l.pos < len(l.input) && l.peek() != '\n' && l.peek() != '\r' {
				l.advance()
			}
			ch = l.peek()
		}
		if ch == '\n' || ch == '\r' {
			if ch == '\r' && l.peekN(1) == '\n' {
				l.advanceN(2)
			} else {
				l.advance()
			}
			continue // blank or comment-only line: trivia, no block effect
		}

		indent := string(l.input[lineStart:l.pos])
		current := l.indents[len(l.indents)-1]
		switch {
		case indent == current:
		case strings.HasPrefix(indent, current):
			l.indents = append(l.indents, indent)
			l.emitVirtual(TokIndent)
		default:
			for len(l.indents) > 1 && len(l.indents[len(l.indents)-1]) > len(indent) {
				l.indents = l.indents[:len(l.indents)-1]
				l.emitVirtual(TokDedent)
			}
			if l.indents[len(l.indents)-1] != indent {
				return &LexError{
					Pos:     Position{File: l.file, Offset: lineStart, Line: l.line, Column: 1},
					Message: "unindent does not match any outer indentation level",
				}
			}
		}
		return nil
	}
}

// skipLineTrivia consumes whitespace, comments and backslash continuations
// inside a logical line. Inside brackets it also consumes newlines
// (implicit line joining).
func (l *lexer) skipLineTrivia() {
	for {
		switch ch := l.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\x0c':
			l.advance()
		case ch == '#':
			for l.pos < len(l.input) && l.peek() != '\n' && l.peek() != '\r' {
				l.advance()
			}
		case ch == '\\' && (l.peekN(1) == '\n' || l.peekN(1) == '\r'):
			l.advance()
			if l.peek() == '\r' && l.peekN(1) == '\n' {
				l.advanceN(2)
			} else {
				l.advance()
			}
		case (ch == '\n' || ch == '\r') && l.depth > 0:
			if ch == '\r' && l.peekN(1) == '\n' {
				l.advanceN(2)
			} else {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) scanToken() error {
	start := l.position()
	ch := l.peek()

	switch {
	case isIdentStart(ch):
		return l.scanNameOrString(start)
	case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
		l.scanNumber(start)
		return nil
	case ch == '\'' || ch == '"':
		return l.scanString(start, "")
	default:
		return l.scanOperator(start)
	}
}

// scanNameOrString scans an identifier, keyword, or prefixed string
// literal (r"", b'', f"""...""" and friends).
func (l *lexer) scanNameOrString(start Position) error {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.input[start.Offset:l.pos])

	if (l.peek() == '\'' || l.peek() == '"') && isStringPrefix(text) {
		return l.scanString(start, text)
	}

	l.emit(LookupKeyword(text), start)
	return nil
}

func isStringPrefix(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}

// scanString scans one string literal as a single token, including its
// prefix and quotes. Multi-line bodies are only legal in triple-quoted
// form; an unterminated literal is a lexical error.
func (l *lexer) scanString(start Position, prefix string) error {
	quote := l.peek()
	raw := strings.ContainsAny(prefix, "rR")

	if l.peekN(1) == quote && l.peekN(2) == quote {
		l.advanceN(3)
		for {
			if l.pos >= len(l.input) {
				return &LexError{Pos: start, Message: "unterminated triple-quoted string literal"}
			}
			if l.peek() == quote && l.peekN(1) == quote && l.peekN(2) == quote {
				l.advanceN(3)
				break
			}
			if l.peek() == '\\' && !raw && l.pos+1 < len(l.input) {
				l.advance()
			}
			l.advance()
		}
		l.emit(TokString, start)
		return nil
	}

	l.advance()
	for {
		if l.pos >= len(l.input) || l.peek() == '\n' || l.peek() == '\r' {
			return &LexError{Pos: start, Message: "unterminated string literal"}
		}
		if l.peek() == quote {
			l.advance()
			break
		}
		if l.peek() == '\\' && l.pos+1 < len(l.input) {
			l.advance()
		}
		l.advance()
	}
	l.emit(TokString, start)
	return nil
}

func (l *lexer) scanNumber(start Position) {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X' ||
		l.peekN(1) == 'o' || l.peekN(1) == 'O' ||
		l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for isAlnum(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.emit(TokInt, start)
		return
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && l.peekN(1) != '.' {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		if isDigit(l.peekN(1)) || ((l.peekN(1) == '+' || l.peekN(1) == '-') && isDigit(l.peekN(2))) {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
	}
	if l.peek() == 'j' || l.peek() == 'J' {
		isFloat = true
		l.advance()
	}
	if isFloat {
		l.emit(TokFloat, start)
	} else {
		l.emit(TokInt, start)
	}
}

func (l *lexer) scanOperator(start Position) error {
	ch := l.peek()

	emit1 := func(kind TokenKind) error {
		l.advance()
		l.emit(kind, start)
		return nil
	}
	emit2 := func(kind TokenKind) error {
		l.advanceN(2)
		l.emit(kind, start)
		return nil
	}
	emit3 := func(kind TokenKind) error {
		l.advanceN(3)
		l.emit(kind, start)
		return nil
	}

	switch ch {
	case '(':
		l.depth++
		return emit1(TokLParen)
	case '[':
		l.depth++
		return emit1(TokLBracket)
	case '{':
		l.depth++
		return emit1(TokLBrace)
	case ')':
		if l.depth > 0 {
			l.depth--
		}
		return emit1(TokRParen)
	case ']':
		if l.depth > 0 {
			l.depth--
		}
		return emit1(TokRBracket)
	case '}':
		if l.depth > 0 {
			l.depth--
		}
		return emit1(TokRBrace)
	case ',':
		return emit1(TokComma)
	case ';':
		return emit1(TokSemicolon)
	case '~':
		return emit1(TokTilde)
	case '.':
		return emit1(TokDot)
	case ':':
		if l.peekN(1) == '=' {
			return emit2(TokWalrus)
		}
		return emit1(TokColon)
	case '@':
		if l.peekN(1) == '=' {
			return emit2(TokAtAssign)
		}
		return emit1(TokAt)
	case '=':
		if l.peekN(1) == '=' {
			return emit2(TokEQ)
		}
		return emit1(TokAssign)
	case '!':
		if l.peekN(1) == '=' {
			return emit2(TokNE)
		}
	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				return emit3(TokShlAssign)
			}
			return emit2(TokShl)
		}
		if l.peekN(1) == '=' {
			return emit2(TokLE)
		}
		return emit1(TokLT)
	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '=' {
				return emit3(TokShrAssign)
			}
			return emit2(TokShr)
		}
		if l.peekN(1) == '=' {
			return emit2(TokGE)
		}
		return emit1(TokGT)
	case '|':
		if l.peekN(1) == '=' {
			return emit2(TokOrAssign)
		}
		return emit1(TokBitOr)
	case '^':
		if l.peekN(1) == '=' {
			return emit2(TokXorAssign)
		}
		return emit1(TokBitXor)
	case '&':
		if l.peekN(1) == '=' {
			return emit2(TokAndAssign)
		}
		return emit1(TokBitAnd)
	case '+':
		if l.peekN(1) == '=' {
			return emit2(TokPlusAssign)
		}
		return emit1(TokPlus)
	case '-':
		if l.peekN(1) == '=' {
			return emit2(TokMinusAssign)
		}
		if l.peekN(1) == '>' {
			return emit2(TokArrow)
		}
		return emit1(TokMinus)
	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				return emit3(TokPowerAssign)
			}
			return emit2(TokPower)
		}
		if l.peekN(1) == '=' {
			return emit2(TokStarAssign)
		}
		return emit1(TokStar)
	case '/':
		if l.peekN(1) == '/' {
			if l.peekN(2) == '=' {
				return emit3(TokDoubleSlashAssign)
			}
			return emit2(TokDoubleSlash)
		}
		if l.peekN(1) == '=' {
			return emit2(TokSlashAssign)
		}
		return emit1(TokSlash)
	case '%':
		if l.peekN(1) == '=' {
			return emit2(TokPercentAssign)
		}
		return emit1(TokPercent)
	}

	return &LexError{Pos: start, Message: fmt.Sprintf("invalid character %q", ch)}
}

// attachTrivia redistributes leading trivia after scanning. For the trivia
// run between semantic tokens A and B:
//
//   - a run containing a newline splits at the first newline byte: the
//     same-line part trails A, the rest (from the newline on) leads B;
//   - a same-line run ending at a Newline token trails A;
//   - any other same-line run leads B.
//
// Nothing ever trails a Newline token, and virtual tokens own no trivia.
// Together with token text this accounts for every input byte exactly once.
func attachTrivia(toks []Token) {
	lastReal := -1
	for i := range toks {
		tok := &toks[i]
		if tok.Kind == TokIndent || tok.Kind == TokDedent {
			continue
		}
		if tok.Leading != "" && lastReal >= 0 && toks[lastReal].Kind != TokNewline {
			lead := tok.Leading
			if k := strings.IndexAny(lead, "\r\n"); k >= 0 {
				toks[lastReal].Trailing = lead[:k]
				tok.Leading = lead[k:]
			} else if tok.Kind == TokNewline {
				toks[lastReal].Trailing = lead
				tok.Leading = ""
			}
		}
		lastReal = i
	}
}

// Tokenize converts source text into its token sequence under the given
// grammar version. It is a pure function: the same input always yields
// the same tokens. The final token is always EOF.
func Tokenize(src []byte, version Version) ([]Token, error) {
	return tokenize(src, "", version)
}

func tokenize(src []byte, file string, version Version) ([]Token, error) {
	if !version.valid() {
		return nil, fmt.Errorf("unsupported grammar version %v", version)
	}
	l := newLexer(src, file)
	if err := l.run(); err != nil {
		return nil, err
	}
	attachTrivia(l.toks)
	for i := range l.toks {
		l.toks[i].Index = i
	}
	return l.toks, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 128
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
