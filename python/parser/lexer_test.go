package parser

import (
	"errors"
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize([]byte(src), Py3)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func kindsEqual(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Every byte of the input must be owned by exactly one token, either as
// text or as trivia, so re-concatenating the stream reproduces the input.
func TestTokenizeOwnsEveryByte(t *testing.T) {
	sources := []string{
		"",
		"x = 1\n",
		"x = 1",
		"x = 1  # trailing comment\n",
		"# leading comment\n\nx = 1\n\n# footer\n",
		"def f(a, b=1):\n    return a + b\n",
		"if x:\n    pass\nelif y:\n    pass\nelse:\n    pass\n",
		"x = (1,\n     2)\n",
		"x = 1 + \\\n    2\n",
		"while True:\n\n    break\n",
		"s = 'it\\'s'\nt = \"\"\"multi\nline\"\"\"\nu = r'raw\\n'\n",
		"a = 1; b = 2 ;\n",
		"values = [0x1F, 0b10, 0o17, 1_000, 1.5e-3, 2j, .5]\n",
		"class C(Base):\n    @prop\n    def m(self):\n        pass\n",
		"\tx = 1\n", // tab indentation at top level still owns its bytes
	}
	for _, src := range sources {
		toks, err := Tokenize([]byte(src), Py3)
		if err != nil {
			continue // error cases are covered separately
		}
		var sb strings.Builder
		for _, tok := range toks {
			sb.WriteString(tok.Leading)
			sb.WriteString(tok.Text)
			sb.WriteString(tok.Trailing)
		}
		if sb.String() != src {
			t.Errorf("reassembled %q, want %q", sb.String(), src)
		}
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenKind
	}{
		{
			"x = 1\n",
			[]TokenKind{TokName, TokAssign, TokInt, TokNewline, TokEOF},
		},
		{
			"if x:\n    pass\n",
			[]TokenKind{TokIf, TokName, TokColon, TokNewline, TokIndent, TokPass, TokNewline, TokDedent, TokEOF},
		},
		{
			"x **= 2 ** 3\n",
			[]TokenKind{TokName, TokPowerAssign, TokInt, TokPower, TokInt, TokNewline, TokEOF},
		},
		{
			"a is not b\n",
			[]TokenKind{TokName, TokIs, TokNot, TokName, TokNewline, TokEOF},
		},
		{
			"y = f'x' + rb'y'\n",
			[]TokenKind{TokName, TokAssign, TokString, TokPlus, TokString, TokNewline, TokEOF},
		},
		{
			"x := 1\n",
			[]TokenKind{TokName, TokWalrus, TokInt, TokNewline, TokEOF},
		},
		{
			"x", // missing newline is synthesized
			[]TokenKind{TokName, TokNewline, TokEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := kinds(mustTokenize(t, tt.src))
			if !kindsEqual(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func findToken(toks []Token, kind TokenKind, text string) *Token {
	for i := range toks {
		if toks[i].Kind == kind && toks[i].Text == text {
			return &toks[i]
		}
	}
	return nil
}

func TestTriviaAttachment(t *testing.T) {
	toks := mustTokenize(t, "x = 1 # c\n\n# note\ny = 2\n")

	one := findToken(toks, TokInt, "1")
	if one == nil || one.Trailing != " # c" {
		t.Fatalf("comment before newline should trail the last token, got %+v", one)
	}
	y := findToken(toks, TokName, "y")
	if y == nil || y.Leading != "\n# note\n" {
		t.Fatalf("blank and comment lines should lead the next statement, got %+v", y)
	}
}

func TestTriviaAcrossContinuations(t *testing.T) {
	toks := mustTokenize(t, "x = (1,\n     2)\n")
	comma := findToken(toks, TokComma, ",")
	if comma == nil || comma.Trailing != "" {
		t.Fatalf("comma trailing = %+v, want empty", comma)
	}
	two := findToken(toks, TokInt, "2")
	if two == nil || two.Leading != "\n     " {
		t.Fatalf("continuation whitespace should lead the next token, got %+v", two)
	}
}

func TestSynthesizedNewlineIsEmpty(t *testing.T) {
	toks := mustTokenize(t, "x = 1")
	nl := toks[len(toks)-2]
	if nl.Kind != TokNewline || nl.Text != "" {
		t.Fatalf("got %v %q, want empty Newline", nl.Kind, nl.Text)
	}
}

func TestDedentCounts(t *testing.T) {
	toks := mustTokenize(t, "if a:\n    if b:\n        pass\nx = 1\n")
	dedents := 0
	for _, tok := range toks {
		if tok.Kind == TokDedent {
			dedents++
		}
	}
	if dedents != 2 {
		t.Errorf("dedents = %d, want 2", dedents)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad dedent", "if x:\n    pass\n  y\n"},
		{"unterminated string", "s = 'abc\n"},
		{"unterminated triple string", "s = '''abc\n"},
		{"invalid character", "x = $\n"},
		{"lone bang", "x ! y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.src), Py3)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("err = %v, want *LexError", err)
			}
		})
	}
}

func TestBlankAndCommentLinesHaveNoBlockEffect(t *testing.T) {
	toks := mustTokenize(t, "if a:\n    x = 1\n\n  # comment indented oddly\n    y = 2\n")
	indents := 0
	for _, tok := range toks {
		if tok.Kind == TokIndent {
			indents++
		}
	}
	if indents != 1 {
		t.Errorf("indents = %d, want 1", indents)
	}
}
