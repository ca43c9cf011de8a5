package parser

import "fmt"

// Position is a location in the source text. Offset is a byte offset;
// Line and Column are 1-based.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open byte range in the source text.
type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokEOF TokenKind = iota

	// Structure
	TokNewline // logical line terminator; Text is the newline bytes ("" when synthesized at EOF)
	TokIndent  // virtual, zero-width
	TokDedent  // virtual, zero-width

	// Literals and names
	TokName
	TokInt
	TokFloat
	TokString

	// Keywords
	TokFalse
	TokNone
	TokTrue
	TokAnd
	TokAs
	TokAssert
	TokAsync
	TokAwait
	TokBreak
	TokClass
	TokContinue
	TokDef
	TokDel
	TokElif
	TokElse
	TokExcept
	TokFinally
	TokFor
	TokFrom
	TokGlobal
	TokIf
	TokImport
	TokIn
	TokIs
	TokLambda
	TokNonlocal
	TokNot
	TokOr
	TokPass
	TokRaise
	TokReturn
	TokTry
	TokWhile
	TokWith
	TokYield

	// Delimiters
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokComma
	TokColon
	TokSemicolon
	TokDot
	TokAt
	TokArrow

	// Operators
	TokAssign
	TokWalrus
	TokEQ
	TokNE
	TokLT
	TokLE
	TokGT
	TokGE
	TokBitOr
	TokBitXor
	TokBitAnd
	TokShl
	TokShr
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokDoubleSlash
	TokPercent
	TokPower
	TokTilde

	// Augmented assignment
	TokPlusAssign
	TokMinusAssign
	TokStarAssign
	TokSlashAssign
	TokDoubleSlashAssign
	TokPercentAssign
	TokAtAssign
	TokAndAssign
	TokOrAssign
	TokXorAssign
	TokShlAssign
	TokShrAssign
	TokPowerAssign
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:               "EOF",
	TokNewline:           "Newline",
	TokIndent:            "Indent",
	TokDedent:            "Dedent",
	TokName:              "Name",
	TokInt:               "Int",
	TokFloat:             "Float",
	TokString:            "String",
	TokFalse:             "False",
	TokNone:              "None",
	TokTrue:              "True",
	TokAnd:               "and",
	TokAs:                "as",
	TokAssert:            "assert",
	TokAsync:             "async",
	TokAwait:             "await",
	TokBreak:             "break",
	TokClass:             "class",
	TokContinue:          "continue",
	TokDef:               "def",
	TokDel:               "del",
	TokElif:              "elif",
	TokElse:              "else",
	TokExcept:            "except",
	TokFinally:           "finally",
	TokFor:               "for",
	TokFrom:              "from",
	TokGlobal:            "global",
	TokIf:                "if",
	TokImport:            "import",
	TokIn:                "in",
	TokIs:                "is",
	TokLambda:            "lambda",
	TokNonlocal:          "nonlocal",
	TokNot:               "not",
	TokOr:                "or",
	TokPass:              "pass",
	TokRaise:             "raise",
	TokReturn:            "return",
	TokTry:               "try",
	TokWhile:             "while",
	TokWith:              "with",
	TokYield:             "yield",
	TokLParen:            "(",
	TokRParen:            ")",
	TokLBracket:          "[",
	TokRBracket:          "]",
	TokLBrace:            "{",
	TokRBrace:            "}",
	TokComma:             ",",
	TokColon:             ":",
	TokSemicolon:         ";",
	TokDot:               ".",
	TokAt:                "@",
	TokArrow:             "->",
	TokAssign:            "=",
	TokWalrus:            ":=",
	TokEQ:                "==",
	TokNE:                "!=",
	TokLT:                "<",
	TokLE:                "<=",
	TokGT:                ">",
	TokGE:                ">=",
	TokBitOr:             "|",
	TokBitXor:            "^",
	TokBitAnd:            "&",
	TokShl:               "<<",
	TokShr:               ">>",
	TokPlus:              "+",
	TokMinus:             "-",
	TokStar:              "*",
	TokSlash:             "/",
	TokDoubleSlash:       "//",
	TokPercent:           "%",
	TokPower:             "**",
	TokTilde:             "~",
	TokPlusAssign:        "+=",
	TokMinusAssign:       "-=",
	TokStarAssign:        "*=",
	TokSlashAssign:       "/=",
	TokDoubleSlashAssign: "//=",
	TokPercentAssign:     "%=",
	TokAtAssign:          "@=",
	TokAndAssign:         "&=",
	TokOrAssign:          "|=",
	TokXorAssign:         "^=",
	TokShlAssign:         "<<=",
	TokShrAssign:         ">>=",
	TokPowerAssign:       "**=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one semantic token plus the trivia (whitespace and comments)
// it owns. Leading is the trivia immediately before the token that is not
// owned by the previous token's Trailing; Trailing is the same-line run
// after the token that ends the physical line. Virtual tokens (Indent,
// Dedent) carry no text and no trivia. Index is the token's position in
// the stream produced by Tokenize.
type Token struct {
	Kind     TokenKind
	Text     string
	Leading  string
	Trailing string
	Span     Span
	Index    int
}

var keywords = map[string]TokenKind{
	"False":    TokFalse,
	"None":     TokNone,
	"True":     TokTrue,
	"and":      TokAnd,
	"as":       TokAs,
	"assert":   TokAssert,
	"async":    TokAsync,
	"await":    TokAwait,
	"break":    TokBreak,
	"class":    TokClass,
	"continue": TokContinue,
	"def":      TokDef,
	"del":      TokDel,
	"elif":     TokElif,
	"else":     TokElse,
	"except":   TokExcept,
	"finally":  TokFinally,
	"for":      TokFor,
	"from":     TokFrom,
	"global":   TokGlobal,
	"if":       TokIf,
	"import":   TokImport,
	"in":       TokIn,
	"is":       TokIs,
	"lambda":   TokLambda,
	"nonlocal": TokNonlocal,
	"not":      TokNot,
	"or":       TokOr,
	"pass":     TokPass,
	"raise":    TokRaise,
	"return":   TokReturn,
	"try":      TokTry,
	"while":    TokWhile,
	"with":     TokWith,
	"yield":    TokYield,
}

// LookupKeyword classifies an identifier-shaped lexeme.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokName
}
