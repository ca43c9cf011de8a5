// Package cst defines a lossless concrete syntax tree for Python source.
//
// Every byte of the parsed input is owned by exactly one attribute of one
// node, either as token text or as whitespace, so rendering a tree
// reproduces the source byte for byte. Nodes are treated as immutable:
// modification goes through WithChanges or a visitor rewrite, both of
// which build new nodes and share unmodified subtrees.
package cst

// Position is a location in rendered output. Offset is a byte offset;
// Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Span is a half-open byte range in rendered output.
type Span struct {
	Start Position
	End   Position
}

// Node is implemented by every syntax tree node. The interface is sealed:
// rendering goes through the unexported render method, so all
// implementations live in this package.
type Node interface {
	render(r *renderState)
	isNode()
}

// Expression is a node that can appear where the grammar expects an
// expression. Every expression can carry grouping parentheses.
type Expression interface {
	Node
	expressionNode()
	parens() (*[]LeftParen, *[]RightParen)
}

// Statement is a whole logical line or compound statement. Statements own
// the blank and comment lines above them and their own indentation.
type Statement interface {
	Node
	statementNode()
}

// SmallStatement is a statement that fits on one logical line and can be
// chained with semicolons inside a SimpleStatementLine.
type SmallStatement interface {
	Node
	smallStatementNode()
}

// EmptyLine is a line above a statement that carries no code: blank, or
// whitespace and a comment only. Indent is the literal leading
// whitespace, Comment includes the '#', and Newline is the terminator
// ("" only for a comment line at end of file).
type EmptyLine struct {
	Indent  string
	Comment string
	Newline string
}

// TrailingWhitespace is everything from the last code token on a line to
// the end of that line: padding, an optional comment, and the newline.
// Newline is "" when the line is the last one in the file and the file
// does not end with a newline.
type TrailingWhitespace struct {
	Whitespace string
	Comment    string
	Newline    string
}

// Comma separates sequence elements and owns the whitespace on both
// sides. A trailing comma directly before a closing delimiter has
// After == "": the delimiter owns that gap.
type Comma struct {
	Before string
	After  string
}

// Semicolon separates small statements. After is "" when the semicolon
// is the last thing before the line ending.
type Semicolon struct {
	Before string
	After  string
}

// Dot is the '.' of attribute access and dotted import names.
type Dot struct {
	Before string
	After  string
}

// LeftParen is a grouping or call '(' together with the whitespace that
// follows it. The whitespace before a '(' belongs to the surrounding
// slot, not to the paren.
type LeftParen struct {
	After string
}

// RightParen is a ')' together with the whitespace before it.
type RightParen struct {
	Before string
}

// LeftSquareBracket is a '[' together with the whitespace after it.
type LeftSquareBracket struct {
	After string
}

// RightSquareBracket is a ']' together with the whitespace before it.
type RightSquareBracket struct {
	Before string
}

// LeftCurlyBrace is a '{' together with the whitespace after it.
type LeftCurlyBrace struct {
	After string
}

// RightCurlyBrace is a '}' together with the whitespace before it.
type RightCurlyBrace struct {
	Before string
}

// Op is a fixed-spelling operator with the whitespace on both sides:
// binary and boolean operators, unary operators, and the operator part
// of an augmented assignment ("+=", "*=", ...).
type Op struct {
	Before string
	Token  string
	After  string
}

// CompOp is a comparison operator. Two-word operators ("not in",
// "is not") set Second and own the gap between the words.
type CompOp struct {
	Before  string
	Token   string
	Between string
	Second  string
	After   string
}

// AssignEqual is the '=' of a keyword argument or parameter default.
type AssignEqual struct {
	Before string
	After  string
}

// AsName is an "as target" clause on imports, with items and except
// handlers.
type AsName struct {
	BeforeAs string
	AfterAs  string
	Name     Expression
}
