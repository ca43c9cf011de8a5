package cst

// SimpleStatementLine is one logical line of small statements separated
// by semicolons. It owns the empty lines above it, its indentation and
// the line ending.
type SimpleStatementLine struct {
	LeadingLines []*EmptyLine
	Indent       string
	Body         []SmallStatement
	Trailing     TrailingWhitespace
}

// Pass is the pass statement.
type Pass struct {
	Semicolon *Semicolon
}

// Break is the break statement.
type Break struct {
	Semicolon *Semicolon
}

// Continue is the continue statement.
type Continue struct {
	Semicolon *Semicolon
}

// Expr is an expression evaluated for effect.
type Expr struct {
	Value     Expression
	Semicolon *Semicolon
}

// AssignTarget is one "target =" of an assignment chain, owning the
// whitespace around its equals sign.
type AssignTarget struct {
	Target      Expression
	BeforeEqual string
	AfterEqual  string
}

// Assign is "a = b = value". Every target keeps its own spacing.
type Assign struct {
	Targets   []*AssignTarget
	Value     Expression
	Semicolon *Semicolon
}

// AugAssign is an augmented assignment like "x += 1".
type AugAssign struct {
	Target    Expression
	Op        Op
	Value     Expression
	Semicolon *Semicolon
}

// Return is the return statement. Value is nil for a bare return.
type Return struct {
	WhitespaceAfterReturn string
	Value                 Expression
	Semicolon             *Semicolon
}

// Raise is the raise statement. Exc is nil for a bare re-raise; Cause is
// the optional "from" clause.
type Raise struct {
	WhitespaceAfterRaise string
	Exc                  Expression
	Cause                *RaiseFrom
	Semicolon            *Semicolon
}

// RaiseFrom is the "from cause" part of a raise statement.
type RaiseFrom struct {
	BeforeFrom string
	AfterFrom  string
	Item       Expression
}

// Assert is the assert statement with an optional message.
type Assert struct {
	WhitespaceAfterAssert string
	Test                  Expression
	Comma                 *Comma
	Msg                   Expression
	Semicolon             *Semicolon
}

// Del is the del statement.
type Del struct {
	WhitespaceAfterDel string
	Target             Expression
	Semicolon          *Semicolon
}

// NameItem is one name in a global statement.
type NameItem struct {
	Name  *Name
	Comma *Comma
}

// Global is the global statement.
type Global struct {
	WhitespaceAfterGlobal string
	Names                 []*NameItem
	Semicolon             *Semicolon
}

// ImportAlias is one imported name with an optional "as" binding. Name
// is a Name or a dotted Attribute chain.
type ImportAlias struct {
	Name   Expression
	AsName *AsName
	Comma  *Comma
}

// Import is "import a.b as c, d".
type Import struct {
	WhitespaceAfterImport string
	Names                 []*ImportAlias
	Semicolon             *Semicolon
}

// ImportFrom is "from module import names". Star imports set Star; a
// parenthesized name list sets LParen and RParen.
type ImportFrom struct {
	WhitespaceAfterFrom    string
	Module                 Expression
	WhitespaceBeforeImport string
	WhitespaceAfterImport  string
	Star                   bool
	LParen                 *LeftParen
	Names                  []*ImportAlias
	RParen                 *RightParen
	Semicolon              *Semicolon
}

// IndentedBlock is the suite of a compound statement: the header line's
// ending after the colon, then the body. Statements in the body carry
// their own indentation, so the block renders locally.
type IndentedBlock struct {
	Header TrailingWhitespace
	Body   []Statement
}

// If is an if or elif clause. Elif selects the keyword spelling, so a
// chain of elifs is a right-nested chain of If nodes, each rendering
// independently of its siblings. Orelse is nil, an elif *If, or an
// *Else.
type If struct {
	LeadingLines          []*EmptyLine
	Indent                string
	Elif                  bool
	WhitespaceBeforeTest  string
	Test                  Expression
	WhitespaceAfterTest   string
	Body                  *IndentedBlock
	Orelse                Statement
}

// Else is the else clause of if, while, for and try.
type Else struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// While is the while loop with an optional else clause.
type While struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceAfterWhile  string
	Test                  Expression
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
	Orelse                *Else
}

// For is the for loop with an optional else clause.
type For struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceAfterFor    string
	Target                Expression
	WhitespaceBeforeIn    string
	WhitespaceAfterIn     string
	Iter                  Expression
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
	Orelse                *Else
}

// Param is one function parameter with an optional default.
type Param struct {
	Name    *Name
	Equal   *AssignEqual
	Default Expression
	Comma   *Comma
}

// Decorator is one "@expr" line above a def or class.
type Decorator struct {
	LeadingLines      []*EmptyLine
	Indent            string
	WhitespaceAfterAt string
	Decorator         Expression
	Trailing          TrailingWhitespace
}

// FunctionDef is a def statement.
type FunctionDef struct {
	LeadingLines          []*EmptyLine
	Decorators            []*Decorator
	LinesAfterDecorators  []*EmptyLine
	Indent                string
	WhitespaceAfterDef    string
	Name                  *Name
	WhitespaceAfterName   string
	OpenParen             LeftParen
	Params                []*Param
	CloseParen            RightParen
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// ClassDef is a class statement. The base list parens are optional;
// OpenParen and CloseParen are nil when absent.
type ClassDef struct {
	LeadingLines          []*EmptyLine
	Decorators            []*Decorator
	LinesAfterDecorators  []*EmptyLine
	Indent                string
	WhitespaceAfterClass  string
	Name                  *Name
	WhitespaceAfterName   string
	OpenParen             *LeftParen
	Args                  []*Arg
	CloseParen            *RightParen
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// WithItem is one context manager of a with statement.
type WithItem struct {
	Item   Expression
	AsName *AsName
	Comma  *Comma
}

// With is the with statement.
type With struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceAfterWith   string
	Items                 []*WithItem
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// ExceptHandler is one except clause. Type is nil for a bare except.
type ExceptHandler struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceAfterExcept string
	Type                  Expression
	AsName                *AsName
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// Finally is the finally clause of a try statement.
type Finally struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
}

// Try is the try statement. At least one handler or a Finalbody is
// always present.
type Try struct {
	LeadingLines          []*EmptyLine
	Indent                string
	WhitespaceBeforeColon string
	Body                  *IndentedBlock
	Handlers              []*ExceptHandler
	Orelse                *Else
	Finalbody             *Finally
}

func (*SimpleStatementLine) isNode() {}
func (*Pass) isNode()                {}
func (*Break) isNode()               {}
func (*Continue) isNode()            {}
func (*Expr) isNode()                {}
func (*Assign) isNode()              {}
func (*AugAssign) isNode()           {}
func (*Return) isNode()              {}
func (*Raise) isNode()               {}
func (*Assert) isNode()              {}
func (*Del) isNode()                 {}
func (*Global) isNode()              {}
func (*Import) isNode()              {}
func (*ImportFrom) isNode()          {}
func (*IndentedBlock) isNode()       {}
func (*If) isNode()                  {}
func (*Else) isNode()                {}
func (*While) isNode()               {}
func (*For) isNode()                 {}
func (*Decorator) isNode()           {}
func (*FunctionDef) isNode()         {}
func (*ClassDef) isNode()            {}
func (*With) isNode()                {}
func (*ExceptHandler) isNode()       {}
func (*Finally) isNode()             {}
func (*Try) isNode()                 {}

func (*SimpleStatementLine) statementNode() {}
func (*If) statementNode()                  {}
func (*Else) statementNode()                {}
func (*While) statementNode()               {}
func (*For) statementNode()                 {}
func (*FunctionDef) statementNode()         {}
func (*ClassDef) statementNode()            {}
func (*With) statementNode()                {}
func (*Try) statementNode()                 {}

func (*Pass) smallStatementNode()       {}
func (*Break) smallStatementNode()      {}
func (*Continue) smallStatementNode()   {}
func (*Expr) smallStatementNode()       {}
func (*Assign) smallStatementNode()     {}
func (*AugAssign) smallStatementNode()  {}
func (*Return) smallStatementNode()     {}
func (*Raise) smallStatementNode()      {}
func (*Assert) smallStatementNode()     {}
func (*Del) smallStatementNode()        {}
func (*Global) smallStatementNode()     {}
func (*Import) smallStatementNode()     {}
func (*ImportFrom) smallStatementNode() {}
