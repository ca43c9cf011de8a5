package cst

// Name is an identifier. The keywords True, False and None are parsed as
// names too; their spelling lives in Value like any other identifier.
type Name struct {
	LPar  []LeftParen
	RPar  []RightParen
	Value string
}

// Integer is an integer literal in its original spelling, including any
// base prefix and underscores.
type Integer struct {
	LPar  []LeftParen
	RPar  []RightParen
	Value string
}

// Float is a floating point or imaginary literal in its original
// spelling.
type Float struct {
	LPar  []LeftParen
	RPar  []RightParen
	Value string
}

// SimpleString is a string or bytes literal, quotes and prefix included.
type SimpleString struct {
	LPar  []LeftParen
	RPar  []RightParen
	Value string
}

// Element is one item of a tuple or list, together with the comma that
// follows it, if any.
type Element struct {
	Value Expression
	Comma *Comma
}

// Tuple is a comma-separated expression list. A bare tuple has no parens
// of its own; a parenthesized tuple, including the empty tuple (), owns
// at least one paren pair.
type Tuple struct {
	LPar     []LeftParen
	RPar     []RightParen
	Elements []*Element
}

// List is a list display.
type List struct {
	LPar     []LeftParen
	RPar     []RightParen
	LBracket LeftSquareBracket
	Elements []*Element
	RBracket RightSquareBracket
}

// DictElement is one "key: value" item of a dict display.
type DictElement struct {
	Key         Expression
	BeforeColon string
	AfterColon  string
	Value       Expression
	Comma       *Comma
}

// Dict is a dict display.
type Dict struct {
	LPar     []LeftParen
	RPar     []RightParen
	LBrace   LeftCurlyBrace
	Elements []*DictElement
	RBrace   RightCurlyBrace
}

// Attribute is "value.attr". Dotted names in imports are represented the
// same way.
type Attribute struct {
	LPar  []LeftParen
	RPar  []RightParen
	Value Expression
	Dot   Dot
	Attr  *Name
}

// Subscript is "value[index]". A multi-expression index like a[i, j] is
// an unparenthesized Tuple.
type Subscript struct {
	LPar                 []LeftParen
	RPar                 []RightParen
	Value                Expression
	WhitespaceAfterValue string
	LBracket             LeftSquareBracket
	Index                Expression
	RBracket             RightSquareBracket
}

// Arg is one call argument, positional or keyword.
type Arg struct {
	Keyword *Name
	Equal   *AssignEqual
	Value   Expression
	Comma   *Comma
}

// Call is "func(args)". WhitespaceAfterFunc sits between the callee and
// the opening paren.
type Call struct {
	LPar                []LeftParen
	RPar                []RightParen
	Func                Expression
	WhitespaceAfterFunc string
	OpenParen           LeftParen
	Args                []*Arg
	CloseParen          RightParen
}

// UnaryOp is a prefix operator application: -x, +x, ~x, not x.
type UnaryOp struct {
	LPar       []LeftParen
	RPar       []RightParen
	Op         Op
	Expression Expression
}

// BinaryOp is an arithmetic, bitwise or shift operation. Chains like
// a + b + c nest to the left; ** nests to the right.
type BinaryOp struct {
	LPar  []LeftParen
	RPar  []RightParen
	Left  Expression
	Op    Op
	Right Expression
}

// BooleanOp is an "and" or "or" operation, nesting to the left.
type BooleanOp struct {
	LPar  []LeftParen
	RPar  []RightParen
	Left  Expression
	Op    Op
	Right Expression
}

// ComparisonTarget is one operator/operand pair in a comparison chain.
type ComparisonTarget struct {
	Operator   CompOp
	Comparator Expression
}

// Comparison is a chain of comparisons: a < b <= c stays flat, matching
// Python's chained comparison semantics.
type Comparison struct {
	LPar        []LeftParen
	RPar        []RightParen
	Left        Expression
	Comparisons []*ComparisonTarget
}

func (*Name) isNode()         {}
func (*Integer) isNode()      {}
func (*Float) isNode()        {}
func (*SimpleString) isNode() {}
func (*Tuple) isNode()        {}
func (*List) isNode()         {}
func (*Dict) isNode()         {}
func (*Attribute) isNode()    {}
func (*Subscript) isNode()    {}
func (*Call) isNode()         {}
func (*UnaryOp) isNode()      {}
func (*BinaryOp) isNode()     {}
func (*BooleanOp) isNode()    {}
func (*Comparison) isNode()   {}

func (*Name) expressionNode()         {}
func (*Integer) expressionNode()      {}
func (*Float) expressionNode()        {}
func (*SimpleString) expressionNode() {}
func (*Tuple) expressionNode()        {}
func (*List) expressionNode()         {}
func (*Dict) expressionNode()         {}
func (*Attribute) expressionNode()    {}
func (*Subscript) expressionNode()    {}
func (*Call) expressionNode()         {}
func (*UnaryOp) expressionNode()      {}
func (*BinaryOp) expressionNode()     {}
func (*BooleanOp) expressionNode()    {}
func (*Comparison) expressionNode()   {}

func (n *Name) parens() (*[]LeftParen, *[]RightParen)         { return &n.LPar, &n.RPar }
func (n *Integer) parens() (*[]LeftParen, *[]RightParen)      { return &n.LPar, &n.RPar }
func (n *Float) parens() (*[]LeftParen, *[]RightParen)        { return &n.LPar, &n.RPar }
func (n *SimpleString) parens() (*[]LeftParen, *[]RightParen) { return &n.LPar, &n.RPar }
func (n *Tuple) parens() (*[]LeftParen, *[]RightParen)        { return &n.LPar, &n.RPar }
func (n *List) parens() (*[]LeftParen, *[]RightParen)         { return &n.LPar, &n.RPar }
func (n *Dict) parens() (*[]LeftParen, *[]RightParen)         { return &n.LPar, &n.RPar }
func (n *Attribute) parens() (*[]LeftParen, *[]RightParen)    { return &n.LPar, &n.RPar }
func (n *Subscript) parens() (*[]LeftParen, *[]RightParen)    { return &n.LPar, &n.RPar }
func (n *Call) parens() (*[]LeftParen, *[]RightParen)         { return &n.LPar, &n.RPar }
func (n *UnaryOp) parens() (*[]LeftParen, *[]RightParen)      { return &n.LPar, &n.RPar }
func (n *BinaryOp) parens() (*[]LeftParen, *[]RightParen)     { return &n.LPar, &n.RPar }
func (n *BooleanOp) parens() (*[]LeftParen, *[]RightParen)    { return &n.LPar, &n.RPar }
func (n *Comparison) parens() (*[]LeftParen, *[]RightParen)   { return &n.LPar, &n.RPar }

// Parenthesize returns a copy of e wrapped in one more paren pair, the
// new pair outermost. The original node is not modified.
func Parenthesize(e Expression, lp LeftParen, rp RightParen) Expression {
	c := shallowCopy(e).(Expression)
	lpar, rpar := c.parens()
	*lpar = append([]LeftParen{lp}, *lpar...)
	*rpar = append(append([]RightParen(nil), *rpar...), rp)
	return c
}
