package cst

// Constructors for building trees by hand. They fill in conventional
// whitespace (one space around operators, ", " between elements, a bare
// "\n" line ending) so programmatic nodes render as readable code;
// every field stays open for adjustment afterwards.

// NewName returns an identifier expression.
func NewName(value string) *Name {
	return &Name{Value: value}
}

// NewInteger returns an integer literal from its spelling.
func NewInteger(value string) *Integer {
	return &Integer{Value: value}
}

// NewSimpleString returns a string literal from its full spelling,
// quotes included.
func NewSimpleString(value string) *SimpleString {
	return &SimpleString{Value: value}
}

// DefaultComma is the ", " separator.
func DefaultComma() *Comma {
	return &Comma{After: " "}
}

// SpacedOp returns an operator padded with single spaces.
func SpacedOp(token string) Op {
	return Op{Before: " ", Token: token, After: " "}
}

// NewAssign returns "target = value" with conventional spacing.
func NewAssign(target Expression, value Expression) *Assign {
	return &Assign{
		Targets: []*AssignTarget{{Target: target, BeforeEqual: " ", AfterEqual: " "}},
		Value:   value,
	}
}

// NewLine wraps small statements into one statement line ending in a
// bare newline.
func NewLine(body ...SmallStatement) *SimpleStatementLine {
	return &SimpleStatementLine{
		Body:     body,
		Trailing: TrailingWhitespace{Newline: "\n"},
	}
}

// NewCall returns "fn(args)" with ", " between arguments.
func NewCall(fn Expression, args ...Expression) *Call {
	call := &Call{Func: fn}
	for i, a := range args {
		arg := &Arg{Value: a}
		if i < len(args)-1 {
			arg.Comma = DefaultComma()
		}
		call.Args = append(call.Args, arg)
	}
	return call
}
