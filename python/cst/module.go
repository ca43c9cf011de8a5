package cst

// Module is the root of a parsed file. Trivia above each statement
// belongs to that statement; Footer holds the blank and comment lines
// after the last statement, which for an all-comment file is everything.
type Module struct {
	Body   []Statement
	Footer []*EmptyLine
}

func (*Module) isNode() {}

// Code renders the module back to source text. For an unmodified tree
// this is the exact input it was parsed from.
func (m *Module) Code() string {
	return Render(m)
}
