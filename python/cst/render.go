package cst

import "strings"

// renderState accumulates output and tracks the current position so the
// same walk serves both code generation and position metadata.
type renderState struct {
	sb     strings.Builder
	offset int
	line   int
	column int
	spans  map[Node]Span
}

func newRenderState(spans map[Node]Span) *renderState {
	return &renderState{line: 1, column: 1, spans: spans}
}

func (r *renderState) write(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			r.line++
			r.column = 1
		} else {
			r.column++
		}
	}
	r.offset += len(s)
	r.sb.WriteString(s)
}

func (r *renderState) position() Position {
	return Position{Offset: r.offset, Line: r.line, Column: r.column}
}

// render renders a child node, recording its span when position tracking
// is on.
func (r *renderState) render(n Node) {
	start := r.position()
	n.render(r)
	if r.spans != nil {
		r.spans[n] = Span{Start: start, End: r.position()}
	}
}

// Render produces the source text of any node. For a tree fresh from the
// parser the module's text equals the parsed input byte for byte.
func Render(n Node) string {
	r := newRenderState(nil)
	r.render(n)
	return r.sb.String()
}

func (r *renderState) parens(lpar []LeftParen, rpar []RightParen, body func()) {
	for _, lp := range lpar {
		r.write("(")
		r.write(lp.After)
	}
	body()
	for _, rp := range rpar {
		r.write(rp.Before)
		r.write(")")
	}
}

func (e *EmptyLine) renderTo(r *renderState) {
	r.write(e.Indent)
	r.write(e.Comment)
	r.write(e.Newline)
}

func renderLines(r *renderState, lines []*EmptyLine) {
	for _, line := range lines {
		line.renderTo(r)
	}
}

func (t TrailingWhitespace) renderTo(r *renderState) {
	r.write(t.Whitespace)
	r.write(t.Comment)
	r.write(t.Newline)
}

func (c *Comma) renderTo(r *renderState) {
	if c == nil {
		return
	}
	r.write(c.Before)
	r.write(",")
	r.write(c.After)
}

func (s *Semicolon) renderTo(r *renderState) {
	if s == nil {
		return
	}
	r.write(s.Before)
	r.write(";")
	r.write(s.After)
}

func (d Dot) renderTo(r *renderState) {
	r.write(d.Before)
	r.write(".")
	r.write(d.After)
}

func (op Op) renderTo(r *renderState) {
	r.write(op.Before)
	r.write(op.Token)
	r.write(op.After)
}

func (op CompOp) renderTo(r *renderState) {
	r.write(op.Before)
	r.write(op.Token)
	if op.Second != "" {
		r.write(op.Between)
		r.write(op.Second)
	}
	r.write(op.After)
}

func (a *AssignEqual) renderTo(r *renderState) {
	if a == nil {
		return
	}
	r.write(a.Before)
	r.write("=")
	r.write(a.After)
}

func (a *AsName) renderTo(r *renderState) {
	if a == nil {
		return
	}
	r.write(a.BeforeAs)
	r.write("as")
	r.write(a.AfterAs)
	r.render(a.Name)
}

func (n *Name) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() { r.write(n.Value) })
}

func (n *Integer) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() { r.write(n.Value) })
}

func (n *Float) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() { r.write(n.Value) })
}

func (n *SimpleString) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() { r.write(n.Value) })
}

func (n *Tuple) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		for _, el := range n.Elements {
			r.render(el.Value)
			el.Comma.renderTo(r)
		}
	})
}

func (n *List) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.write("[")
		r.write(n.LBracket.After)
		for _, el := range n.Elements {
			r.render(el.Value)
			el.Comma.renderTo(r)
		}
		r.write(n.RBracket.Before)
		r.write("]")
	})
}

func (n *Dict) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.write("{")
		r.write(n.LBrace.After)
		for _, el := range n.Elements {
			r.render(el.Key)
			r.write(el.BeforeColon)
			r.write(":")
			r.write(el.AfterColon)
			r.render(el.Value)
			el.Comma.renderTo(r)
		}
		r.write(n.RBrace.Before)
		r.write("}")
	})
}

func (n *Attribute) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Value)
		n.Dot.renderTo(r)
		r.render(n.Attr)
	})
}

func (n *Subscript) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Value)
		r.write(n.WhitespaceAfterValue)
		r.write("[")
		r.write(n.LBracket.After)
		r.render(n.Index)
		r.write(n.RBracket.Before)
		r.write("]")
	})
}

func (n *Call) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Func)
		r.write(n.WhitespaceAfterFunc)
		r.write("(")
		r.write(n.OpenParen.After)
		for _, arg := range n.Args {
			if arg.Keyword != nil {
				r.render(arg.Keyword)
				arg.Equal.renderTo(r)
			}
			r.render(arg.Value)
			arg.Comma.renderTo(r)
		}
		r.write(n.CloseParen.Before)
		r.write(")")
	})
}

func (n *UnaryOp) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		n.Op.renderTo(r)
		r.render(n.Expression)
	})
}

func (n *BinaryOp) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Left)
		n.Op.renderTo(r)
		r.render(n.Right)
	})
}

func (n *BooleanOp) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Left)
		n.Op.renderTo(r)
		r.render(n.Right)
	})
}

func (n *Comparison) render(r *renderState) {
	r.parens(n.LPar, n.RPar, func() {
		r.render(n.Left)
		for _, t := range n.Comparisons {
			t.Operator.renderTo(r)
			r.render(t.Comparator)
		}
	})
}

func (n *SimpleStatementLine) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	for _, s := range n.Body {
		r.render(s)
	}
	n.Trailing.renderTo(r)
}

func (n *Pass) render(r *renderState) {
	r.write("pass")
	n.Semicolon.renderTo(r)
}

func (n *Break) render(r *renderState) {
	r.write("break")
	n.Semicolon.renderTo(r)
}

func (n *Continue) render(r *renderState) {
	r.write("continue")
	n.Semicolon.renderTo(r)
}

func (n *Expr) render(r *renderState) {
	r.render(n.Value)
	n.Semicolon.renderTo(r)
}

func (n *Assign) render(r *renderState) {
	for _, t := range n.Targets {
		r.render(t.Target)
		r.write(t.BeforeEqual)
		r.write("=")
		r.write(t.AfterEqual)
	}
	r.render(n.Value)
	n.Semicolon.renderTo(r)
}

func (n *AugAssign) render(r *renderState) {
	r.render(n.Target)
	n.Op.renderTo(r)
	r.render(n.Value)
	n.Semicolon.renderTo(r)
}

func (n *Return) render(r *renderState) {
	r.write("return")
	r.write(n.WhitespaceAfterReturn)
	if n.Value != nil {
		r.render(n.Value)
	}
	n.Semicolon.renderTo(r)
}

func (n *Raise) render(r *renderState) {
	r.write("raise")
	r.write(n.WhitespaceAfterRaise)
	if n.Exc != nil {
		r.render(n.Exc)
	}
	if n.Cause != nil {
		r.write(n.Cause.BeforeFrom)
		r.write("from")
		r.write(n.Cause.AfterFrom)
		r.render(n.Cause.Item)
	}
	n.Semicolon.renderTo(r)
}

func (n *Assert) render(r *renderState) {
	r.write("assert")
	r.write(n.WhitespaceAfterAssert)
	r.render(n.Test)
	if n.Msg != nil {
		n.Comma.renderTo(r)
		r.render(n.Msg)
	}
	n.Semicolon.renderTo(r)
}

func (n *Del) render(r *renderState) {
	r.write("del")
	r.write(n.WhitespaceAfterDel)
	r.render(n.Target)
	n.Semicolon.renderTo(r)
}

func (n *Global) render(r *renderState) {
	r.write("global")
	r.write(n.WhitespaceAfterGlobal)
	for _, item := range n.Names {
		r.render(item.Name)
		item.Comma.renderTo(r)
	}
	n.Semicolon.renderTo(r)
}

func renderImportAliases(r *renderState, names []*ImportAlias) {
	for _, alias := range names {
		r.render(alias.Name)
		alias.AsName.renderTo(r)
		alias.Comma.renderTo(r)
	}
}

func (n *Import) render(r *renderState) {
	r.write("import")
	r.write(n.WhitespaceAfterImport)
	renderImportAliases(r, n.Names)
	n.Semicolon.renderTo(r)
}

func (n *ImportFrom) render(r *renderState) {
	r.write("from")
	r.write(n.WhitespaceAfterFrom)
	r.render(n.Module)
	r.write(n.WhitespaceBeforeImport)
	r.write("import")
	r.write(n.WhitespaceAfterImport)
	switch {
	case n.Star:
		r.write("*")
	case n.LParen != nil:
		r.write("(")
		r.write(n.LParen.After)
		renderImportAliases(r, n.Names)
		r.write(n.RParen.Before)
		r.write(")")
	default:
		renderImportAliases(r, n.Names)
	}
	n.Semicolon.renderTo(r)
}

func (n *IndentedBlock) render(r *renderState) {
	n.Header.renderTo(r)
	for _, s := range n.Body {
		r.render(s)
	}
}

func (n *If) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	if n.Elif {
		r.write("elif")
	} else {
		r.write("if")
	}
	r.write(n.WhitespaceBeforeTest)
	r.render(n.Test)
	r.write(n.WhitespaceAfterTest)
	r.write(":")
	r.render(n.Body)
	if n.Orelse != nil {
		r.render(n.Orelse)
	}
}

func (n *Else) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("else")
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *While) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("while")
	r.write(n.WhitespaceAfterWhile)
	r.render(n.Test)
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
	if n.Orelse != nil {
		r.render(n.Orelse)
	}
}

func (n *For) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("for")
	r.write(n.WhitespaceAfterFor)
	r.render(n.Target)
	r.write(n.WhitespaceBeforeIn)
	r.write("in")
	r.write(n.WhitespaceAfterIn)
	r.render(n.Iter)
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
	if n.Orelse != nil {
		r.render(n.Orelse)
	}
}

func (n *Decorator) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("@")
	r.write(n.WhitespaceAfterAt)
	r.render(n.Decorator)
	n.Trailing.renderTo(r)
}

func (n *FunctionDef) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	for _, d := range n.Decorators {
		r.render(d)
	}
	renderLines(r, n.LinesAfterDecorators)
	r.write(n.Indent)
	r.write("def")
	r.write(n.WhitespaceAfterDef)
	r.render(n.Name)
	r.write(n.WhitespaceAfterName)
	r.write("(")
	r.write(n.OpenParen.After)
	for _, p := range n.Params {
		r.render(p.Name)
		p.Equal.renderTo(r)
		if p.Default != nil {
			r.render(p.Default)
		}
		p.Comma.renderTo(r)
	}
	r.write(n.CloseParen.Before)
	r.write(")")
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *ClassDef) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	for _, d := range n.Decorators {
		r.render(d)
	}
	renderLines(r, n.LinesAfterDecorators)
	r.write(n.Indent)
	r.write("class")
	r.write(n.WhitespaceAfterClass)
	r.render(n.Name)
	r.write(n.WhitespaceAfterName)
	if n.OpenParen != nil {
		r.write("(")
		r.write(n.OpenParen.After)
		for _, arg := range n.Args {
			if arg.Keyword != nil {
				r.render(arg.Keyword)
				arg.Equal.renderTo(r)
			}
			r.render(arg.Value)
			arg.Comma.renderTo(r)
		}
		r.write(n.CloseParen.Before)
		r.write(")")
	}
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *With) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("with")
	r.write(n.WhitespaceAfterWith)
	for _, item := range n.Items {
		r.render(item.Item)
		item.AsName.renderTo(r)
		item.Comma.renderTo(r)
	}
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *ExceptHandler) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("except")
	r.write(n.WhitespaceAfterExcept)
	if n.Type != nil {
		r.render(n.Type)
		n.AsName.renderTo(r)
	}
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *Finally) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("finally")
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
}

func (n *Try) render(r *renderState) {
	renderLines(r, n.LeadingLines)
	r.write(n.Indent)
	r.write("try")
	r.write(n.WhitespaceBeforeColon)
	r.write(":")
	r.render(n.Body)
	for _, h := range n.Handlers {
		r.render(h)
	}
	if n.Orelse != nil {
		r.render(n.Orelse)
	}
	if n.Finalbody != nil {
		r.render(n.Finalbody)
	}
}

func (n *Module) render(r *renderState) {
	for _, s := range n.Body {
		r.render(s)
	}
	renderLines(r, n.Footer)
}
