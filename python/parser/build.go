package parser

import (
	"strings"

	"github.com/pycst/pycst/python/cst"
)

// builder converts the untyped parse tree into the typed tree, assigning
// every whitespace byte to exactly one attribute. The gap between two
// adjacent tokens lives in the Trailing of the left one plus the Leading
// of the right one; each gap is claimed by exactly one slot:
//
//   - the slot of the separator, operator or keyword between the tokens;
//   - a closing delimiter claims the gap before it, so a comma directly
//     before a closer keeps After == "";
//   - the first token of a statement claims its full leading trivia,
//     split into whole empty lines and the statement's own indentation;
//   - a Newline token claims the gap before it as the line's trailing
//     whitespace.
//
// The parse tree shapes are guaranteed by the grammar, so shape
// mismatches here are programming errors and panic.
type builder struct {
	toks []Token
}

func buildModule(raw *RawNode, toks []Token) (*cst.Module, error) {
	b := &builder{toks: toks}
	m := &cst.Module{}
	last := len(raw.Children) - 1
	for _, c := range raw.Children[:last] {
		m.Body = append(m.Body, b.statement(c))
	}
	m.Footer = footerLines(raw.Children[last].Tok.Leading)
	return m, nil
}

func buildStatementInput(raw *RawNode, toks []Token) (cst.Statement, error) {
	b := &builder{toks: toks}
	stmt := b.statement(raw.Children[0])
	eof := raw.Children[1].Tok
	if eof.Leading != "" {
		return nil, &ParseError{Pos: eof.Span.Start, Found: *eof, Message: "unexpected content after statement"}
	}
	return stmt, nil
}

func buildExpressionInput(raw *RawNode, toks []Token) (cst.Expression, error) {
	b := &builder{toks: toks}
	first := raw.Children[0].FirstToken()
	if first.Leading != "" {
		return nil, &ParseError{Pos: first.Span.Start, Found: *first, Message: "unexpected leading trivia before expression"}
	}
	expr := b.expr(raw.Children[0])
	for _, c := range raw.Children[1:] {
		t := c.Tok
		if b.toks[t.Index-1].Trailing != "" || t.Leading != "" || (t.Kind == TokNewline && t.Text != "" && t.Text != "\n") {
			return nil, &ParseError{Pos: t.Span.Start, Found: *t, Message: "unexpected trailing trivia after expression"}
		}
	}
	return expr, nil
}

// gapBefore is the whitespace between t and the token before it.
func (b *builder) gapBefore(t *Token) string {
	return b.toks[t.Index-1].Trailing + t.Leading
}

// gapAfter is the whitespace between t and the token after it.
func (b *builder) gapAfter(t *Token) string {
	return t.Trailing + b.toks[t.Index+1].Leading
}

// openGap is the whitespace claimed by an opening delimiter: the gap to
// the next token, unless the closer follows directly, which then claims
// the whole gap itself.
func (b *builder) openGap(open, close *Token) string {
	if open.Index+1 == close.Index {
		return ""
	}
	return b.gapAfter(open)
}

// trailingWS builds a line ending from its Newline token: the gap before
// the newline split into padding and comment, plus the newline text
// itself ("" for the synthesized newline at end of file).
func (b *builder) trailingWS(nl *Token) cst.TrailingWhitespace {
	ws, comment := splitComment(b.gapBefore(nl))
	return cst.TrailingWhitespace{Whitespace: ws, Comment: comment, Newline: nl.Text}
}

func splitComment(s string) (ws, comment string) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// splitLeading splits a statement's leading trivia into whole empty
// lines and the indentation on the statement's own line.
func splitLeading(lead string) ([]*cst.EmptyLine, string) {
	var lines []*cst.EmptyLine
	for {
		i := strings.IndexByte(lead, '\n')
		if i < 0 {
			return lines, lead
		}
		lines = append(lines, emptyLineFrom(lead[:i+1]))
		lead = lead[i+1:]
	}
}

func emptyLineFrom(line string) *cst.EmptyLine {
	nl := ""
	if strings.HasSuffix(line, "\r\n") {
		nl = "\r\n"
	} else if strings.HasSuffix(line, "\n") {
		nl = "\n"
	}
	content := line[:len(line)-len(nl)]
	ws, comment := splitComment(content)
	return &cst.EmptyLine{Indent: ws, Comment: comment, Newline: nl}
}

func footerLines(lead string) []*cst.EmptyLine {
	lines, rest := splitLeading(lead)
	if rest != "" {
		lines = append(lines, emptyLineFrom(rest))
	}
	return lines
}

func (b *builder) statement(raw *RawNode) cst.Statement {
	switch raw.Sym {
	case SymSimpleLine:
		return b.simpleLine(raw)
	case SymIf:
		return b.ifStmt(raw, false)
	case SymWhile:
		return b.whileStmt(raw)
	case SymFor:
		return b.forStmt(raw)
	case SymTry:
		return b.tryStmt(raw)
	case SymWith:
		return b.withStmt(raw)
	case SymFuncDef:
		return b.funcDef(raw)
	case SymClassDef:
		return b.classDef(raw)
	}
	panic("parser: unexpected statement symbol " + raw.Sym.String())
}

func (b *builder) simpleLine(raw *RawNode) *cst.SimpleStatementLine {
	lines, indent := splitLeading(raw.FirstToken().Leading)
	out := &cst.SimpleStatementLine{LeadingLines: lines, Indent: indent}

	ch := raw.Children
	last := len(ch) - 1 // the Newline
	for i := 0; i < last; i++ {
		var semi *cst.Semicolon
		if i+1 < last && ch[i+1].IsLeaf() && ch[i+1].Tok.Kind == TokSemicolon {
			t := ch[i+1].Tok
			semi = &cst.Semicolon{Before: b.gapBefore(t)}
			if i+2 < last {
				semi.After = b.gapAfter(t)
			}
		}
		out.Body = append(out.Body, b.smallStmt(ch[i], semi))
		if semi != nil {
			i++
		}
	}
	out.Trailing = b.trailingWS(ch[last].Tok)
	return out
}

func (b *builder) smallStmt(raw *RawNode, semi *cst.Semicolon) cst.SmallStatement {
	switch raw.Sym {
	case SymPass:
		return &cst.Pass{Semicolon: semi}
	case SymBreak:
		return &cst.Break{Semicolon: semi}
	case SymContinue:
		return &cst.Continue{Semicolon: semi}
	case SymExprStmt:
		return &cst.Expr{Value: b.expr(raw.Children[0]), Semicolon: semi}
	case SymAssign:
		return b.assign(raw, semi)
	case SymAugAssign:
		return &cst.AugAssign{
			Target:    b.expr(raw.Children[0]),
			Op:        b.op(raw.Children[1].Tok),
			Value:     b.expr(raw.Children[2]),
			Semicolon: semi,
		}
	case SymReturn:
		out := &cst.Return{Semicolon: semi}
		if len(raw.Children) > 1 {
			out.WhitespaceAfterReturn = b.gapAfter(raw.Children[0].Tok)
			out.Value = b.expr(raw.Children[1])
		}
		return out
	case SymRaise:
		return b.raise(raw, semi)
	case SymAssert:
		return b.assert(raw, semi)
	case SymDel:
		return &cst.Del{
			WhitespaceAfterDel: b.gapAfter(raw.Children[0].Tok),
			Target:             b.expr(raw.Children[1]),
			Semicolon:          semi,
		}
	case SymGlobal:
		return b.global(raw, semi)
	case SymImport:
		return b.importStmt(raw, semi)
	case SymFromImport:
		return b.fromImport(raw, semi)
	}
	panic("parser: unexpected small statement symbol " + raw.Sym.String())
}

func (b *builder) assign(raw *RawNode, semi *cst.Semicolon) *cst.Assign {
	ch := raw.Children
	out := &cst.Assign{Semicolon: semi}
	for i := 0; i+1 < len(ch); i += 2 {
		eq := ch[i+1].Tok
		out.Targets = append(out.Targets, &cst.AssignTarget{
			Target:      b.expr(ch[i]),
			BeforeEqual: b.gapBefore(eq),
			AfterEqual:  b.gapAfter(eq),
		})
	}
	out.Value = b.expr(ch[len(ch)-1])
	return out
}

func (b *builder) raise(raw *RawNode, semi *cst.Semicolon) *cst.Raise {
	ch := raw.Children
	out := &cst.Raise{Semicolon: semi}
	if len(ch) > 1 {
		out.WhitespaceAfterRaise = b.gapAfter(ch[0].Tok)
		out.Exc = b.expr(ch[1])
	}
	if len(ch) > 2 {
		from := ch[2].Tok
		out.Cause = &cst.RaiseFrom{
			BeforeFrom: b.gapBefore(from),
			AfterFrom:  b.gapAfter(from),
			Item:       b.expr(ch[3]),
		}
	}
	return out
}

func (b *builder) assert(raw *RawNode, semi *cst.Semicolon) *cst.Assert {
	ch := raw.Children
	out := &cst.Assert{
		WhitespaceAfterAssert: b.gapAfter(ch[0].Tok),
		Test:                  b.expr(ch[1]),
		Semicolon:             semi,
	}
	if len(ch) > 2 {
		comma := ch[2].Tok
		out.Comma = &cst.Comma{Before: b.gapBefore(comma), After: b.gapAfter(comma)}
		out.Msg = b.expr(ch[3])
	}
	return out
}

func (b *builder) global(raw *RawNode, semi *cst.Semicolon) *cst.Global {
	ch := raw.Children
	out := &cst.Global{
		WhitespaceAfterGlobal: b.gapAfter(ch[0].Tok),
		Semicolon:             semi,
	}
	for i := 1; i < len(ch); i += 2 {
		item := &cst.NameItem{Name: &cst.Name{Value: ch[i].Tok.Text}}
		if i+1 < len(ch) {
			comma := ch[i+1].Tok
			item.Comma = &cst.Comma{Before: b.gapBefore(comma), After: b.gapAfter(comma)}
		}
		out.Names = append(out.Names, item)
	}
	return out
}

func (b *builder) importStmt(raw *RawNode, semi *cst.Semicolon) *cst.Import {
	ch := raw.Children
	out := &cst.Import{
		WhitespaceAfterImport: b.gapAfter(ch[0].Tok),
		Semicolon:             semi,
	}
	for i := 1; i < len(ch); i += 2 {
		alias := b.dottedAsName(ch[i])
		if i+1 < len(ch) {
			comma := ch[i+1].Tok
			alias.Comma = &cst.Comma{Before: b.gapBefore(comma), After: b.gapAfter(comma)}
		}
		out.Names = append(out.Names, alias)
	}
	return out
}

func (b *builder) dottedAsName(raw *RawNode) *cst.ImportAlias {
	ch := raw.Children
	alias := &cst.ImportAlias{Name: b.dottedName(ch[0])}
	if len(ch) > 1 {
		as := ch[1].Tok
		alias.AsName = &cst.AsName{
			BeforeAs: b.gapBefore(as),
			AfterAs:  b.gapAfter(as),
			Name:     &cst.Name{Value: ch[2].Tok.Text},
		}
	}
	return alias
}

// dottedName folds "a.b.c" into the same Attribute chain an expression
// would produce.
func (b *builder) dottedName(raw *RawNode) cst.Expression {
	ch := raw.Children
	var cur cst.Expression = &cst.Name{Value: ch[0].Tok.Text}
	for i := 1; i < len(ch); i += 2 {
		dot := ch[i].Tok
		cur = &cst.Attribute{
			Value: cur,
			Dot:   cst.Dot{Before: b.gapBefore(dot), After: b.gapAfter(dot)},
			Attr:  &cst.Name{Value: ch[i+1].Tok.Text},
		}
	}
	return cur
}

func (b *builder) fromImport(raw *RawNode, semi *cst.Semicolon) *cst.ImportFrom {
	ch := raw.Children
	imp := ch[2].Tok
	out := &cst.ImportFrom{
		WhitespaceAfterFrom:    b.gapAfter(ch[0].Tok),
		Module:                 b.dottedName(ch[1]),
		WhitespaceBeforeImport: b.gapBefore(imp),
		WhitespaceAfterImport:  b.gapAfter(imp),
		Semicolon:              semi,
	}
	rest := ch[3]
	switch {
	case rest.IsLeaf() && rest.Tok.Kind == TokStar:
		out.Star = true
	case rest.IsLeaf() && rest.Tok.Kind == TokLParen:
		lp, rp := rest.Tok, ch[5].Tok
		out.LParen = &cst.LeftParen{After: b.openGap(lp, rp)}
		out.Names = b.importAsNames(ch[4])
		out.RParen = &cst.RightParen{Before: b.gapBefore(rp)}
	default:
		out.Names = b.importAsNames(rest)
	}
	return out
}

func (b *builder) importAsNames(raw *RawNode) []*cst.ImportAlias {
	ch := raw.Children
	var out []*cst.ImportAlias
	for i := 0; i < len(ch); i++ {
		if ch[i].IsLeaf() { // separating or trailing comma
			comma := ch[i].Tok
			c := &cst.Comma{Before: b.gapBefore(comma)}
			if i < len(ch)-1 {
				c.After = b.gapAfter(comma)
			}
			out[len(out)-1].Comma = c
			continue
		}
		ich := ch[i].Children
		alias := &cst.ImportAlias{Name: &cst.Name{Value: ich[0].Tok.Text}}
		if len(ich) > 1 {
			as := ich[1].Tok
			alias.AsName = &cst.AsName{
				BeforeAs: b.gapBefore(as),
				AfterAs:  b.gapAfter(as),
				Name:     &cst.Name{Value: ich[2].Tok.Text},
			}
		}
		out = append(out, alias)
	}
	return out
}

func (b *builder) block(raw *RawNode) *cst.IndentedBlock {
	ch := raw.Children
	out := &cst.IndentedBlock{Header: b.trailingWS(ch[0].Tok)}
	for _, c := range ch[2 : len(ch)-1] { // skip Newline, Indent, Dedent
		out.Body = append(out.Body, b.statement(c))
	}
	return out
}

func (b *builder) ifStmt(raw *RawNode, elif bool) *cst.If {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	out := &cst.If{
		LeadingLines:         lines,
		Indent:               indent,
		Elif:                 elif,
		WhitespaceBeforeTest: b.gapAfter(ch[0].Tok),
		Test:                 b.expr(ch[1]),
		WhitespaceAfterTest:  b.gapBefore(ch[2].Tok),
		Body:                 b.block(ch[3]),
	}
	if len(ch) > 4 {
		out.Orelse = b.orelse(ch[4])
	}
	return out
}

func (b *builder) orelse(raw *RawNode) cst.Statement {
	if raw.Sym == SymElif {
		return b.ifStmt(raw, true)
	}
	return b.elseClause(raw)
}

func (b *builder) elseClause(raw *RawNode) *cst.Else {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	return &cst.Else{
		LeadingLines:          lines,
		Indent:                indent,
		WhitespaceBeforeColon: b.gapBefore(ch[1].Tok),
		Body:                  b.block(ch[2]),
	}
}

func (b *builder) whileStmt(raw *RawNode) *cst.While {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	out := &cst.While{
		LeadingLines:          lines,
		Indent:                indent,
		WhitespaceAfterWhile:  b.gapAfter(ch[0].Tok),
		Test:                  b.expr(ch[1]),
		WhitespaceBeforeColon: b.gapBefore(ch[2].Tok),
		Body:                  b.block(ch[3]),
	}
	if len(ch) > 4 {
		out.Orelse = b.elseClause(ch[4])
	}
	return out
}

func (b *builder) forStmt(raw *RawNode) *cst.For {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	in := ch[2].Tok
	out := &cst.For{
		LeadingLines:          lines,
		Indent:                indent,
		WhitespaceAfterFor:    b.gapAfter(ch[0].Tok),
		Target:                b.expr(ch[1]),
		WhitespaceBeforeIn:    b.gapBefore(in),
		WhitespaceAfterIn:     b.gapAfter(in),
		Iter:                  b.expr(ch[3]),
		WhitespaceBeforeColon: b.gapBefore(ch[4].Tok),
		Body:                  b.block(ch[5]),
	}
	if len(ch) > 6 {
		out.Orelse = b.elseClause(ch[6])
	}
	return out
}

func (b *builder) tryStmt(raw *RawNode) *cst.Try {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	out := &cst.Try{
		LeadingLines:          lines,
		Indent:                indent,
		WhitespaceBeforeColon: b.gapBefore(ch[1].Tok),
		Body:                  b.block(ch[2]),
	}
	for _, c := range ch[3:] {
		switch c.Sym {
		case SymExcept:
			out.Handlers = append(out.Handlers, b.exceptHandler(c))
		case SymElse:
			out.Orelse = b.elseClause(c)
		case SymFinally:
			out.Finalbody = b.finallyClause(c)
		}
	}
	return out
}

func (b *builder) exceptHandler(raw *RawNode) *cst.ExceptHandler {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	out := &cst.ExceptHandler{LeadingLines: lines, Indent: indent}

	i := 1
	if !ch[i].IsLeaf() || ch[i].Tok.Kind != TokColon {
		out.WhitespaceAfterExcept = b.gapAfter(ch[0].Tok)
		out.Type = b.expr(ch[i])
		i++
		if ch[i].IsLeaf() && ch[i].Tok.Kind == TokAs {
			as := ch[i].Tok
			out.AsName = &cst.AsName{
				BeforeAs: b.gapBefore(as),
				AfterAs:  b.gapAfter(as),
				Name:     &cst.Name{Value: ch[i+1].Tok.Text},
			}
			i += 2
		}
	}
	out.WhitespaceBeforeColon = b.gapBefore(ch[i].Tok)
	out.Body = b.block(ch[i+1])
	return out
}

func (b *builder) finallyClause(raw *RawNode) *cst.Finally {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	return &cst.Finally{
		LeadingLines:          lines,
		Indent:                indent,
		WhitespaceBeforeColon: b.gapBefore(ch[1].Tok),
		Body:                  b.block(ch[2]),
	}
}

func (b *builder) withStmt(raw *RawNode) *cst.With {
	ch := raw.Children
	lines, indent := splitLeading(ch[0].Tok.Leading)
	out := &cst.With{
		LeadingLines:        lines,
		Indent:              indent,
		WhitespaceAfterWith: b.gapAfter(ch[0].Tok),
	}
	i := 1
	for ; !ch[i].IsLeaf(); i++ {
		item := ch[i]
		wi := &cst.WithItem{Item: b.expr(item.Children[0])}
		if len(item.Children) > 1 {
			as := item.Children[1].Tok
			wi.AsName = &cst.AsName{
				BeforeAs: b.gapBefore(as),
				AfterAs:  b.gapAfter(as),
				Name:     b.expr(item.Children[2]),
			}
		}
		if ch[i+1].IsLeaf() && ch[i+1].Tok.Kind == TokComma {
			comma := ch[i+1].Tok
			wi.Comma = &cst.Comma{Before: b.gapBefore(comma), After: b.gapAfter(comma)}
			i++
		}
		out.Items = append(out.Items, wi)
	}
	out.WhitespaceBeforeColon = b.gapBefore(ch[i].Tok)
	out.Body = b.block(ch[i+1])
	return out
}

// decorators splits a def or class prefix: the empty lines above the
// first decorator belong to the definition, each decorator keeps its own
// indentation, and lines between the last decorator and the keyword are
// the definition's LinesAfterDecorators.
func (b *builder) decorators(ch []*RawNode) (lead []*cst.EmptyLine, decs []*cst.Decorator, after []*cst.EmptyLine, indent string, rest []*RawNode) {
	i := 0
	for ; ch[i].Sym == SymDecorator; i++ {
		dch := ch[i].Children
		lines, dIndent := splitLeading(dch[0].Tok.Leading)
		if i == 0 {
			lead = lines
			lines = nil
		}
		decs = append(decs, &cst.Decorator{
			LeadingLines:      lines,
			Indent:            dIndent,
			WhitespaceAfterAt: b.gapAfter(dch[0].Tok),
			Decorator:         b.expr(dch[1]),
			Trailing:          b.trailingWS(dch[2].Tok),
		})
	}
	lines, indent := splitLeading(ch[i].Tok.Leading)
	if len(decs) == 0 {
		lead = lines
	} else {
		after = lines
	}
	return lead, decs, after, indent, ch[i:]
}

func (b *builder) funcDef(raw *RawNode) *cst.FunctionDef {
	lead, decs, after, indent, ch := b.decorators(raw.Children)
	// ch: def name ( params? ) : block
	var params []*cst.Param
	i := 3
	var lp, rp *Token
	lp = ch[2].Tok
	if !ch[i].IsLeaf() {
		rp = ch[i+1].Tok
		params = b.params(ch[i])
		i += 2
	} else {
		rp = ch[i].Tok
		i++
	}
	return &cst.FunctionDef{
		LeadingLines:          lead,
		Decorators:            decs,
		LinesAfterDecorators:  after,
		Indent:                indent,
		WhitespaceAfterDef:    b.gapAfter(ch[0].Tok),
		Name:                  &cst.Name{Value: ch[1].Tok.Text},
		WhitespaceAfterName:   b.gapBefore(lp),
		OpenParen:             cst.LeftParen{After: b.openGap(lp, rp)},
		Params:                params,
		CloseParen:            cst.RightParen{Before: b.gapBefore(rp)},
		WhitespaceBeforeColon: b.gapBefore(ch[i].Tok),
		Body:                  b.block(ch[i+1]),
	}
}

func (b *builder) params(raw *RawNode) []*cst.Param {
	ch := raw.Children
	var out []*cst.Param
	for i := 0; i < len(ch); i++ {
		if ch[i].IsLeaf() { // separating or trailing comma
			comma := ch[i].Tok
			c := &cst.Comma{Before: b.gapBefore(comma)}
			if i < len(ch)-1 {
				c.After = b.gapAfter(comma)
			}
			out[len(out)-1].Comma = c
			continue
		}
		pch := ch[i].Children
		p := &cst.Param{Name: &cst.Name{Value: pch[0].Tok.Text}}
		if len(pch) > 1 {
			eq := pch[1].Tok
			p.Equal = &cst.AssignEqual{Before: b.gapBefore(eq), After: b.gapAfter(eq)}
			p.Default = b.expr(pch[2])
		}
		out = append(out, p)
	}
	return out
}

func (b *builder) classDef(raw *RawNode) *cst.ClassDef {
	lead, decs, after, indent, ch := b.decorators(raw.Children)
	// ch: class name [ ( args? ) ] : block
	out := &cst.ClassDef{
		LeadingLines:         lead,
		Decorators:           decs,
		LinesAfterDecorators: after,
		Indent:               indent,
		WhitespaceAfterClass: b.gapAfter(ch[0].Tok),
		Name:                 &cst.Name{Value: ch[1].Tok.Text},
	}
	i := 2
	if ch[i].IsLeaf() && ch[i].Tok.Kind == TokLParen {
		lp := ch[i].Tok
		i++
		var rp *Token
		if !ch[i].IsLeaf() {
			rp = ch[i+1].Tok
			out.Args = b.args(ch[i])
			i += 2
		} else {
			rp = ch[i].Tok
			i++
		}
		out.WhitespaceAfterName = b.gapBefore(lp)
		out.OpenParen = &cst.LeftParen{After: b.openGap(lp, rp)}
		out.CloseParen = &cst.RightParen{Before: b.gapBefore(rp)}
	}
	out.WhitespaceBeforeColon = b.gapBefore(ch[i].Tok)
	out.Body = b.block(ch[i+1])
	return out
}

func (b *builder) op(t *Token) cst.Op {
	return cst.Op{Before: b.gapBefore(t), Token: t.Text, After: b.gapAfter(t)}
}

func (b *builder) expr(raw *RawNode) cst.Expression {
	if raw.IsLeaf() {
		return b.atomLeaf(raw.Tok)
	}
	switch raw.Sym {
	case SymExprList, SymTargetList:
		return &cst.Tuple{Elements: b.elements(raw.Children)}
	case SymOr, SymAnd:
		return b.booleanChain(raw.Children)
	case SymNot:
		t := raw.Children[0].Tok
		return &cst.UnaryOp{
			Op:         cst.Op{Token: t.Text, After: b.gapAfter(t)},
			Expression: b.expr(raw.Children[1]),
		}
	case SymComparison:
		return b.comparison(raw.Children)
	case SymBitOr, SymBitXor, SymBitAnd, SymShift, SymArith, SymTerm:
		return b.binaryChain(raw.Children)
	case SymFactor:
		t := raw.Children[0].Tok
		return &cst.UnaryOp{
			Op:         cst.Op{Token: t.Text, After: b.gapAfter(t)},
			Expression: b.expr(raw.Children[1]),
		}
	case SymPower:
		return &cst.BinaryOp{
			Left:  b.expr(raw.Children[0]),
			Op:    b.op(raw.Children[1].Tok),
			Right: b.expr(raw.Children[2]),
		}
	case SymAtomExpr:
		return b.atomExpr(raw.Children)
	case SymParen:
		return b.paren(raw.Children)
	case SymListDisplay:
		return b.listDisplay(raw.Children)
	case SymDictDisplay:
		return b.dictDisplay(raw.Children)
	}
	panic("parser: unexpected expression symbol " + raw.Sym.String())
}

func (b *builder) atomLeaf(t *Token) cst.Expression {
	switch t.Kind {
	case TokName, TokTrue, TokFalse, TokNone:
		return &cst.Name{Value: t.Text}
	case TokInt:
		return &cst.Integer{Value: t.Text}
	case TokFloat:
		return &cst.Float{Value: t.Text}
	case TokString:
		return &cst.SimpleString{Value: t.Text}
	}
	panic("parser: unexpected atom token " + t.Kind.String())
}

func (b *builder) booleanChain(ch []*RawNode) cst.Expression {
	cur := b.expr(ch[0])
	for i := 1; i < len(ch); i += 2 {
		cur = &cst.BooleanOp{
			Left:  cur,
			Op:    b.op(ch[i].Tok),
			Right: b.expr(ch[i+1]),
		}
	}
	return cur
}

func (b *builder) binaryChain(ch []*RawNode) cst.Expression {
	cur := b.expr(ch[0])
	for i := 1; i < len(ch); i += 2 {
		cur = &cst.BinaryOp{
			Left:  cur,
			Op:    b.op(ch[i].Tok),
			Right: b.expr(ch[i+1]),
		}
	}
	return cur
}

func (b *builder) comparison(ch []*RawNode) cst.Expression {
	out := &cst.Comparison{Left: b.expr(ch[0])}
	for i := 1; i < len(ch); {
		first := ch[i].Tok
		op := cst.CompOp{Before: b.gapBefore(first), Token: first.Text}
		i++
		twoWord := first.Kind == TokNot ||
			(first.Kind == TokIs && ch[i].IsLeaf() && ch[i].Tok.Kind == TokNot)
		if twoWord {
			second := ch[i].Tok
			op.Between = b.gapBefore(second)
			op.Second = second.Text
			op.After = b.gapAfter(second)
			i++
		} else {
			op.After = b.gapAfter(first)
		}
		out.Comparisons = append(out.Comparisons, &cst.ComparisonTarget{
			Operator:   op,
			Comparator: b.expr(ch[i]),
		})
		i++
	}
	return out
}

func (b *builder) atomExpr(ch []*RawNode) cst.Expression {
	cur := b.expr(ch[0])
	for _, trailer := range ch[1:] {
		tch := trailer.Children
		switch trailer.Sym {
		case SymAttrTrailer:
			dot := tch[0].Tok
			cur = &cst.Attribute{
				Value: cur,
				Dot:   cst.Dot{Before: b.gapBefore(dot), After: b.gapAfter(dot)},
				Attr:  &cst.Name{Value: tch[1].Tok.Text},
			}
		case SymSubTrailer:
			lb, rb := tch[0].Tok, tch[2].Tok
			cur = &cst.Subscript{
				Value:                cur,
				WhitespaceAfterValue: b.gapBefore(lb),
				LBracket:             cst.LeftSquareBracket{After: b.gapAfter(lb)},
				Index:                b.expr(tch[1]),
				RBracket:             cst.RightSquareBracket{Before: b.gapBefore(rb)},
			}
		case SymCallTrailer:
			lp := tch[0].Tok
			rp := tch[len(tch)-1].Tok
			call := &cst.Call{
				Func:                cur,
				WhitespaceAfterFunc: b.gapBefore(lp),
				OpenParen:           cst.LeftParen{After: b.openGap(lp, rp)},
				CloseParen:          cst.RightParen{Before: b.gapBefore(rp)},
			}
			if len(tch) == 3 {
				call.Args = b.args(tch[1])
			}
			cur = call
		}
	}
	return cur
}

func (b *builder) args(raw *RawNode) []*cst.Arg {
	ch := raw.Children
	var out []*cst.Arg
	for i := 0; i < len(ch); i++ {
		if ch[i].IsLeaf() { // separating or trailing comma
			comma := ch[i].Tok
			c := &cst.Comma{Before: b.gapBefore(comma)}
			if i < len(ch)-1 {
				c.After = b.gapAfter(comma)
			}
			out[len(out)-1].Comma = c
			continue
		}
		ach := ch[i].Children
		arg := &cst.Arg{}
		if len(ach) == 3 {
			eq := ach[1].Tok
			arg.Keyword = &cst.Name{Value: ach[0].Tok.Text}
			arg.Equal = &cst.AssignEqual{Before: b.gapBefore(eq), After: b.gapAfter(eq)}
			arg.Value = b.expr(ach[2])
		} else {
			arg.Value = b.expr(ach[0])
		}
		out = append(out, arg)
	}
	return out
}

func (b *builder) paren(ch []*RawNode) cst.Expression {
	lp := ch[0].Tok
	rp := ch[len(ch)-1].Tok
	if len(ch) == 2 { // the empty tuple
		return &cst.Tuple{
			LPar: []cst.LeftParen{{After: b.openGap(lp, rp)}},
			RPar: []cst.RightParen{{Before: b.gapBefore(rp)}},
		}
	}
	inner := b.expr(ch[1])
	return cst.Parenthesize(inner,
		cst.LeftParen{After: b.gapAfter(lp)},
		cst.RightParen{Before: b.gapBefore(rp)},
	)
}

// elements converts an expression list's children, assigning each comma
// to the element before it. A trailing comma keeps After == "": the gap
// after it belongs to the surrounding slot.
func (b *builder) elements(ch []*RawNode) []*cst.Element {
	var out []*cst.Element
	for i := 0; i < len(ch); i++ {
		// Atoms can be leaves too; only a comma token is a separator.
		if ch[i].IsLeaf() && ch[i].Tok.Kind == TokComma {
			comma := ch[i].Tok
			c := &cst.Comma{Before: b.gapBefore(comma)}
			if i < len(ch)-1 {
				c.After = b.gapAfter(comma)
			}
			out[len(out)-1].Comma = c
			continue
		}
		out = append(out, &cst.Element{Value: b.expr(ch[i])})
	}
	return out
}

func (b *builder) listDisplay(ch []*RawNode) cst.Expression {
	lb := ch[0].Tok
	rb := ch[len(ch)-1].Tok
	out := &cst.List{
		LBracket: cst.LeftSquareBracket{After: b.openGap(lb, rb)},
		RBracket: cst.RightSquareBracket{Before: b.gapBefore(rb)},
	}
	if len(ch) == 3 {
		inner := ch[1]
		if inner.Sym == SymExprList {
			out.Elements = b.elements(inner.Children)
		} else {
			out.Elements = []*cst.Element{{Value: b.expr(inner)}}
		}
	}
	return out
}

func (b *builder) dictDisplay(ch []*RawNode) cst.Expression {
	lb := ch[0].Tok
	rb := ch[len(ch)-1].Tok
	out := &cst.Dict{
		LBrace: cst.LeftCurlyBrace{After: b.openGap(lb, rb)},
		RBrace: cst.RightCurlyBrace{Before: b.gapBefore(rb)},
	}
	for i := 1; i < len(ch)-1; i++ {
		if ch[i].IsLeaf() {
			comma := ch[i].Tok
			c := &cst.Comma{Before: b.gapBefore(comma)}
			if i < len(ch)-2 {
				c.After = b.gapAfter(comma)
			}
			out.Elements[len(out.Elements)-1].Comma = c
			continue
		}
		ich := ch[i].Children
		colon := ich[1].Tok
		out.Elements = append(out.Elements, &cst.DictElement{
			Key:         b.expr(ich[0]),
			BeforeColon: b.gapBefore(colon),
			AfterColon:  b.gapAfter(colon),
			Value:       b.expr(ich[2]),
		})
	}
	return out
}
