package parser

// descent is the hand-written high-performance backend. It produces parse
// trees byte-identical to the reference backend's: the same symbols, the
// same flat operator chains, and the same single-child collapsing (an
// operand without an operator is returned bare, never wrapped in a
// precedence-level node). Any change here must keep compare_test.go green
// against the grammar tables.
type descent struct {
	toks []Token
	pos  int
}

func newDescent(toks []Token) *descent {
	return &descent{toks: toks}
}

func (p *descent) peek() *Token {
	return &p.toks[p.pos]
}

func (p *descent) peekN(n int) *Token {
	if p.pos+n >= len(p.toks) {
		return &p.toks[len(p.toks)-1]
	}
	return &p.toks[p.pos+n]
}

func (p *descent) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *descent) take() *RawNode {
	t := &p.toks[p.pos]
	p.pos++
	return leaf(t)
}

func (p *descent) expect(kind TokenKind) (*RawNode, error) {
	if p.at(kind) {
		return p.take(), nil
	}
	return nil, p.errExpected(kind)
}

func (p *descent) errExpected(kinds ...TokenKind) error {
	found := *p.peek()
	return &ParseError{Pos: found.Span.Start, Found: found, Expected: kinds}
}

func node(sym Symbol, children ...*RawNode) *RawNode {
	return &RawNode{Sym: sym, Children: children}
}

var exprStart = map[TokenKind]bool{
	TokName: true, TokInt: true, TokFloat: true, TokString: true,
	TokTrue: true, TokFalse: true, TokNone: true,
	TokLParen: true, TokLBracket: true, TokLBrace: true,
	TokNot: true, TokPlus: true, TokMinus: true, TokTilde: true,
}

func (p *descent) atExprStart() bool {
	return exprStart[p.peek().Kind]
}

var augOps = map[TokenKind]bool{
	TokPlusAssign: true, TokMinusAssign: true, TokStarAssign: true,
	TokSlashAssign: true, TokDoubleSlashAssign: true, TokPercentAssign: true,
	TokAtAssign: true, TokAndAssign: true, TokOrAssign: true,
	TokXorAssign: true, TokShlAssign: true, TokShrAssign: true,
	TokPowerAssign: true,
}

func (p *descent) parseFile() (*RawNode, error) {
	var children []*RawNode
	for !p.at(TokEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	children = append(children, p.take())
	return node(SymFile, children...), nil
}

func (p *descent) parseStatementInput() (*RawNode, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	eof, err := p.expect(TokEOF)
	if err != nil {
		return nil, err
	}
	return node(SymStatementInput, stmt, eof), nil
}

func (p *descent) parseExprInput() (*RawNode, error) {
	children := make([]*RawNode, 0, 3)
	expr, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	children = append(children, expr)
	if p.at(TokNewline) {
		children = append(children, p.take())
	}
	eof, err := p.expect(TokEOF)
	if err != nil {
		return nil, err
	}
	return node(SymExprInput, append(children, eof)...), nil
}

func (p *descent) parseStatement() (*RawNode, error) {
	switch p.peek().Kind {
	case TokIf:
		return p.parseIf(SymIf, TokIf)
	case TokWhile:
		return p.parseWhile()
	case TokFor:
		return p.parseFor()
	case TokTry:
		return p.parseTry()
	case TokWith:
		return p.parseWith()
	case TokDef:
		return p.parseFuncDef(nil)
	case TokClass:
		return p.parseClassDef(nil)
	case TokAt:
		return p.parseDecorated()
	default:
		return p.parseSimpleLine()
	}
}

// parseDecorated parses the decorator list shared by def and class.
func (p *descent) parseDecorated() (*RawNode, error) {
	var decorators []*RawNode
	for p.at(TokAt) {
		dec, err := p.parseDecorator()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, dec)
	}
	switch p.peek().Kind {
	case TokDef:
		return p.parseFuncDef(decorators)
	case TokClass:
		return p.parseClassDef(decorators)
	}
	return nil, p.errExpected(TokDef, TokClass)
}

func (p *descent) parseDecorator() (*RawNode, error) {
	at := p.take()
	expr, err := p.parseAtomExpr()
	if err != nil {
		return nil, err
	}
	nl, err := p.expect(TokNewline)
	if err != nil {
		return nil, err
	}
	return node(SymDecorator, at, expr, nl), nil
}

func (p *descent) parseSimpleLine() (*RawNode, error) {
	small, err := p.parseSmallStatement()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{small}
	for p.at(TokSemicolon) {
		children = append(children, p.take())
		if !p.atSmallStatementStart() {
			break
		}
		small, err = p.parseSmallStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, small)
	}
	nl, err := p.expect(TokNewline)
	if err != nil {
		return nil, err
	}
	return node(SymSimpleLine, append(children, nl)...), nil
}

func (p *descent) atSmallStatementStart() bool {
	switch p.peek().Kind {
	case TokPass, TokBreak, TokContinue, TokReturn, TokRaise, TokAssert,
		TokDel, TokGlobal, TokImport, TokFrom:
		return true
	}
	return p.atExprStart()
}

func (p *descent) parseSmallStatement() (*RawNode, error) {
	switch p.peek().Kind {
	case TokPass:
		return node(SymPass, p.take()), nil
	case TokBreak:
		return node(SymBreak, p.take()), nil
	case TokContinue:
		return node(SymContinue, p.take()), nil
	case TokReturn:
		return p.parseReturn()
	case TokRaise:
		return p.parseRaise()
	case TokAssert:
		return p.parseAssert()
	case TokDel:
		return p.parseDel()
	case TokGlobal:
		return p.parseGlobal()
	case TokImport:
		return p.parseImport()
	case TokFrom:
		return p.parseFromImport()
	default:
		return p.parseExprFamily()
	}
}

// parseExprFamily covers expression statements, assignment chains and
// augmented assignment, which share a common prefix.
func (p *descent) parseExprFamily() (*RawNode, error) {
	first, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	if augOps[p.peek().Kind] && first.Sym != SymExprList {
		op := p.take()
		value, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return node(SymAugAssign, first, op, value), nil
	}

	if p.at(TokAssign) {
		children := []*RawNode{first}
		for p.at(TokAssign) {
			children = append(children, p.take())
			next, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			children = append(children, next)
		}
		return node(SymAssign, children...), nil
	}

	return node(SymExprStmt, first), nil
}

func (p *descent) parseReturn() (*RawNode, error) {
	kw := p.take()
	if !p.atExprStart() {
		return node(SymReturn, kw), nil
	}
	value, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	return node(SymReturn, kw, value), nil
}

func (p *descent) parseRaise() (*RawNode, error) {
	kw := p.take()
	if !p.atExprStart() {
		return node(SymRaise, kw), nil
	}
	exc, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, exc}
	if p.at(TokFrom) {
		children = append(children, p.take())
		cause, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, cause)
	}
	return node(SymRaise, children...), nil
}

func (p *descent) parseAssert() (*RawNode, error) {
	kw := p.take()
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, test}
	if p.at(TokComma) {
		children = append(children, p.take())
		msg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, msg)
	}
	return node(SymAssert, children...), nil
}

func (p *descent) parseDel() (*RawNode, error) {
	kw := p.take()
	target, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	return node(SymDel, kw, target), nil
}

func (p *descent) parseGlobal() (*RawNode, error) {
	kw := p.take()
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, name}
	for p.at(TokComma) {
		children = append(children, p.take())
		name, err = p.expect(TokName)
		if err != nil {
			return nil, err
		}
		children = append(children, name)
	}
	return node(SymGlobal, children...), nil
}

func (p *descent) parseImport() (*RawNode, error) {
	kw := p.take()
	first, err := p.parseDottedAsName()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, first}
	for p.at(TokComma) {
		children = append(children, p.take())
		next, err := p.parseDottedAsName()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(SymImport, children...), nil
}

func (p *descent) parseDottedAsName() (*RawNode, error) {
	name, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{name}
	if p.at(TokAs) {
		children = append(children, p.take())
		alias, err := p.expect(TokName)
		if err != nil {
			return nil, err
		}
		children = append(children, alias)
	}
	return node(SymDottedAsName, children...), nil
}

func (p *descent) parseDottedName() (*RawNode, error) {
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{name}
	for p.at(TokDot) {
		children = append(children, p.take())
		name, err = p.expect(TokName)
		if err != nil {
			return nil, err
		}
		children = append(children, name)
	}
	return node(SymDottedName, children...), nil
}

func (p *descent) parseFromImport() (*RawNode, error) {
	kw := p.take()
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	imp, err := p.expect(TokImport)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, module, imp}

	switch p.peek().Kind {
	case TokStar:
		children = append(children, p.take())
	case TokLParen:
		children = append(children, p.take())
		names, err := p.parseImportAsNames()
		if err != nil {
			return nil, err
		}
		children = append(children, names)
		rpar, err := p.expect(TokRParen)
		if err != nil {
			return nil, err
		}
		children = append(children, rpar)
	default:
		names, err := p.parseImportAsNames()
		if err != nil {
			return nil, err
		}
		children = append(children, names)
	}
	return node(SymFromImport, children...), nil
}

func (p *descent) parseImportAsNames() (*RawNode, error) {
	first, err := p.parseImportAsName()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{first}
	for p.at(TokComma) {
		children = append(children, p.take())
		if !p.at(TokName) {
			break
		}
		next, err := p.parseImportAsName()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(SymImportAsNames, children...), nil
}

func (p *descent) parseImportAsName() (*RawNode, error) {
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{name}
	if p.at(TokAs) {
		children = append(children, p.take())
		alias, err := p.expect(TokName)
		if err != nil {
			return nil, err
		}
		children = append(children, alias)
	}
	return node(SymImportAsName, children...), nil
}

func (p *descent) parseIf(sym Symbol, kw TokenKind) (*RawNode, error) {
	kwLeaf, err := p.expect(kw)
	if err != nil {
		return nil, err
	}
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kwLeaf, test, colon, body}

	switch p.peek().Kind {
	case TokElif:
		orelse, err := p.parseIf(SymElif, TokElif)
		if err != nil {
			return nil, err
		}
		children = append(children, orelse)
	case TokElse:
		orelse, err := p.parseElse()
		if err != nil {
			return nil, err
		}
		children = append(children, orelse)
	}
	return node(sym, children...), nil
}

func (p *descent) parseElse() (*RawNode, error) {
	kw := p.take()
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymElse, kw, colon, body), nil
}

func (p *descent) parseWhile() (*RawNode, error) {
	kw := p.take()
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, test, colon, body}
	if p.at(TokElse) {
		orelse, err := p.parseElse()
		if err != nil {
			return nil, err
		}
		children = append(children, orelse)
	}
	return node(SymWhile, children...), nil
}

func (p *descent) parseFor() (*RawNode, error) {
	kw := p.take()
	target, err := p.parseTargetList()
	if err != nil {
		return nil, err
	}
	in, err := p.expect(TokIn)
	if err != nil {
		return nil, err
	}
	iter, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, target, in, iter, colon, body}
	if p.at(TokElse) {
		orelse, err := p.parseElse()
		if err != nil {
			return nil, err
		}
		children = append(children, orelse)
	}
	return node(SymFor, children...), nil
}

func (p *descent) parseTry() (*RawNode, error) {
	kw := p.take()
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, colon, body}

	if p.at(TokExcept) {
		for p.at(TokExcept) {
			handler, err := p.parseExcept()
			if err != nil {
				return nil, err
			}
			children = append(children, handler)
		}
		if p.at(TokElse) {
			orelse, err := p.parseElse()
			if err != nil {
				return nil, err
			}
			children = append(children, orelse)
		}
		if p.at(TokFinally) {
			fin, err := p.parseFinally()
			if err != nil {
				return nil, err
			}
			children = append(children, fin)
		}
		return node(SymTry, children...), nil
	}
	if p.at(TokFinally) {
		fin, err := p.parseFinally()
		if err != nil {
			return nil, err
		}
		return node(SymTry, append(children, fin)...), nil
	}
	return nil, p.errExpected(TokExcept, TokFinally)
}

func (p *descent) parseExcept() (*RawNode, error) {
	kw := p.take()
	children := []*RawNode{kw}
	if !p.at(TokColon) {
		typ, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, typ)
		if p.at(TokAs) {
			children = append(children, p.take())
			name, err := p.expect(TokName)
			if err != nil {
				return nil, err
			}
			children = append(children, name)
		}
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymExcept, append(children, colon, body)...), nil
}

func (p *descent) parseFinally() (*RawNode, error) {
	kw := p.take()
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymFinally, kw, colon, body), nil
}

func (p *descent) parseWith() (*RawNode, error) {
	kw := p.take()
	item, err := p.parseWithItem()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{kw, item}
	for p.at(TokComma) {
		children = append(children, p.take())
		item, err = p.parseWithItem()
		if err != nil {
			return nil, err
		}
		children = append(children, item)
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymWith, append(children, colon, body)...), nil
}

func (p *descent) parseWithItem() (*RawNode, error) {
	item, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{item}
	if p.at(TokAs) {
		children = append(children, p.take())
		target, err := p.parseAtomExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, target)
	}
	return node(SymWithItem, children...), nil
}

func (p *descent) parseFuncDef(decorators []*RawNode) (*RawNode, error) {
	children := append([]*RawNode{}, decorators...)
	children = append(children, p.take()) // def
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	lpar, err := p.expect(TokLParen)
	if err != nil {
		return nil, err
	}
	children = append(children, name, lpar)
	if !p.at(TokRParen) {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		children = append(children, params)
	}
	rpar, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymFuncDef, append(children, rpar, colon, body)...), nil
}

func (p *descent) parseParams() (*RawNode, error) {
	param, err := p.parseParam()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{param}
	for p.at(TokComma) {
		children = append(children, p.take())
		if !p.at(TokName) {
			break
		}
		param, err = p.parseParam()
		if err != nil {
			return nil, err
		}
		children = append(children, param)
	}
	return node(SymParams, children...), nil
}

func (p *descent) parseParam() (*RawNode, error) {
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{name}
	if p.at(TokAssign) {
		children = append(children, p.take())
		def, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, def)
	}
	return node(SymParam, children...), nil
}

func (p *descent) parseClassDef(decorators []*RawNode) (*RawNode, error) {
	children := append([]*RawNode{}, decorators...)
	children = append(children, p.take()) // class
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	children = append(children, name)
	if p.at(TokLParen) {
		children = append(children, p.take())
		if !p.at(TokRParen) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			children = append(children, args)
		}
		rpar, err := p.expect(TokRParen)
		if err != nil {
			return nil, err
		}
		children = append(children, rpar)
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node(SymClassDef, append(children, colon, body)...), nil
}

func (p *descent) parseBlock() (*RawNode, error) {
	nl, err := p.expect(TokNewline)
	if err != nil {
		return nil, err
	}
	indent, err := p.expect(TokIndent)
	if err != nil {
		return nil, err
	}
	children := []*RawNode{nl, indent}
	for !p.at(TokDedent) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	children = append(children, p.take())
	return node(SymBlock, children...), nil
}

func (p *descent) parseExprList() (*RawNode, error) {
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.at(TokComma) {
		return first, nil
	}
	children := []*RawNode{first}
	for p.at(TokComma) {
		children = append(children, p.take())
		if !p.atExprStart() {
			break
		}
		next, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(SymExprList, children...), nil
}

// parseTargetList parses a loop target: a comma list one level below the
// comparisons, so the "in" keyword stays the loop's own.
func (p *descent) parseTargetList() (*RawNode, error) {
	first, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if !p.at(TokComma) {
		return first, nil
	}
	children := []*RawNode{first}
	for p.at(TokComma) {
		children = append(children, p.take())
		if !p.atExprStart() || p.at(TokNot) {
			break
		}
		next, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(SymTargetList, children...), nil
}

// chainLevel parses one left-associative operator level with a flat chain
// of operands and operator tokens, collapsing to the operand when no
// operator is present.
func (p *descent) chainLevel(sym Symbol, operand func() (*RawNode, error), ops ...TokenKind) (*RawNode, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	match := func() bool {
		for _, k := range ops {
			if p.at(k) {
				return true
			}
		}
		return false
	}
	if !match() {
		return first, nil
	}
	children := []*RawNode{first}
	for match() {
		children = append(children, p.take())
		next, err := operand()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(sym, children...), nil
}

func (p *descent) parseOr() (*RawNode, error) {
	return p.chainLevel(SymOr, p.parseAnd, TokOr)
}

func (p *descent) parseAnd() (*RawNode, error) {
	return p.chainLevel(SymAnd, p.parseNot, TokAnd)
}

func (p *descent) parseNot() (*RawNode, error) {
	if p.at(TokNot) {
		kw := p.take()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return node(SymNot, kw, operand), nil
	}
	return p.parseComparison()
}

func (p *descent) atCompOp() bool {
	switch p.peek().Kind {
	case TokEQ, TokNE, TokLE, TokGE, TokLT, TokGT, TokIn, TokIs:
		return true
	case TokNot:
		return p.peekN(1).Kind == TokIn
	}
	return false
}

func (p *descent) parseComparison() (*RawNode, error) {
	first, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if !p.atCompOp() {
		return first, nil
	}
	children := []*RawNode{first}
	for p.atCompOp() {
		op := p.take()
		children = append(children, op)
		switch {
		case op.Tok.Kind == TokNot: // not in
			in, err := p.expect(TokIn)
			if err != nil {
				return nil, err
			}
			children = append(children, in)
		case op.Tok.Kind == TokIs && p.at(TokNot): // is not
			children = append(children, p.take())
		}
		next, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return node(SymComparison, children...), nil
}

func (p *descent) parseBitOr() (*RawNode, error) {
	return p.chainLevel(SymBitOr, p.parseBitXor, TokBitOr)
}

func (p *descent) parseBitXor() (*RawNode, error) {
	return p.chainLevel(SymBitXor, p.parseBitAnd, TokBitXor)
}

func (p *descent) parseBitAnd() (*RawNode, error) {
	return p.chainLevel(SymBitAnd, p.parseShift, TokBitAnd)
}

func (p *descent) parseShift() (*RawNode, error) {
	return p.chainLevel(SymShift, p.parseArith, TokShl, TokShr)
}

func (p *descent) parseArith() (*RawNode, error) {
	return p.chainLevel(SymArith, p.parseTerm, TokPlus, TokMinus)
}

func (p *descent) parseTerm() (*RawNode, error) {
	return p.chainLevel(SymTerm, p.parseFactor, TokStar, TokSlash, TokDoubleSlash, TokPercent, TokAt)
}

func (p *descent) parseFactor() (*RawNode, error) {
	switch p.peek().Kind {
	case TokPlus, TokMinus, TokTilde:
		op := p.take()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return node(SymFactor, op, operand), nil
	}
	return p.parsePower()
}

func (p *descent) parsePower() (*RawNode, error) {
	base, err := p.parseAtomExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(TokPower) {
		return base, nil
	}
	op := p.take()
	exp, err := p.parseFactor() // right-associative via factor recursion
	if err != nil {
		return nil, err
	}
	return node(SymPower, base, op, exp), nil
}

func (p *descent) parseAtomExpr() (*RawNode, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	var trailers []*RawNode
	for {
		switch p.peek().Kind {
		case TokLParen:
			t, err := p.parseCallTrailer()
			if err != nil {
				return nil, err
			}
			trailers = append(trailers, t)
		case TokLBracket:
			t, err := p.parseSubTrailer()
			if err != nil {
				return nil, err
			}
			trailers = append(trailers, t)
		case TokDot:
			t, err := p.parseAttrTrailer()
			if err != nil {
				return nil, err
			}
			trailers = append(trailers, t)
		default:
			if len(trailers) == 0 {
				return atom, nil
			}
			return node(SymAtomExpr, append([]*RawNode{atom}, trailers...)...), nil
		}
	}
}

func (p *descent) parseCallTrailer() (*RawNode, error) {
	lpar := p.take()
	children := []*RawNode{lpar}
	if !p.at(TokRParen) {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		children = append(children, args)
	}
	rpar, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	return node(SymCallTrailer, append(children, rpar)...), nil
}

func (p *descent) parseSubTrailer() (*RawNode, error) {
	lbr := p.take()
	index, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	rbr, err := p.expect(TokRBracket)
	if err != nil {
		return nil, err
	}
	return node(SymSubTrailer, lbr, index, rbr), nil
}

func (p *descent) parseAttrTrailer() (*RawNode, error) {
	dot := p.take()
	name, err := p.expect(TokName)
	if err != nil {
		return nil, err
	}
	return node(SymAttrTrailer, dot, name), nil
}

func (p *descent) parseArgs() (*RawNode, error) {
	arg, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	children := []*RawNode{arg}
	for p.at(TokComma) {
		children = append(children, p.take())
		if !p.atExprStart() {
			break
		}
		arg, err = p.parseArg()
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
	}
	return node(SymArgs, children...), nil
}

func (p *descent) parseArg() (*RawNode, error) {
	if p.at(TokName) && p.peekN(1).Kind == TokAssign {
		name := p.take()
		eq := p.take()
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return node(SymArg, name, eq, value), nil
	}
	value, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return node(SymArg, value), nil
}

func (p *descent) parseAtom() (*RawNode, error) {
	switch p.peek().Kind {
	case TokName, TokInt, TokFloat, TokString, TokTrue, TokFalse, TokNone:
		return p.take(), nil
	case TokLParen:
		return p.parseParen()
	case TokLBracket:
		return p.parseListDisplay()
	case TokLBrace:
		return p.parseDictDisplay()
	}
	return nil, p.errExpected(
		TokName, TokInt, TokFloat, TokString, TokTrue, TokFalse, TokNone,
		TokLParen, TokLBracket, TokLBrace, TokNot, TokPlus, TokMinus, TokTilde,
	)
}

func (p *descent) parseParen() (*RawNode, error) {
	lpar := p.take()
	children := []*RawNode{lpar}
	if !p.at(TokRParen) {
		inner, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		children = append(children, inner)
	}
	rpar, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	return node(SymParen, append(children, rpar)...), nil
}

func (p *descent) parseListDisplay() (*RawNode, error) {
	lbr := p.take()
	children := []*RawNode{lbr}
	if !p.at(TokRBracket) {
		inner, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		children = append(children, inner)
	}
	rbr, err := p.expect(TokRBracket)
	if err != nil {
		return nil, err
	}
	return node(SymListDisplay, append(children, rbr)...), nil
}

func (p *descent) parseDictDisplay() (*RawNode, error) {
	lbr := p.take()
	children := []*RawNode{lbr}
	if !p.at(TokRBrace) {
		item, err := p.parseDictItem()
		if err != nil {
			return nil, err
		}
		children = append(children, item)
		for p.at(TokComma) {
			children = append(children, p.take())
			if p.at(TokRBrace) {
				break
			}
			item, err = p.parseDictItem()
			if err != nil {
				return nil, err
			}
			children = append(children, item)
		}
	}
	rbr, err := p.expect(TokRBrace)
	if err != nil {
		return nil, err
	}
	return node(SymDictDisplay, append(children, rbr)...), nil
}

func (p *descent) parseDictItem() (*RawNode, error) {
	key, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	value, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return node(SymDictItem, key, colon, value), nil
}
