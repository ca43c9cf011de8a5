package parser

// The grammar is expressed as ordered alternatives per symbol, interpreted
// by the reference backend (engine.go). Matching is greedy with
// backtracking; choice takes the first alternative that matches.
// Sequences, repetitions and options flatten their matches into the
// enclosing production's children, so only symbol references introduce
// parse tree nodes. Symbols in the transparent set collapse to their only
// child when the production matched exactly one node; this keeps the
// trees of both backends byte-identical (the hand-written backend never
// wraps single operands in precedence-level nodes either).

type rule interface{ isRule() }

type seqRule []rule
type choiceRule []rule
type optRule struct{ body rule }
type starRule struct{ body rule }
type plusRule struct{ body rule }
type tokRule TokenKind
type symRule Symbol

func (seqRule) isRule()    {}
func (choiceRule) isRule() {}
func (optRule) isRule()    {}
func (starRule) isRule()   {}
func (plusRule) isRule()   {}
func (tokRule) isRule()    {}
func (symRule) isRule()    {}

func seq(rs ...rule) rule    { return seqRule(rs) }
func choice(rs ...rule) rule { return choiceRule(rs) }
func opt(r rule) rule        { return optRule{r} }
func star(r rule) rule       { return starRule{r} }
func plus(r rule) rule       { return plusRule{r} }
func tok(k TokenKind) rule   { return tokRule(k) }
func sym(s Symbol) rule      { return symRule(s) }

// statement is shared by File, StatementInput and Block. Compound forms
// are keyword-led and disjoint; SimpleLine is the catch-all.
var statement = choice(
	sym(SymIf), sym(SymWhile), sym(SymFor), sym(SymTry), sym(SymWith),
	sym(SymFuncDef), sym(SymClassDef), sym(SymSimpleLine),
)

var smallStatement = choice(
	sym(SymPass), sym(SymBreak), sym(SymContinue), sym(SymReturn),
	sym(SymRaise), sym(SymAssert), sym(SymDel), sym(SymGlobal),
	sym(SymFromImport), sym(SymImport),
	sym(SymAugAssign), sym(SymAssign), sym(SymExprStmt),
)

var augOp = choice(
	tok(TokPlusAssign), tok(TokMinusAssign), tok(TokStarAssign),
	tok(TokSlashAssign), tok(TokDoubleSlashAssign), tok(TokPercentAssign),
	tok(TokAtAssign), tok(TokAndAssign), tok(TokOrAssign), tok(TokXorAssign),
	tok(TokShlAssign), tok(TokShrAssign), tok(TokPowerAssign),
)

// comparison operators; two-word forms first so they win over their prefixes
var compOp = choice(
	tok(TokEQ), tok(TokNE), tok(TokLE), tok(TokGE), tok(TokLT), tok(TokGT),
	seq(tok(TokNot), tok(TokIn)), tok(TokIn),
	seq(tok(TokIs), tok(TokNot)), tok(TokIs),
)

var atom = choice(
	tok(TokName), tok(TokInt), tok(TokFloat), tok(TokString),
	tok(TokTrue), tok(TokFalse), tok(TokNone),
	sym(SymParen), sym(SymListDisplay), sym(SymDictDisplay),
)

var trailer = choice(sym(SymCallTrailer), sym(SymSubTrailer), sym(SymAttrTrailer))

var grammar = map[Symbol]rule{
	SymFile:           seq(star(statement), tok(TokEOF)),
	SymStatementInput: seq(statement, tok(TokEOF)),
	SymExprInput:      seq(sym(SymExprList), opt(tok(TokNewline)), tok(TokEOF)),

	SymSimpleLine: seq(
		smallStatement,
		star(seq(tok(TokSemicolon), smallStatement)),
		opt(tok(TokSemicolon)),
		tok(TokNewline),
	),

	SymExprStmt:  seq(sym(SymExprList)),
	SymAssign:    seq(sym(SymExprList), plus(seq(tok(TokAssign), sym(SymExprList)))),
	SymAugAssign: seq(sym(SymOr), augOp, sym(SymExprList)),
	SymReturn:    seq(tok(TokReturn), opt(sym(SymExprList))),
	SymPass:      seq(tok(TokPass)),
	SymBreak:     seq(tok(TokBreak)),
	SymContinue:  seq(tok(TokContinue)),

	SymImport:       seq(tok(TokImport), sym(SymDottedAsName), star(seq(tok(TokComma), sym(SymDottedAsName)))),
	SymDottedAsName: seq(sym(SymDottedName), opt(seq(tok(TokAs), tok(TokName)))),
	SymDottedName:   seq(tok(TokName), star(seq(tok(TokDot), tok(TokName)))),
	SymFromImport: seq(
		tok(TokFrom), sym(SymDottedName), tok(TokImport),
		choice(
			tok(TokStar),
			seq(tok(TokLParen), sym(SymImportAsNames), tok(TokRParen)),
			sym(SymImportAsNames),
		),
	),
	SymImportAsNames: seq(sym(SymImportAsName), star(seq(tok(TokComma), sym(SymImportAsName))), opt(tok(TokComma))),
	SymImportAsName:  seq(tok(TokName), opt(seq(tok(TokAs), tok(TokName)))),

	SymRaise:  seq(tok(TokRaise), opt(seq(sym(SymOr), opt(seq(tok(TokFrom), sym(SymOr)))))),
	SymAssert: seq(tok(TokAssert), sym(SymOr), opt(seq(tok(TokComma), sym(SymOr)))),
	SymDel:    seq(tok(TokDel), sym(SymExprList)),
	SymGlobal: seq(tok(TokGlobal), tok(TokName), star(seq(tok(TokComma), tok(TokName)))),

	SymIf:    seq(tok(TokIf), sym(SymOr), tok(TokColon), sym(SymBlock), opt(choice(sym(SymElif), sym(SymElse)))),
	SymElif:  seq(tok(TokElif), sym(SymOr), tok(TokColon), sym(SymBlock), opt(choice(sym(SymElif), sym(SymElse)))),
	SymElse:  seq(tok(TokElse), tok(TokColon), sym(SymBlock)),
	SymWhile: seq(tok(TokWhile), sym(SymOr), tok(TokColon), sym(SymBlock), opt(sym(SymElse))),
	// The loop target sits below the comparison level: a full ExprList
	// would swallow the "in" keyword as a comparison operator.
	SymFor: seq(
		tok(TokFor), sym(SymTargetList), tok(TokIn), sym(SymExprList),
		tok(TokColon), sym(SymBlock), opt(sym(SymElse)),
	),

	SymFuncDef: seq(
		star(sym(SymDecorator)),
		tok(TokDef), tok(TokName),
		tok(TokLParen), opt(sym(SymParams)), tok(TokRParen),
		tok(TokColon), sym(SymBlock),
	),
	SymDecorator: seq(tok(TokAt), sym(SymAtomExpr), tok(TokNewline)),
	SymParams:    seq(sym(SymParam), star(seq(tok(TokComma), sym(SymParam))), opt(tok(TokComma))),
	SymParam:     seq(tok(TokName), opt(seq(tok(TokAssign), sym(SymOr)))),
	SymClassDef: seq(
		star(sym(SymDecorator)),
		tok(TokClass), tok(TokName),
		opt(seq(tok(TokLParen), opt(sym(SymArgs)), tok(TokRParen))),
		tok(TokColon), sym(SymBlock),
	),

	SymWith:     seq(tok(TokWith), sym(SymWithItem), star(seq(tok(TokComma), sym(SymWithItem))), tok(TokColon), sym(SymBlock)),
	SymWithItem: seq(sym(SymOr), opt(seq(tok(TokAs), sym(SymAtomExpr)))),
	SymTry: seq(
		tok(TokTry), tok(TokColon), sym(SymBlock),
		choice(
			seq(plus(sym(SymExcept)), opt(sym(SymElse)), opt(sym(SymFinally))),
			sym(SymFinally),
		),
	),
	SymExcept: seq(
		tok(TokExcept),
		opt(seq(sym(SymOr), opt(seq(tok(TokAs), tok(TokName))))),
		tok(TokColon), sym(SymBlock),
	),
	SymFinally: seq(tok(TokFinally), tok(TokColon), sym(SymBlock)),
	SymBlock:   seq(tok(TokNewline), tok(TokIndent), plus(statement), tok(TokDedent)),

	SymExprList:   seq(sym(SymOr), star(seq(tok(TokComma), sym(SymOr))), opt(tok(TokComma))),
	SymTargetList: seq(sym(SymBitOr), star(seq(tok(TokComma), sym(SymBitOr))), opt(tok(TokComma))),
	SymOr:         seq(sym(SymAnd), star(seq(tok(TokOr), sym(SymAnd)))),
	SymAnd:        seq(sym(SymNot), star(seq(tok(TokAnd), sym(SymNot)))),
	SymNot:        choice(seq(tok(TokNot), sym(SymNot)), sym(SymComparison)),
	SymComparison: seq(sym(SymBitOr), star(seq(compOp, sym(SymBitOr)))),
	SymBitOr:      seq(sym(SymBitXor), star(seq(tok(TokBitOr), sym(SymBitXor)))),
	SymBitXor:     seq(sym(SymBitAnd), star(seq(tok(TokBitXor), sym(SymBitAnd)))),
	SymBitAnd:     seq(sym(SymShift), star(seq(tok(TokBitAnd), sym(SymShift)))),
	SymShift:      seq(sym(SymArith), star(seq(choice(tok(TokShl), tok(TokShr)), sym(SymArith)))),
	SymArith:      seq(sym(SymTerm), star(seq(choice(tok(TokPlus), tok(TokMinus)), sym(SymTerm)))),
	SymTerm: seq(sym(SymFactor), star(seq(
		choice(tok(TokStar), tok(TokSlash), tok(TokDoubleSlash), tok(TokPercent), tok(TokAt)),
		sym(SymFactor),
	))),
	SymFactor:   choice(seq(choice(tok(TokPlus), tok(TokMinus), tok(TokTilde)), sym(SymFactor)), sym(SymPower)),
	SymPower:    seq(sym(SymAtomExpr), opt(seq(tok(TokPower), sym(SymFactor)))),
	SymAtomExpr: seq(atom, star(trailer)),

	SymCallTrailer: seq(tok(TokLParen), opt(sym(SymArgs)), tok(TokRParen)),
	SymSubTrailer:  seq(tok(TokLBracket), sym(SymExprList), tok(TokRBracket)),
	SymAttrTrailer: seq(tok(TokDot), tok(TokName)),
	SymArgs:        seq(sym(SymArg), star(seq(tok(TokComma), sym(SymArg))), opt(tok(TokComma))),
	SymArg:         choice(seq(tok(TokName), tok(TokAssign), sym(SymOr)), sym(SymOr)),

	SymParen:       seq(tok(TokLParen), opt(sym(SymExprList)), tok(TokRParen)),
	SymListDisplay: seq(tok(TokLBracket), opt(sym(SymExprList)), tok(TokRBracket)),
	SymDictDisplay: seq(
		tok(TokLBrace),
		opt(seq(sym(SymDictItem), star(seq(tok(TokComma), sym(SymDictItem))), opt(tok(TokComma)))),
		tok(TokRBrace),
	),
	SymDictItem: seq(sym(SymOr), tok(TokColon), sym(SymOr)),
}

// transparent symbols collapse to their only child when they matched a
// single node, so trivial precedence levels leave no trace in the tree.
var transparent = map[Symbol]bool{
	SymExprList:   true,
	SymTargetList: true,
	SymOr:         true,
	SymAnd:        true,
	SymNot:        true,
	SymComparison: true,
	SymBitOr:      true,
	SymBitXor:     true,
	SymBitAnd:     true,
	SymShift:      true,
	SymArith:      true,
	SymTerm:       true,
	SymFactor:     true,
	SymPower:      true,
	SymAtomExpr:   true,
}
