package parser

import "strings"

// Symbol identifies a grammar production in the untyped parse tree.
type Symbol int

const (
	SymNone Symbol = iota

	SymFile
	SymStatementInput
	SymExprInput

	SymSimpleLine
	SymExprStmt
	SymAssign
	SymAugAssign
	SymReturn
	SymPass
	SymBreak
	SymContinue
	SymImport
	SymDottedAsName
	SymDottedName
	SymFromImport
	SymImportAsName
	SymImportAsNames
	SymRaise
	SymAssert
	SymDel
	SymGlobal

	SymIf
	SymElif
	SymElse
	SymWhile
	SymFor
	SymFuncDef
	SymDecorator
	SymParams
	SymParam
	SymClassDef
	SymWith
	SymWithItem
	SymTry
	SymExcept
	SymFinally
	SymBlock

	SymExprList
	SymTargetList
	SymOr
	SymAnd
	SymNot
	SymComparison
	SymBitOr
	SymBitXor
	SymBitAnd
	SymShift
	SymArith
	SymTerm
	SymFactor
	SymPower
	SymAtomExpr
	SymCallTrailer
	SymSubTrailer
	SymAttrTrailer
	SymArgs
	SymArg
	SymParen
	SymListDisplay
	SymDictDisplay
	SymDictItem
)

var symbolNames = map[Symbol]string{
	SymNone:           "None",
	SymFile:           "File",
	SymStatementInput: "StatementInput",
	SymExprInput:      "ExprInput",
	SymSimpleLine:     "SimpleLine",
	SymExprStmt:       "ExprStmt",
	SymAssign:         "Assign",
	SymAugAssign:      "AugAssign",
	SymReturn:         "Return",
	SymPass:           "Pass",
	SymBreak:          "Break",
	SymContinue:       "Continue",
	SymImport:         "Import",
	SymDottedAsName:   "DottedAsName",
	SymDottedName:     "DottedName",
	SymFromImport:     "FromImport",
	SymImportAsName:   "ImportAsName",
	SymImportAsNames:  "ImportAsNames",
	SymRaise:          "Raise",
	SymAssert:         "Assert",
	SymDel:            "Del",
	SymGlobal:         "Global",
	SymIf:             "If",
	SymElif:           "Elif",
	SymElse:           "Else",
	SymWhile:          "While",
	SymFor:            "For",
	SymFuncDef:        "FuncDef",
	SymDecorator:      "Decorator",
	SymParams:         "Params",
	SymParam:          "Param",
	SymClassDef:       "ClassDef",
	SymWith:           "With",
	SymWithItem:       "WithItem",
	SymTry:            "Try",
	SymExcept:         "Except",
	SymFinally:        "Finally",
	SymBlock:          "Block",
	SymExprList:       "ExprList",
	SymTargetList:     "TargetList",
	SymOr:             "Or",
	SymAnd:            "And",
	SymNot:            "Not",
	SymComparison:     "Comparison",
	SymBitOr:          "BitOr",
	SymBitXor:         "BitXor",
	SymBitAnd:         "BitAnd",
	SymShift:          "Shift",
	SymArith:          "Arith",
	SymTerm:           "Term",
	SymFactor:         "Factor",
	SymPower:          "Power",
	SymAtomExpr:       "AtomExpr",
	SymCallTrailer:    "CallTrailer",
	SymSubTrailer:     "SubTrailer",
	SymAttrTrailer:    "AttrTrailer",
	SymArgs:           "Args",
	SymArg:            "Arg",
	SymParen:          "Paren",
	SymListDisplay:    "ListDisplay",
	SymDictDisplay:    "DictDisplay",
	SymDictItem:       "DictItem",
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return "Unknown"
}

// RawNode is a node in the untyped parse tree shared by both parser
// backends. Leaf nodes wrap a token (Tok non-nil, Sym == SymNone);
// interior nodes carry a production symbol and ordered children. The
// parse tree is transient: the CST builder consumes it and it is not
// part of the public parse result.
type RawNode struct {
	Sym      Symbol
	Children []*RawNode
	Tok      *Token
}

func leaf(tok *Token) *RawNode {
	return &RawNode{Tok: tok}
}

func (n *RawNode) IsLeaf() bool {
	return n.Tok != nil
}

// FirstToken returns the first token in source order under this node.
func (n *RawNode) FirstToken() *Token {
	if n.Tok != nil {
		return n.Tok
	}
	for _, c := range n.Children {
		if t := c.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last token in source order under this node.
func (n *RawNode) LastToken() *Token {
	if n.Tok != nil {
		return n.Tok
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].LastToken(); t != nil {
			return t
		}
	}
	return nil
}

func (n *RawNode) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *RawNode) dump(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	if n.Tok != nil {
		sb.WriteString(n.Tok.Kind.String())
		if n.Tok.Text != "" && n.Tok.Kind.String() != n.Tok.Text {
			sb.WriteString(" ")
			sb.WriteString(n.Tok.Text)
		}
		sb.WriteString("\n")
		return
	}
	sb.WriteString(n.Sym.String())
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.dump(sb, indent+1)
	}
}
