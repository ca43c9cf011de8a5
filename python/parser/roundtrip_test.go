package parser

import (
	"testing"

	"github.com/pycst/pycst/python/cst"
)

var roundTripSources = []string{
	"",
	"pass\n",
	"x = 1\n",
	"x = 1",
	"x  =   1\n",
	"x=1\n",
	"x = 1  # trailing\n",
	"# header\n\nx = 1\n\n\n# footer\n",
	"a = 1; b = 2\n",
	"a = 1 ;b = 2 ;\n",
	"x = y = f( a , b )\n",
	"x += 1\ny **= 2\n",
	"a, b = b, a\n",
	"x = 1,\n",
	"x = (1,)\n",
	"x = ()\n",
	"x = ( )\n",
	"x = ((a))\n",
	"x = (1,\n     2)\n",
	"x = [1, 2,]\n",
	"x = [ ]\n",
	"x = {'a': 1, 'b': 2}\n",
	"x = {}\n",
	"x = 1 + \\\n    2\n",
	"x = not a or b and c\n",
	"x = a < b <= c\n",
	"x = a is not b not in c\n",
	"x = -2 ** -3 ** 4\n",
	"x = obj.attr .method ( arg ) [0]\n",
	"return x\n",
	"return\n",
	"raise\n",
	"raise ValueError('bad') from err\n",
	"assert cond , 'msg'\n",
	"del x , y\n",
	"global a, b\n",
	"import os, sys as system\n",
	"import os.path.join\n",
	"from os import *\n",
	"from os import path , sep as s\n",
	"from os import (\n    path,\n    sep,\n)\n",
	"if x:\n    pass\n",
	"if x:  # comment\n    pass\nelif y:\n    pass\nelse:\n    pass\n",
	"if a:\n    if b:\n        pass\n    y = 1\nz = 2\n",
	"while x:\n    break\nelse:\n    continue\n",
	"for i in range(10):\n    print(i)\nelse:\n    pass\n",
	"for k, v in items:\n    total += v\n",
	"for i, in x:\n    pass\n",
	"for obj.attr in seq:\n    pass\n",
	"def f(a, b=2, c = 3,):\n    return a\n",
	"def f():\n    '''doc'''\n",
	"@deco\n@mod.deco(arg)\ndef f():\n    pass\n",
	"# before\n\n@deco\n# between\ndef f():\n    pass\n",
	"class C:\n    pass\n",
	"class C():\n    pass\n",
	"class C(Base, meta=M):\n    x = 1\n\n    def m(self):\n        pass\n",
	"try:\n    pass\nexcept ValueError as e:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n",
	"with open(p) as f , lock :\n    pass\n",
	"s = 'it\\'s'\nt = \"\"\"multi\nline\"\"\"\n",
	"x = 1\n\n\ny = 2   # aligned\n\nz = 3\n",
	"if x:\n\n    # leading comment in block\n    pass\n",
	"while True:\n    x = 1\n    # trailing comment in block\n\ny = 2\n",
}

func TestParseRoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		t.Run(src, func(t *testing.T) {
			for _, backend := range []Backend{BackendFast, BackendReference} {
				module, err := Parse([]byte(src), WithBackend(backend))
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				if got := cst.Render(module); got != src {
					t.Errorf("render = %q, want %q", got, src)
				}
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		src  string
		want string // type description via the concrete statement
	}{
		{"pass\n", "*cst.SimpleStatementLine"},
		{"if x:\n    pass\n", "*cst.If"},
		{"def f():\n    pass\n", "*cst.FunctionDef"},
		{"# note\nx = 1  # done\n", "*cst.SimpleStatementLine"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmt, err := ParseStatement([]byte(tt.src))
			if err != nil {
				t.Fatalf("ParseStatement: %v", err)
			}
			if got := typeName(stmt); got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
			if got := cst.Render(stmt); got != tt.src {
				t.Errorf("render = %q, want %q", got, tt.src)
			}
		})
	}
}

func typeName(n cst.Node) string {
	switch n.(type) {
	case *cst.SimpleStatementLine:
		return "*cst.SimpleStatementLine"
	case *cst.If:
		return "*cst.If"
	case *cst.FunctionDef:
		return "*cst.FunctionDef"
	}
	return "?"
}

func TestParseStatementRejectsExtraInput(t *testing.T) {
	bad := []string{
		"x = 1\ny = 2\n",
		"x = 1\n# dangling comment\n",
	}
	for _, src := range bad {
		if _, err := ParseStatement([]byte(src)); err == nil {
			t.Errorf("ParseStatement(%q) = nil error, want failure", src)
		}
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src    string
		render string
	}{
		{"1 + 2", "1 + 2"},
		{"1 + 2\n", "1 + 2"},
		{"f(a, b=1)", "f(a, b=1)"},
		{"(a)", "(a)"},
		{"a.b[c]", "a.b[c]"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := ParseExpression([]byte(tt.src))
			if err != nil {
				t.Fatalf("ParseExpression: %v", err)
			}
			if got := cst.Render(expr); got != tt.render {
				t.Errorf("render = %q, want %q", got, tt.render)
			}
		})
	}
}

func TestParseExpressionRejectsTrivia(t *testing.T) {
	bad := []string{
		" 1 + 2",
		"1 + 2 ",
		"1 + 2  # comment\n",
		"# comment\n1 + 2",
		"1 + 2\n\n",
	}
	for _, src := range bad {
		if _, err := ParseExpression([]byte(src)); err == nil {
			t.Errorf("ParseExpression(%q) = nil error, want failure", src)
		}
	}
}

// Structural spot checks: the builder must attribute trivia to the right
// tree attributes, not only render correctly in aggregate.
func TestBuildStructure(t *testing.T) {
	module, err := Parse([]byte("# header\n\nx = 1  # trailing\n\ny = 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(module.Body) != 2 {
		t.Fatalf("body length = %d, want 2", len(module.Body))
	}

	first, ok := module.Body[0].(*cst.SimpleStatementLine)
	if !ok {
		t.Fatalf("first statement is %T", module.Body[0])
	}
	if len(first.LeadingLines) != 2 {
		t.Fatalf("leading lines = %d, want 2", len(first.LeadingLines))
	}
	if first.LeadingLines[0].Comment != "# header" {
		t.Errorf("leading comment = %q", first.LeadingLines[0].Comment)
	}
	if first.Trailing.Comment != "# trailing" || first.Trailing.Whitespace != "  " {
		t.Errorf("trailing = %+v", first.Trailing)
	}

	second, ok := module.Body[1].(*cst.SimpleStatementLine)
	if !ok {
		t.Fatalf("second statement is %T", module.Body[1])
	}
	if len(second.LeadingLines) != 1 || second.LeadingLines[0].Comment != "" {
		t.Errorf("second leading lines = %+v", second.LeadingLines)
	}
}

func TestBuildIndentOwnership(t *testing.T) {
	module, err := Parse([]byte("if x:\n    pass\n"))
	if err != nil {
		t.Fatal(err)
	}
	ifStmt, ok := module.Body[0].(*cst.If)
	if !ok {
		t.Fatalf("statement is %T", module.Body[0])
	}
	inner, ok := ifStmt.Body.Body[0].(*cst.SimpleStatementLine)
	if !ok {
		t.Fatalf("inner is %T", ifStmt.Body.Body[0])
	}
	if inner.Indent != "    " {
		t.Errorf("indent = %q, want four spaces", inner.Indent)
	}
	if ifStmt.Indent != "" {
		t.Errorf("if indent = %q, want empty", ifStmt.Indent)
	}
}

func TestBuildElif(t *testing.T) {
	module, err := Parse([]byte("if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"))
	if err != nil {
		t.Fatal(err)
	}
	ifStmt := module.Body[0].(*cst.If)
	if ifStmt.Elif {
		t.Error("outer if flagged as elif")
	}
	elif, ok := ifStmt.Orelse.(*cst.If)
	if !ok {
		t.Fatalf("orelse is %T, want *cst.If", ifStmt.Orelse)
	}
	if !elif.Elif {
		t.Error("elif not flagged")
	}
	if _, ok := elif.Orelse.(*cst.Else); !ok {
		t.Fatalf("elif orelse is %T, want *cst.Else", elif.Orelse)
	}
}

func TestBuildFooter(t *testing.T) {
	module, err := Parse([]byte("x = 1\n\n# footer comment\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(module.Footer) != 2 {
		t.Fatalf("footer = %d lines, want 2", len(module.Footer))
	}
	if module.Footer[1].Comment != "# footer comment" {
		t.Errorf("footer comment = %q", module.Footer[1].Comment)
	}
}

func TestBuildBareTuple(t *testing.T) {
	module, err := Parse([]byte("x = 1, 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	line := module.Body[0].(*cst.SimpleStatementLine)
	assign := line.Body[0].(*cst.Assign)
	tuple, ok := assign.Value.(*cst.Tuple)
	if !ok {
		t.Fatalf("value is %T, want *cst.Tuple", assign.Value)
	}
	if len(tuple.LPar) != 0 || len(tuple.RPar) != 0 {
		t.Error("bare tuple should carry no parentheses")
	}
	if len(tuple.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(tuple.Elements))
	}
	first := tuple.Elements[0]
	if _, ok := first.Value.(*cst.Integer); !ok {
		t.Errorf("first element is %T, want *cst.Integer", first.Value)
	}
	if first.Comma == nil || first.Comma.Before != "" || first.Comma.After != " " {
		t.Errorf("first comma = %+v, want {Before:\"\" After:\" \"}", first.Comma)
	}
	if tuple.Elements[1].Comma != nil {
		t.Errorf("last element has a comma: %+v", tuple.Elements[1].Comma)
	}
}

func TestBuildForTargets(t *testing.T) {
	module, err := Parse([]byte("for k, v in items:\n    pass\n"))
	if err != nil {
		t.Fatal(err)
	}
	forStmt, ok := module.Body[0].(*cst.For)
	if !ok {
		t.Fatalf("statement is %T, want *cst.For", module.Body[0])
	}
	target, ok := forStmt.Target.(*cst.Tuple)
	if !ok {
		t.Fatalf("target is %T, want *cst.Tuple", forStmt.Target)
	}
	if len(target.Elements) != 2 {
		t.Fatalf("targets = %d, want 2", len(target.Elements))
	}
	if _, ok := forStmt.Iter.(*cst.Name); !ok {
		t.Errorf("iter is %T, want *cst.Name", forStmt.Iter)
	}
	if forStmt.WhitespaceBeforeIn != " " || forStmt.WhitespaceAfterIn != " " {
		t.Errorf("in spacing = %q/%q", forStmt.WhitespaceBeforeIn, forStmt.WhitespaceAfterIn)
	}
}

func TestBuildParenthesizedExpression(t *testing.T) {
	expr, err := ParseExpression([]byte("((a))"))
	if err != nil {
		t.Fatal(err)
	}
	name, ok := expr.(*cst.Name)
	if !ok {
		t.Fatalf("expression is %T, want *cst.Name", expr)
	}
	if len(name.LPar) != 2 || len(name.RPar) != 2 {
		t.Errorf("paren counts = %d/%d, want 2/2", len(name.LPar), len(name.RPar))
	}
}
