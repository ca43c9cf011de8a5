package cst

import (
	"strings"
	"testing"
)

func TestRenderConstructedTree(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"assignment",
			NewLine(NewAssign(NewName("x"), NewInteger("1"))),
			"x = 1\n",
		},
		{
			"call",
			NewCall(NewName("f"), NewName("a"), NewInteger("2")),
			"f(a, 2)",
		},
		{
			"nested call",
			NewCall(NewName("print"), NewCall(NewName("len"), NewName("xs"))),
			"print(len(xs))",
		},
		{
			"binary op",
			&BinaryOp{Left: NewName("a"), Op: SpacedOp("+"), Right: NewInteger("1")},
			"a + 1",
		},
		{
			"parenthesized",
			Parenthesize(NewName("x"), LeftParen{}, RightParen{}),
			"(x)",
		},
		{
			"string literal",
			NewSimpleString("'hello'"),
			"'hello'",
		},
		{
			"return with value",
			NewLine(&Return{WhitespaceAfterReturn: " ", Value: NewName("x")}),
			"return x\n",
		},
		{
			"tuple",
			&Tuple{Elements: []*Element{
				{Value: NewInteger("1"), Comma: DefaultComma()},
				{Value: NewInteger("2")},
			}},
			"1, 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.node); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderConstructedIf(t *testing.T) {
	node := &If{
		WhitespaceBeforeTest: " ",
		Test:                 NewName("cond"),
		Body: &IndentedBlock{
			Header: TrailingWhitespace{Newline: "\n"},
			Body: []Statement{
				&SimpleStatementLine{
					Indent:   "    ",
					Body:     []SmallStatement{&Pass{}},
					Trailing: TrailingWhitespace{Newline: "\n"},
				},
			},
		},
		Orelse: &Else{
			Body: &IndentedBlock{
				Header: TrailingWhitespace{Newline: "\n"},
				Body: []Statement{
					&SimpleStatementLine{
						Indent:   "    ",
						Body:     []SmallStatement{&Pass{}},
						Trailing: TrailingWhitespace{Newline: "\n"},
					},
				},
			},
		},
	}
	want := "if cond:\n    pass\nelse:\n    pass\n"
	if got := Render(node); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestParenthesizeDoesNotMutate(t *testing.T) {
	name := NewName("x")
	wrapped := Parenthesize(name, LeftParen{}, RightParen{})
	if len(name.LPar) != 0 || len(name.RPar) != 0 {
		t.Error("input expression was mutated")
	}
	if Render(wrapped) != "(x)" {
		t.Errorf("render = %q", Render(wrapped))
	}
	again := Parenthesize(wrapped, LeftParen{After: " "}, RightParen{Before: " "})
	if Render(again) != "( (x) )" {
		t.Errorf("render = %q", Render(again))
	}
}

func TestDump(t *testing.T) {
	out := Dump(NewAssign(NewName("x"), NewInteger("1")))
	for _, want := range []string{"Assign", "Name", `"x"`, "Integer", `"1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	// zero-valued fields stay out of the dump
	if strings.Contains(out, "Semicolon") {
		t.Errorf("dump shows empty optional field:\n%s", out)
	}
}
