package cst

import (
	"errors"
	"reflect"
	"testing"
)

func twoLineModule() *Module {
	return &Module{Body: []Statement{
		NewLine(NewAssign(NewName("x"), NewInteger("1"))),
		NewLine(NewAssign(NewName("y"), NewInteger("2"))),
	}}
}

type leaveFunc func(n Node, c *Cursor) Rewrite

type rewriter struct {
	BaseVisitor
	leave leaveFunc
}

func (r rewriter) Leave(n Node, c *Cursor) Rewrite { return r.leave(n, c) }

func TestWalkNoOpSharesRoot(t *testing.T) {
	module := twoLineModule()
	out, err := Walk(module, BaseVisitor{})
	if err != nil {
		t.Fatal(err)
	}
	if out != Node(module) {
		t.Error("unchanged tree should come back as the same pointer")
	}
}

func TestWalkReplaceSharesSiblings(t *testing.T) {
	module := twoLineModule()
	out, err := Walk(module, rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if lit, ok := n.(*Integer); ok && lit.Value == "1" {
			return Replace(NewInteger("42"))
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	got := out.(*Module)
	if got == module {
		t.Fatal("rewritten tree should be a new root")
	}
	if Render(got) != "x = 42\ny = 2\n" {
		t.Errorf("render = %q", Render(got))
	}
	if got.Body[1] != module.Body[1] {
		t.Error("untouched sibling should be shared with the input")
	}
	if Render(module) != "x = 1\ny = 2\n" {
		t.Error("input tree was mutated")
	}
}

func TestWalkRemoveStatement(t *testing.T) {
	module := twoLineModule()
	out, err := Walk(module, rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if line, ok := n.(*SimpleStatementLine); ok {
			if a, ok := line.Body[0].(*Assign); ok {
				if name, ok := a.Targets[0].Target.(*Name); ok && name.Value == "y" {
					return Remove()
				}
			}
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if Render(out) != "x = 1\n" {
		t.Errorf("render = %q", Render(out))
	}
}

func TestWalkSpliceStatements(t *testing.T) {
	module := &Module{Body: []Statement{
		NewLine(NewAssign(NewName("x"), NewInteger("1"))),
	}}
	out, err := Walk(module, rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if _, ok := n.(*SimpleStatementLine); ok {
			return Splice(
				NewLine(NewAssign(NewName("a"), NewInteger("1"))),
				NewLine(NewAssign(NewName("b"), NewInteger("2"))),
			)
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if Render(out) != "a = 1\nb = 2\n" {
		t.Errorf("render = %q", Render(out))
	}
}

func TestWalkElementRewrites(t *testing.T) {
	newList := func() *List {
		return &List{Elements: []*Element{
			{Value: NewInteger("1"), Comma: DefaultComma()},
			{Value: NewInteger("2")},
		}}
	}

	t.Run("remove drops the element and its comma", func(t *testing.T) {
		out, err := Walk(newList(), rewriter{leave: func(n Node, c *Cursor) Rewrite {
			if lit, ok := n.(*Integer); ok && lit.Value == "1" {
				return Remove()
			}
			return Keep()
		}})
		if err != nil {
			t.Fatal(err)
		}
		if Render(out) != "[2]" {
			t.Errorf("render = %q", Render(out))
		}
	})

	t.Run("splice separates with default commas", func(t *testing.T) {
		out, err := Walk(newList(), rewriter{leave: func(n Node, c *Cursor) Rewrite {
			if lit, ok := n.(*Integer); ok && lit.Value == "1" {
				return Splice(NewName("a"), NewName("b"))
			}
			return Keep()
		}})
		if err != nil {
			t.Fatal(err)
		}
		if Render(out) != "[a, b, 2]" {
			t.Errorf("render = %q", Render(out))
		}
	})
}

func TestWalkShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		root  Node
		leave leaveFunc
	}{
		{
			"remove required child",
			twoLineModule(),
			func(n Node, c *Cursor) Rewrite {
				if lit, ok := n.(*Integer); ok && lit.Value == "1" {
					return Remove()
				}
				return Keep()
			},
		},
		{
			"remove the only assignment target",
			twoLineModule(),
			func(n Node, c *Cursor) Rewrite {
				if name, ok := n.(*Name); ok && name.Value == "x" {
					return Remove()
				}
				return Keep()
			},
		},
		{
			"splice at the root",
			twoLineModule(),
			func(n Node, c *Cursor) Rewrite {
				if _, ok := n.(*Module); ok {
					return Splice(NewLine(&Pass{}), NewLine(&Pass{}))
				}
				return Keep()
			},
		},
		{
			"replace with incompatible type",
			twoLineModule(),
			func(n Node, c *Cursor) Rewrite {
				if lit, ok := n.(*Integer); ok && lit.Value == "1" {
					return Replace(NewLine(&Pass{}))
				}
				return Keep()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Walk(tt.root, rewriter{leave: tt.leave})
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("err = %v, want *ShapeError", err)
			}
		})
	}
}

func TestWalkEmptyBlock(t *testing.T) {
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
	}
	out, err := Walk(node, rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if _, ok := n.(*SimpleStatementLine); ok {
			return Remove()
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	// The emptied block keeps the header line around it.
	if Render(out) != "if cond:\n" {
		t.Errorf("render = %q", Render(out))
	}
}

func TestWalkRemoveRoot(t *testing.T) {
	out, err := Walk(twoLineModule(), rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if _, ok := n.(*Module); ok {
			return Remove()
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("out = %v, want nil", out)
	}
}

type recordingVisitor struct {
	BaseVisitor
	parents   map[string]string
	ancestors int
}

func (v *recordingVisitor) Enter(n Node, c *Cursor) bool {
	if name, ok := n.(*Name); ok {
		v.parents[name.Value] = typeName(c.Parent())
		if name.Value == "x" {
			v.ancestors = len(c.Ancestors())
		}
	}
	return true
}

func TestCursorContext(t *testing.T) {
	module := twoLineModule()
	v := &recordingVisitor{parents: make(map[string]string)}
	if _, err := Walk(module, v); err != nil {
		t.Fatal(err)
	}
	if v.parents["x"] != "*cst.Assign" {
		t.Errorf("parent of x = %s, want *cst.Assign", v.parents["x"])
	}
	// Name -> Assign -> SimpleStatementLine -> Module
	if v.ancestors != 3 {
		t.Errorf("ancestors of x = %d, want 3", v.ancestors)
	}
}

func TestCursorValues(t *testing.T) {
	module := twoLineModule()
	seen := 0
	_, err := Walk(module, rewriter{leave: func(n Node, c *Cursor) Rewrite {
		if _, ok := n.(*Name); ok {
			count := 0
			if v, ok := c.Get("names"); ok {
				count = v.(int)
			}
			c.Set("names", count+1)
		}
		if _, ok := n.(*Module); ok {
			if v, ok := c.Get("names"); ok {
				seen = v.(int)
			}
		}
		return Keep()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 2 {
		t.Errorf("names seen = %d, want 2", seen)
	}
}

func TestInspect(t *testing.T) {
	module := twoLineModule()
	var names []string
	Inspect(module, func(n Node) bool {
		if name, ok := n.(*Name); ok {
			names = append(names, name.Value)
		}
		return true
	})
	if !reflect.DeepEqual(names, []string{"x", "y"}) {
		t.Errorf("names = %v", names)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	module := twoLineModule()
	count := 0
	Inspect(module, func(n Node) bool {
		count++
		_, isModule := n.(*Module)
		return isModule // descend into the module only
	})
	// the module and its two statement lines
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}
