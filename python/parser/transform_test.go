package parser

import (
	"reflect"
	"testing"

	"github.com/pycst/pycst/python/cst"
)

type opRewriter struct {
	cst.BaseVisitor
}

func (opRewriter) Leave(n cst.Node, c *cst.Cursor) cst.Rewrite {
	if bin, ok := n.(*cst.BinaryOp); ok && bin.Op.Token == "+" {
		out, err := cst.WithChanges(bin, cst.Changes{"Right": cst.NewInteger("2")})
		if err != nil {
			return cst.Keep()
		}
		return cst.Replace(out)
	}
	return cst.Keep()
}

// Editing one operand must leave every other byte alone, including the
// irregular spacing around the assignment.
func TestTransformPreservesSpacing(t *testing.T) {
	module, err := Parse([]byte("x =  1+1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cst.Render(module); got != "x =  1+1\n" {
		t.Fatalf("round trip = %q", got)
	}

	out, err := cst.Walk(module, opRewriter{})
	if err != nil {
		t.Fatal(err)
	}
	if got := cst.Render(out); got != "x =  1+2\n" {
		t.Errorf("render = %q, want %q", got, "x =  1+2\n")
	}
	if got := cst.Render(module); got != "x =  1+1\n" {
		t.Errorf("original tree changed: %q", got)
	}
}

type blockEmptier struct {
	cst.BaseVisitor
}

func (blockEmptier) Leave(n cst.Node, c *cst.Cursor) cst.Rewrite {
	if _, ok := c.Parent().(*cst.IndentedBlock); ok {
		return cst.Remove()
	}
	return cst.Keep()
}

func TestTransformEmptyBlockKeepsSurroundings(t *testing.T) {
	module, err := Parse([]byte("# setup\nif cond:  # guard\n    x = 1\n    y = 2\nz = 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	out, err := cst.Walk(module, blockEmptier{})
	if err != nil {
		t.Fatal(err)
	}
	want := "# setup\nif cond:  # guard\nz = 3\n"
	if got := cst.Render(out); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

// Rendered output of a parsed tree must parse again into the same tree.
func TestReparseStability(t *testing.T) {
	for _, src := range roundTripSources {
		t.Run(src, func(t *testing.T) {
			first, err := Parse([]byte(src))
			if err != nil {
				t.Fatal(err)
			}
			second, err := Parse([]byte(cst.Render(first)))
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Error("reparsed tree differs from the original")
			}
		})
	}
}

func TestNoOpTransformIsIdentity(t *testing.T) {
	for _, src := range roundTripSources {
		module, err := Parse([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		out, err := cst.Walk(module, cst.BaseVisitor{})
		if err != nil {
			t.Fatal(err)
		}
		if out != cst.Node(module) {
			t.Errorf("no-op walk of %q rebuilt the tree", src)
		}
	}
}
