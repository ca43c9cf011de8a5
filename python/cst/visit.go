package cst

import "fmt"

// Rewrite is the verdict a visitor's Leave returns for the node it just
// finished: keep it, replace it, remove it, or splice several nodes into
// its place in the parent sequence.
type Rewrite struct {
	kind  rewriteKind
	nodes []Node
}

type rewriteKind int

const (
	keepKind rewriteKind = iota
	replaceKind
	removeKind
	spliceKind
)

// Keep leaves the node as is.
func Keep() Rewrite { return Rewrite{kind: keepKind} }

// Replace substitutes n for the visited node. The replacement must fit
// the slot it lands in or the walk fails with a *ShapeError.
func Replace(n Node) Rewrite { return Rewrite{kind: replaceKind, nodes: []Node{n}} }

// Remove drops the node. Removing from a slot the grammar requires fails
// with a *ShapeError.
func Remove() Rewrite { return Rewrite{kind: removeKind} }

// Splice substitutes any number of nodes for the visited node. Only
// sequence positions accept a splice.
func Splice(nodes ...Node) Rewrite { return Rewrite{kind: spliceKind, nodes: nodes} }

// Visitor observes and rewrites a tree. Enter runs before a node's
// children are visited; returning false skips them. Leave runs after and
// sees the node with any child rewrites already applied.
type Visitor interface {
	Enter(n Node, c *Cursor) bool
	Leave(n Node, c *Cursor) Rewrite
}

// BaseVisitor visits everything and changes nothing. Embed it to
// implement only the hooks a visitor needs.
type BaseVisitor struct{}

func (BaseVisitor) Enter(Node, *Cursor) bool    { return true }
func (BaseVisitor) Leave(Node, *Cursor) Rewrite { return Keep() }

// Cursor carries traversal context: the ancestor chain of the current
// node and a scratch space that lives for exactly one Walk.
type Cursor struct {
	stack  []Node
	values map[string]any
}

// Parent returns the immediate ancestor of the current node, or nil at
// the root.
func (c *Cursor) Parent() Node {
	if len(c.stack) < 2 {
		return nil
	}
	return c.stack[len(c.stack)-2]
}

// Ancestors returns the current node's ancestors, innermost first.
func (c *Cursor) Ancestors() []Node {
	out := make([]Node, 0, len(c.stack)-1)
	for i := len(c.stack) - 2; i >= 0; i-- {
		out = append(out, c.stack[i])
	}
	return out
}

// Set stores a value scoped to the current traversal.
func (c *Cursor) Set(key string, v any) {
	c.values[key] = v
}

// Get reads a value stored with Set.
func (c *Cursor) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Walk traverses root with v and returns the rewritten tree. Unmodified
// subtrees are shared with the input; a rewrite that violates the
// grammar's shape fails with a *ShapeError. Removing the root returns
// nil.
func Walk(root Node, v Visitor) (Node, error) {
	w := &walker{v: v, c: &Cursor{values: make(map[string]any)}}
	out, err := w.walk(root)
	if err != nil {
		return nil, err
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	}
	return nil, &ShapeError{Type: typeName(root), Message: "cannot splice at the root"}
}

// Inspect walks the tree read-only, calling f for every node. If f
// returns false the node's children are skipped.
func Inspect(root Node, f func(Node) bool) {
	_, _ = Walk(root, inspector(f))
}

type inspector func(Node) bool

func (f inspector) Enter(n Node, _ *Cursor) bool    { return f(n) }
func (f inspector) Leave(Node, *Cursor) Rewrite     { return Keep() }

type walker struct {
	v Visitor
	c *Cursor
}

func typeName(n Node) string {
	return fmt.Sprintf("%T", n)
}

// walk visits one node and returns what takes its place: one node for
// keep/replace, none for remove, several for splice.
func (w *walker) walk(n Node) ([]Node, error) {
	w.c.stack = append(w.c.stack, n)
	defer func() { w.c.stack = w.c.stack[:len(w.c.stack)-1] }()

	cur := n
	if w.v.Enter(n, w.c) {
		rebuilt, err := w.children(n)
		if err != nil {
			return nil, err
		}
		cur = rebuilt
	}

	rw := w.v.Leave(cur, w.c)
	switch rw.kind {
	case keepKind:
		return []Node{cur}, nil
	case replaceKind:
		return rw.nodes, nil
	case removeKind:
		return nil, nil
	case spliceKind:
		return rw.nodes, nil
	}
	return nil, &ShapeError{Type: typeName(n), Message: "unknown rewrite"}
}

// rewriteOne visits a required child. Replacements must keep the child's
// slot type; remove and splice are shape violations here.
func rewriteOne[T Node](w *walker, child T) (T, bool, error) {
	var zero T
	out, err := w.walk(child)
	if err != nil {
		return zero, false, err
	}
	if len(out) != 1 {
		return zero, false, &ShapeError{
			Type:    typeName(child),
			Message: "required child cannot be removed or spliced",
		}
	}
	if out[0] == Node(child) {
		return child, false, nil
	}
	t, ok := out[0].(T)
	if !ok {
		return zero, false, &ShapeError{
			Type:    typeName(child),
			Message: fmt.Sprintf("cannot replace with %T", out[0]),
		}
	}
	return t, true, nil
}

// rewriteOpt visits an optional child; removal empties the slot.
func rewriteOpt[T Node](w *walker, child T) (T, bool, error) {
	var zero T
	out, err := w.walk(child)
	if err != nil {
		return zero, false, err
	}
	switch len(out) {
	case 0:
		return zero, true, nil
	case 1:
		if out[0] == Node(child) {
			return child, false, nil
		}
		t, ok := out[0].(T)
		if !ok {
			return zero, false, &ShapeError{
				Type:    typeName(child),
				Message: fmt.Sprintf("cannot replace with %T", out[0]),
			}
		}
		return t, true, nil
	}
	return zero, false, &ShapeError{
		Type:    typeName(child),
		Message: "cannot splice into a single slot",
	}
}

// rewriteSeq visits a sequence of nodes, honoring remove and splice.
func rewriteSeq[T Node](w *walker, list []T) ([]T, bool, error) {
	var out []T
	changed := false
	for _, item := range list {
		res, err := w.walk(item)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(item) {
			out = append(out, item)
			continue
		}
		changed = true
		for _, r := range res {
			t, ok := r.(T)
			if !ok {
				return nil, false, &ShapeError{
					Type:    typeName(item),
					Message: fmt.Sprintf("cannot splice %T into this sequence", r),
				}
			}
			out = append(out, t)
		}
	}
	return out, changed, nil
}

// rewriteElements visits the value of each element. A removed value drops
// its element, comma included; spliced values become new elements with a
// plain ", " separator, the last one inheriting the old comma.
func (w *walker) rewriteElements(list []*Element) ([]*Element, bool, error) {
	var out []*Element
	changed := false
	for _, el := range list {
		res, err := w.walk(el.Value)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(el.Value) {
			out = append(out, el)
			continue
		}
		changed = true
		for i, r := range res {
			expr, ok := r.(Expression)
			if !ok {
				return nil, false, &ShapeError{
					Type:    typeName(el.Value),
					Message: fmt.Sprintf("cannot splice %T into an element list", r),
				}
			}
			comma := el.Comma
			if i < len(res)-1 {
				comma = &Comma{After: " "}
			}
			out = append(out, &Element{Value: expr, Comma: comma})
		}
	}
	return out, changed, nil
}

func (w *walker) children(n Node) (Node, error) {
	switch n := n.(type) {
	case *Module:
		body, ch, err := rewriteSeq(w, n.Body)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Body = body
		return &c, nil

	case *SimpleStatementLine:
		// Emptying the line is allowed: it renders as a blank line
		// keeping its indent and trailing whitespace.
		body, ch, err := rewriteSeq(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch {
			return n, nil
		}
		c := *n
		c.Body = body
		return &c, nil

	case *Pass, *Break, *Continue, *Name, *Integer, *Float, *SimpleString:
		return n, nil

	case *Expr:
		value, ch, err := rewriteOne(w, n.Value)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Value = value
		return &c, nil

	case *Assign:
		targets, ch1, err := w.rewriteAssignTargets(n.Targets)
		if err != nil {
			return nil, err
		}
		value, ch2, err := rewriteOne(w, n.Value)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Targets, c.Value = targets, value
		return &c, nil

	case *AugAssign:
		target, ch1, err := rewriteOne(w, n.Target)
		if err != nil {
			return nil, err
		}
		value, ch2, err := rewriteOne(w, n.Value)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Target, c.Value = target, value
		return &c, nil

	case *Return:
		if n.Value == nil {
			return n, nil
		}
		value, ch, err := rewriteOpt(w, n.Value)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Value = value
		if value == nil {
			c.WhitespaceAfterReturn = ""
		}
		return &c, nil

	case *Raise:
		if n.Exc == nil {
			return n, nil
		}
		exc, ch1, err := rewriteOpt(w, n.Exc)
		if err != nil {
			return nil, err
		}
		if exc == nil && n.Cause != nil {
			return nil, &ShapeError{Type: "Raise", Message: "cause requires an exception"}
		}
		cause, ch2 := n.Cause, false
		if n.Cause != nil {
			item, ch, err := rewriteOne(w, n.Cause.Item)
			if err != nil {
				return nil, err
			}
			if ch {
				cp := *n.Cause
				cp.Item = item
				cause, ch2 = &cp, true
			}
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Exc, c.Cause = exc, cause
		if exc == nil {
			c.WhitespaceAfterRaise = ""
		}
		return &c, nil

	case *Assert:
		test, ch1, err := rewriteOne(w, n.Test)
		if err != nil {
			return nil, err
		}
		msg, ch2 := n.Msg, false
		if n.Msg != nil {
			msg, ch2, err = rewriteOpt(w, n.Msg)
			if err != nil {
				return nil, err
			}
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Test, c.Msg = test, msg
		if msg == nil {
			c.Comma = nil
		}
		return &c, nil

	case *Del:
		target, ch, err := rewriteOne(w, n.Target)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Target = target
		return &c, nil

	case *Global:
		names, ch, err := w.rewriteNameItems(n.Names)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, &ShapeError{Type: "Global", Message: "global needs at least one name"}
		}
		if !ch {
			return n, nil
		}
		c := *n
		c.Names = names
		return &c, nil

	case *Import:
		names, ch, err := w.rewriteImportAliases(n.Names)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, &ShapeError{Type: "Import", Message: "import needs at least one name"}
		}
		if !ch {
			return n, nil
		}
		c := *n
		c.Names = names
		return &c, nil

	case *ImportFrom:
		module, ch1, err := rewriteOne(w, n.Module)
		if err != nil {
			return nil, err
		}
		names, ch2, err := w.rewriteImportAliases(n.Names)
		if err != nil {
			return nil, err
		}
		if !n.Star && len(names) == 0 {
			return nil, &ShapeError{Type: "ImportFrom", Message: "import needs at least one name"}
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Module, c.Names = module, names
		return &c, nil

	case *IndentedBlock:
		// An emptied block renders as just its header line. The result
		// is not re-parseable, but the surrounding text survives intact.
		body, ch, err := rewriteSeq(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch {
			return n, nil
		}
		c := *n
		c.Body = body
		return &c, nil

	case *If:
		test, ch1, err := rewriteOne(w, n.Test)
		if err != nil {
			return nil, err
		}
		body, ch2, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		orelse, ch3 := n.Orelse, false
		if n.Orelse != nil {
			orelse, ch3, err = rewriteOpt(w, n.Orelse)
			if err != nil {
				return nil, err
			}
			if err := checkOrelse(orelse); err != nil {
				return nil, err
			}
		}
		if !ch1 && !ch2 && !ch3 {
			return n, nil
		}
		c := *n
		c.Test, c.Body, c.Orelse = test, body, orelse
		return &c, nil

	case *Else:
		body, ch, err := rewriteOne(w, n.Body)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Body = body
		return &c, nil

	case *While:
		test, ch1, err := rewriteOne(w, n.Test)
		if err != nil {
			return nil, err
		}
		body, ch2, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		orelse, ch3 := n.Orelse, false
		if n.Orelse != nil {
			orelse, ch3, err = rewriteOpt(w, n.Orelse)
			if err != nil {
				return nil, err
			}
		}
		if !ch1 && !ch2 && !ch3 {
			return n, nil
		}
		c := *n
		c.Test, c.Body, c.Orelse = test, body, orelse
		return &c, nil

	case *For:
		target, ch1, err := rewriteOne(w, n.Target)
		if err != nil {
			return nil, err
		}
		iter, ch2, err := rewriteOne(w, n.Iter)
		if err != nil {
			return nil, err
		}
		body, ch3, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		orelse, ch4 := n.Orelse, false
		if n.Orelse != nil {
			orelse, ch4, err = rewriteOpt(w, n.Orelse)
			if err != nil {
				return nil, err
			}
		}
		if !ch1 && !ch2 && !ch3 && !ch4 {
			return n, nil
		}
		c := *n
		c.Target, c.Iter, c.Body, c.Orelse = target, iter, body, orelse
		return &c, nil

	case *Decorator:
		dec, ch, err := rewriteOne(w, n.Decorator)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Decorator = dec
		return &c, nil

	case *FunctionDef:
		decorators, ch1, err := rewriteSeq(w, n.Decorators)
		if err != nil {
			return nil, err
		}
		name, ch2, err := rewriteOne(w, n.Name)
		if err != nil {
			return nil, err
		}
		params, ch3, err := w.rewriteParams(n.Params)
		if err != nil {
			return nil, err
		}
		body, ch4, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 && !ch3 && !ch4 {
			return n, nil
		}
		c := *n
		c.Decorators, c.Name, c.Params, c.Body = decorators, name, params, body
		return &c, nil

	case *ClassDef:
		decorators, ch1, err := rewriteSeq(w, n.Decorators)
		if err != nil {
			return nil, err
		}
		name, ch2, err := rewriteOne(w, n.Name)
		if err != nil {
			return nil, err
		}
		args, ch3, err := w.rewriteArgs(n.Args)
		if err != nil {
			return nil, err
		}
		body, ch4, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 && !ch3 && !ch4 {
			return n, nil
		}
		c := *n
		c.Decorators, c.Name, c.Args, c.Body = decorators, name, args, body
		return &c, nil

	case *With:
		items, ch1, err := w.rewriteWithItems(n.Items)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, &ShapeError{Type: "With", Message: "with needs at least one item"}
		}
		body, ch2, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Items, c.Body = items, body
		return &c, nil

	case *ExceptHandler:
		typ, ch1 := n.Type, false
		var err error
		if n.Type != nil {
			typ, ch1, err = rewriteOpt(w, n.Type)
			if err != nil {
				return nil, err
			}
			if typ == nil && n.AsName != nil {
				return nil, &ShapeError{Type: "ExceptHandler", Message: "as binding requires a type"}
			}
		}
		body, ch2, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Type, c.Body = typ, body
		if typ == nil {
			c.WhitespaceAfterExcept = ""
		}
		return &c, nil

	case *Finally:
		body, ch, err := rewriteOne(w, n.Body)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Body = body
		return &c, nil

	case *Try:
		body, ch1, err := rewriteOne(w, n.Body)
		if err != nil {
			return nil, err
		}
		handlers, ch2, err := rewriteSeq(w, n.Handlers)
		if err != nil {
			return nil, err
		}
		orelse, ch3 := n.Orelse, false
		if n.Orelse != nil {
			orelse, ch3, err = rewriteOpt(w, n.Orelse)
			if err != nil {
				return nil, err
			}
		}
		final, ch4 := n.Finalbody, false
		if n.Finalbody != nil {
			final, ch4, err = rewriteOpt(w, n.Finalbody)
			if err != nil {
				return nil, err
			}
		}
		if len(handlers) == 0 && final == nil {
			return nil, &ShapeError{Type: "Try", Message: "try needs a handler or a finally"}
		}
		if len(handlers) == 0 && orelse != nil {
			return nil, &ShapeError{Type: "Try", Message: "else requires a handler"}
		}
		if !ch1 && !ch2 && !ch3 && !ch4 {
			return n, nil
		}
		c := *n
		c.Body, c.Handlers, c.Orelse, c.Finalbody = body, handlers, orelse, final
		return &c, nil

	case *Tuple:
		elements, ch, err := w.rewriteElements(n.Elements)
		if err != nil {
			return nil, err
		}
		if len(elements) == 0 && len(n.LPar) == 0 {
			return nil, &ShapeError{Type: "Tuple", Message: "unparenthesized tuple cannot be empty"}
		}
		if !ch {
			return n, nil
		}
		c := *n
		c.Elements = elements
		return &c, nil

	case *List:
		elements, ch, err := w.rewriteElements(n.Elements)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Elements = elements
		return &c, nil

	case *Dict:
		elements, ch, err := w.rewriteDictElements(n.Elements)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Elements = elements
		return &c, nil

	case *Attribute:
		value, ch1, err := rewriteOne(w, n.Value)
		if err != nil {
			return nil, err
		}
		attr, ch2, err := rewriteOne(w, n.Attr)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Value, c.Attr = value, attr
		return &c, nil

	case *Subscript:
		value, ch1, err := rewriteOne(w, n.Value)
		if err != nil {
			return nil, err
		}
		index, ch2, err := rewriteOne(w, n.Index)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Value, c.Index = value, index
		return &c, nil

	case *Call:
		fn, ch1, err := rewriteOne(w, n.Func)
		if err != nil {
			return nil, err
		}
		args, ch2, err := w.rewriteArgs(n.Args)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Func, c.Args = fn, args
		return &c, nil

	case *UnaryOp:
		expr, ch, err := rewriteOne(w, n.Expression)
		if err != nil || !ch {
			return n, err
		}
		c := *n
		c.Expression = expr
		return &c, nil

	case *BinaryOp:
		left, ch1, err := rewriteOne(w, n.Left)
		if err != nil {
			return nil, err
		}
		right, ch2, err := rewriteOne(w, n.Right)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Left, c.Right = left, right
		return &c, nil

	case *BooleanOp:
		left, ch1, err := rewriteOne(w, n.Left)
		if err != nil {
			return nil, err
		}
		right, ch2, err := rewriteOne(w, n.Right)
		if err != nil {
			return nil, err
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Left, c.Right = left, right
		return &c, nil

	case *Comparison:
		left, ch1, err := rewriteOne(w, n.Left)
		if err != nil {
			return nil, err
		}
		targets, ch2, err := w.rewriteComparisonTargets(n.Comparisons)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, &ShapeError{Type: "Comparison", Message: "comparison needs at least one operator"}
		}
		if !ch1 && !ch2 {
			return n, nil
		}
		c := *n
		c.Left, c.Comparisons = left, targets
		return &c, nil
	}
	return nil, &ShapeError{Type: typeName(n), Message: "unknown node"}
}

func checkOrelse(s Statement) error {
	switch s.(type) {
	case nil, *If, *Else:
		return nil
	}
	return &ShapeError{Type: typeName(s), Message: "orelse must be an elif or else clause"}
}

func (w *walker) rewriteAssignTargets(list []*AssignTarget) ([]*AssignTarget, bool, error) {
	var out []*AssignTarget
	changed := false
	for _, t := range list {
		res, err := w.walk(t.Target)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(t.Target) {
			out = append(out, t)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "AssignTarget", Message: "cannot splice an assignment target"}
		}
		expr, ok := res[0].(Expression)
		if !ok {
			return nil, false, &ShapeError{Type: "AssignTarget", Message: fmt.Sprintf("cannot assign to %T", res[0])}
		}
		cp := *t
		cp.Target = expr
		out = append(out, &cp)
	}
	if len(out) == 0 {
		return nil, false, &ShapeError{Type: "Assign", Message: "assignment needs at least one target"}
	}
	return out, changed, nil
}

func (w *walker) rewriteNameItems(list []*NameItem) ([]*NameItem, bool, error) {
	var out []*NameItem
	changed := false
	for _, item := range list {
		res, err := w.walk(item.Name)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(item.Name) {
			out = append(out, item)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "NameItem", Message: "cannot splice a name list"}
		}
		name, ok := res[0].(*Name)
		if !ok {
			return nil, false, &ShapeError{Type: "NameItem", Message: fmt.Sprintf("cannot replace a name with %T", res[0])}
		}
		cp := *item
		cp.Name = name
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteImportAliases(list []*ImportAlias) ([]*ImportAlias, bool, error) {
	var out []*ImportAlias
	changed := false
	for _, alias := range list {
		res, err := w.walk(alias.Name)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(alias.Name) {
			out = append(out, alias)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "ImportAlias", Message: "cannot splice an import name"}
		}
		expr, ok := res[0].(Expression)
		if !ok {
			return nil, false, &ShapeError{Type: "ImportAlias", Message: fmt.Sprintf("cannot import %T", res[0])}
		}
		cp := *alias
		cp.Name = expr
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteDictElements(list []*DictElement) ([]*DictElement, bool, error) {
	var out []*DictElement
	changed := false
	for _, el := range list {
		key, ch1, err := rewriteOne(w, el.Key)
		if err != nil {
			return nil, false, err
		}
		res, err := w.walk(el.Value)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 0 {
			changed = true
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "DictElement", Message: "cannot splice a dict value"}
		}
		value, ch2 := el.Value, false
		if res[0] != Node(el.Value) {
			expr, ok := res[0].(Expression)
			if !ok {
				return nil, false, &ShapeError{Type: "DictElement", Message: fmt.Sprintf("cannot use %T as a dict value", res[0])}
			}
			value, ch2 = expr, true
		}
		if !ch1 && !ch2 {
			out = append(out, el)
			continue
		}
		changed = true
		cp := *el
		cp.Key, cp.Value = key, value
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteArgs(list []*Arg) ([]*Arg, bool, error) {
	var out []*Arg
	changed := false
	for _, arg := range list {
		res, err := w.walk(arg.Value)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(arg.Value) {
			out = append(out, arg)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "Arg", Message: "cannot splice an argument"}
		}
		expr, ok := res[0].(Expression)
		if !ok {
			return nil, false, &ShapeError{Type: "Arg", Message: fmt.Sprintf("cannot pass %T as an argument", res[0])}
		}
		cp := *arg
		cp.Value = expr
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteParams(list []*Param) ([]*Param, bool, error) {
	var out []*Param
	changed := false
	for _, p := range list {
		name, ch1, err := rewriteOne(w, p.Name)
		if err != nil {
			return nil, false, err
		}
		def, ch2 := p.Default, false
		if p.Default != nil {
			def, ch2, err = rewriteOpt(w, p.Default)
			if err != nil {
				return nil, false, err
			}
		}
		if !ch1 && !ch2 {
			out = append(out, p)
			continue
		}
		changed = true
		cp := *p
		cp.Name, cp.Default = name, def
		if def == nil {
			cp.Equal = nil
		}
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteWithItems(list []*WithItem) ([]*WithItem, bool, error) {
	var out []*WithItem
	changed := false
	for _, item := range list {
		res, err := w.walk(item.Item)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(item.Item) {
			out = append(out, item)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "WithItem", Message: "cannot splice a with item"}
		}
		expr, ok := res[0].(Expression)
		if !ok {
			return nil, false, &ShapeError{Type: "WithItem", Message: fmt.Sprintf("cannot use %T as a context manager", res[0])}
		}
		cp := *item
		cp.Item = expr
		out = append(out, &cp)
	}
	return out, changed, nil
}

func (w *walker) rewriteComparisonTargets(list []*ComparisonTarget) ([]*ComparisonTarget, bool, error) {
	var out []*ComparisonTarget
	changed := false
	for _, t := range list {
		res, err := w.walk(t.Comparator)
		if err != nil {
			return nil, false, err
		}
		if len(res) == 1 && res[0] == Node(t.Comparator) {
			out = append(out, t)
			continue
		}
		changed = true
		if len(res) == 0 {
			continue
		}
		if len(res) > 1 {
			return nil, false, &ShapeError{Type: "ComparisonTarget", Message: "cannot splice a comparison"}
		}
		expr, ok := res[0].(Expression)
		if !ok {
			return nil, false, &ShapeError{Type: "ComparisonTarget", Message: fmt.Sprintf("cannot compare against %T", res[0])}
		}
		cp := *t
		cp.Comparator = expr
		out = append(out, &cp)
	}
	return out, changed, nil
}
