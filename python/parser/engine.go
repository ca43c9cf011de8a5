package parser

import "sort"

// engine is the grammar-driven reference backend: a backtracking matcher
// over the rule tables in grammar.go, memoized per (symbol, token
// position). The memo table lives for exactly one parse call and is never
// shared. Failures record the furthest position reached together with
// the token kinds that would have been accepted there, which becomes the
// ParseError when the whole parse fails.
type engine struct {
	toks []Token
	memo map[memoKey]memoEntry

	failPos      int
	failExpected map[TokenKind]bool
}

type memoKey struct {
	sym Symbol
	pos int
}

type memoEntry struct {
	node *RawNode
	next int
	ok   bool
}

func newEngine(toks []Token) *engine {
	return &engine{
		toks:         toks,
		memo:         make(map[memoKey]memoEntry),
		failPos:      -1,
		failExpected: make(map[TokenKind]bool),
	}
}

// parse matches the start symbol against the whole token stream.
func (e *engine) parse(start Symbol) (*RawNode, error) {
	node, _, ok := e.parseSym(start, 0)
	if !ok {
		return nil, e.syntaxError()
	}
	return node, nil
}

func (e *engine) syntaxError() error {
	pos := e.failPos
	if pos < 0 || pos >= len(e.toks) {
		pos = len(e.toks) - 1
	}
	found := e.toks[pos]
	expected := make([]TokenKind, 0, len(e.failExpected))
	for k := range e.failExpected {
		expected = append(expected, k)
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
	return &ParseError{Pos: found.Span.Start, Found: found, Expected: expected}
}

func (e *engine) fail(pos int, want TokenKind) {
	if pos > e.failPos {
		e.failPos = pos
		clear(e.failExpected)
	}
	if pos == e.failPos {
		e.failExpected[want] = true
	}
}

func (e *engine) parseSym(s Symbol, pos int) (*RawNode, int, bool) {
	key := memoKey{s, pos}
	if m, hit := e.memo[key]; hit {
		return m.node, m.next, m.ok
	}

	var children []*RawNode
	next, ok := e.match(grammar[s], pos, &children)

	var node *RawNode
	if ok {
		if transparent[s] && len(children) == 1 {
			node = children[0]
		} else {
			node = &RawNode{Sym: s, Children: children}
		}
	}
	e.memo[key] = memoEntry{node: node, next: next, ok: ok}
	return node, next, ok
}

// match advances through r starting at pos, appending matched tokens and
// production nodes to out. On failure out is rolled back to its length at
// entry and pos is returned unchanged.
func (e *engine) match(r rule, pos int, out *[]*RawNode) (int, bool) {
	switch r := r.(type) {
	case tokRule:
		if e.toks[pos].Kind == TokenKind(r) {
			*out = append(*out, leaf(&e.toks[pos]))
			return pos + 1, true
		}
		e.fail(pos, TokenKind(r))
		return pos, false

	case symRule:
		node, next, ok := e.parseSym(Symbol(r), pos)
		if !ok {
			return pos, false
		}
		*out = append(*out, node)
		return next, true

	case seqRule:
		mark := len(*out)
		cur := pos
		for _, item := range r {
			next, ok := e.match(item, cur, out)
			if !ok {
				*out = (*out)[:mark]
				return pos, false
			}
			cur = next
		}
		return cur, true

	case choiceRule:
		for _, alt := range r {
			if next, ok := e.match(alt, pos, out); ok {
				return next, true
			}
		}
		return pos, false

	case optRule:
		if next, ok := e.match(r.body, pos, out); ok {
			return next, true
		}
		return pos, true

	case starRule:
		cur := pos
		for {
			next, ok := e.match(r.body, cur, out)
			if !ok || next == cur {
				return cur, true
			}
			cur = next
		}

	case plusRule:
		next, ok := e.match(r.body, pos, out)
		if !ok {
			return pos, false
		}
		cur := next
		for {
			next, ok = e.match(r.body, cur, out)
			if !ok || next == cur {
				return cur, true
			}
			cur = next
		}
	}
	panic("parser: unknown rule type")
}
