package cst

// Positions renders root and records the span of every node in the
// rendered text. For a tree fresh from the parser the rendered text is
// the original source, so the spans are source positions. Spans cover a
// node's own tokens and trivia, including leading lines on statements.
func Positions(root Node) map[Node]Span {
	spans := make(map[Node]Span, 64)
	r := newRenderState(spans)
	r.render(root)
	return spans
}
