// Package parser turns Python source text into lossless syntax trees.
//
// Parsing runs in two stages. The tokenizer produces a token stream in
// which every byte of the input is accounted for, either as token text or
// as leading/trailing trivia. A backend then matches the stream against
// the grammar and produces an untyped parse tree, which the builder
// converts into the typed tree of package cst. Two backends exist: a
// grammar-driven reference interpreter and a hand-written recursive
// descent parser. They produce identical trees; CrossCheck verifies that
// on any input.
package parser

import (
	"fmt"
	"reflect"

	"github.com/pycst/pycst/python/cst"
)

// Version selects the grammar to parse against.
type Version int

const (
	// Py3 is the Python 3 grammar subset. It is currently the only
	// supported version; the parameter exists so version selection is
	// part of the API surface rather than an incompatible change later.
	Py3 Version = 3
)

func (v Version) valid() bool {
	return v == Py3
}

func (v Version) String() string {
	if v == Py3 {
		return "3"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Backend selects the parsing strategy. Both backends accept the same
// language and produce identical trees.
type Backend int

const (
	// BackendFast is the hand-written recursive descent parser.
	BackendFast Backend = iota
	// BackendReference interprets the grammar tables directly. Slower,
	// but trivially auditable against the grammar.
	BackendReference
)

type config struct {
	version Version
	backend Backend
	file    string
}

// Option configures a parse call.
type Option func(*config)

// WithVersion selects the grammar version. The default is Py3.
func WithVersion(v Version) Option {
	return func(c *config) { c.version = v }
}

// WithBackend selects the parsing backend. The default is BackendFast.
func WithBackend(b Backend) Option {
	return func(c *config) { c.backend = b }
}

// WithFile sets the file name used in positions and error messages.
func WithFile(name string) Option {
	return func(c *config) { c.file = name }
}

func newConfig(opts []Option) config {
	c := config{version: Py3, backend: BackendFast}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Parse parses a whole module. The returned tree renders back to src
// byte for byte.
func Parse(src []byte, opts ...Option) (*cst.Module, error) {
	cfg := newConfig(opts)
	raw, toks, err := parseRaw(src, SymFile, cfg)
	if err != nil {
		return nil, err
	}
	return buildModule(raw, toks)
}

// ParseStatement parses a single statement, which may be a compound
// statement spanning several lines. Trivia before and after the
// statement is preserved.
func ParseStatement(src []byte, opts ...Option) (cst.Statement, error) {
	cfg := newConfig(opts)
	raw, toks, err := parseRaw(src, SymStatementInput, cfg)
	if err != nil {
		return nil, err
	}
	return buildStatementInput(raw, toks)
}

// ParseExpression parses a single expression. The input must not be
// indented and must contain nothing but the expression and trivia.
func ParseExpression(src []byte, opts ...Option) (cst.Expression, error) {
	cfg := newConfig(opts)
	raw, toks, err := parseRaw(src, SymExprInput, cfg)
	if err != nil {
		return nil, err
	}
	return buildExpressionInput(raw, toks)
}

func parseRaw(src []byte, start Symbol, cfg config) (*RawNode, []Token, error) {
	toks, err := tokenize(src, cfg.file, cfg.version)
	if err != nil {
		return nil, nil, err
	}
	raw, err := runBackend(toks, start, cfg.backend)
	if err != nil {
		return nil, nil, err
	}
	return raw, toks, nil
}

func runBackend(toks []Token, start Symbol, backend Backend) (*RawNode, error) {
	if backend == BackendReference {
		return newEngine(toks).parse(start)
	}
	p := newDescent(toks)
	switch start {
	case SymFile:
		return p.parseFile()
	case SymStatementInput:
		return p.parseStatementInput()
	case SymExprInput:
		return p.parseExprInput()
	}
	panic("parser: bad start symbol")
}

// CrossCheck parses src as a module with both backends and reports any
// disagreement as a *DivergenceError. Agreement means identical parse
// trees on success, or errors at the same position on failure.
func CrossCheck(src []byte, opts ...Option) error {
	cfg := newConfig(opts)
	toks, err := tokenize(src, cfg.file, cfg.version)
	if err != nil {
		return nil // tokenizer is shared; nothing to compare
	}

	ref, refErr := newEngine(toks).parse(SymFile)
	fast, fastErr := newDescent(toks).parseFile()

	switch {
	case refErr == nil && fastErr == nil:
		if !reflect.DeepEqual(ref, fast) {
			return &DivergenceError{Reference: ref.String(), Fast: fast.String()}
		}
		return nil
	case refErr != nil && fastErr != nil:
		rp, rok := refErr.(*ParseError)
		fp, fok := fastErr.(*ParseError)
		if rok && fok && rp.Pos == fp.Pos {
			return nil
		}
		return &DivergenceError{Reference: refErr.Error(), Fast: fastErr.Error()}
	case refErr != nil:
		return &DivergenceError{Reference: refErr.Error(), Fast: fast.String()}
	default:
		return &DivergenceError{Reference: ref.String(), Fast: fastErr.Error()}
	}
}
