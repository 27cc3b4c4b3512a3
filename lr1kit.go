// Package lr1kit is the root facade tying grammar, table, lex, and parse
// together into a single compile-then-run entry point. A Machine is a
// compiled grammar plus the LR(1) table built from it, ready to drive input
// through a caller-supplied set of reduction callbacks.
package lr1kit

import (
	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/lex"
	"github.com/dekarrin/lr1kit/parse"
	"github.com/dekarrin/lr1kit/table"
)

// Machine is a compiled grammar ready to parse input: the grammar, its LR(1)
// table, and its terminal universe. The per-rule callbacks are not part of
// a Machine; they are passed to each Parser through NewParser.
type Machine struct {
	Grammar   *grammar.Grammar
	Table     *table.Table
	Terminals []string
}

// NewGrammar returns an empty Grammar, ready for AddRule calls, without
// requiring a caller to import package grammar directly.
func NewGrammar() *grammar.Grammar {
	return grammar.New()
}

// Compile builds the canonical LR(1) table for g, returning an
// lrerrors.ShiftReduceConflict or lrerrors.ReduceReduceConflict if g is not
// in the LR(1) class.
func Compile(g *grammar.Grammar) (*Machine, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	tbl, err := table.Build(g)
	if err != nil {
		return nil, err
	}

	return &Machine{
		Grammar:   g,
		Table:     tbl,
		Terminals: g.Terminals(),
	}, nil
}

// NewParser builds a parse.Parser bound to m's table, validating that
// callbacks has exactly one entry per rule (see parse.New).
func (m *Machine) NewParser(callbacks []parse.Callback) *parse.Parser {
	return parse.New(m.Table, callbacks)
}

// NewLexer builds a lex.Lexer over input, compiled against m's terminal
// universe.
func (m *Machine) NewLexer(input string) (*lex.Lexer, error) {
	return lex.New(m.Terminals, input)
}

// Run compiles and drives a single parse of input in one call: convenience
// for callers who do not need to reuse the compiled Machine across multiple
// inputs.
func Run(g *grammar.Grammar, callbacks []parse.Callback, input string) (any, error) {
	m, err := Compile(g)
	if err != nil {
		return nil, err
	}
	lx, err := m.NewLexer(input)
	if err != nil {
		return nil, err
	}
	p := m.NewParser(callbacks)
	return p.Parse(lx)
}
