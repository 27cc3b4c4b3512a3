// Package grmtext parses a human-readable "grm" grammar format by
// bootstrapping lr1kit on itself: the grammar describing grm files is
// itself compiled and driven through package lr1kit, rather than hand-rolled
// with a separate ad hoc parser.
//
// A textual grammar could in principle build up a quoted regex literal
// compositionally, symbol by symbol, so that character classes and groups
// can be described by the grm grammar itself. Since the regular-expression
// engine is not part of this module, that sub-grammar would only be
// reimplementing pattern-compilation machinery one level up; grmtext
// instead matches an entire quoted literal with a single terminal and
// passes its interior straight through as a pattern string. The grm format
// this package accepts is a line-oriented
//
//	NonTerm -> sym1 sym2 ... symN
//
// where each symN is either a bareword nonterminal or a "quoted" terminal
// pattern, and a bare ϵ stands for an empty right-hand side.
package grmtext

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dekarrin/lr1kit"
	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/parse"
)

// statement is one parsed `nont -> rhs` line: rhs is nil for an epsilon
// production.
type statement struct {
	nonterminal string
	rhs         []grammar.Symbol
}

var (
	bootstrapOnce sync.Once
	bootstrap     *lr1kit.Machine
	bootstrapErr  error
)

// bootstrapGrammar builds the grammar describing the grm text format itself,
// collapsed to the simplified terminal vocabulary described in the package
// doc comment.
func bootstrapGrammar() *grammar.Grammar {
	g := grammar.New()

	g.MustAddRule("rhsc", grammar.Term(`"(\\.|[^"\\])*"`))
	g.MustAddRule("rhsc", grammar.Term(`[a-zA-Z][a-zA-Z]*`))

	g.MustAddRule("rhs", grammar.NT("rhs"), grammar.Term(`[ \t]+`), grammar.NT("rhsc"))
	g.MustAddRule("rhs", grammar.NT("rhsc"))

	g.MustAddRule("stmt",
		grammar.Term(`[a-zA-Z][a-zA-Z]*`), grammar.Term(`[ \t]+`), grammar.Term(`->`), grammar.Term(`[ \t]+`),
		grammar.NT("rhs"), grammar.Term(`(\r?\n)+`))
	g.MustAddRule("stmt",
		grammar.Term(`[a-zA-Z][a-zA-Z]*`), grammar.Term(`[ \t]+`), grammar.Term(`->`), grammar.Term(`[ \t]+`),
		grammar.Term(`ϵ`), grammar.Term(`(\r?\n)+`))

	g.MustAddRule("grm", grammar.NT("grm"), grammar.NT("stmt"))
	g.MustAddRule("grm")

	_ = g.SetStart("grm")
	return g
}

// bootstrapCallbacks supplies one reduction action per rule in
// bootstrapGrammar, in rule order: the two rhsc-producing rules pass their
// single matched lexeme through as a terminal or nonterminal symbol, rhs
// accumulates a symbol slice, stmt builds a statement value (with and
// without an epsilon rhs), and grm accumulates a statement slice.
func bootstrapCallbacks() []parse.Callback {
	return []parse.Callback{
		func(lhs grammar.Symbol, v []any) (any, error) {
			raw := v[0].(string)
			return grammar.Term(strings.Trim(raw, `"`)), nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			return grammar.NT(v[0].(string)), nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			rhs := v[0].([]grammar.Symbol)
			sym := v[2].(grammar.Symbol)
			return append(rhs, sym), nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			return []grammar.Symbol{v[0].(grammar.Symbol)}, nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			return statement{nonterminal: v[0].(string), rhs: v[4].([]grammar.Symbol)}, nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			return statement{nonterminal: v[0].(string)}, nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			stmts := v[0].([]statement)
			return append(stmts, v[1].(statement)), nil
		},
		func(lhs grammar.Symbol, v []any) (any, error) {
			return []statement{}, nil
		},
	}
}

func ensureBootstrap() (*lr1kit.Machine, error) {
	bootstrapOnce.Do(func() {
		bootstrap, bootstrapErr = lr1kit.Compile(bootstrapGrammar())
	})
	return bootstrap, bootstrapErr
}

// Parse parses text in the grm format and returns the grammar it describes.
// The target grammar's start symbol is the lhs of the first statement,
// matching Grammar.AddRule's implicit-start behavior.
func Parse(text string) (*grammar.Grammar, error) {
	m, err := ensureBootstrap()
	if err != nil {
		return nil, fmt.Errorf("grmtext: bootstrap grammar failed to compile: %w", err)
	}

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	p := m.NewParser(bootstrapCallbacks())
	lx, err := m.NewLexer(text)
	if err != nil {
		return nil, err
	}

	result, err := p.Parse(lx)
	if err != nil {
		return nil, fmt.Errorf("grmtext: %w", err)
	}

	stmts := result.([]statement)
	target := grammar.New()
	for _, s := range stmts {
		if err := target.AddRule(s.nonterminal, s.rhs...); err != nil {
			return nil, err
		}
	}
	return target, nil
}
