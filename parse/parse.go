// Package parse implements the shift/reduce LR(1) driver, Algorithm 4.44
// from the purple dragon book ("LR-parsing algorithm"), coupled to a
// context-sensitive lex.Lexer whose active terminal set is reconfigured on
// every state transition: before each token read, the driver narrows the
// lexer to exactly the terminals with a defined action in the current
// state, rather than tokenizing against a single fixed vocabulary. Each
// reduction invokes a caller-supplied Callback instead of building a fixed
// parse-tree node, so a caller decides what a reduction actually builds.
package parse

import (
	"fmt"

	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/internal/util"
	"github.com/dekarrin/lr1kit/lex"
	"github.com/dekarrin/lr1kit/lrerrors"
	"github.com/dekarrin/lr1kit/table"
)

// Callback is invoked on every reduction. lhs is the rule's left-hand
// nonterminal and values holds one entry per right-hand symbol, in order,
// taken from whatever the matching Shift (for terminals) or earlier
// Callback return value (for nonterminals) produced. Its return value
// becomes the semantic value associated with lhs on the value stack.
//
// A nil Callback for a given rule is legal; the rule then reduces to a nil
// semantic value, discarding whatever its children produced.
type Callback func(lhs grammar.Symbol, values []any) (any, error)

// Parser drives a table.Table against a lex.Lexer, invoking one Callback
// per reduction.
type Parser struct {
	table     *table.Table
	callbacks []Callback
	active    [][]string // active[state] = terminal patterns legal in that state
	trace     func(string)
}

// New builds a Parser from tbl and callbacks. tbl.Grammar is the augmented
// grammar, whose last rule is the __root__ rule that is never reduced, so
// len(callbacks) must equal tbl.Grammar.RuleCount()-1: one callback per rule
// of the grammar the table was built from, in rule order. Every rule needs a
// defined (possibly no-op) reduction action, and a mismatch is a programmer
// error in how the parser was wired up rather than a recoverable condition,
// so it panics rather than returning an error.
func New(tbl *table.Table, callbacks []Callback) *Parser {
	want := tbl.Grammar.RuleCount() - 1
	if len(callbacks) != want {
		panic(fmt.Sprintf("parse: got %d callbacks for a grammar with %d rules", len(callbacks), want))
	}

	p := &Parser{
		table:     tbl,
		callbacks: callbacks,
		active:    make([][]string, len(tbl.States)),
	}
	for i, state := range tbl.States {
		var terms []string
		for _, key := range util.OrderedKeys(state) {
			sym := grammar.ParseSymbol(key)
			if sym.IsTerminal() {
				terms = append(terms, sym.Name)
			}
		}
		p.active[i] = terms
	}

	return p
}

// RegisterTraceListener installs fn to receive a line of diagnostic text on
// every significant driver step: each token read, and each action taken
// together with the state it was taken in.
func (p *Parser) RegisterTraceListener(fn func(string)) {
	p.trace = fn
}

func (p *Parser) notifyTrace(format string, args ...any) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Parse drives lx to completion, returning the semantic value the accepting
// reduction produced.
//
// This is an implementation of Algorithm 4.44, "LR-parsing algorithm",
// extended with context-sensitive lexing: before every call to lx.Next, the
// driver narrows lx's active terminal set to exactly the terminals with a
// defined action in the current state, so the lexer never has to consider a
// pattern the grammar could not accept here.
func (p *Parser) Parse(lx *lex.Lexer) (any, error) {
	stateStack := util.Stack[int]{Of: []int{p.table.Start}}
	valueStack := util.Stack[any]{}

	tok, err := p.nextToken(lx, stateStack.Peek())
	if err != nil {
		return nil, err
	}
	p.notifyTrace("next token: %s", tok.String())

	for {
		s := stateStack.Peek()
		act, ok := p.table.Action(s, tok.Type)
		if !ok {
			return nil, lrerrors.NewSyntaxError(fmt.Sprintf("unexpected token %s in state %d", tok.String(), s), tok.Pos)
		}
		p.notifyTrace("state %d, action %s", s, act.String())

		switch act.Kind {
		case table.Shift:
			valueStack.Push(any(tok.Content))
			stateStack.Push(act.State)

			tok, err = p.nextToken(lx, act.State)
			if err != nil {
				return nil, err
			}
			p.notifyTrace("next token: %s", tok.String())

		case table.Reduce:
			rule := p.table.Grammar.Rules()[act.Rule]
			n := len(rule.RHS)

			// Empty productions pop nothing: a rule with zero rhs symbols
			// reduces in place, pushing a new value atop the current state
			// without touching the stack below it.
			values := make([]any, n)
			for i := n - 1; i >= 0; i-- {
				stateStack.Pop()
				values[i] = valueStack.Pop()
			}

			t := stateStack.Peek()
			gotoAct, ok := p.table.Action(t, rule.LHS)
			if !ok {
				return nil, lrerrors.NewSyntaxError(fmt.Sprintf("no goto from state %d on %s", t, rule.LHS.String()), tok.Pos)
			}
			stateStack.Push(gotoAct.State)

			var val any
			if cb := p.callbacks[act.Rule]; cb != nil {
				val, err = cb(rule.LHS, values)
				if err != nil {
					return nil, err
				}
			}
			valueStack.Push(val)

		case table.Accept:
			if valueStack.Len() != 1 {
				panic(fmt.Sprintf("parse: accept reached with %d values on the stack, want 1", valueStack.Len()))
			}
			return valueStack.Peek(), nil
		}
	}
}

// nextToken narrows lx's active set to the terminals legal in state, then
// reads the next token.
func (p *Parser) nextToken(lx *lex.Lexer, state int) (lex.Token, error) {
	if err := lx.SetActive(p.active[state]); err != nil {
		return lex.Token{}, err
	}
	return lx.Next()
}
