// Package table constructs the LR(1) parse table from a grammar's canonical
// collection of item sets: Algorithm 4.56 from the purple dragon book,
// "Construction of canonical-LR parsing tables". ACTION and GOTO are unified
// into a single per-state symbol map, since a nonterminal goto and a
// terminal shift both reduce to "push this state" and differ only in which
// kind of symbol they are keyed under.
package table

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lr1kit/automaton"
	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/lrerrors"
)

// Kind distinguishes the three action types a table cell can hold. A GOTO
// entry for a nonterminal is represented the same way as a shift: both mean
// "push this state", the only difference being which kind of symbol they
// are keyed under.
type Kind int

const (
	Shift Kind = iota
	Reduce
	Accept
)

func (k Kind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is a single parse table cell.
type Action struct {
	Kind Kind

	// State is the target state for Shift (and for a nonterminal goto).
	State int

	// Rule is the index into the grammar's rule list to reduce by, valid
	// only when Kind is Reduce.
	Rule int
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Rule)
	case Accept:
		return "accept"
	default:
		return "?"
	}
}

// Table is the complete LR(1) parse table for a grammar: the augmented
// grammar it was built from, and for each state a map from symbol
// (terminal, $, or nonterminal, by their printable String() form) to the
// action to take.
type Table struct {
	Grammar grammar.Grammar // augmented grammar; rule indices refer to this
	States  []map[string]Action
	Start   int
}

// Build constructs the canonical LR(1) parse table for g. It returns an
// lrerrors.ShiftReduceConflict or lrerrors.ReduceReduceConflict if g is not
// in the LR(1) class.
func Build(g *grammar.Grammar) (*Table, error) {
	col, err := automaton.BuildCanonicalCollection(g)
	if err != nil {
		return nil, err
	}

	aug, err := g.Augmented()
	if err != nil {
		return nil, err
	}
	rootStart := aug.Rules()[aug.RuleCount()-1]

	t := &Table{
		Grammar: aug,
		States:  make([]map[string]Action, col.StateCount()),
		Start:   0,
	}
	for i := range t.States {
		t.States[i] = map[string]Action{}
	}

	for i, state := range col.States {
		items := state.Items.Items()
		for _, it := range items {
			if !it.Done() {
				next, _ := it.NextSymbol()
				j, ok := col.Goto(i, next)
				if !ok {
					continue
				}
				if err := t.set(i, next.String(), Action{Kind: Shift, State: j}, items); err != nil {
					return nil, err
				}
				continue
			}

			// it.Done(): either accept or reduce.
			if it.LHS.Equal(rootStart.LHS) && len(it.RHS) == len(rootStart.RHS) &&
				it.Lookahead.Equal(grammar.EndMarker) {
				if err := t.set(i, grammar.EndMarker.String(), Action{Kind: Accept}, items); err != nil {
					return nil, err
				}
				continue
			}

			ruleIdx := findRuleIndex(aug, it.Rule())
			if ruleIdx < 0 {
				return nil, fmt.Errorf("table: item %s has no matching rule in augmented grammar", it.String())
			}
			if err := t.set(i, it.Lookahead.String(), Action{Kind: Reduce, Rule: ruleIdx}, items); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

// set installs act into state i under key, detecting and reporting any
// conflict with a previously installed action in the same cell. items is
// every item in the state, so a conflict report can list all of them that
// either have a goto defined on key or are complete with lookahead key, not
// just the one item that triggered this particular call.
func (t *Table) set(state int, key string, act Action, items []grammar.Item) error {
	existing, ok := t.States[state][key]
	if !ok {
		t.States[state][key] = act
		return nil
	}
	if existing == act {
		return nil
	}

	competing := competingItems(items, key)

	switch {
	case existing.Kind == Shift && act.Kind == Reduce:
		return lrerrors.NewShiftReduceConflict(competing, key, existing.State, t.Grammar.Rules()[act.Rule].String())
	case existing.Kind == Reduce && act.Kind == Shift:
		return lrerrors.NewShiftReduceConflict(competing, key, act.State, t.Grammar.Rules()[existing.Rule].String())
	case existing.Kind == Reduce && act.Kind == Reduce:
		return lrerrors.NewReduceReduceConflict(t.Grammar.Rules()[existing.Rule].String(), t.Grammar.Rules()[act.Rule].String())
	default:
		return fmt.Errorf("table: conflicting actions in state %d on %q: %s vs %s", state, key, existing, act)
	}
}

// competingItems returns the printable form of every item in items that
// either has a goto defined on key (an incomplete item whose next symbol is
// key) or is complete with lookahead key.
func competingItems(items []grammar.Item, key string) []string {
	var out []string
	for _, it := range items {
		if next, ok := it.NextSymbol(); ok {
			if next.String() == key {
				out = append(out, it.String())
			}
			continue
		}
		if it.Lookahead.String() == key {
			out = append(out, it.String())
		}
	}
	return out
}

func findRuleIndex(g grammar.Grammar, r grammar.Rule) int {
	for i, gr := range g.Rules() {
		if gr.Equal(r) {
			return i
		}
	}
	return -1
}

// Action returns the action for (state, symbol), and whether one is
// defined.
func (t *Table) Action(state int, symbol grammar.Symbol) (Action, bool) {
	act, ok := t.States[state][symbol.String()]
	return act, ok
}

// String renders the table as a tab-separated grid of state rows against
// symbol columns.
func (t *Table) String() string {
	var terms []string
	for _, pat := range t.Grammar.Terminals() {
		terms = append(terms, grammar.Term(pat).String())
	}
	terms = append(terms, grammar.EndMarker.String())
	nonTerms := t.Grammar.NonTerminals()

	header := append([]string{"STATE"}, terms...)
	header = append(header, nonTerms...)

	rows := [][]string{header}
	for i, state := range t.States {
		row := []string{fmt.Sprintf("%d", i)}
		for _, term := range terms {
			if act, ok := state[term]; ok {
				row = append(row, act.String())
			} else {
				row = append(row, "")
			}
		}
		for _, nt := range nonTerms {
			if act, ok := state[nt]; ok {
				row = append(row, act.String())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return rosed.Edit(strings.Join(lines, "\n")).String()
}
