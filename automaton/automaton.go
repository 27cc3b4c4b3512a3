// Package automaton builds the canonical collection of LR(1) item sets for
// a grammar: Closure, Goto, and the viable-prefix DFA they generate. The
// collection is represented directly as an ordered, indexable sequence of
// states rather than as a general-purpose DFA type shared with a
// pattern-matching engine.
package automaton

import (
	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/internal/util"
)

// ItemSet is a set of LR(1) items keyed by their canonical String() form.
type ItemSet util.SVSet[grammar.Item]

func newItemSet() ItemSet {
	return ItemSet(util.NewSVSet[grammar.Item]())
}

// Items returns the items of the set, in an arbitrary but stable-per-call
// order. Use StringOrdered for an order that is stable across equal sets
// regardless of discovery order.
func (is ItemSet) Items() []grammar.Item {
	out := make([]grammar.Item, 0, len(is))
	for _, it := range is {
		out = append(out, it)
	}
	return out
}

// StringOrdered renders the set's items alphabetically, giving two
// structurally equal item sets discovered via different closure paths the
// same canonical name. This is what lets BuildCanonicalCollection dedup states with
// a map lookup instead of an O(n^2) pairwise comparison.
func (is ItemSet) StringOrdered() string {
	return util.SVSet[grammar.Item](is).StringOrdered()
}

func (is ItemSet) add(it grammar.Item) {
	is[it.String()] = it
}

func (is ItemSet) has(it grammar.Item) bool {
	_, ok := is[it.String()]
	return ok
}

// Closure computes the closure of an LR(1) item set with respect to g:
// repeatedly, for every item [A -> alpha . B beta, a] in the set where B is
// a nonterminal, add [B -> . gamma, b] for every rule B -> gamma and every
// terminal b in FIRST(beta a), until no more items can be added. This is
// Algorithm 4.53 (purple dragon book) via the LR(1)-closure extension
// described in section 4.7.
func Closure(g *grammar.Grammar, items ItemSet) ItemSet {
	closure := newItemSet()
	for _, it := range items.Items() {
		closure.add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range closure.Items() {
			next, ok := it.NextSymbol()
			if !ok || !next.IsNonTerminal() {
				continue
			}

			beta := it.RHS[it.Dot+1:]
			lookaheads := g.First(append(append([]grammar.Symbol{}, beta...), it.Lookahead))

			for _, idx := range g.RulesFor(next.Name) {
				rule := g.Rules()[idx]
				for _, term := range lookaheads.Slice() {
					newItem := grammar.Item{
						LHS:       rule.LHS,
						RHS:       rule.RHS,
						Dot:       0,
						Lookahead: grammar.Term(term),
					}
					if term == grammar.EndMarker.String() {
						newItem.Lookahead = grammar.EndMarker
					}
					if !closure.has(newItem) {
						closure.add(newItem)
						changed = true
					}
				}
			}
		}
	}

	return closure
}

// Goto computes GOTO(I, X): the closure of the set of items [A -> alpha X .
// beta, a] for every item [A -> alpha . X beta, a] in I.
func Goto(g *grammar.Grammar, items ItemSet, sym grammar.Symbol) ItemSet {
	moved := newItemSet()
	for _, it := range items.Items() {
		next, ok := it.NextSymbol()
		if !ok || !next.Equal(sym) {
			continue
		}
		moved.add(it.Advanced())
	}
	return Closure(g, moved)
}

// State is one state of the canonical collection: its LR(1) item set and
// its index within the Collection.
type State struct {
	Index int
	Items ItemSet
}

// Collection is the canonical collection of sets of LR(1) items for a
// grammar, plus the transition function between them. State 0 is always
// the closure of the augmented grammar's initial item.
type Collection struct {
	States []State

	// Transitions[i][symbol.String()] = j means state i transitions to
	// state j on symbol.
	Transitions []map[string]int
}

// StateCount returns the number of states in the collection.
func (c *Collection) StateCount() int {
	return len(c.States)
}

// Goto returns the state index reached from state i on sym, and whether a
// transition exists.
func (c *Collection) Goto(i int, sym grammar.Symbol) (int, bool) {
	j, ok := c.Transitions[i][sym.String()]
	return j, ok
}

// BuildCanonicalCollection computes the canonical collection of LR(1) item
// sets for the augmented form of g: starting from the closure of
// [__root__ -> . S, $], repeatedly compute Goto on every symbol following
// a dot in every state until no new states or transitions appear.
//
// g is augmented internally; callers pass the grammar as given to
// table.Build, not a pre-augmented copy.
func BuildCanonicalCollection(g *grammar.Grammar) (*Collection, error) {
	aug, err := g.Augmented()
	if err != nil {
		return nil, err
	}

	startRule := aug.Rules()[aug.RuleCount()-1]

	initial := newItemSet()
	initial.add(grammar.Item{
		LHS:       startRule.LHS,
		RHS:       startRule.RHS,
		Dot:       0,
		Lookahead: grammar.EndMarker,
	})
	startSet := Closure(&aug, initial)

	col := &Collection{}
	indexOf := map[string]int{}

	addState := func(items ItemSet) int {
		key := items.StringOrdered()
		if idx, ok := indexOf[key]; ok {
			return idx
		}
		idx := len(col.States)
		col.States = append(col.States, State{Index: idx, Items: items})
		col.Transitions = append(col.Transitions, map[string]int{})
		indexOf[key] = idx
		return idx
	}

	addState(startSet)

	changed := true
	for changed {
		changed = false
		for i := 0; i < len(col.States); i++ {
			state := col.States[i]
			seenSymbols := map[string]bool{}
			for _, it := range state.Items.Items() {
				next, ok := it.NextSymbol()
				if !ok {
					continue
				}
				if seenSymbols[next.String()] {
					continue
				}
				seenSymbols[next.String()] = true

				target := Goto(&aug, state.Items, next)
				if len(target) == 0 {
					continue
				}

				if _, exists := col.Transitions[i][next.String()]; exists {
					continue
				}
				before := len(col.States)
				j := addState(target)
				if j >= before {
					changed = true
				}
				col.Transitions[i][next.String()] = j
				changed = true
			}
		}
	}

	return col, nil
}
