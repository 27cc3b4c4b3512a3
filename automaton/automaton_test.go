package automaton

import (
	"testing"

	"github.com/dekarrin/lr1kit/grammar"
	"github.com/stretchr/testify/assert"
)

// expr grammar: E -> E + T | T ; T -> id
func exprGrammar() *grammar.Grammar {
	g := grammar.New()
	g.MustAddRule("E", grammar.NT("E"), grammar.Term(`\+`), grammar.NT("T"))
	g.MustAddRule("E", grammar.NT("T"))
	g.MustAddRule("T", grammar.Term("id"))
	return g
}

func Test_Closure_IncludesInitialItem(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	aug, err := g.Augmented()
	assert.NoError(err)

	startRule := aug.Rules()[aug.RuleCount()-1]
	initial := newItemSet()
	initial.add(grammar.Item{LHS: startRule.LHS, RHS: startRule.RHS, Dot: 0, Lookahead: grammar.EndMarker})

	closure := Closure(&aug, initial)

	// closure must bring in every E and T production with dot at 0
	assert.True(closure.has(grammar.Item{
		LHS: grammar.NT("E"), RHS: []grammar.Symbol{grammar.NT("T")}, Dot: 0, Lookahead: grammar.Term(`\+`),
	}))
	assert.True(closure.has(grammar.Item{
		LHS: grammar.NT("T"), RHS: []grammar.Symbol{grammar.Term("id")}, Dot: 0, Lookahead: grammar.EndMarker,
	}))
}

func Test_BuildCanonicalCollection_StateZeroIsStartClosure(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	col, err := BuildCanonicalCollection(g)
	assert.NoError(err)

	if !assert.Greater(col.StateCount(), 1) {
		return
	}

	start := col.States[0]
	assert.True(start.Items.has(grammar.Item{
		LHS:       grammar.NT(grammar.RootNonTerminal),
		RHS:       []grammar.Symbol{grammar.NT("E")},
		Dot:       0,
		Lookahead: grammar.EndMarker,
	}))
}

func Test_BuildCanonicalCollection_GotoOnTReachesCompletedItem(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	col, err := BuildCanonicalCollection(g)
	assert.NoError(err)

	// from state 0, goto on T should reach a state with E -> T ., lookahead $
	j, ok := col.Goto(0, grammar.NT("T"))
	assert.True(ok)

	reduceItem := grammar.Item{
		LHS: grammar.NT("E"), RHS: []grammar.Symbol{grammar.NT("T")}, Dot: 1, Lookahead: grammar.EndMarker,
	}
	assert.True(col.States[j].Items.has(reduceItem))
}

func Test_BuildCanonicalCollection_DedupsEquivalentStates(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	col, err := BuildCanonicalCollection(g)
	assert.NoError(err)

	seen := map[string]bool{}
	for _, st := range col.States {
		key := st.Items.StringOrdered()
		assert.False(seen[key], "duplicate state discovered: %s", key)
		seen[key] = true
	}
}
