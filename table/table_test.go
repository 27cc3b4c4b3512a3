package table

import (
	"errors"
	"testing"

	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/lrerrors"
	"github.com/stretchr/testify/assert"
)

// classic expression grammar: E -> E + T | T ; T -> T * F | F ; F -> ( E ) | id
func exprGrammar() *grammar.Grammar {
	g := grammar.New()
	g.MustAddRule("E", grammar.NT("E"), grammar.Term(`\+`), grammar.NT("T"))
	g.MustAddRule("E", grammar.NT("T"))
	g.MustAddRule("T", grammar.NT("T"), grammar.Term(`\*`), grammar.NT("F"))
	g.MustAddRule("T", grammar.NT("F"))
	g.MustAddRule("F", grammar.Term(`\(`), grammar.NT("E"), grammar.Term(`\)`))
	g.MustAddRule("F", grammar.Term("id"))
	return g
}

func Test_Build_ExprGrammar_NoConflicts(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	tbl, err := Build(g)
	if !assert.NoError(err) {
		return
	}
	assert.Greater(len(tbl.States), 1)
}

func Test_Build_HasAcceptAction(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	tbl, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	found := false
	for _, state := range tbl.States {
		for _, act := range state {
			if act.Kind == Accept {
				found = true
			}
		}
	}
	assert.True(found, "table must contain an accept action")
}

func Test_Build_AmbiguousGrammar_ReportsConflict(t *testing.T) {
	assert := assert.New(t)

	// classic dangling-else-shaped ambiguity: S -> if E then S | if E then S else S | other
	g := grammar.New()
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"), grammar.Term("else"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("other"))
	g.MustAddRule("E", grammar.Term("true"))

	_, err := Build(g)
	assert.Error(err)
}

func Test_Build_AmbiguousGrammar_ConflictListsAllCompetingItems(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"), grammar.Term("else"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("other"))
	g.MustAddRule("E", grammar.Term("true"))

	_, err := Build(g)
	if !assert.Error(err) {
		return
	}

	var conflict *lrerrors.ShiftReduceConflict
	if !assert.True(errors.As(err, &conflict), "expected a *lrerrors.ShiftReduceConflict") {
		return
	}
	assert.GreaterOrEqual(len(conflict.Items), 2, "conflict should list every competing item, not just the trigger")
}

func Test_Build_NoShiftActionOnEndMarker(t *testing.T) {
	assert := assert.New(t)

	// A table built with the single-symbol augmentation never needs to
	// shift the literal end marker: the root item completes directly with
	// lookahead $ instead of requiring $ to be consumed as an rhs symbol.
	g := exprGrammar()
	tbl, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	for _, state := range tbl.States {
		act, ok := state[grammar.EndMarker.String()]
		if !ok {
			continue
		}
		assert.NotEqual(Shift, act.Kind, "no state should shift on $")
	}
}

func Test_Action_ReturnsShiftOnTerminal(t *testing.T) {
	assert := assert.New(t)

	g := exprGrammar()
	tbl, err := Build(g)
	if !assert.NoError(err) {
		return
	}

	act, ok := tbl.Action(tbl.Start, grammar.Term("id"))
	assert.True(ok)
	assert.Equal(Shift, act.Kind)
}
