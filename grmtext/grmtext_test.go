package grmtext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/lr1kit/grammar"
)

func Test_Parse_SingleRule(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> "a"
`)
	assert.NoError(err)

	start, err := g.StartSymbol()
	assert.NoError(err)
	assert.Equal("S", start)
	assert.Equal(1, g.RuleCount())
}

func Test_Parse_MultipleRulesAndNonterminalRHS(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`E -> E "+" T
E -> T
T -> "id"
`)
	assert.NoError(err)

	start, err := g.StartSymbol()
	assert.NoError(err)
	assert.Equal("E", start)
	assert.Equal(3, g.RuleCount())

	rules := g.Rules()
	assert.Equal([]grammar.Symbol{grammar.NT("E"), grammar.Term("+"), grammar.NT("T")}, rules[0].RHS)
}

func Test_Parse_EpsilonRule(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> "a" A
A -> ϵ
`)
	assert.NoError(err)

	rules := g.Rules()
	assert.Equal(2, len(rules))
	assert.Len(rules[1].RHS, 0)
}

func Test_Parse_MissingTrailingNewlineIsTolerated(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S -> "a"`)
	assert.NoError(err)
	assert.Equal(1, g.RuleCount())
}

func Test_Parse_InvalidTextReturnsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("not a valid grm statement\n")
	assert.Error(err)
}
