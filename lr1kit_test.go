package lr1kit

import (
	"strconv"
	"testing"

	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/parse"
	"github.com/stretchr/testify/assert"
)

func Test_Run_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.MustAddRule("E", grammar.NT("E"), grammar.Term(`\+`), grammar.Term(`[0-9]+`))
	g.MustAddRule("E", grammar.Term(`[0-9]+`))

	callbacks := []parse.Callback{
		func(lhs grammar.Symbol, values []any) (any, error) {
			left := values[0].(int)
			right, err := strconv.Atoi(values[2].(string))
			if err != nil {
				return nil, err
			}
			return left + right, nil
		},
		func(lhs grammar.Symbol, values []any) (any, error) {
			return strconv.Atoi(values[0].(string))
		},
	}

	result, err := Run(g, callbacks, "5+6+7")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(18, result)
}

func Test_NewGrammar_IsEmptyAndUsable(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	assert.Equal(0, g.RuleCount())

	g.MustAddRule("S", grammar.Term("a"))
	assert.Equal(1, g.RuleCount())
}

func Test_Compile_RejectsInvalidGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New() // no rules at all
	_, err := Compile(g)
	assert.Error(err)
}

func Test_Compile_ReportsConflicts(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New()
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("if"), grammar.NT("E"), grammar.Term("then"), grammar.NT("S"), grammar.Term("else"), grammar.NT("S"))
	g.MustAddRule("S", grammar.Term("other"))
	g.MustAddRule("E", grammar.Term("true"))

	_, err := Compile(g)
	assert.Error(err)
}
