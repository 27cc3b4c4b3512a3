package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(g *Grammar)
		expectErr bool
	}{
		{
			name:      "empty grammar",
			build:     func(g *Grammar) {},
			expectErr: true,
		},
		{
			name: "undefined nonterminal reference",
			build: func(g *Grammar) {
				g.MustAddRule("S", Term("a"), NT("B"))
			},
			expectErr: true,
		},
		{
			name: "valid single rule grammar",
			build: func(g *Grammar) {
				g.MustAddRule("S", Term("a"))
			},
			expectErr: false,
		},
		{
			name: "valid multi rule grammar",
			build: func(g *Grammar) {
				g.MustAddRule("S", NT("A"), Term("b"))
				g.MustAddRule("A", Term("a"))
				g.MustAddRule("A")
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := New()
			tc.build(g)

			actual := g.Validate()

			if tc.expectErr {
				assert.Error(actual)
			} else {
				assert.NoError(actual)
			}
		})
	}
}

func Test_Grammar_AddRule_RejectsReservedLHS(t *testing.T) {
	assert := assert.New(t)

	g := New()
	err := g.AddRule(RootNonTerminal, Term("a"))
	assert.Error(err)
}

func Test_Grammar_StartSymbol(t *testing.T) {
	assert := assert.New(t)

	g := New()
	_, err := g.StartSymbol()
	assert.Error(err, "empty grammar should fail to report a start symbol")

	g.MustAddRule("S", Term("a"))
	g.MustAddRule("A", Term("b"))

	start, err := g.StartSymbol()
	assert.NoError(err)
	assert.Equal("S", start, "implicit start is the lhs of the first rule added")

	assert.NoError(g.SetStart("A"))
	start, err = g.StartSymbol()
	assert.NoError(err)
	assert.Equal("A", start)

	assert.Error(g.SetStart("NOPE"))
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.MustAddRule("S", Term("a"))

	aug, err := g.Augmented()
	assert.NoError(err)

	start, err := aug.StartSymbol()
	assert.NoError(err)
	assert.Equal(RootNonTerminal, start)

	last := aug.Rules()[aug.RuleCount()-1]
	assert.Equal(RootNonTerminal, last.LHS.Name)
	assert.Equal([]Symbol{NT("S")}, last.RHS)
}

// A mutually left-recursive example: A -> B x, B -> A y | z. A
// single-recursive-guard FIRST algorithm never terminates on this grammar,
// since guarding a nonterminal against calling back into itself misses the
// A -> B -> A cycle entirely. The fixpoint algorithm handles it without
// special-casing.
func Test_Grammar_First_MutualLeftRecursion(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.MustAddRule("A", NT("B"), Term("x"))
	g.MustAddRule("B", NT("A"), Term("y"))
	g.MustAddRule("B", Term("z"))

	fs := g.First([]Symbol{NT("A")})
	assert.True(fs.Terminals.Has("z"))
	assert.False(fs.HasEpsilon)
}

func Test_Grammar_First_Epsilon(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.MustAddRule("S", NT("A"), Term("b"))
	g.MustAddRule("A", Term("a"))
	g.MustAddRule("A") // A -> epsilon

	fs := g.First([]Symbol{NT("S")})
	assert.True(fs.Terminals.Has("a"))
	assert.True(fs.Terminals.Has("b"))
	assert.False(fs.HasEpsilon)

	fsA := g.First([]Symbol{NT("A")})
	assert.True(fsA.HasEpsilon)
}

func Test_Grammar_First_EmptySequence(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.MustAddRule("S", Term("a"))

	fs := g.First(nil)
	assert.True(fs.HasEpsilon)
	assert.True(fs.Terminals.Empty())
}

func Test_Grammar_First_IsMemoized(t *testing.T) {
	assert := assert.New(t)

	g := New()
	g.MustAddRule("S", NT("A"))
	g.MustAddRule("A", Term("a"))

	first := g.First([]Symbol{NT("S")})
	second := g.First([]Symbol{NT("S")})
	assert.True(first.Equal(second))
}

func Test_Grammar_Equal(t *testing.T) {
	assert := assert.New(t)

	a := New()
	a.MustAddRule("S", Term("a"))

	b := New()
	b.MustAddRule("S", Term("a"))

	assert.True(a.Equal(*b))

	b.MustAddRule("S", Term("c"))
	assert.False(a.Equal(*b))
}
