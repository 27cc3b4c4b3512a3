// Package grammar implements the grammar model a parser generator compiles
// from: a tagged-union Symbol, a Rule, a Grammar with memoized FIRST sets,
// and the LR(1) Item the automaton package builds its states out of.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lr1kit/internal/util"
)

// Grammar is an ordered sequence of Rules plus an optional explicit start
// symbol. Rule order is semantically significant: table construction
// (package table) identifies reduce actions by rule index.
type Grammar struct {
	rules []Rule
	start string // explicit start nonterminal; "" means "use rules[0].LHS"

	// firstMemo caches First(alpha) results keyed by the printable form of
	// alpha. It is an internal memo, not part of Grammar's identity or
	// Equal/Copy semantics.
	firstMemo map[string]FirstSet

	// nullable/firstOfNonTerminal are the fixpoint tables First builds
	// lazily and reuses across calls; see ensureFirstTables.
	nullable          map[string]bool
	firstOfNonTerminal map[string]FirstSet
}

// New returns an empty Grammar. Rules are added with AddRule.
func New() *Grammar {
	return &Grammar{}
}

// AddRule appends a new rule `lhs -> rhs` to the grammar. It returns an
// error if lhs is the reserved RootNonTerminal name, which no rule may use
// as its left-hand side.
func (g *Grammar) AddRule(lhs string, rhs ...Symbol) error {
	if lhs == RootNonTerminal {
		return fmt.Errorf("grammar: %q is reserved and cannot be used as a rule's lhs", RootNonTerminal)
	}
	cp := make([]Symbol, len(rhs))
	copy(cp, rhs)
	g.rules = append(g.rules, Rule{LHS: NT(lhs), RHS: cp})
	g.invalidateFirstCache()
	return nil
}

// MustAddRule is AddRule but panics on error; used for literal grammars
// built up in Go source (tests, grmtext) where lhs is a constant and a
// reserved-name collision would be a programmer error.
func (g *Grammar) MustAddRule(lhs string, rhs ...Symbol) {
	if err := g.AddRule(lhs, rhs...); err != nil {
		panic(err.Error())
	}
}

// SetStart sets the grammar's explicit start symbol. It returns an error if
// name does not match any rule's lhs.
func (g *Grammar) SetStart(name string) error {
	found := false
	for _, r := range g.rules {
		if r.LHS.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("grammar: start symbol %q is not the lhs of any rule", name)
	}
	g.start = name
	return nil
}

// StartSymbol returns the grammar's start nonterminal: the explicit one set
// via SetStart, or rules[0].LHS if none was set. It returns an error for an
// empty grammar, since there is no rule to take a start symbol from.
func (g Grammar) StartSymbol() (string, error) {
	if g.start != "" {
		return g.start, nil
	}
	if len(g.rules) == 0 {
		return "", fmt.Errorf("grammar: cannot determine start symbol of an empty grammar")
	}
	return g.rules[0].LHS.Name, nil
}

// Rules returns the grammar's rules in declared order. The slice is owned
// by the caller's copy of the returned header but callers must not mutate
// the elements.
func (g Grammar) Rules() []Rule {
	return g.rules
}

// RuleCount returns the number of rules in the grammar.
func (g Grammar) RuleCount() int {
	return len(g.rules)
}

// RulesFor returns the indices, in declared order, of every rule whose lhs
// is nonterminal.
func (g Grammar) RulesFor(nonterminal string) []int {
	var idxs []int
	for i, r := range g.rules {
		if r.LHS.Name == nonterminal {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// NonTerminals returns every distinct nonterminal that appears as some
// rule's lhs, in first-appearance order.
func (g Grammar) NonTerminals() []string {
	seen := util.StringSet{}
	var out []string
	for _, r := range g.rules {
		if !seen.Has(r.LHS.Name) {
			seen.Add(r.LHS.Name)
			out = append(out, r.LHS.Name)
		}
	}
	return out
}

// IsNonTerminal reports whether name is the lhs of at least one rule.
func (g Grammar) IsNonTerminal(name string) bool {
	for _, r := range g.rules {
		if r.LHS.Name == name {
			return true
		}
	}
	return false
}

// Terminals returns every distinct terminal pattern appearing in any rule's
// rhs, in first-appearance order.
func (g Grammar) Terminals() []string {
	seen := util.StringSet{}
	var out []string
	for _, r := range g.rules {
		for _, sym := range r.RHS {
			if sym.Kind == Terminal && !seen.Has(sym.Name) {
				seen.Add(sym.Name)
				out = append(out, sym.Name)
			}
		}
	}
	return out
}

// Copy returns a deep copy of g. The FIRST memo and fixpoint tables are not
// copied; they will be recomputed lazily on first use of the copy, since
// they are caches and not part of the grammar's identity.
func (g Grammar) Copy() Grammar {
	cp := Grammar{
		rules: make([]Rule, len(g.rules)),
		start: g.start,
	}
	for i := range g.rules {
		cp.rules[i] = g.rules[i].Copy()
	}
	return cp
}

// Equal reports whether two grammars have the same rules in the same order
// and the same (possibly implicit) start symbol: list equality of rules in
// order, plus agreement on the resolved start symbol.
func (g Grammar) Equal(o Grammar) bool {
	gStart, gErr := g.StartSymbol()
	oStart, oErr := o.StartSymbol()
	if (gErr == nil) != (oErr == nil) {
		return false
	}
	if gErr == nil && gStart != oStart {
		return false
	}
	if len(g.rules) != len(o.rules) {
		return false
	}
	for i := range g.rules {
		if !g.rules[i].Equal(o.rules[i]) {
			return false
		}
	}
	return true
}

// Validate checks the grammar's structural invariants: no
// rule with lhs __root__ (already prevented by AddRule, checked again here
// for grammars built by other means such as grmtext), every rhs
// nonterminal symbol corresponds to some rule's lhs, and (if set) the
// explicit start symbol names a real nonterminal.
func (g Grammar) Validate() error {
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar: no rules defined")
	}
	nonTerms := util.StringSetOf(g.NonTerminals())
	for _, r := range g.rules {
		if r.LHS.Name == RootNonTerminal {
			return fmt.Errorf("grammar: rule %q uses reserved lhs %q", r.String(), RootNonTerminal)
		}
		for _, sym := range r.RHS {
			if sym.Kind == NonTerminal && !nonTerms.Has(sym.Name) {
				return fmt.Errorf("grammar: rule %q references undefined nonterminal %q", r.String(), sym.Name)
			}
		}
	}
	if g.start != "" && !nonTerms.Has(g.start) {
		return fmt.Errorf("grammar: explicit start symbol %q is not the lhs of any rule", g.start)
	}
	return nil
}

// Augmented returns a new grammar with one extra rule prepended to the
// *front* of the rule list conceptually but appended for index stability:
// `__root__ -> S`, where S is g's start symbol. The returned grammar's
// explicit start is __root__.
//
// The new rule's rhs is the single symbol S, not `S $`: accept is detected
// directly at the state Goto(I0, S) reaches, once its [__root__ -> S ., $]
// item is complete, so the driver never needs to shift a literal end marker
// off a lexer that has already produced its one-shot end-of-input token.
func (g Grammar) Augmented() (Grammar, error) {
	start, err := g.StartSymbol()
	if err != nil {
		return Grammar{}, err
	}
	aug := g.Copy()
	aug.rules = append(aug.rules, Rule{
		LHS: NT(RootNonTerminal),
		RHS: []Symbol{NT(start)},
	})
	aug.start = RootNonTerminal
	return aug, nil
}

// String renders the grammar in a round-trippable printable form: one rule
// per line, `lhs -> s1 s2 ... sn`, empty RHS as `ϵ`, trailing newline.
func (g Grammar) String() string {
	lines := make([]string, len(g.rules))
	for i, r := range g.rules {
		lines[i] = r.String()
	}
	return rosed.Edit(strings.Join(lines, "\n")).String() + "\n"
}

// invalidateFirstCache drops the memoized FIRST results. Called whenever
// the rule list changes; the fixpoint tables are recomputed from scratch
// on the next First call.
func (g *Grammar) invalidateFirstCache() {
	g.firstMemo = nil
	g.nullable = nil
	g.firstOfNonTerminal = nil
}
