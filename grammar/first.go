package grammar

import (
	"sort"
	"strings"

	"github.com/dekarrin/lr1kit/internal/util"
)

// FirstSet is the result of a FIRST computation: a set of terminal symbols,
// plus whether epsilon is a member (i.e. whether the sequence FIRST was
// computed for can derive the empty string). Nullability is kept as its own
// flag rather than folding epsilon into the terminal set as a synthetic
// member, so callers (package automaton's Closure) never have to
// special-case stripping it back out.
type FirstSet struct {
	Terminals util.StringSet
	HasEpsilon bool
}

func newFirstSet() FirstSet {
	return FirstSet{Terminals: util.StringSet{}}
}

func (fs FirstSet) union(o FirstSet) FirstSet {
	out := newFirstSet()
	out.Terminals.AddAll(fs.Terminals)
	out.Terminals.AddAll(o.Terminals)
	out.HasEpsilon = fs.HasEpsilon || o.HasEpsilon
	return out
}

// Equal reports whether two FirstSets contain the same terminals and agree
// on epsilon membership.
func (fs FirstSet) Equal(o FirstSet) bool {
	return fs.HasEpsilon == o.HasEpsilon && fs.Terminals.Equal(o.Terminals)
}

// Slice returns the terminal patterns in fs, alphabetized.
func (fs FirstSet) Slice() []string {
	return util.OrderedKeys(toMap(fs.Terminals))
}

func toMap(s util.StringSet) map[string]bool {
	return map[string]bool(s)
}

// String renders the set in the printable `{ "a", "b", ϵ }` style used in
// diagnostics and tests.
func (fs FirstSet) String() string {
	terms := fs.Slice()
	parts := make([]string, 0, len(terms)+1)
	for _, t := range terms {
		parts = append(parts, `"`+t+`"`)
	}
	if fs.HasEpsilon {
		parts = append(parts, "ϵ")
	}
	sort.Strings(parts)
	return "{ " + strings.Join(parts, ", ") + " }"
}

// First computes FIRST(alpha) for an arbitrary sequence of grammar symbols.
// It uses the dragon-book simultaneous fixpoint algorithm (Aho/Sethi/Ullman
// Algorithm 4.4) rather than a single-recursive-guard approach, which loops
// forever on mutually left-recursive nonterminals (A -> B x, B -> A y)
// since it only ever guards a nonterminal against calling back into
// *itself*, not against a cycle through other nonterminals. The fixpoint
// tables (nullable, firstOfNonTerminal) are built once per grammar
// generation and reused; only the walk over alpha itself is done per call,
// and that walk's result is memoized by alpha's printable form.
func (g *Grammar) First(alpha []Symbol) FirstSet {
	g.ensureFirstTables()

	key := symbolSeqKey(alpha)
	if g.firstMemo == nil {
		g.firstMemo = map[string]FirstSet{}
	}
	if cached, ok := g.firstMemo[key]; ok {
		return cached
	}

	result := g.firstOfSequence(alpha)
	g.firstMemo[key] = result
	return result
}

// firstOfSequence walks alpha left to right, unioning in FIRST of each
// symbol until one is hit that cannot derive epsilon, per the standard
// FIRST(X1 X2 ... Xn) definition. An empty alpha derives only epsilon.
func (g *Grammar) firstOfSequence(alpha []Symbol) FirstSet {
	result := newFirstSet()
	result.HasEpsilon = true

	for _, sym := range alpha {
		var symFirst FirstSet
		switch sym.Kind {
		case Terminal:
			symFirst = newFirstSet()
			symFirst.Terminals.Add(sym.Name)
		case End:
			symFirst = newFirstSet()
			symFirst.Terminals.Add(sym.String())
		case Epsilon:
			symFirst = newFirstSet()
			symFirst.HasEpsilon = true
		default: // NonTerminal
			symFirst = g.firstOfNonTerminal[sym.Name]
		}

		result.Terminals.AddAll(symFirst.Terminals)
		if !symFirst.HasEpsilon {
			result.HasEpsilon = false
			break
		}
	}

	return result
}

// ensureFirstTables builds (if not already cached) the nullable set and the
// per-nonterminal FIRST table via simultaneous fixpoint iteration: repeatedly
// sweep every rule, growing nullable and firstOfNonTerminal, until a full
// sweep produces no change. This terminates for any grammar, including ones
// with mutual left recursion, because each sweep can only ever add elements
// to finite sets; it never recurses into a nonterminal's own definition.
func (g *Grammar) ensureFirstTables() {
	if g.nullable != nil && g.firstOfNonTerminal != nil {
		return
	}

	nullable := map[string]bool{}
	firstOf := map[string]FirstSet{}
	for _, nt := range g.NonTerminals() {
		firstOf[nt] = newFirstSet()
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			// Rule is nullable if every RHS symbol is nullable (or RHS is
			// empty); first non-nullable stops the scan.
			ruleNullable := true
			for _, sym := range r.RHS {
				if !symbolNullable(sym, nullable) {
					ruleNullable = false
					break
				}
			}
			if ruleNullable && !nullable[r.LHS.Name] {
				nullable[r.LHS.Name] = true
				changed = true
			}

			// Union in FIRST of each RHS prefix that is itself nullable so
			// far, stopping at (and including) the first non-nullable
			// symbol.
			before := firstOf[r.LHS.Name]
			acc := newFirstSet()
			acc.HasEpsilon = true
			for _, sym := range r.RHS {
				var symFirst FirstSet
				switch sym.Kind {
				case Terminal:
					symFirst = newFirstSet()
					symFirst.Terminals.Add(sym.Name)
				case End:
					symFirst = newFirstSet()
					symFirst.Terminals.Add(sym.String())
				case Epsilon:
					symFirst = newFirstSet()
					symFirst.HasEpsilon = true
				default:
					symFirst = firstOf[sym.Name]
				}
				acc.Terminals.AddAll(symFirst.Terminals)
				if !symbolNullable(sym, nullable) {
					break
				}
			}
			merged := before.union(FirstSet{Terminals: acc.Terminals})
			if !merged.Equal(before) {
				firstOf[r.LHS.Name] = merged
				changed = true
			}
		}
	}

	// Fold final nullability into each nonterminal's own FirstSet.HasEpsilon
	// so firstOfSequence can read it directly off firstOfNonTerminal without
	// consulting nullable separately.
	for nt := range firstOf {
		if nullable[nt] {
			fs := firstOf[nt]
			fs.HasEpsilon = true
			firstOf[nt] = fs
		}
	}

	g.nullable = nullable
	g.firstOfNonTerminal = firstOf
}

func symbolNullable(sym Symbol, nullable map[string]bool) bool {
	switch sym.Kind {
	case Epsilon:
		return true
	case NonTerminal:
		return nullable[sym.Name]
	default:
		return false
	}
}

func symbolSeqKey(alpha []Symbol) string {
	parts := make([]string, len(alpha))
	for i, s := range alpha {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
