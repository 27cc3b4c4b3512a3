package grammar

import "strings"

// SymbolKind distinguishes the four kinds of grammar symbol: a defined
// nonterminal, a terminal matched by a regular expression, the end-of-input
// marker, and the empty-production marker. This is a tagged union rather
// than the leading-quote string convention some hand-rolled grammar
// representations use to tell terminals from nonterminals apart, so callers
// never have to fall back to string-prefix tests to know what a Symbol is.
type SymbolKind int

const (
	// NonTerminal is a symbol defined by one or more rules.
	NonTerminal SymbolKind = iota

	// Terminal is a symbol matched against input by a regular expression.
	// Name holds the regex interior, without the surrounding quotes.
	Terminal

	// End is the end-of-input marker, `$`.
	End

	// Epsilon is the empty-production marker, `ϵ`. It appears only inside
	// FIRST sets and as the textual rendering of an empty RHS; it is never
	// legal inside a Rule's RHS.
	Epsilon
)

// RootNonTerminal is the reserved augmented start symbol. No rule may use
// it as an LHS.
const RootNonTerminal = "__root__"

// Symbol is a single grammar symbol: a terminal pattern, a nonterminal
// name, the end marker, or the epsilon marker.
type Symbol struct {
	Kind SymbolKind
	Name string
}

// NT builds a nonterminal symbol.
func NT(name string) Symbol {
	return Symbol{Kind: NonTerminal, Name: name}
}

// Term builds a terminal symbol from a regex pattern. pattern is the regex
// interior, i.e. without the surrounding quotes that the printable form
// uses.
func Term(pattern string) Symbol {
	return Symbol{Kind: Terminal, Name: pattern}
}

// EndMarker is the `$` end-of-input symbol.
var EndMarker = Symbol{Kind: End}

// EpsilonMarker is the `ϵ` empty-production symbol.
var EpsilonMarker = Symbol{Kind: Epsilon}

// ParseSymbol parses a single symbol from its printable form: a terminal is
// quoted ("..."), nonterminals are bare identifiers, `$` is the end marker,
// and `ϵ` is the epsilon marker.
func ParseSymbol(s string) Symbol {
	switch s {
	case "$":
		return EndMarker
	case "ϵ", "":
		return EpsilonMarker
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return Term(s[1 : len(s)-1])
	}
	return NT(s)
}

// String renders the symbol in its printable form: a quoted regex for
// terminals, bare name for nonterminals, `$` for the end marker, `ϵ` for
// epsilon.
func (s Symbol) String() string {
	switch s.Kind {
	case Terminal:
		return `"` + s.Name + `"`
	case End:
		return "$"
	case Epsilon:
		return "ϵ"
	default:
		return s.Name
	}
}

// IsTerminal reports whether s is a terminal pattern symbol.
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

// IsNonTerminal reports whether s is a nonterminal symbol.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminal
}

// Equal reports structural equality between two symbols.
func (s Symbol) Equal(o Symbol) bool {
	return s.Kind == o.Kind && s.Name == o.Name
}
