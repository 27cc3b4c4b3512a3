package grammar

import "strings"

// Item is an LR(1) item: a rule with a dot position and a one-token
// lookahead. Left/right context of the dot is represented as RHS+Dot rather
// than as two separately-tracked symbol slices, since Symbol already
// carries its own kind and a single slice plus an index is enough to
// recover both sides.
type Item struct {
	LHS       Symbol
	RHS       []Symbol
	Dot       int
	Lookahead Symbol
}

// Done reports whether the dot has reached the end of the RHS.
func (it Item) Done() bool {
	return it.Dot >= len(it.RHS)
}

// NextSymbol returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the item is Done.
func (it Item) NextSymbol() (Symbol, bool) {
	if it.Done() {
		return Symbol{}, false
	}
	return it.RHS[it.Dot], true
}

// Advanced returns a copy of it with the dot moved one position to the
// right. It panics if it is already Done, since the dot must never exceed
// len(rhs) — callers only ever call this after confirming NextSymbol
// matches the symbol being advanced over.
func (it Item) Advanced() Item {
	if it.Done() {
		panic("dot position out of range: item is already done")
	}
	return Item{LHS: it.LHS, RHS: it.RHS, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Rule returns the (unit-lookahead-stripped) production this item tracks.
func (it Item) Rule() Rule {
	return Rule{LHS: it.LHS, RHS: it.RHS}
}

// Equal reports structural equality between two items.
func (it Item) Equal(o Item) bool {
	if !it.LHS.Equal(o.LHS) || it.Dot != o.Dot || !it.Lookahead.Equal(o.Lookahead) {
		return false
	}
	if len(it.RHS) != len(o.RHS) {
		return false
	}
	for i := range it.RHS {
		if !it.RHS[i].Equal(o.RHS[i]) {
			return false
		}
	}
	return true
}

// String renders the item as `LHS -> alpha . beta, lookahead`, used both for
// debugging output and as the canonical map key an ItemSet hashes items by
// (see package automaton).
func (it Item) String() string {
	parts := make([]string, 0, len(it.RHS)+1)
	for i, sym := range it.RHS {
		if i == it.Dot {
			parts = append(parts, ".")
		}
		parts = append(parts, sym.String())
	}
	if it.Dot == len(it.RHS) {
		parts = append(parts, ".")
	}

	return it.LHS.String() + " -> " + strings.Join(parts, " ") + ", " + it.Lookahead.String()
}
