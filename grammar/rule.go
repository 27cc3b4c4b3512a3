package grammar

import "strings"

// Rule is a single context-free production, `lhs -> rhs[0] rhs[1] ... `.
// Rules are immutable once a Grammar has been validated; equality is
// structural.
type Rule struct {
	LHS Symbol
	RHS []Symbol
}

// Copy returns a deep copy of r.
func (r Rule) Copy() Rule {
	rhs := make([]Symbol, len(r.RHS))
	copy(rhs, r.RHS)
	return Rule{LHS: r.LHS, RHS: rhs}
}

// Equal reports structural equality: same LHS and same RHS symbols in the
// same order.
func (r Rule) Equal(o Rule) bool {
	if !r.LHS.Equal(o.LHS) {
		return false
	}
	if len(r.RHS) != len(o.RHS) {
		return false
	}
	for i := range r.RHS {
		if !r.RHS[i].Equal(o.RHS[i]) {
			return false
		}
	}
	return true
}

// String renders the rule in its printable form: `lhs -> s1 s2 ... sn`,
// with an empty RHS rendered as the single symbol `ϵ`.
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.LHS.String())
	sb.WriteString(" -> ")
	if len(r.RHS) == 0 {
		sb.WriteString("ϵ")
		return sb.String()
	}
	for i, sym := range r.RHS {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(sym.String())
	}
	return sb.String()
}
