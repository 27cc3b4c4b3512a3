// Package lrerrors defines the error surface of package lr1kit's grammar,
// automaton, table, lex, and parse packages. Every construction-time and
// parse-time failure is an exported struct type implementing error through a
// pointer receiver, built by an exported constructor, so callers can match
// on the concrete type with errors.As and read its exported fields.
package lrerrors

import "fmt"

// UnregisteredTerminal is returned when a Lexer's active set is set to
// include a terminal pattern that was not part of the universe the lexer
// was constructed with.
type UnregisteredTerminal struct {
	Terminals []string
	wrap      error
}

func (e *UnregisteredTerminal) Error() string {
	return fmt.Sprintf("unregistered terminal(s) in active set: %q", e.Terminals)
}

func (e *UnregisteredTerminal) Unwrap() error {
	return e.wrap
}

// NewUnregisteredTerminal builds the error a Lexer returns when told to
// activate one or more patterns it was never constructed with.
func NewUnregisteredTerminal(terminals []string) error {
	return &UnregisteredTerminal{Terminals: terminals}
}

// UnexpectedCharacter is returned by the Lexer when no active pattern
// matches at the current input position.
type UnexpectedCharacter struct {
	Char rune
	Pos  int
	wrap error
}

func (e *UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

func (e *UnexpectedCharacter) Unwrap() error {
	return e.wrap
}

// NewUnexpectedCharacter builds the error a Lexer returns when it cannot
// match any active pattern at pos.
func NewUnexpectedCharacter(ch rune, pos int) error {
	return &UnexpectedCharacter{Char: ch, Pos: pos}
}

// ShiftReduceConflict is returned at table-construction time when a state
// has both a shift action and a reduce action defined for the same
// lookahead terminal.
type ShiftReduceConflict struct {
	Items      []string
	Lookahead  string
	ShiftState int
	Reduce     string
}

func (e *ShiftReduceConflict) Error() string {
	return fmt.Sprintf(
		"shift/reduce conflict on lookahead %q: shift to state %d vs reduce %s\ncompeting items:\n%s",
		e.Lookahead, e.ShiftState, e.Reduce, joinLines(e.Items),
	)
}

// NewShiftReduceConflict builds the error table construction returns when it
// finds both a shift and a reduce action for the same (state, lookahead)
// cell. items lists the string form of every LR(1) item in the state that
// either has a goto defined on lookahead or is complete with that lookahead.
func NewShiftReduceConflict(items []string, lookahead string, shiftState int, reduceRule string) error {
	return &ShiftReduceConflict{
		Items:      items,
		Lookahead:  lookahead,
		ShiftState: shiftState,
		Reduce:     reduceRule,
	}
}

// ReduceReduceConflict is returned at table-construction time when two
// distinct rules both want to reduce on the same (state, lookahead) cell.
type ReduceReduceConflict struct {
	RuleA string
	RuleB string
}

func (e *ReduceReduceConflict) Error() string {
	return fmt.Sprintf("reduce/reduce conflict: %s vs %s", e.RuleA, e.RuleB)
}

// NewReduceReduceConflict builds the error table construction returns when
// two rules both reduce on the same cell.
func NewReduceReduceConflict(ruleA, ruleB string) error {
	return &ReduceReduceConflict{RuleA: ruleA, RuleB: ruleB}
}

// SyntaxError is a parse-time failure: the table has no action for the
// current (state, lookahead) pair. It carries the input position so callers
// can point a user at the offending token.
type SyntaxError struct {
	Message string
	Pos     int
	wrap    error
}

func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.wrap
}

// NewSyntaxError builds the error the parser driver returns when it has no
// table entry for the current state and lookahead.
func NewSyntaxError(message string, pos int) error {
	return &SyntaxError{Message: message, Pos: pos}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += "  " + l
	}
	return out
}
