// Package lex implements a context-sensitive lexer: a lexer whose set of
// "active" terminal patterns is reconfigured by the parser driver at every
// state transition, rather than a conventional lexer that tokenizes
// against one fixed terminal universe for the whole input. Tokens are
// produced on demand, one per call to Next, since the active set can only
// be known once the parser has told the lexer what state it is in.
package lex

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/lrerrors"
)

// Token is a lexeme read from the input, tagged with the terminal symbol it
// matched. Content is the matched text for ordinary terminals, and the empty
// string for the end-of-input token.
type Token struct {
	Type    grammar.Symbol
	Content string
	Pos     int
	Line    int
	LinePos int
}

func (t Token) String() string {
	if t.Type.Kind == grammar.End {
		return "$"
	}
	return fmt.Sprintf("%s(%q)", t.Type.String(), t.Content)
}

// Lexer matches terminal patterns against an input string anchored at the
// current position, first-match-wins against whichever subset of the
// terminal universe is currently "active". It holds no notion of longest
// match; pattern order within the active set is the only tie-breaker.
type Lexer struct {
	input    string
	pos      int
	line     int
	linePos  int
	universe map[string]*regexp.Regexp // pattern -> compiled, anchored at ^
	active   []string                  // ordered; subset of keys of universe
	done     bool
}

// New compiles every pattern in terminals (the full universe a grammar
// defines, from grammar.Grammar.Terminals) and returns a Lexer reading from
// input. The active set starts empty; callers must call SetActive before
// the first call to Next.
func New(terminals []string, input string) (*Lexer, error) {
	lx := &Lexer{
		input:    input,
		line:     1,
		linePos:  1,
		universe: make(map[string]*regexp.Regexp, len(terminals)),
	}
	for _, pat := range terminals {
		re, err := regexp.Compile(`^(?:` + pat + `)`)
		if err != nil {
			return nil, fmt.Errorf("lex: invalid terminal pattern %q: %w", pat, err)
		}
		lx.universe[pat] = re
	}
	return lx, nil
}

// SetActive reconfigures the set of terminal patterns the lexer will try to
// match on the next call to Next, in the given priority order. It returns
// lrerrors.UnregisteredTerminal if any pattern was not part of the universe
// New was called with.
func (lx *Lexer) SetActive(patterns []string) error {
	var unregistered []string
	for _, pat := range patterns {
		if _, ok := lx.universe[pat]; !ok {
			unregistered = append(unregistered, pat)
		}
	}
	if len(unregistered) > 0 {
		return lrerrors.NewUnregisteredTerminal(unregistered)
	}
	lx.active = append([]string{}, patterns...)
	return nil
}

// Active returns the currently active terminal patterns, in match-priority
// order.
func (lx *Lexer) Active() []string {
	return append([]string{}, lx.active...)
}

// AtEnd reports whether the lexer has consumed the entire input and already
// emitted the end-of-input token.
func (lx *Lexer) AtEnd() bool {
	return lx.done
}

// Next consumes and returns the next token, matching against the currently
// active pattern set in order and taking the first match, not the longest.
// It returns lrerrors.UnexpectedCharacter if no active pattern matches at
// the current position, and errors on any call after the end-of-input
// token has already been returned once.
func (lx *Lexer) Next() (Token, error) {
	if lx.done {
		return Token{}, fmt.Errorf("lex: Next called after end of input already returned")
	}

	if lx.pos >= len(lx.input) {
		lx.done = true
		return Token{Type: grammar.EndMarker, Pos: lx.pos, Line: lx.line, LinePos: lx.linePos}, nil
	}

	rest := lx.input[lx.pos:]
	for _, pat := range lx.active {
		re := lx.universe[pat]
		match := re.FindString(rest)
		if match == "" {
			continue
		}
		tok := Token{
			Type:    grammar.Term(pat),
			Content: match,
			Pos:     lx.pos,
			Line:    lx.line,
			LinePos: lx.linePos,
		}
		lx.advance(match)
		return tok, nil
	}

	ch, _ := utf8.DecodeRuneInString(rest)
	return Token{}, lrerrors.NewUnexpectedCharacter(ch, lx.pos)
}

// advance moves the lexer's position past matched, updating line/column
// tracking for every newline it contains.
func (lx *Lexer) advance(matched string) {
	lines := strings.Split(matched, "\n")
	if len(lines) > 1 {
		lx.line += len(lines) - 1
		lx.linePos = 1 + len(lines[len(lines)-1])
	} else {
		lx.linePos += len(matched)
	}
	lx.pos += len(matched)
}
