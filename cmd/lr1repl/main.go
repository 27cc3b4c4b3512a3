/*
Lr1repl starts an interactive session for compiling a grammar and driving
tokens through the resulting parse table one at a time.

It reads a grm-format grammar file, then starts a REPL that reads lines of
input text from stdin, parses each with the compiled grammar, and prints
the parse result or the error. With --trace it also prints each token read
and each action taken.

Usage:

	lr1repl [flags]

The flags are:

	-v, --version
		Print the current version and exit.

	-g, --grammar FILE
		Read the grm-format grammar from FILE. Defaults to "grammar.grm" in
		the current working directory.

	-t, --trace
		Print a trace line for every shift, reduce, and accept action.

Once a session starts, each line of input is parsed against the compiled
grammar and the resulting semantic value (or error) is printed. Type "QUIT"
to exit.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/dekarrin/lr1kit"
	"github.com/dekarrin/lr1kit/grammar"
	"github.com/dekarrin/lr1kit/grmtext"
	"github.com/dekarrin/lr1kit/parse"
)

const version = "0.1.0"

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates the grammar failed to load or compile.
	ExitInitError

	// ExitRuntimeError indicates an unrecoverable error during the REPL
	// session itself.
	ExitRuntimeError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Print the current version and exit")
	grammarFile = pflag.StringP("grammar", "g", "grammar.grm", "The grm-format file describing the grammar to compile")
	traceFlag   = pflag.BoolP("trace", "t", false, "Print a trace line for every parser action")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("lr1repl %s\n", version)
		return
	}

	g, err := loadGrammar(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	machine, err := lr1kit.Compile(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: grammar is not LR(1): %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if err := runSession(machine); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRuntimeError
	}
}

// loadGrammar reads and parses a grm-format grammar file.
func loadGrammar(path string) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}
	g, err := grmtext.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse grammar file: %w", err)
	}
	return g, nil
}

// echoCallback builds a reporting-only Callback: it returns a string of the
// form "(lhs: child1 child2 ...)" built from the reduced rule's lhs and its
// children's printed forms, so an arbitrary compiled
// grammar can be driven interactively without the operator supplying
// semantic actions of their own.
func echoCallback(ruleStr string) parse.Callback {
	return func(lhs grammar.Symbol, values []any) (any, error) {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprintf("%v", v)
		}
		joined := strings.Join(parts, " ")
		return fmt.Sprintf("(%s: %s)", lhs.String(), joined), nil
	}
}

func runSession(m *lr1kit.Machine) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "lr1> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	callbacks := make([]parse.Callback, m.Grammar.RuleCount())
	for i, r := range m.Grammar.Rules() {
		callbacks[i] = echoCallback(r.String())
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			return nil
		}

		p := m.NewParser(callbacks)
		if *traceFlag {
			p.RegisterTraceListener(func(s string) { fmt.Println(s) })
		}

		lx, err := m.NewLexer(line)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err.Error())
			continue
		}

		result, err := p.Parse(lx)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err.Error())
			continue
		}
		fmt.Printf("=> %v\n", result)
	}
}
