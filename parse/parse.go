// Package parse builds a table-driven LR(1) parser from a grammar and runs
// the shift/reduce loop over a token stream, per spec.md §4.6. It is the
// Go-idiomatic split of the reference implementation's LR1Parser class:
// Build corresponds to its constructor (canonical collection construction),
// and (*Parser).Parse to its parse() method.
package parse

import (
	"fmt"

	"github.com/cfg-tools/lr1/automaton"
	"github.com/cfg-tools/lr1/diag"
	"github.com/cfg-tools/lr1/grammar"
	"github.com/cfg-tools/lr1/lex"
	"github.com/cfg-tools/lr1/lrerr"
	"github.com/google/uuid"
)

// Option configures a Parser at Build time.
type Option func(*Parser)

// WithLogger attaches a diagnostics logger to a Parser's Build and Parse.
func WithLogger(l *diag.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// Parser is a built LR(1) parser: a canonical collection plus enough of the
// grammar it was built from to recognize acceptance. The zero value is not
// usable; construct one with Build. A *Parser is safe for concurrent use by
// Parse, which mutates only its own local stack.
type Parser struct {
	collection *automaton.Collection

	// BuildID correlates every diagnostic record emitted during this
	// Parser's construction and subsequent parses.
	BuildID string

	logger *diag.Logger
}

// Build constructs a Parser for g, settling any construction-time conflict
// with resolver (spec.md §4.5). This is the library's entry point for
// turning a grammar into something that can recognize input.
func Build(g *grammar.Grammar, resolver Resolver, opts ...Option) (*Parser, error) {
	p := &Parser{
		BuildID: uuid.NewString(),
		logger:  diag.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}

	// run the grammar-analysis fixpoints once up front with diagnostics
	// attached; automaton.Build (via grammar.ClosureSet's repeated calls to
	// Lookahead) recomputes NULLABLE internally without a logger, so this is
	// the one place a caller can observe convergence behavior directly.
	g.Nullable(p.logger)
	g.First(p.logger)
	g.Follow(p.logger)

	col, err := automaton.Build(g, resolver)
	if err != nil {
		return nil, err
	}
	p.collection = col

	for i, st := range col.States {
		p.logger.StateBuilt(p.BuildID, i, len(st.Items))
	}
	for _, c := range col.Conflicts {
		p.logger.ConflictResolved(p.BuildID, c.Kind.String(), c.Terminal, c.State)
	}

	return p, nil
}

// FromCollection wraps an already-built canonical collection (typically one
// loaded from a cache.Store) as a Parser, skipping construction entirely.
func FromCollection(col *automaton.Collection, opts ...Option) *Parser {
	p := &Parser{
		collection: col,
		BuildID:    uuid.NewString(),
		logger:     diag.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collection returns the canonical collection backing p, for callers that
// want to cache or pretty-print it.
func (p *Parser) Collection() *automaton.Collection {
	return p.collection
}

// States returns the states of the built canonical collection, mainly
// useful for pretty-printers and tests.
func (p *Parser) States() []automaton.State {
	return p.collection.States
}

// frame is one (symbol, state) pair of the parse stack. The reference
// implementation interleaves these on a single stack; here the stack is one
// slice of pairs, which carries the same information.
type frame struct {
	sym   string
	state int
}

// Parse drives the table-driven shift/reduce loop over tokens (spec.md
// §4.6). tokens need not include a trailing end-of-input marker; Parse
// appends one. It returns nil on acceptance, and otherwise a
// *lrerr.ParseError (no action for the current lookahead) or a
// *lrerr.InternalError (a violated stack invariant, indicating a bug in
// this module rather than in the grammar or input).
func (p *Parser) Parse(tokens []lex.Token) error {
	stack := []frame{{sym: grammar.EndOfInput, state: 0}}

	input := make([]lex.Token, 0, len(tokens)+1)
	input = append(input, tokens...)
	input = append(input, lex.Token{Symbol: grammar.EndOfInput, Lexeme: grammar.EndOfInput})

	pos := 0

	for {
		look := input[pos]
		top := stack[len(stack)-1]
		state := p.collection.States[top.state]

		if sh, ok := state.Shift[look.Symbol]; ok {
			p.logger.Shift(p.BuildID, top.state, look.Symbol)
			stack = append(stack, frame{sym: look.Symbol, state: sh.Next})
			pos++
			continue
		}

		if item, ok := state.Reduce[look.Symbol]; ok {
			if item.NonTerminal == p.collection.AugStart && look.Symbol == grammar.EndOfInput {
				p.logger.Accept(p.BuildID)
				return nil
			}

			p.logger.Reduce(p.BuildID, top.state, item.NonTerminal)

			// an epsilon production's single Epsilon symbol was pushed by the
			// spontaneous Epsilon transition below, so it is popped like any
			// other symbol.
			n := len(item.Prod)
			if len(stack) <= n {
				return lrerr.NewInternalError(fmt.Sprintf(
					"cannot reduce %s -> %s: stack has only %d frames", item.NonTerminal, item.Prod.String(), len(stack)), nil)
			}

			for i := n - 1; i >= 0; i-- {
				popped := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if popped.sym != item.Prod[i] {
					return lrerr.NewInternalError(fmt.Sprintf(
						"reduce %s -> %s: popped symbol %q does not match expected %q at position %d",
						item.NonTerminal, item.Prod.String(), popped.sym, item.Prod[i], i), nil)
				}
			}

			back := stack[len(stack)-1]
			backState := p.collection.States[back.state]

			goTo, ok := backState.Shift[item.NonTerminal]
			if !ok {
				return lrerr.NewInternalError(fmt.Sprintf(
					"no goto transition for %q from state %d", item.NonTerminal, back.state), nil)
			}
			stack = append(stack, frame{sym: item.NonTerminal, state: goTo.Next})
			continue
		}

		// an epsilon item "A -> . # {L}" is grouped under symbol Epsilon by
		// automaton.expand like any other pre-dot symbol, so its goto lands
		// in this state's shift table rather than its reduce table; the
		// successor state holding the real reduce item "A -> # . {L}" is
		// reached by this spontaneous transition, which consumes no input
		// (spec.md §4.6; mirrors original_source/parser.py's "#" in shift
		// branch).
		if sh, ok := state.Shift[grammar.Epsilon]; ok {
			p.logger.Shift(p.BuildID, top.state, grammar.Epsilon)
			stack = append(stack, frame{sym: grammar.Epsilon, state: sh.Next})
			continue
		}

		return lrerr.NewParseError(fmt.Sprintf(
			"no transition in state %d for lookahead %q (%q)", top.state, look.Symbol, look.Lexeme), nil)
	}
}
