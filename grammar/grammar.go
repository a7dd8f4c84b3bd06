// Package grammar implements the symbol table and grammar model described by
// the design: parsing textual rule lines into a normalized Grammar, deriving
// its terminal set, and computing NULLABLE/FIRST/FOLLOW as monotone
// fixpoints. It also defines the LR(1) Item type and the closure/lookahead
// algorithm the automaton package builds its canonical collection from.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cfg-tools/lr1/lrerr"
)

// Epsilon is the reserved symbol denoting the empty production.
const Epsilon = "#"

// EndOfInput is the reserved symbol appended to every token stream and used
// as the default lookahead of the augmented start item.
const EndOfInput = "$"

// inheritSentinel ("$$") is the internal marker meaning "lookahead must be
// inherited from the enclosing item's lookahead set." It is local to
// Lookahead/Closure and must never escape into a Grammar's FIRST/FOLLOW sets
// or into a reduce table built by the automaton package.
const inheritSentinel = "$$"

// Production is an ordered sequence of symbols making up one alternative of
// a non-terminal. A single-element production of just Epsilon is the
// explicit epsilon production; no other production may contain Epsilon.
type Production []string

// Equal reports whether p and o consist of the same symbols in the same
// order.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEpsilon reports whether p is the explicit epsilon production (#,).
func (p Production) IsEpsilon() bool {
	return len(p) == 1 && p[0] == Epsilon
}

func (p Production) String() string {
	return strings.Join([]string(p), " ")
}

// key returns a string identifying p for use as a map key, by joining its
// symbols on the unit separator byte. This is injective as long as no symbol
// contains that byte; nothing rejects a symbol that does.
func (p Production) key() string {
	return strings.Join([]string(p), "\x1f")
}

// Rule is one LHS non-terminal plus the alternative right-hand sides seen for
// it while constructing a Grammar. It is the shape accepted by
// Grammar.AddRule's callers and returned by Grammar.Rules.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Grammar is an immutable, normalized context-free grammar: an ordered list
// of non-terminal records (each an LHS plus a deduplicated set of
// productions), a derived terminal set, and a designated start symbol (the
// first non-terminal declared).
//
// A Grammar is built incrementally with AddRule, then frozen with Validate;
// once validated it is treated as immutable by the rest of this module.
type Grammar struct {
	order []string
	rules map[string][]Production
	seen  map[string]map[string]bool // nonterm -> production key -> present
	start string
}

// New returns an empty Grammar ready to receive rules via AddRule.
func New() *Grammar {
	return &Grammar{
		rules: make(map[string][]Production),
		seen:  make(map[string]map[string]bool),
	}
}

// AddRule appends one production to the set of alternatives for nt. The
// first distinct nt ever added becomes the start symbol. Duplicate
// productions for the same nt (by symbol-for-symbol equality) are silently
// deduplicated, matching the "unordered set of productions, no duplicates"
// invariant of a non-terminal record.
func (g *Grammar) AddRule(nt string, prod Production) {
	if g.start == "" {
		g.start = nt
	}
	if _, ok := g.rules[nt]; !ok {
		g.order = append(g.order, nt)
		g.seen[nt] = make(map[string]bool)
	}
	k := prod.key()
	if g.seen[nt][k] {
		return
	}
	g.seen[nt][k] = true
	cp := make(Production, len(prod))
	copy(cp, prod)
	g.rules[nt] = append(g.rules[nt], cp)
}

// FromRules builds a Grammar from textual rule lines of the shape
// "LHS -> ALT1 | ALT2 | ...", as described in the design's grammar
// construction contract, and validates the result.
func FromRules(lines []string) (*Grammar, error) {
	g := New()

	for _, line := range lines {
		if err := addLine(g, line); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func addLine(g *Grammar, line string) error {
	arrowIdx := strings.Index(line, "->")
	if arrowIdx < 0 {
		return lrerr.NewGrammarError(fmt.Sprintf("missing \"->\" in rule %q", line), nil)
	}
	rest := line[arrowIdx+2:]
	if strings.Contains(rest, "->") {
		return lrerr.NewGrammarError(fmt.Sprintf("multiple \"->\" found in rule %q", line), nil)
	}

	nt := strings.TrimSpace(line[:arrowIdx])
	if nt == "" {
		return lrerr.NewGrammarError(fmt.Sprintf("empty non-terminal name in rule %q", line), nil)
	}

	for _, alt := range strings.Split(rest, "|") {
		toks, err := tokenize(alt)
		if err != nil {
			return lrerr.NewGrammarError(fmt.Sprintf("rule %q: %s", line, err.Error()), err)
		}
		if len(toks) == 0 {
			return lrerr.NewGrammarError(fmt.Sprintf("rule %q: alternative has no tokens", line), nil)
		}
		g.AddRule(nt, Production(toks))
	}

	return nil
}

// Validate checks the invariants a finished Grammar must hold: at least one
// non-terminal exists, every non-terminal has at least one production, and
// every symbol appearing in a production is either a known non-terminal or a
// terminal (this is trivially true by construction, since terminals are
// derived from exactly those symbols, but Validate also guards against the
// degenerate empty grammar).
func (g *Grammar) Validate() error {
	if len(g.order) == 0 {
		return lrerr.NewGrammarError("grammar has no rules", nil)
	}
	for _, nt := range g.order {
		if len(g.rules[nt]) == 0 {
			return lrerr.NewGrammarError(fmt.Sprintf("non-terminal %q has no productions", nt), nil)
		}
	}
	return nil
}

// StartSymbol returns the grammar's designated start symbol: the first
// non-terminal declared.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// NonTerminals returns every non-terminal in the grammar, start symbol
// first, in declaration order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// IsNonTerminal reports whether sym is a known non-terminal.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.rules[sym]
	return ok
}

// IsTerminal reports whether sym is a terminal: it is not a known
// non-terminal (and is not one of the reserved sentinels).
func (g *Grammar) IsTerminal(sym string) bool {
	if sym == Epsilon || sym == EndOfInput || sym == inheritSentinel {
		return false
	}
	return !g.IsNonTerminal(sym)
}

// Terminals returns the derived terminal set: every symbol appearing in any
// production that is not a known non-terminal, sorted for stable iteration.
func (g *Grammar) Terminals() []string {
	set := map[string]bool{}
	for _, nt := range g.order {
		for _, prod := range g.rules[nt] {
			for _, sym := range prod {
				if sym == Epsilon {
					continue
				}
				if !g.IsNonTerminal(sym) {
					set[sym] = true
				}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Productions returns the productions declared for nt, in the order they
// were added. It returns nil if nt is not a known non-terminal.
func (g *Grammar) Productions(nt string) []Production {
	prods, ok := g.rules[nt]
	if !ok {
		return nil
	}
	out := make([]Production, len(prods))
	copy(out, prods)
	return out
}

// Rules returns every non-terminal record in the grammar, in declaration
// order.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, 0, len(g.order))
	for _, nt := range g.order {
		out = append(out, Rule{NonTerminal: nt, Productions: g.Productions(nt)})
	}
	return out
}

// Iter calls fn once for every (non-terminal, production) pair in the
// grammar, in declaration order, mirroring the design's "iteration over all
// productions" accessor.
func (g *Grammar) Iter(fn func(nt string, prod Production)) {
	for _, nt := range g.order {
		for _, prod := range g.rules[nt] {
			fn(nt, prod)
		}
	}
}

// Augmented returns a new grammar identical to g but with a fresh start
// production S' -> S prepended, where S' is g's start symbol with primes
// appended until it names no symbol already in g. This follows the reference implementation's approach of
// re-serializing the grammar to text and reparsing it with the new start
// rule as the first line, rather than mutating the in-memory rule table
// directly, so that reparsing exercises exactly the same code path as any
// other grammar text a caller might supply.
func (g *Grammar) Augmented() (*Grammar, string) {
	newStart := g.start + "'"
	used := map[string]bool{}
	for _, t := range g.Terminals() {
		used[t] = true
	}
	for g.IsNonTerminal(newStart) || used[newStart] {
		newStart += "'"
	}
	lines := append([]string{newStart + " -> " + g.start}, g.asRuleLines()...)

	ag, err := FromRules(lines)
	if err != nil {
		// g was already validated and newStart names no symbol of g, so
		// this fails only for a symbol (added through AddRule) that rule-line
		// text cannot express, such as one containing "|" or "->".
		panic("grammar: augmenting validated grammar failed: " + err.Error())
	}
	return ag, newStart
}

// asRuleLines serializes g back into "LHS -> ALT1 | ALT2 | ..." lines, one
// per non-terminal, suitable for re-parsing with FromRules.
func (g *Grammar) asRuleLines() []string {
	lines := make([]string, 0, len(g.order))
	for _, nt := range g.order {
		alts := make([]string, 0, len(g.rules[nt]))
		for _, prod := range g.rules[nt] {
			if prod.IsEpsilon() {
				alts = append(alts, Epsilon)
				continue
			}
			toks := make([]string, len(prod))
			for i, sym := range prod {
				toks[i] = quoteIfNeeded(sym)
			}
			alts = append(alts, strings.Join(toks, " "))
		}
		lines = append(lines, nt+" -> "+strings.Join(alts, " | "))
	}
	return lines
}

func quoteIfNeeded(sym string) string {
	if strings.ContainsAny(sym, `"\`) {
		// a backslash is literal inside a quoted span, so a symbol holding a
		// quote or backslash is written unquoted with each special
		// character backslash-escaped instead.
		var sb strings.Builder
		for _, r := range sym {
			if strings.ContainsRune(" \t\"\\", r) {
				sb.WriteRune('\\')
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}
	if sym == "" || strings.ContainsAny(sym, " \t|") {
		return `"` + sym + `"`
	}
	return sym
}

// String renders the grammar back into rule-line form, start symbol first.
// Formatting a grammar and reparsing it with FromRules yields an equal
// grammar.
func (g *Grammar) String() string {
	return strings.Join(g.asRuleLines(), "\n")
}

// Equal reports whether g and o have the same start symbol and the same set
// of non-terminal records (LHS plus production set), independent of
// declaration order of alternatives or of non-terminals.
func (g *Grammar) Equal(o *Grammar) bool {
	if o == nil {
		return false
	}
	if g.start != o.start {
		return false
	}
	if len(g.order) != len(o.order) {
		return false
	}
	for nt, prods := range g.rules {
		oProds, ok := o.rules[nt]
		if !ok {
			return false
		}
		if len(prods) != len(oProds) {
			return false
		}
		oKeys := map[string]bool{}
		for _, p := range oProds {
			oKeys[p.key()] = true
		}
		for _, p := range prods {
			if !oKeys[p.key()] {
				return false
			}
		}
	}
	return true
}
