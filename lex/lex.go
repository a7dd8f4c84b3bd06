package lex

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cfg-tools/lr1/lrerr"
)

// Lexer is an embedded longest-match tokenizer built from a grammar's
// terminal set plus an optional map of terminal name to regex source. A
// terminal named in the regex map is matched by that regex instead of by
// its literal text; every other terminal is matched literally.
//
// At each position the candidate literal terminals and regex terminals are
// all tried; the longest match wins. A tie between a literal and a regex of
// the same length is won by the literal, mirroring the reference
// implementation's set-then-overwrite-on-strictly-longer behavior, made
// deterministic here by always considering literals before regexes rather
// than relying on map iteration order.
type Lexer struct {
	literals []string
	regexes  []regexTerm
}

type regexTerm struct {
	name string
	re   *regexp.Regexp
}

// New builds a Lexer for terminals, a sorted, deduplicated terminal list
// such as Grammar.Terminals returns. regexMap overrides the listed names
// with a regex; every key of regexMap must name one of terminals, or New
// returns an error. Regex sources are anchored to the start of the
// remaining input automatically; callers should not include a leading "^".
func New(terminals []string, regexMap map[string]string) (*Lexer, error) {
	known := make(map[string]bool, len(terminals))
	for _, t := range terminals {
		known[t] = true
	}

	names := make([]string, 0, len(regexMap))
	for name := range regexMap {
		if !known[name] {
			return nil, lrerr.NewGrammarError(fmt.Sprintf("regex terminal %q is not a terminal of the grammar", name), nil)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	regexes := make([]regexTerm, 0, len(names))
	for _, name := range names {
		re, err := regexp.Compile("^(?:" + regexMap[name] + ")")
		if err != nil {
			return nil, lrerr.NewGrammarError(fmt.Sprintf("regex terminal %q: invalid pattern", name), err)
		}
		regexes = append(regexes, regexTerm{name: name, re: re})
	}

	overridden := make(map[string]bool, len(regexMap))
	for name := range regexMap {
		overridden[name] = true
	}
	literals := make([]string, 0, len(terminals))
	for _, t := range terminals {
		if !overridden[t] {
			literals = append(literals, t)
		}
	}
	sort.Strings(literals)

	return &Lexer{literals: literals, regexes: regexes}, nil
}

// Lex scans input into a token stream. Whitespace (spaces, tabs, newlines)
// separates tokens and is otherwise discarded; every other character must
// be consumed by some literal or regex terminal, or Lex fails with
// lrerr.ErrUnrecognizedToken naming the unmatched remainder.
func (lx *Lexer) Lex(input string) ([]Token, error) {
	var toks []Token
	line, col := 1, 1

	advance := func(s string) {
		for _, r := range s {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	rest := input
	for len(rest) > 0 {
		if r, _ := utf8.DecodeRuneInString(rest); r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			_, size := utf8.DecodeRuneInString(rest)
			advance(rest[:size])
			rest = rest[size:]
			continue
		}

		bestSym, bestLex := "", ""
		for _, lit := range lx.literals {
			if strings.HasPrefix(rest, lit) && len(lit) > len(bestLex) {
				bestSym, bestLex = lit, lit
			}
		}
		for _, rt := range lx.regexes {
			if m := rt.re.FindString(rest); m != "" && len(m) > len(bestLex) {
				bestSym, bestLex = rt.name, m
			}
		}

		if bestLex == "" {
			remainder := rest
			if len(remainder) > 32 {
				remainder = remainder[:32] + "..."
			}
			return nil, lrerr.NewLexError(fmt.Sprintf("no terminal matches at %d:%d: %q", line, col, remainder), nil)
		}

		toks = append(toks, Token{Symbol: bestSym, Lexeme: bestLex, Line: line, Col: col})
		advance(bestLex)
		rest = rest[len(bestLex):]
	}

	return toks, nil
}
