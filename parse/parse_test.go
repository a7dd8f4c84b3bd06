package parse

import (
	"testing"

	"github.com/cfg-tools/lr1/grammar"
	"github.com/cfg-tools/lr1/lex"
	"github.com/cfg-tools/lr1/lrerr"
	"github.com/stretchr/testify/assert"
)

// s1Grammar is spec.md's running example: S -> C C ; C -> e C | d.
func s1Grammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(t, err)
	return g
}

func toks(syms ...string) []lex.Token {
	out := make([]lex.Token, len(syms))
	for i, s := range syms {
		out[i] = lex.Token{Symbol: s, Lexeme: s, Line: 1, Col: i + 1}
	}
	return out
}

func Test_Parse_S1_Accepts_edeeed(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)

	err = p.Parse(toks("e", "d", "e", "e", "e", "d"))
	assert.NoError(err)
}

func Test_Parse_S1_Accepts_dd(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)

	err = p.Parse(toks("d", "d"))
	assert.NoError(err)
}

func Test_Parse_S1_IncompleteInput_Fails(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)

	err = p.Parse(toks("d"))
	assert.Error(err)
	assert.ErrorIs(err, lrerr.ErrNoTransition)
}

func Test_Parse_S1_TrailingGarbage_Fails(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)

	err = p.Parse(toks("e", "d", "e", "d", "e"))
	assert.Error(err)
	assert.ErrorIs(err, lrerr.ErrNoTransition)
}

func Test_Parse_S1_UnknownSymbol_Fails(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)

	err = p.Parse(toks("z"))
	assert.Error(err)
	assert.ErrorIs(err, lrerr.ErrNoTransition)
}

func Test_Parse_BuildID_StableAcrossParses(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s1Grammar(t), ResolveThrow)
	assert.NoError(err)
	assert.NotEmpty(p.BuildID)

	id := p.BuildID
	assert.NoError(p.Parse(toks("d", "d")))
	assert.Equal(id, p.BuildID)
}

// s2Grammar is spec.md's epsilon-bearing example: S -> A B C ; A -> a | # ;
// B -> A D | b ; C -> c d ; D -> d | #.
func s2Grammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.FromRules([]string{
		"S -> A B C",
		"A -> a | #",
		"B -> A D | b",
		"C -> c d",
		"D -> d | #",
	})
	assert.NoError(t, err)
	return g
}

func Test_Parse_S2_AllNullablesElided_Accepts(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s2Grammar(t), ResolveThrow)
	assert.NoError(err)

	// A -> #, B -> A D with A -> # and D -> #, C -> c d: just "c d".
	err = p.Parse(toks("c", "d"))
	assert.NoError(err)
}

func Test_Parse_S2_BViaInnerDToken_Accepts(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s2Grammar(t), ResolveThrow)
	assert.NoError(err)

	// A -> #, B -> A D with A -> # and D -> d, C -> c d: "d c d".
	err = p.Parse(toks("d", "c", "d"))
	assert.NoError(err)
}

func Test_Parse_S2_AllTerminalsTaken_Accepts(t *testing.T) {
	assert := assert.New(t)

	p, err := Build(s2Grammar(t), ResolveThrow)
	assert.NoError(err)

	// A -> a, B -> b, C -> c d: "a b c d".
	err = p.Parse(toks("a", "b", "c", "d"))
	assert.NoError(err)
}

func Test_Parse_DanglingElse_ResolveShift_AcceptsNestedIf(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{
		`S -> "if" E "then" S | "if" E "then" S "else" S | o`,
		"E -> e",
	})
	assert.NoError(err)

	p, err := Build(g, ResolveShift)
	assert.NoError(err)

	// if e then if e then o else o
	err = p.Parse(toks("if", "e", "then", "if", "e", "then", "o", "else", "o"))
	assert.NoError(err)
}
