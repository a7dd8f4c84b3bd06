package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Item_IsReduce(t *testing.T) {
	assert := assert.New(t)

	it := NewItem("S", Production{"a", "b"}, map[string]bool{"$": true})
	assert.False(it.IsReduce())

	it = it.Advanced().Advanced()
	assert.True(it.IsReduce())
}

func Test_Item_CurrentSymbol(t *testing.T) {
	assert := assert.New(t)

	it := NewItem("S", Production{"a", "b"}, map[string]bool{"$": true})
	assert.Equal("a", it.CurrentSymbol())

	it = it.Advanced()
	assert.Equal("b", it.CurrentSymbol())
}

func Test_Item_Equal(t *testing.T) {
	assert := assert.New(t)

	a := NewItem("S", Production{"a", "b"}, map[string]bool{"$": true, "c": true})
	b := NewItem("S", Production{"a", "b"}, map[string]bool{"c": true, "$": true})
	assert.True(a.Equal(b))

	c := NewItem("S", Production{"a", "b"}, map[string]bool{"$": true})
	assert.False(a.Equal(c))

	d := a.Advanced()
	assert.False(a.Equal(d))
}

func Test_Item_String(t *testing.T) {
	assert := assert.New(t)

	it := NewItem("S", Production{"a", "b"}, map[string]bool{"$": true})
	it = it.Advanced()

	assert.Equal("S -> a . b {$}", it.String())
}

func Test_Lookahead_NoTail_ReturnsInherit(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	lh := Lookahead(g, Production{"C", "C"}, 1)
	assert.Equal(map[string]bool{inheritSentinel: true}, lh)
}

func Test_Lookahead_NonNullableTail(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	// S -> . C C, dot at 0: tail is the second C, which derives {e,d}, not
	// nullable, so no inherit sentinel is needed.
	lh := Lookahead(g, Production{"C", "C"}, 0)
	assert.Equal(map[string]bool{"e": true, "d": true}, lh)
}

func Test_Lookahead_AfterNullableSymbol_NonNullableTail(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{
		"S -> A B C",
		"A -> a | #",
		"B -> A D | b",
		"C -> c d",
		"D -> d | #",
	})
	assert.NoError(err)

	// S -> A . B C, dot at 1 (B is the current symbol): the tail after B
	// is just C, which is not nullable, so the result is FIRST(C) with no
	// inherit sentinel.
	lh := Lookahead(g, Production{"A", "B", "C"}, 1)
	assert.False(lh[inheritSentinel])
	assert.True(lh["c"])
}

func Test_Closure_NonTerminalExpansion(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	seed := NewItem("S", Production{"C", "C"}, map[string]bool{EndOfInput: true})
	items := Closure(g, seed)

	assert.Len(items, 3)

	var found []string
	for _, it := range items {
		found = append(found, it.String())
	}
	assert.Contains(found, "S -> . C C {$}")

	// both C items should carry {e,d} as lookahead: what follows the
	// first C in S -> C C is exactly FIRST(C) since the second C is not
	// nullable.
	for _, it := range items {
		if it.NonTerminal == "C" {
			assert.ElementsMatch([]string{"e", "d"}, it.sortedLookahead())
		}
	}
}

func Test_Closure_NoDuplicateItemTuples(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{
		"S -> A B C",
		"A -> a | #",
		"B -> A D | b",
		"C -> c d",
		"D -> d | #",
	})
	assert.NoError(err)

	// S -> . A B C: only A is after the dot, so the closure holds the seed
	// plus A's two productions at dot 0, each with lookahead = what follows
	// A in S's own production. Items are deduplicated by their full
	// (nt, production, dotpos, lookahead) tuple.
	seed := NewItem("S", Production{"A", "B", "C"}, map[string]bool{EndOfInput: true})
	items := Closure(g, seed)

	// no exact duplicate (nt, prod, dotpos, lookahead) tuples.
	seen := map[string]bool{}
	for _, it := range items {
		assert.False(seen[it.Key()], "duplicate item %s in closure", it)
		seen[it.Key()] = true
	}

	var aItems []Item
	for _, it := range items {
		if it.NonTerminal == "A" && it.DotPos == 0 {
			aItems = append(aItems, it)
		}
	}
	assert.GreaterOrEqual(len(aItems), 1)
}

func Test_Closure_ReduceItemContributesNothing(t *testing.T) {
	assert := assert.New(t)

	g, err := FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	seed := NewItem("C", Production{"d"}, map[string]bool{EndOfInput: true})
	seed = seed.Advanced()
	assert.True(seed.IsReduce())

	items := Closure(g, seed)
	assert.Len(items, 1)
	assert.True(items[0].IsReduce())
}
