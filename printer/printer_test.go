package printer

import (
	"testing"

	"github.com/cfg-tools/lr1/automaton"
	"github.com/cfg-tools/lr1/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Collection_RendersOneBlockPerState(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	col, err := automaton.Build(g, automaton.ResolveThrow)
	assert.NoError(err)

	out := Collection(col)
	assert.Contains(out, "state 0:")
	assert.Contains(out, "state 9:")
}

func Test_State_AnnotatesShiftAndReduce(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	col, err := automaton.Build(g, automaton.ResolveThrow)
	assert.NoError(err)

	out := State(0, col.States[0])
	assert.Contains(out, "(S")
}

func Test_ConflictReport_EmptyWhenNoConflicts(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{"S -> C C", "C -> e C | d"})
	assert.NoError(err)

	col, err := automaton.Build(g, automaton.ResolveThrow)
	assert.NoError(err)

	assert.Empty(ConflictReport(col))
}

func Test_ConflictReport_ListsResolvedConflicts(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{"S -> A | B", "A -> x", "B -> x"})
	assert.NoError(err)

	col, err := automaton.Build(g, automaton.ResolveReduce)
	assert.NoError(err)

	out := ConflictReport(col)
	assert.Contains(out, "reduce/reduce conflict resolved")
}

// Test_State_ReduceReduceLoser_AnnotatedNonActionable covers the conflict
// case spec.md §6 calls out: a reduce item that shares its lookahead with
// another reduce item but lost the conflict resolution must render "(??)",
// not "(R)", even though some reduce action exists for that lookahead.
func Test_State_ReduceReduceLoser_AnnotatedNonActionable(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.FromRules([]string{"S -> A | B", "A -> x", "B -> x"})
	assert.NoError(err)

	col, err := automaton.Build(g, automaton.ResolveReduce)
	assert.NoError(err)

	assert.Len(col.Conflicts, 1)
	conflict := col.Conflicts[0]
	st := col.States[conflict.State]

	winner := st.Reduce[conflict.Terminal]
	var loserCount, winnerCount int
	for _, it := range st.Items {
		if !it.IsReduce() {
			continue
		}
		got := action(st, it)
		if it.Equal(winner) {
			winnerCount++
			assert.Equal("(R)", got)
		} else {
			loserCount++
			assert.Equal("(??)", got)
		}
	}
	assert.Equal(1, winnerCount)
	assert.Equal(1, loserCount)
}
