// Package printer renders a canonical collection as the human-readable
// tables spec.md describes: one block per state, each item written
// "A -> alpha . beta {lookahead}" with a "(S<k>)"/"(R)"/"(??)" suffix naming
// the action it produced. Grounded in the teacher's
// internal/ictiobus/parse table String() methods, which lay out LR tables
// the same way with github.com/dekarrin/rosed.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cfg-tools/lr1/automaton"
	"github.com/cfg-tools/lr1/grammar"
	"github.com/dekarrin/rosed"
)

// Collection renders every state of c in order, separated by a blank line.
func Collection(c *automaton.Collection) string {
	var blocks []string
	for i, st := range c.States {
		blocks = append(blocks, State(i, st))
	}
	return strings.Join(blocks, "\n\n")
}

// State renders one state: its index, then one line per item annotated with
// the action that item produced in this state.
func State(index int, st automaton.State) string {
	rows := make([][]string, 0, len(st.Items))
	for _, it := range st.Items {
		rows = append(rows, []string{it.String(), action(st, it)})
	}

	body := rosed.
		Edit("").
		InsertTableOpts(0, rows, 100, rosed.Options{
			NoTrailingLineSeparators: true,
		}).
		String()

	return fmt.Sprintf("state %d:\n%s", index, body)
}

// action names the table entry a particular item produced in st: "(S<k>)"
// for a shift to state k, "(R)" for an installed reduce, or "(??)" if st has
// no shift on the item's dotted symbol or, for a reduce item, no reduce
// entry holding this very item under any of its lookaheads (possible when a
// conflict resolver discarded this item in favor of another).
func action(st automaton.State, it grammar.Item) string {
	if !it.IsReduce() {
		sym := it.CurrentSymbol()
		if sh, ok := st.Shift[sym]; ok {
			return fmt.Sprintf("(S%d)", sh.Next)
		}
		return "(??)"
	}

	for _, term := range it.SortedLookahead() {
		if installed, ok := st.Reduce[term]; ok && installed.Equal(it) {
			return "(R)"
		}
	}
	return "(??)"
}

// ConflictReport renders one line per conflict a Resolver settled while
// building c, sorted by state then terminal for deterministic output.
func ConflictReport(c *automaton.Collection) string {
	type row struct {
		state int
		term  string
		kind  string
	}
	rows := make([]row, len(c.Conflicts))
	for i, cf := range c.Conflicts {
		rows[i] = row{state: cf.State, term: cf.Terminal, kind: cf.Kind.String()}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].state != rows[j].state {
			return rows[i].state < rows[j].state
		}
		return rows[i].term < rows[j].term
	})

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("state %d, lookahead %q: %s conflict resolved", r.state, r.term, r.kind)
	}
	return strings.Join(lines, "\n")
}
