// Package automaton builds the canonical LR(1) collection of item sets from
// a grammar: a dense, integer-indexed list of states, each carrying a
// shift/goto table and a reduce table, deduplicated by a fingerprint of each
// state's full item set so that two paths reaching the same closure share a
// state.
package automaton

import (
	"github.com/cfg-tools/lr1/grammar"
)

// ShiftAction is one entry of a state's shift table: the index of the
// successor state, plus the item whose advancement produced the shift (kept
// for diagnostics and pretty-printing, per spec.md's "(S<k>)" annotation).
type ShiftAction struct {
	Next int
	Item grammar.Item
}

// State is one state of the canonical collection: its item set (in stable
// discovery order), a shift table keyed by the symbol shifted on, and a
// reduce table keyed by lookahead terminal.
type State struct {
	Items  []grammar.Item
	Shift  map[string]ShiftAction
	Reduce map[string]grammar.Item
}

func newState(items []grammar.Item) State {
	return State{
		Items:  items,
		Shift:  map[string]ShiftAction{},
		Reduce: map[string]grammar.Item{},
	}
}

// Collection is the canonical LR(1) collection of item sets: a dense array
// of states, indexed by integer, with state 0 always the initial state (the
// closure of the augmented start item).
type Collection struct {
	States    []State
	Conflicts []Conflict

	// AugStart is the fresh start symbol (S') the augmented grammar used to
	// seed this collection. The reduce item "AugStart -> OriginalStart ."
	// under lookahead $ is the accept action, not a real reduce: AugStart
	// appears in no other production, so there is never a goto to perform
	// for it.
	AugStart string
}

// Build constructs the canonical LR(1) collection for g, augmenting it with
// a fresh start production internally (spec.md §4.5). resolver settles any
// shift/reduce or reduce/reduce conflict encountered while installing
// actions; Build fails on the first conflict resolver refuses to settle.
func Build(g *grammar.Grammar, resolver Resolver) (*Collection, error) {
	ag, newStart := g.Augmented()

	seed := grammar.NewItem(newStart, grammar.Production{g.StartSymbol()}, map[string]bool{grammar.EndOfInput: true})
	initial := grammar.Closure(ag, seed)

	col := &Collection{States: []State{newState(initial)}, AugStart: newStart}
	index := map[string]int{fingerprint(initial): 0}

	for i := 0; i < len(col.States); i++ {
		if err := col.expand(ag, i, index, resolver); err != nil {
			return nil, err
		}
	}

	return col, nil
}

// expand computes state i's shift and reduce tables, appending any newly
// discovered successor states to the collection.
func (col *Collection) expand(g *grammar.Grammar, i int, index map[string]int, resolver Resolver) error {
	items := col.States[i].Items

	// group items by the symbol immediately after the dot, in the order
	// that symbol is first seen, so goto is computed once per symbol over
	// every item in this state that shifts on it (spec.md §4.5's "union of
	// advanced items from all items in I whose symbol after the dot is
	// X"), rather than once per item.
	var symOrder []string
	groups := map[string][]grammar.Item{}
	for _, it := range items {
		if it.IsReduce() {
			continue
		}
		sym := it.CurrentSymbol()
		if _, ok := groups[sym]; !ok {
			symOrder = append(symOrder, sym)
		}
		groups[sym] = append(groups[sym], it)
	}

	for _, sym := range symOrder {
		group := groups[sym]
		advanced := make([]grammar.Item, len(group))
		for j, it := range group {
			advanced[j] = it.Advanced()
		}

		target := grammar.ClosureSet(g, advanced)
		fp := fingerprint(target)

		idx, ok := index[fp]
		if !ok {
			idx = len(col.States)
			col.States = append(col.States, newState(target))
			index[fp] = idx
		}

		col.States[i].Shift[sym] = ShiftAction{Next: idx, Item: group[0]}
	}

	for _, it := range items {
		if !it.IsReduce() {
			continue
		}
		for _, term := range it.SortedLookahead() {
			if err := installReduce(col, i, term, it, resolver); err != nil {
				return err
			}
		}
	}

	return nil
}

// installReduce installs a reduce action for it under lookahead term into
// state i, resolving any conflict with an already-installed shift or reduce
// action on the same terminal (spec.md §4.5 "Conflict handling") and
// appending a Conflict record for every case the resolver was actually
// consulted.
func installReduce(col *Collection, i int, term string, it grammar.Item, resolver Resolver) error {
	state := &col.States[i]

	if sh, ok := state.Shift[term]; ok {
		winner, err := resolver(sh.Item, it)
		if err != nil {
			return err
		}
		col.Conflicts = append(col.Conflicts, Conflict{State: i, Terminal: term, Kind: ShiftReduceConflict})
		if winner.IsReduce() {
			delete(state.Shift, term)
			state.Reduce[term] = winner
		}
		// otherwise the shift already installed is the resolved winner;
		// leave it in place and do not install the reduce.
		return nil
	}

	if existing, ok := state.Reduce[term]; ok {
		if existing.NonTerminal == it.NonTerminal && existing.Prod.Equal(it.Prod) {
			// same reduce action reached by a second lookahead item; not a
			// conflict.
			return nil
		}
		winner, err := resolver(existing, it)
		if err != nil {
			return err
		}
		col.Conflicts = append(col.Conflicts, Conflict{State: i, Terminal: term, Kind: ReduceReduceConflict})
		state.Reduce[term] = winner
		return nil
	}

	state.Reduce[term] = it
	return nil
}
