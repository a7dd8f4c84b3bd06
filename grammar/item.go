package grammar

import (
	"sort"
	"strings"
)

// Item is an LR(1) item: a production of a non-terminal, a dot position
// within that production, and a lookahead set of terminals. When DotPos
// equals len(Production), the item is a reduce item.
type Item struct {
	NonTerminal string
	Prod        Production
	DotPos      int
	Lookahead   map[string]bool
}

// NewItem constructs an Item with dot position 0 and the given lookahead
// set (copied so later mutation of lookahead by the caller cannot alias the
// item's set).
func NewItem(nt string, prod Production, lookahead map[string]bool) Item {
	return Item{NonTerminal: nt, Prod: prod, DotPos: 0, Lookahead: copySet(lookahead)}
}

func copySet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// IsReduce reports whether the dot has reached the end of the production.
func (it Item) IsReduce() bool {
	return it.DotPos >= len(it.Prod)
}

// CurrentSymbol returns the symbol immediately after the dot. It must only
// be called when !IsReduce().
func (it Item) CurrentSymbol() string {
	return it.Prod[it.DotPos]
}

// Advanced returns a copy of it with the dot moved one position to the
// right, sharing it's lookahead set by value (the returned item owns an
// independent copy).
func (it Item) Advanced() Item {
	return Item{NonTerminal: it.NonTerminal, Prod: it.Prod, DotPos: it.DotPos + 1, Lookahead: copySet(it.Lookahead)}
}

// core returns the (nt, prod, dotpos) triple identifying it independent of
// lookahead, as a string key suitable for map/set use.
func (it Item) core() string {
	return it.NonTerminal + "\x1f" + it.Prod.key() + "\x1f" + itoa(it.DotPos)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// sortedLookahead returns it's lookahead terminals sorted, so that hashing
// and string formatting are independent of the set's iteration order.
func (it Item) sortedLookahead() []string {
	out := make([]string, 0, len(it.Lookahead))
	for s := range it.Lookahead {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SortedLookahead returns it's lookahead terminals sorted, for callers
// outside this package that need a stable iteration order (installing
// reduce actions one terminal at a time, for instance).
func (it Item) SortedLookahead() []string {
	return it.sortedLookahead()
}

// Key returns a string that uniquely identifies it, combining its core and
// its lookahead set in a way that is stable under permutation of the
// lookahead set. Two items with Key() equal are considered the same item for
// deduplication purposes (they compare Equal).
func (it Item) Key() string {
	return it.core() + "\x1f{" + strings.Join(it.sortedLookahead(), ",") + "}"
}

// Equal reports whether it and o are the same item: same non-terminal, same
// production, same dot position, and the same lookahead set (compared as a
// set, independent of any ordering).
func (it Item) Equal(o Item) bool {
	return it.Key() == o.Key()
}

// String renders the item as "A -> alpha . beta {L}" as described by the
// design's pretty-printer contract, with lookahead terminals sorted for
// deterministic output.
func (it Item) String() string {
	var sb strings.Builder
	sb.WriteString(it.NonTerminal)
	sb.WriteString(" -> ")
	sb.WriteString(strings.Join([]string(it.Prod[:it.DotPos]), " "))
	if it.DotPos > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(".")
	if it.DotPos < len(it.Prod) {
		sb.WriteString(" ")
		sb.WriteString(strings.Join([]string(it.Prod[it.DotPos:]), " "))
	}
	sb.WriteString(" {")
	sb.WriteString(strings.Join(it.sortedLookahead(), ","))
	sb.WriteString("}")
	return sb.String()
}

// Lookahead computes the set of terminals that may immediately follow the
// symbol at prod[dotpos] within this production alone, by scanning the tail
// prod[dotpos+1:]. If the tail is wholly nullable (or there is no tail),
// the returned set includes the inherit sentinel "$$", signaling that the
// real lookahead must come from the enclosing item's lookahead set. This
// performs a bounded traversal of alternative continuations for any
// non-terminal encountered in the tail, using g's Nullable set to decide
// when to keep scanning past it, and memoizes non-terminals already expanded
// during the call to prevent infinite descent on recursive grammars.
func Lookahead(g *Grammar, prod Production, dotpos int) map[string]bool {
	if dotpos >= len(prod)-1 {
		return map[string]bool{inheritSentinel: true}
	}

	nullable := g.Nullable()
	ret := map[string]bool{}
	visited := map[string]bool{}

	type frame []string
	queue := []frame{frame(prod[dotpos+1:])}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		reachedEnd := true
		for i, tok := range cur {
			if tok == Epsilon {
				continue
			}
			if g.IsNonTerminal(tok) {
				if visited[tok] {
					if nullable[tok] {
						continue
					}
					reachedEnd = false
					break
				}
				visited[tok] = true
				for _, p := range g.Productions(tok) {
					// an expansion is followed by the rest of this frame, so
					// a frame only reaches its end when the whole tail is
					// nullable.
					next := append(frame{}, p...)
					queue = append(queue, append(next, cur[i+1:]...))
				}
			} else {
				ret[tok] = true
			}
			if !nullable[tok] {
				reachedEnd = false
				break
			}
		}
		if reachedEnd {
			ret[inheritSentinel] = true
		}
	}

	return ret
}

// Closure computes the breadth-first closure of the single item it under
// grammar g: for every item "A -> alpha . B beta {L}" with B a non-terminal,
// the closure contains "B -> . gamma {L'}" for every production B -> gamma,
// where L' is Lookahead(g, A -> alpha B beta, dotpos(B)) with the inherit
// sentinel replaced by L. Reduce items contribute nothing further. Canonical
// LR(1) keeps items with the same core but different lookahead sets
// distinct: an item is only deduplicated against one already found when its
// full (nt, production, dotpos, lookahead) tuple matches exactly, so a core
// reached with a new lookahead set becomes a new item that gets its own
// closure expansion in turn.
func Closure(g *Grammar, it Item) []Item {
	return ClosureSet(g, []Item{it})
}

// ClosureSet computes the breadth-first closure of a set of seed items at
// once: the union of what Closure would produce for each seed individually.
// This is the form the automaton package needs for goto: the seeds are every
// item in a state advanced past the same transition symbol, taken together.
func ClosureSet(g *Grammar, seeds []Item) []Item {
	var order []string
	byKey := map[string]Item{}

	queue := make([]Item, len(seeds))
	for i, s := range seeds {
		queue[i] = Item{NonTerminal: s.NonTerminal, Prod: s.Prod, DotPos: s.DotPos, Lookahead: copySet(s.Lookahead)}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		k := n.Key()
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = n
		order = append(order, k)

		if n.IsReduce() {
			continue
		}
		sym := n.CurrentSymbol()
		if !g.IsNonTerminal(sym) {
			continue
		}

		// every item spawned by expanding n's current symbol carries the
		// same lookahead: what may follow that symbol within n's own
		// production, with the inherit sentinel resolved against n's own
		// (already-resolved) lookahead set. This is independent of which
		// production of sym is being added, so it is computed once per n
		// rather than once per production.
		spawned := resolveInherited(Lookahead(g, n.Prod, n.DotPos), n.Lookahead)

		for _, prod := range g.Productions(sym) {
			queue = append(queue, Item{NonTerminal: sym, Prod: prod, DotPos: 0, Lookahead: copySet(spawned)})
		}
	}

	out := make([]Item, len(order))
	for i, k := range order {
		out[i] = byKey[k]
	}
	return out
}

// resolveInherited returns a copy of lh with the inherit sentinel replaced
// by the contents of parentLookahead, if present.
func resolveInherited(lh map[string]bool, parentLookahead map[string]bool) map[string]bool {
	if !lh[inheritSentinel] {
		return copySet(lh)
	}
	out := make(map[string]bool, len(lh)+len(parentLookahead))
	for s := range lh {
		if s != inheritSentinel {
			out[s] = true
		}
	}
	for s := range parentLookahead {
		out[s] = true
	}
	return out
}
