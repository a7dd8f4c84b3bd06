package automaton

import (
	"fmt"

	"github.com/cfg-tools/lr1/grammar"
	"github.com/cfg-tools/lr1/lrerr"
)

// Resolver decides which of two competing items wins a construction-time
// conflict: a or b, whichever one installing into the state's action table.
// It is called with the item already installed first, the newly discovered
// item second, and is directly grounded in the reference implementation's
// resolve_shift/resolve_reduce/resolve_throw functions, given Go error
// returns in place of exceptions.
type Resolver func(installed, candidate grammar.Item) (grammar.Item, error)

// ResolveShift always prefers the non-reduce (shift) item between the two,
// settling shift/reduce conflicts in favor of shifting.
func ResolveShift(installed, candidate grammar.Item) (grammar.Item, error) {
	if installed.IsReduce() {
		return candidate, nil
	}
	return installed, nil
}

// ResolveReduce prefers whichever item is a reduce item, settling
// shift/reduce conflicts in favor of reducing. Between two reduce items (a
// reduce/reduce conflict) it prefers the newly discovered one.
func ResolveReduce(installed, candidate grammar.Item) (grammar.Item, error) {
	if candidate.IsReduce() {
		return candidate, nil
	}
	return installed, nil
}

// ResolveThrow never settles a conflict: it always fails, naming both
// competing items and whether the conflict is shift/reduce or
// reduce/reduce.
func ResolveThrow(installed, candidate grammar.Item) (grammar.Item, error) {
	if installed.IsReduce() && candidate.IsReduce() {
		return grammar.Item{}, lrerr.NewConflictError(
			fmt.Sprintf("reduce/reduce conflict: %q vs %q", installed, candidate), nil)
	}
	return grammar.Item{}, lrerr.NewConflictError(
		fmt.Sprintf("shift/reduce conflict: %q vs %q", installed, candidate), nil)
}
