package automaton

// ConflictKind distinguishes the two kinds of construction-time conflict a
// Resolver is asked to settle (spec.md §4.5).
type ConflictKind int

const (
	ShiftReduceConflict ConflictKind = iota
	ReduceReduceConflict
)

func (k ConflictKind) String() string {
	if k == ShiftReduceConflict {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records one conflict a Resolver settled during Build, so a
// caller (the parse package's diagnostics, in particular) can report what
// was resolved without re-deriving it from the finished tables.
type Conflict struct {
	State    int
	Terminal string
	Kind     ConflictKind
}
