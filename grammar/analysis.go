package grammar

import "github.com/cfg-tools/lr1/diag"

// fixpointLogger returns the first logger supplied to a variadic ...*diag.Logger
// parameter, or nil if none was given, so Nullable/First/Follow can accept an
// optional diagnostics logger without disturbing their many existing
// zero-argument call sites.
func fixpointLogger(loggers []*diag.Logger) *diag.Logger {
	if len(loggers) == 0 {
		return nil
	}
	return loggers[0]
}

// Nullable returns the set of non-terminals that derive the empty string,
// computed as a monotone fixpoint: a non-terminal is nullable once some
// production of it consists entirely of already-nullable symbols (or is the
// explicit epsilon production). Epsilon itself seeds the set.
//
// The returned set is keyed by symbol for O(1) membership tests; Epsilon is
// always present. An optional logger records each pass of the fixpoint and
// whether it changed anything.
func (g *Grammar) Nullable(loggers ...*diag.Logger) map[string]bool {
	l := fixpointLogger(loggers)
	nullable := map[string]bool{Epsilon: true}

	for pass := 1; ; pass++ {
		changed := false
		g.Iter(func(nt string, prod Production) {
			if nullable[nt] {
				return
			}
			for _, sym := range prod {
				if !nullable[sym] {
					return
				}
			}
			nullable[nt] = true
			changed = true
		})
		if l != nil {
			l.FixpointPass("NULLABLE", pass, changed)
		}
		if !changed {
			return nullable
		}
	}
}

// First computes FIRST(X) for every non-terminal X: the set of terminals
// that can begin any string derived from X, plus Epsilon iff X is nullable.
// Terminals are seeded with the identity mapping FIRST(t) = {t}. An optional
// logger records each pass of the fixpoint and whether it changed anything.
func (g *Grammar) First(loggers ...*diag.Logger) map[string]map[string]bool {
	l := fixpointLogger(loggers)
	nullable := g.Nullable()
	first := map[string]map[string]bool{}

	for _, nt := range g.order {
		first[nt] = map[string]bool{}
	}
	for _, t := range g.Terminals() {
		first[t] = map[string]bool{t: true}
	}

	for pass := 1; ; pass++ {
		changed := false
		g.Iter(func(nt string, prod Production) {
			for _, sym := range prod {
				before := len(first[nt])
				for s := range first[sym] {
					if s != Epsilon {
						first[nt][s] = true
					}
				}
				if len(first[nt]) != before {
					changed = true
				}
				if !nullable[sym] {
					return
				}
			}
			// every symbol in prod is nullable (or prod is empty/epsilon)
			if !first[nt][Epsilon] {
				first[nt][Epsilon] = true
				changed = true
			}
		})
		if l != nil {
			l.FixpointPass("FIRST", pass, changed)
		}
		if !changed {
			break
		}
	}

	out := make(map[string]map[string]bool, len(g.order))
	for _, nt := range g.order {
		out[nt] = first[nt]
	}
	return out
}

// Follow computes FOLLOW(X) for every non-terminal X: the set of terminals
// that can appear immediately after X in some sentential form derived from
// the start symbol. FOLLOW(start) always contains EndOfInput. An optional
// logger records each pass of the fixpoint and whether it changed anything.
func (g *Grammar) Follow(loggers ...*diag.Logger) map[string]map[string]bool {
	l := fixpointLogger(loggers)
	nullable := g.Nullable()
	first := g.First()
	// terminals act as their own FIRST set when scanning productions.
	for _, t := range g.Terminals() {
		first[t] = map[string]bool{t: true}
	}

	follow := map[string]map[string]bool{}
	for _, nt := range g.order {
		follow[nt] = map[string]bool{}
	}
	follow[g.start][EndOfInput] = true

	union := func(dst, src map[string]bool) bool {
		changed := false
		for s := range src {
			if !dst[s] {
				dst[s] = true
				changed = true
			}
		}
		return changed
	}

	for pass := 1; ; pass++ {
		changed := false
		g.Iter(func(nt string, prod Production) {
			trailer := map[string]bool{}
			for s := range follow[nt] {
				trailer[s] = true
			}
			for i := len(prod) - 1; i >= 0; i-- {
				sym := prod[i]
				if g.IsNonTerminal(sym) {
					if union(follow[sym], trailer) {
						changed = true
					}
				}
				if nullable[sym] {
					for s := range first[sym] {
						if s != Epsilon {
							trailer[s] = true
						}
					}
				} else {
					trailer = map[string]bool{}
					for s := range first[sym] {
						trailer[s] = true
					}
				}
			}
		})
		if l != nil {
			l.FixpointPass("FOLLOW", pass, changed)
		}
		if !changed {
			return follow
		}
	}
}
