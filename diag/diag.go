// Package diag provides construction- and parse-time observability: a thin
// wrapper over log/slog with named helpers for the events spec.md calls out
// (fixpoint convergence, state construction, conflict resolution, and the
// shift/reduce/accept steps of the parse loop), in place of the reference
// implementations' trace-listener callbacks.
package diag

import (
	"io"
	"log/slog"
)

// Logger wraps a *slog.Logger with named call sites for every diagnostic
// event this module emits, so callers never hand-assemble log keys.
type Logger struct {
	sl *slog.Logger
}

// New returns a Logger that writes structured text records to w at level
// and above.
func New(w io.Writer, level slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{sl: slog.New(h)}
}

// Discard returns a Logger that drops everything, the default for a Parser
// or Build that isn't given an explicit Logger via an Option.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError+1)
}

// FixpointPass logs one iteration of a monotone fixpoint computation
// (NULLABLE, FIRST, or FOLLOW), and whether it changed anything.
func (l *Logger) FixpointPass(set string, pass int, changed bool) {
	l.sl.Debug("fixpoint pass", "set", set, "pass", pass, "changed", changed)
}

// StateBuilt logs that a canonical collection state has been constructed.
func (l *Logger) StateBuilt(buildID string, index, itemCount int) {
	l.sl.Info("state built", "build", buildID, "state", index, "items", itemCount)
}

// ConflictResolved logs that a construction-time shift/reduce or
// reduce/reduce conflict was settled by a Resolver.
func (l *Logger) ConflictResolved(buildID, kind, terminal string, state int) {
	l.sl.Warn("conflict resolved", "build", buildID, "kind", kind, "terminal", terminal, "state", state)
}

// Shift logs one shift step of the parse loop.
func (l *Logger) Shift(buildID string, state int, symbol string) {
	l.sl.Debug("shift", "build", buildID, "state", state, "symbol", symbol)
}

// Reduce logs one reduce step of the parse loop.
func (l *Logger) Reduce(buildID string, state int, nonTerminal string) {
	l.sl.Debug("reduce", "build", buildID, "state", state, "nonterm", nonTerminal)
}

// Accept logs successful acceptance of the input.
func (l *Logger) Accept(buildID string) {
	l.sl.Info("accept", "build", buildID)
}

// CacheWriteFailed logs that writing a freshly built collection back to a
// cache.Store failed. The build itself still succeeds: the cache is an
// optimization a caller opted into, not something Build depends on.
func (l *Logger) CacheWriteFailed(fingerprint string, err error) {
	l.sl.Error("cache write failed", "fingerprint", fingerprint, "err", err)
}
