// Package lr1 is the top-level entry point of this module: it composes
// grammar analysis, canonical LR(1) automaton construction, and the
// table-driven parse loop behind a single Build call, the way the
// teacher's root tunaq package composes its own subsystems (world loading,
// input handling, game state) behind a single Engine.
package lr1

import (
	"github.com/cfg-tools/lr1/cache"
	"github.com/cfg-tools/lr1/diag"
	"github.com/cfg-tools/lr1/grammar"
	"github.com/cfg-tools/lr1/parse"
)

// Resolver is a re-export of parse.Resolver, so a caller that only imports
// this package never needs to reach into parse directly.
type Resolver = parse.Resolver

// ResolveShift, ResolveReduce, and ResolveThrow are re-exports of the
// matching parse package functions.
var (
	ResolveShift  = parse.ResolveShift
	ResolveReduce = parse.ResolveReduce
	ResolveThrow  = parse.ResolveThrow
)

// Option configures a Build call.
type Option func(*config)

type config struct {
	logger *diag.Logger
	cache  *cache.Store
}

// WithLogger attaches a diagnostics logger to construction and parsing.
func WithLogger(l *diag.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithCache attaches a collection cache: Build checks it before doing any
// construction work, and populates it on a miss.
func WithCache(s *cache.Store) Option {
	return func(c *config) { c.cache = s }
}

// Build constructs a parser for g, settling any construction-time conflict
// with resolver. With WithCache, a previously cached canonical collection
// for an identical grammar (by Fingerprint of its serialized rule text)
// is reused instead of rebuilt.
func Build(g *grammar.Grammar, resolver Resolver, opts ...Option) (*parse.Parser, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	parseOpts := []parse.Option{}
	if cfg.logger != nil {
		parseOpts = append(parseOpts, parse.WithLogger(cfg.logger))
	}

	if cfg.cache == nil {
		return parse.Build(g, resolver, parseOpts...)
	}

	fp := cache.Fingerprint(g.String())
	if col, hit, err := cfg.cache.Get(fp); err == nil && hit {
		return parse.FromCollection(col, parseOpts...), nil
	}

	p, err := parse.Build(g, resolver, parseOpts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.cache.Put(fp, p.Collection()); err != nil {
		logger := cfg.logger
		if logger == nil {
			logger = diag.Discard()
		}
		logger.CacheWriteFailed(fp, err)
	}
	return p, nil
}
