package markup

import (
	"context"
	"log/slog"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/lru"
)

// Parser parses format strings through an LRU cache of trees keyed by the
// exact format string.
type Parser struct {
	cache  *lru.Cache[*Element]
	parse  func(string) (*Element, error)
	logger log.Logger
	parses uint64
}

type parserConfig struct {
	capacity int
	logger   log.Logger
}

// Option configures a [Parser].
type Option func(parserConfig) parserConfig

// WithCapacity sets the maximum number of cached trees.
// Non-positive values select [lru.DefaultCapacity].
func WithCapacity(n int) Option {
	return func(c parserConfig) parserConfig {
		if n < 1 {
			n = lru.DefaultCapacity
		}

		c.capacity = n

		return c
	}
}

// WithLogger sets the logger receiving cache and parse diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c parserConfig) parserConfig {
		c.logger = l

		return c
	}
}

// NewParser returns a Parser with an empty cache.
func NewParser(opts ...Option) *Parser {
	cfg := parserConfig{capacity: lru.DefaultCapacity}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	p := &Parser{logger: cfg.logger}
	p.cache = lru.New(cfg.capacity,
		lru.WithEvict(func(format string, _ *Element) {
			p.logger.Trace("evict", slog.String("format", format))
		}),
	)
	p.parse = p.cache.Wrap(func(format string) (*Element, error) {
		p.parses++

		return Parse(format)
	})

	return p
}

// Parse returns the tree for format, parsing it only if it is not cached.
// Failed parses are never cached.
func (p *Parser) Parse(ctx context.Context, format string) (*Element, error) {
	before := p.parses

	root, err := p.parse(format)
	if err != nil {
		p.logger.DebugContext(ctx, "parse failed",
			slog.String("format", format),
			slog.Any("error", err))

		return nil, err
	}

	p.logger.TraceContext(ctx, "parse",
		slog.String("format", format),
		slog.Bool("cached", p.parses == before),
		slog.Int("size", p.cache.Len()))

	return root, nil
}

// Forget removes format from the cache and reports whether it was cached.
func (p *Parser) Forget(format string) bool { return p.cache.Remove(format) }

// Clear empties the cache and resets its statistics.
func (p *Parser) Clear() { p.cache.Clear() }

// Stats returns a snapshot of the cache counters.
func (p *Parser) Stats() lru.Stats { return p.cache.Stats() }

// Parses returns how many times the underlying parser has run, which is the
// number of cache misses including failed parses.
func (p *Parser) Parses() uint64 { return p.parses }
