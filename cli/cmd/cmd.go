package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/markup"
)

// Kong variables naming the configuration file and cache directory paths.
const (
	ConfigIdentifier = "config"
	CacheIdentifier  = "cache"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Stdio holds the streams a command reads from and writes to.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStdio returns the process standard streams.
func DefaultStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type stdioKey struct{}

// WithStdio returns a new context.Context containing the given streams.
// Nil streams fall back to the process standard streams.
func WithStdio(ctx context.Context, stdio Stdio) context.Context {
	def := DefaultStdio()

	if stdio.In == nil {
		stdio.In = def.In
	}

	if stdio.Out == nil {
		stdio.Out = def.Out
	}

	if stdio.Err == nil {
		stdio.Err = def.Err
	}

	return context.WithValue(ctx, stdioKey{}, stdio)
}

// StdioFrom returns the streams stored by [WithStdio], or the process
// standard streams.
func StdioFrom(ctx context.Context) Stdio {
	if stdio, ok := ctx.Value(stdioKey{}).(Stdio); ok {
		return stdio
	}

	return DefaultStdio()
}

type parserKey struct{}

// WithParser returns a new context.Context containing the parser shared by
// all commands.
func WithParser(ctx context.Context, p *markup.Parser) context.Context {
	return context.WithValue(ctx, parserKey{}, p)
}

// parserFrom returns the parser stored by [WithParser], or a new parser
// logging to the default logger.
func parserFrom(ctx context.Context) *markup.Parser {
	if p, ok := ctx.Value(parserKey{}).(*markup.Parser); ok && p != nil {
		return p
	}

	return markup.NewParser(markup.WithLogger(log.Default()))
}
