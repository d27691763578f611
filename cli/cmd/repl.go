package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/mfmt/cli/cmd/repl"
	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/render"
)

// Repl starts an interactive session for writing format strings.
type Repl struct {
	Slot   []string          `help:"Wrap element N between OPEN and CLOSE instead of coloring it." placeholder:"N=OPEN,CLOSE" sep:"none"    short:"s"`
	Value  map[string]string `help:"Bind expression NAME to VALUE, decoded as a YAML scalar."      placeholder:"NAME=VALUE"   mapsep:"none" short:"v"`
	Values string            `help:"YAML file of expression values."                                 type:"existingfile"`
	Expr   bool              `help:"Evaluate expressions without a value as expr-lang programs."     negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	stdio := StdioFrom(ctx)

	values, err := LoadValues(r.Values, r.Value)
	if err != nil {
		return err
	}

	slots := make(render.Slots, len(r.Slot))

	for _, spec := range r.Slot {
		index, slot, err := ParseSlot(spec)
		if err != nil {
			return err
		}

		slots[index] = slot
	}

	logger := log.Default()

	return repl.Run(ctx, repl.Config{
		Parser:      parserFrom(ctx),
		Renderer:    render.New(render.WithExpr(r.Expr), render.WithLogger(logger)),
		Expr:        r.Expr,
		Values:      values,
		Slots:       slots,
		Decode:      DecodeScalar,
		HistoryPath: historyPath(ctx),
		Logger:      logger,
		In:          stdio.In,
		Out:         stdio.Out,
	})
}

// historyPath returns the REPL history file in the cache directory, or ""
// to keep history in memory when no cache directory is configured.
func historyPath(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, repl.HistoryFile)
}
