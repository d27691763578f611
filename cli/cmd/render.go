package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/render"
)

// Render renders a format string with slots and values.
type Render struct {
	Slot   []string          `help:"Wrap element N between OPEN and CLOSE."                       placeholder:"N=OPEN,CLOSE" sep:"none"    short:"s"`
	Tag    []string          `help:"Wrap element N in the XML-style tag NAME."                    placeholder:"N=NAME"       sep:"none"    short:"t"`
	Value  map[string]string `help:"Bind expression NAME to VALUE, decoded as a YAML scalar."     placeholder:"NAME=VALUE"   mapsep:"none" short:"v"`
	Values string            `help:"YAML file of expression values; --value entries take priority." type:"existingfile"`
	Expr   bool              `help:"Evaluate expressions without a value as expr-lang programs."    negatable:""`

	Format string `arg:"" help:"Format string to render."`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	stdio := StdioFrom(ctx)

	slots, err := r.slots()
	if err != nil {
		return err
	}

	values, err := LoadValues(r.Values, r.Value)
	if err != nil {
		return err
	}

	renderer := render.New(
		render.WithExpr(r.Expr),
		render.WithLogger(log.Default()),
	)

	out, err := renderer.RenderString(ctx, parserFrom(ctx), r.Format, slots, values)
	if err != nil {
		return ErrRender.Wrap(err).With(slog.String("format", r.Format))
	}

	if _, err := fmt.Fprintln(stdio.Out, out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (r *Render) slots() (render.Slots, error) {
	slots := make(render.Slots, len(r.Slot)+len(r.Tag))

	for _, spec := range r.Slot {
		index, slot, err := ParseSlot(spec)
		if err != nil {
			return nil, err
		}

		slots[index] = slot
	}

	for _, spec := range r.Tag {
		index, name, err := splitIndex(spec)
		if err != nil {
			return nil, err
		}

		if name == "" {
			return nil, ErrInvalidSlot.With(slog.String("slot", spec))
		}

		slots[index] = render.Tag(name)
	}

	return slots, nil
}

// ParseSlot parses "N=OPEN,CLOSE" into an element index and a slot.
func ParseSlot(spec string) (uint64, render.Slot, error) {
	index, rest, err := splitIndex(spec)
	if err != nil {
		return 0, nil, err
	}

	open, end, _ := strings.Cut(rest, ",")

	return index, render.Wrap(open, end), nil
}

// splitIndex splits "N=REST" into N and REST.
func splitIndex(spec string) (uint64, string, error) {
	key, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, "", ErrInvalidSlot.
			With(slog.String("slot", spec)).
			Wrap(fmt.Errorf("missing '='"))
	}

	index, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	if err != nil {
		return 0, "", ErrInvalidSlot.With(slog.String("slot", spec)).Wrap(err)
	}

	return index, rest, nil
}

// LoadValues reads the YAML mapping in path, if any, and overlays the
// NAME=VALUE bindings in overrides. Each override is decoded as a YAML
// scalar, so "3" binds a number and "true" a boolean.
func LoadValues(path string, overrides map[string]string) (map[string]any, error) {
	values := make(map[string]any, len(overrides))

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrLoadValues.With(slog.String("file", path)).Wrap(err)
		}

		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, ErrLoadValues.With(slog.String("file", path)).Wrap(err)
		}

		if values == nil {
			values = make(map[string]any, len(overrides))
		}
	}

	for name, value := range values {
		values[name] = normalize(value)
	}

	for name, raw := range overrides {
		if name == "" {
			return nil, ErrInvalidValue.With(slog.String("value", "="+raw))
		}

		values[name] = DecodeScalar(raw)
	}

	return values, nil
}

// DecodeScalar decodes s as a YAML scalar, falling back to s itself when it
// is not one.
func DecodeScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return s
	}

	switch v.(type) {
	case map[string]any, []any:
		return s
	}

	return normalize(v)
}

// normalize converts decoded YAML integers to int so they mix freely with
// integer literals in expressions.
func normalize(v any) any {
	switch n := v.(type) {
	case uint64:
		if n <= math.MaxInt {
			return int(n)
		}
	case int64:
		return int(n)
	}

	return v
}
