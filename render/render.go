package render

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/lru"
	"github.com/ardnew/mfmt/markup"
)

// Errors returned while rendering. They are matched with [errors.Is] and
// carry the offending index or expression as attributes.
var (
	ErrMissingSlot       = markup.NewError("missing slot")
	ErrUnboundExpression = markup.NewError("unbound expression")
)

// DefaultProgramCapacity is the default number of compiled expressions kept
// by a Renderer created with [WithExpr].
const DefaultProgramCapacity = 256

// Renderer renders trees with caller-supplied slots and values.
type Renderer struct {
	programs *lru.Cache[*vm.Program]
	compile  func(string) (*vm.Program, error)
	logger   log.Logger
	expr     bool
}

type config struct {
	logger   log.Logger
	capacity int
	expr     bool
}

// Option configures a [Renderer].
type Option func(config) config

// WithExpr controls whether expressions without a value are evaluated as
// expr-lang programs.
func WithExpr(enable bool) Option {
	return func(c config) config {
		c.expr = enable

		return c
	}
}

// WithProgramCapacity sets how many compiled programs are cached.
// Non-positive values select [DefaultProgramCapacity].
func WithProgramCapacity(n int) Option {
	return func(c config) config {
		if n < 1 {
			n = DefaultProgramCapacity
		}

		c.capacity = n

		return c
	}
}

// WithLogger sets the logger receiving evaluation diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// New returns a Renderer configured by opts.
func New(opts ...Option) *Renderer {
	cfg := config{capacity: DefaultProgramCapacity}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	r := &Renderer{logger: cfg.logger, expr: cfg.expr}

	if r.expr {
		r.programs = lru.New[*vm.Program](cfg.capacity)
		r.compile = r.programs.Wrap(func(source string) (*vm.Program, error) {
			r.logger.Trace("compile", slog.String("source", source))

			return expr.Compile(source, expr.AllowUndefinedVariables())
		})
	}

	return r
}

// Render renders the tree rooted at root.
//
// Each element's rendered children are passed to slots[index]. The root is
// passed to slots[0] when present. Text is unescaped and each expression is
// replaced by values[name] formatted with [fmt.Sprint].
func (r *Renderer) Render(
	root *markup.Element,
	slots Slots,
	values map[string]any,
) (string, error) {
	var sb strings.Builder

	if err := r.element(&sb, root, slots, values); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// RenderString parses format with p and renders the result.
func (r *Renderer) RenderString(
	ctx context.Context,
	p *markup.Parser,
	format string,
	slots Slots,
	values map[string]any,
) (string, error) {
	root, err := p.Parse(ctx, format)
	if err != nil {
		return "", err
	}

	out, err := r.Render(root, slots, values)
	if err != nil {
		r.logger.DebugContext(ctx, "render failed",
			slog.String("format", format),
			slog.Any("error", err))

		return "", err
	}

	return out, nil
}

func (r *Renderer) element(
	sb *strings.Builder,
	el *markup.Element,
	slots Slots,
	values map[string]any,
) error {
	slot, ok := slots.get(el.Index)
	if !ok {
		return ErrMissingSlot.
			Detail("no slot for element " + strconv.FormatUint(el.Index, 10)).
			With(slog.Uint64("index", el.Index))
	}

	var inner strings.Builder

	for _, child := range el.Children {
		var err error

		switch n := child.(type) {
		case *markup.Element:
			err = r.element(&inner, n, slots, values)
		case markup.Text:
			inner.WriteString(n.Unescape())
		case markup.Expression:
			err = r.expression(&inner, n.Name, values)
		}

		if err != nil {
			return err
		}
	}

	sb.WriteString(slot(inner.String()))

	return nil
}

func (r *Renderer) expression(
	sb *strings.Builder,
	name string,
	values map[string]any,
) error {
	if v, ok := values[name]; ok {
		sb.WriteString(fmt.Sprint(v))

		return nil
	}

	if !r.expr {
		return ErrUnboundExpression.
			Detail("no value for " + strconv.Quote(name)).
			With(slog.String("name", name))
	}

	v, err := r.eval(name, values)
	if err != nil {
		return err
	}

	sb.WriteString(fmt.Sprint(v))

	return nil
}

// eval runs name as an expr-lang program. A nil result means the program
// referenced nothing defined in values.
func (r *Renderer) eval(source string, values map[string]any) (any, error) {
	program, err := r.compile(source)
	if err != nil {
		return nil, ErrUnboundExpression.Wrap(err).
			With(slog.String("name", source))
	}

	if values == nil {
		values = map[string]any{}
	}

	result, err := vm.Run(program, values)
	if err != nil {
		return nil, ErrUnboundExpression.Wrap(err).
			With(slog.String("name", source))
	}

	if result == nil {
		return nil, ErrUnboundExpression.
			Detail(strconv.Quote(source) + " evaluated to nil").
			With(slog.String("name", source))
	}

	return result, nil
}

// Stats returns the statistics of the compiled program cache. It is the
// zero value when expression evaluation is disabled.
func (r *Renderer) Stats() lru.Stats {
	if r.programs == nil {
		return lru.Stats{}
	}

	return r.programs.Stats()
}
