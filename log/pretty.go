package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colors the parts of a record. The color profile is detected
// from the handler's writer, so output to files and pipes stays plain.
type prettyStyles struct {
	faint, text, number, duration, date, yes, no lipgloss.Style
	levels                                       [5]lipgloss.Style // trace..error
}

func newPrettyStyles(w io.Writer) *prettyStyles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &prettyStyles{
		faint:    fg("8"),
		text:     fg("6"),
		number:   fg("3"),
		duration: fg("5"),
		date:     fg("4"),
		yes:      fg("2"),
		no:       fg("1"),
		levels: [...]lipgloss.Style{
			fg("5").Bold(true),
			fg("4").Bold(true),
			fg("2").Bold(true),
			fg("3").Bold(true),
			fg("1").Bold(true),
		},
	}
}

func (s *prettyStyles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.levels[4]
	case l >= slog.LevelWarn:
		return s.levels[3]
	case l >= slog.LevelInfo:
		return s.levels[2]
	case l >= slog.LevelDebug:
		return s.levels[1]
	default:
		return s.levels[0]
	}
}

// prettyTextHandler writes one colorized line per record:
//
//	TIME LEVEL [source=FILE:LINE] MESSAGE key=value...
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime func(time.Time) string
	styles     *prettyStyles
	mu         *sync.Mutex
	w          io.Writer
	group      string // dotted key prefix from WithGroup
	attrs      string // rendered attributes from WithAttrs
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime func(time.Time) string,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		styles:     newPrettyStyles(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []string

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, h.styles.faint.Render(ts))
		}
	}

	name := strings.ToUpper(Level(r.Level).String())
	fields = append(fields,
		h.styles.level(r.Level).Render(name)+strings.Repeat(" ", max(0, 5-len(name))))

	if src := r.Source(); h.opts.AddSource && src != nil && src.File != "" {
		fields = append(fields, h.attr("", slog.String(slog.SourceKey,
			src.File+":"+strconv.Itoa(src.Line))))
	}

	var b strings.Builder

	b.WriteString(strings.Join(append(fields, r.Message), " "))
	b.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(h.attr(h.group, a))

		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, b.String())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	for _, a := range attrs {
		c.attrs += h.attr(h.group, a)
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group += name + "."

	return &c
}

// attr renders " group.key=value" with a leading space, flattening groups
// into dotted keys. Empty attributes render as nothing.
func (h *prettyTextHandler) attr(group string, a slog.Attr) string {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return ""
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}

		var b strings.Builder
		for _, ga := range a.Value.Group() {
			b.WriteString(h.attr(group, ga))
		}

		return b.String()
	}

	return " " + h.styles.faint.Render(group+a.Key) + "=" + h.value(a.Value)
}

func (h *prettyTextHandler) value(v slog.Value) string {
	s := h.styles

	switch v.Kind() {
	case slog.KindString:
		return s.text.Render(strconv.Quote(v.String()))
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return s.number.Render(v.String())
	case slog.KindBool:
		if v.Bool() {
			return s.yes.Render("true")
		}

		return s.no.Render("false")
	case slog.KindDuration:
		return s.duration.Render(v.Duration().String())
	case slog.KindTime:
		return s.date.Render(h.formatTime(v.Time()))
	default:
		return s.text.Render(v.String())
	}
}
