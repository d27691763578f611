package markup

import (
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values). Errors returned by this package are
// derived from one of these and match it with [errors.Is].
var (
	ErrInvalidToken        = NewError("invalid token")
	ErrMalformedElement    = NewError("malformed element")
	ErrMalformedExpression = NewError("malformed expression")
	ErrUnmatchedClose      = NewError("unmatched close bracket")
	ErrUnterminatedInput   = NewError("unterminated input")
	ErrInternal            = NewError("internal parser error")
)

// Position identifies a location in a format string.
// Offset is a byte offset; Line and Column are 1-based, Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// positionOf converts a byte offset in s to a Position.
func positionOf(s string, offset int) Position {
	offset = min(max(offset, 0), len(s))
	pos := Position{Offset: offset, Line: 1, Column: 1}

	for _, r := range s[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	return pos
}

// Error represents a parse error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error // sentinel this error was derived from
	msg   string
	err   error // Wrapped error (for errors.Unwrap)
	pos   *Position
	attrs []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) derive() *Error {
	d := *e
	if d.kind == nil {
		d.kind = e
	}

	return &d
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>[: <detail>] at line L, column C[: <err>]"
	var sb strings.Builder

	sb.WriteString(e.msg)

	for _, a := range e.attrs {
		if a.Key == "detail" {
			sb.WriteString(": ")
			sb.WriteString(a.Value.String())
		}
	}

	if e.pos != nil {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.pos.Line))
		sb.WriteString(", column ")
		sb.WriteString(strconv.Itoa(e.pos.Column))
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t == e || (e.kind != nil && t == e.kind)
}

// Position returns the location of the error, if known.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("offset", e.pos.Offset),
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(d.attrs, e.attrs)
	copy(d.attrs[len(e.attrs):], attrs)

	return d
}

// Detail attaches a short human-readable explanation that is included in
// the error message.
func (e *Error) Detail(detail string) *Error {
	return e.With(slog.String("detail", detail))
}

// WithPosition records where in the source the error occurred.
func (e *Error) WithPosition(pos Position) *Error {
	d := e.derive()
	d.pos = &pos

	return d
}
