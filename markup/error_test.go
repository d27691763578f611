package markup

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"sentinel", ErrInternal, "internal parser error"},
		{
			name: "detail and position",
			err: ErrUnmatchedClose.
				Detail("']' without matching '['").
				WithPosition(Position{Offset: 3, Line: 1, Column: 4}),
			want: "unmatched close bracket: ']' without matching '[' at line 1, column 4",
		},
		{
			name: "wrapped",
			err:  ErrInternal.Wrap(io.ErrUnexpectedEOF),
			want: "internal parser error: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	derived := ErrMalformedElement.Detail("x").With(slog.Int("n", 1))

	if !errors.Is(derived, ErrMalformedElement) {
		t.Errorf("derived error must match its sentinel")
	}

	if errors.Is(derived, ErrMalformedExpression) {
		t.Errorf("derived error must not match another sentinel")
	}

	if errors.Is(ErrMalformedElement, derived) {
		t.Errorf("sentinel must not match a derived error")
	}

	wrapped := ErrInternal.Wrap(io.EOF)
	if !errors.Is(wrapped, io.EOF) || !errors.Is(wrapped, ErrInternal) {
		t.Errorf("wrapped error must match both its sentinel and cause")
	}
}

func TestError_Immutable(t *testing.T) {
	base := ErrInvalidToken.With(slog.String("a", "1"))
	_ = base.With(slog.String("b", "2"))

	if got := len(base.attrs); got != 1 {
		t.Errorf("With modified its receiver: %d attrs", got)
	}

	if _, ok := ErrInvalidToken.Position(); ok {
		t.Errorf("sentinel must not have a position")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrInvalidToken.
		WithPosition(positionOf("ab\nc[", 4)).
		With(slog.String("hint", "x"))

	got := map[string]slog.Value{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value
	}

	if got["error"].String() != "invalid token" {
		t.Errorf("error = %v", got["error"])
	}

	if got["line"].Int64() != 2 || got["column"].Int64() != 2 || got["offset"].Int64() != 4 {
		t.Errorf("position attrs = %v %v %v", got["line"], got["column"], got["offset"])
	}

	if got["hint"].String() != "x" {
		t.Errorf("hint = %v", got["hint"])
	}
}
