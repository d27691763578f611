package markup

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   *Element
	}{
		{"empty", "", &Element{}},
		{
			name:   "text only",
			format: "plain",
			want:   &Element{Children: []Node{Text{Raw: "plain"}}},
		},
		{
			name:   "greeting",
			format: "Hello, [1:{name}]!",
			want: &Element{Children: []Node{
				Text{Raw: "Hello, "},
				&Element{Index: 1, Children: []Node{Expression{Name: "name"}}},
				Text{Raw: "!"},
			}},
		},
		{
			name:   "empty element",
			format: "[3:]",
			want:   &Element{Children: []Node{&Element{Index: 3}}},
		},
		{
			name:   "nested",
			format: "[1:a[2:b[3:c]]d]",
			want: &Element{Children: []Node{
				&Element{Index: 1, Children: []Node{
					Text{Raw: "a"},
					&Element{Index: 2, Children: []Node{
						Text{Raw: "b"},
						&Element{Index: 3, Children: []Node{Text{Raw: "c"}}},
					}},
					Text{Raw: "d"},
				}},
			}},
		},
		{
			name:   "siblings",
			format: "[1:x][2:y]",
			want: &Element{Children: []Node{
				&Element{Index: 1, Children: []Node{Text{Raw: "x"}}},
				&Element{Index: 2, Children: []Node{Text{Raw: "y"}}},
			}},
		},
		{
			name:   "escaped brackets",
			format: `\[a\]`,
			want:   &Element{Children: []Node{Text{Raw: `\[a\]`}}},
		},
		{
			name:   "expression name verbatim",
			format: "{user.first name}",
			want:   &Element{Children: []Node{Expression{Name: "user.first name"}}},
		},
		{
			name:   "leading zeros",
			format: "[01:x]",
			want: &Element{Children: []Node{
				&Element{Index: 1, Children: []Node{Text{Raw: "x"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.format)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.format, err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got %s\nwant %s", tt.format, got.Tree(), tt.want.Tree())
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		format string
		kind   *Error
		offset int
		detail string
	}{
		{"[1:abc", ErrUnterminatedInput, 6, "1 unclosed element(s)"},
		{"[1:[2:", ErrUnterminatedInput, 6, "2 unclosed element(s)"},
		{"]", ErrUnmatchedClose, 0, "without matching '['"},
		{"[1:x]]", ErrUnmatchedClose, 5, "without matching '['"},
		{"{missing-close", ErrMalformedExpression, 14, "missing closing brace"},
		{"{a[1:b]}", ErrMalformedExpression, 2, "missing closing brace"},
		{"{}", ErrMalformedExpression, 1, "missing body"},
		{"x{", ErrMalformedExpression, 2, "missing body"},
		{"}", ErrInternal, 0, "unhandled token"},
		{"a[1:b}]", ErrInternal, 5, "unhandled token"},
		{"[", ErrInvalidToken, 0, "not followed by index"},
		{`tail\`, ErrInvalidToken, 4, "escape at end of input"},
		{"[0:x]", ErrMalformedElement, 0, "reserved for the root"},
		{"[99999999999999999999:x]", ErrMalformedElement, 1, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			root, err := Parse(tt.format)
			if root != nil {
				t.Errorf("expected nil tree on error")
			}

			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *Error", err)
			}

			if pos, _ := perr.Position(); pos.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", pos.Offset, tt.offset)
			}

			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q missing %q", err.Error(), tt.detail)
			}
		})
	}
}

func TestParse_ErrorKindsAreDistinct(t *testing.T) {
	_, err := Parse("]")

	for _, kind := range []*Error{
		ErrInvalidToken,
		ErrMalformedElement,
		ErrMalformedExpression,
		ErrUnterminatedInput,
		ErrInternal,
	} {
		if errors.Is(err, kind) {
			t.Errorf("%v must not match %v", err, kind)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	tests := []struct {
		format string
		line   int
		column int
	}{
		{"]", 1, 1},
		{"ab\ncd]", 2, 3},
		{"é]", 1, 2},
		{"a\n\n[", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := Parse(tt.format)

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %v", err)
			}

			pos, ok := perr.Position()
			if !ok || pos.Line != tt.line || pos.Column != tt.column {
				t.Errorf("position = %+v, want line %d column %d", pos, tt.line, tt.column)
			}
		})
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"Hello, [1:{name}]!",
		`\[a\]`,
		"[1:[2:[3:{x}]]]",
		"{a}{b}[7:c]",
		"]",
		"[0:",
		`\`,
	} {
		f.Add(seed)
	}

	kinds := []*Error{
		ErrInvalidToken,
		ErrMalformedElement,
		ErrMalformedExpression,
		ErrUnmatchedClose,
		ErrUnterminatedInput,
		ErrInternal, // a '}' outside an expression
	}

	f.Fuzz(func(t *testing.T, format string) {
		root, err := Parse(format)
		if err != nil {
			for _, kind := range kinds {
				if errors.Is(err, kind) {
					return
				}
			}

			t.Fatalf("Parse(%q) returned unclassified error %v", format, err)
		}

		again, err := Parse(root.String())
		if err != nil {
			t.Fatalf("reparse of %q: %v", root.String(), err)
		}

		if !reflect.DeepEqual(root, again) {
			t.Fatalf("round trip of %q changed the tree", format)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	const format = "Dear [1:{title} {name}], your order [2:#{order}] ships [3:{date}]."

	for b.Loop() {
		if _, err := Parse(format); err != nil {
			b.Fatal(err)
		}
	}
}
