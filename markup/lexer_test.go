package markup

import (
	"errors"
	"io"
	"slices"
	"testing"
)

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{"empty", "", nil},
		{
			name: "text",
			src:  "plain text",
			want: []Token{{Kind: KindText, Text: "plain text"}},
		},
		{
			name: "multiline text",
			src:  "a\nb",
			want: []Token{{Kind: KindText, Text: "a\nb"}},
		},
		{
			name: "escapes stay in text",
			src:  `\[x\]\{\}\\`,
			want: []Token{{Kind: KindText, Text: `\[x\]\{\}\\`}},
		},
		{
			name: "mixed",
			src:  `a[12:{x}]\{`,
			want: []Token{
				{Kind: KindText, Text: "a", Offset: 0},
				{Kind: KindOpenElement, Offset: 1},
				{Kind: KindIndex, Index: 12, Offset: 2},
				{Kind: KindOpenExpression, Offset: 5},
				{Kind: KindText, Text: "x", Offset: 6},
				{Kind: KindCloseExpression, Offset: 7},
				{Kind: KindCloseElement, Offset: 8},
				{Kind: KindText, Text: `\{`, Offset: 9},
			},
		},
		{
			name: "leading zeros",
			src:  "[007:",
			want: []Token{
				{Kind: KindOpenElement},
				{Kind: KindIndex, Index: 7, Offset: 1},
			},
		},
		{
			name: "stray closers are tokens",
			src:  "}]",
			want: []Token{
				{Kind: KindCloseExpression},
				{Kind: KindCloseElement, Offset: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Token

			for tok, err := range Tokens(tt.src) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				got = append(got, tok)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("tokens = %v\nwant     %v", got, tt.want)
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   *Error
		offset int
	}{
		{"lone open bracket", "ab[", ErrInvalidToken, 2},
		{"bracket without colon", "[1x", ErrInvalidToken, 0},
		{"bracket without digits", "[a:", ErrInvalidToken, 0},
		{"trailing backslash", `abc\`, ErrInvalidToken, 3},
		{"index overflow", "[18446744073709551616:", ErrMalformedElement, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error

			for _, e := range Tokens(tt.src) {
				err = e
			}

			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *Error", err)
			}

			if pos, ok := perr.Position(); !ok || pos.Offset != tt.offset {
				t.Errorf("position = %+v, want offset %d", pos, tt.offset)
			}
		})
	}
}

func TestLexer_MaxIndex(t *testing.T) {
	lex := NewLexer("[18446744073709551615:")

	if _, err := lex.Next(); err != nil {
		t.Fatal(err)
	}

	tok, err := lex.Next()
	if err != nil {
		t.Fatal(err)
	}

	if tok.Kind != KindIndex || tok.Index != 1<<64-1 {
		t.Errorf("token = %v, want max uint64 index", tok)
	}
}

func TestLexer_PeekAndEOF(t *testing.T) {
	lex := NewLexer("x}")

	peeked, err := lex.Peek()
	if err != nil {
		t.Fatal(err)
	}

	next, err := lex.Next()
	if err != nil {
		t.Fatal(err)
	}

	if peeked != next {
		t.Errorf("Peek = %v, Next = %v", peeked, next)
	}

	if tok, _ := lex.Next(); tok.Kind != KindCloseExpression {
		t.Errorf("second token = %v", tok)
	}

	for range 2 {
		if _, err := lex.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("expected io.EOF, got %v", err)
		}
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	lex := NewLexer("a[")

	if _, err := lex.Next(); err != nil {
		t.Fatal(err)
	}

	_, first := lex.Next()
	_, second := lex.Next()

	if first == nil || first != second {
		t.Errorf("errors = %v, %v; want the same error twice", first, second)
	}
}
