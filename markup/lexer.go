package markup

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"regexp"
	"strconv"
)

// matcher recognizes one token at the start of the unconsumed input.
// Capture groups, in order: text run, open element, element index, close
// element, open expression, close expression.
//
//	text       = { unreserved | "\" any } ;
//	element    = "[" , digits , ":" , { text | expression | element } , "]" ;
//	expression = "{" , text , "}" ;
var matcher = regexp.MustCompile(`\A(?s:` +
	`((?:[^\[\]{}\\]|\\.)+)` +
	`|(\[)([0-9]+):` +
	`|(\])` +
	`|(\{)` +
	`|(\})` +
	`)`)

const (
	groupText = 1 + iota
	groupOpenElement
	groupIndex
	groupCloseElement
	groupOpenExpression
	groupCloseExpression
)

// Lexer lazily splits a format string into tokens.
//
// A Lexer makes a single left-to-right pass and cannot be rewound; create a
// new one to scan again. The first error is sticky.
type Lexer struct {
	src     string
	pos     int
	pending []Token // tokens matched but not yet returned
	err     error
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, pending: make([]Token, 0, 2)}
}

// Next returns the next token. It returns [io.EOF] once the input is
// exhausted and a [*Error] matching [ErrInvalidToken] or
// [ErrMalformedElement] if the input cannot be tokenized.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.Peek()
	if err == nil {
		l.pending = l.pending[1:]
	}

	return tok, err
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if len(l.pending) == 0 && l.err == nil {
		l.err = l.scan()
	}

	if len(l.pending) > 0 {
		return l.pending[0], nil
	}

	return Token{}, l.err
}

// scan matches the next lexeme and queues its tokens.
func (l *Lexer) scan() error {
	if l.pos >= len(l.src) {
		return io.EOF
	}

	m := matcher.FindStringSubmatchIndex(l.src[l.pos:])
	if m == nil {
		return l.invalid()
	}

	start := l.pos
	group := func(n int) (string, bool) {
		if m[2*n] < 0 {
			return "", false
		}

		return l.src[start+m[2*n] : start+m[2*n+1]], true
	}

	l.pos += m[1]

	if text, ok := group(groupText); ok {
		l.pending = append(l.pending, Token{Kind: KindText, Text: text, Offset: start})

		return nil
	}

	if _, ok := group(groupOpenElement); ok {
		digits, _ := group(groupIndex)

		index, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return ErrMalformedElement.
				Detail("element index out of range").
				WithPosition(positionOf(l.src, start+1)).
				With(slog.String("index", digits))
		}

		l.pending = append(l.pending,
			Token{Kind: KindOpenElement, Offset: start},
			Token{Kind: KindIndex, Index: index, Offset: start + 1},
		)

		return nil
	}

	for _, g := range []struct {
		group int
		kind  Kind
	}{
		{groupCloseElement, KindCloseElement},
		{groupOpenExpression, KindOpenExpression},
		{groupCloseExpression, KindCloseExpression},
	} {
		if _, ok := group(g.group); ok {
			l.pending = append(l.pending, Token{Kind: g.kind, Offset: start})

			return nil
		}
	}

	return ErrInternal.
		Detail("no capture group matched").
		WithPosition(positionOf(l.src, start))
}

// invalid builds the error for a reserved character that cannot start a
// token at the current offset.
func (l *Lexer) invalid() error {
	detail := "unexpected character"

	switch l.src[l.pos] {
	case '[':
		detail = "'[' not followed by index and ':'"
	case '\\':
		detail = "escape at end of input"
	}

	return ErrInvalidToken.
		Detail(detail).
		WithPosition(positionOf(l.src, l.pos))
}

// Tokens returns an iterator over the tokens of src. Iteration stops after
// the first error, which is yielded with a zero Token.
func Tokens(src string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		lex := NewLexer(src)

		for {
			tok, err := lex.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}
