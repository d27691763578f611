package markup

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
)

// Parse parses format into a tree rooted at a synthetic [Element] with
// index 0.
//
// Parse stops at the first error and returns a [*Error] matching one of
// [ErrInvalidToken], [ErrMalformedElement], [ErrMalformedExpression],
// [ErrUnmatchedClose] or [ErrUnterminatedInput]. It never returns a partial
// tree.
func Parse(format string) (*Element, error) {
	p := &parser{src: format, lex: NewLexer(format)}

	return p.parse()
}

// parser builds a tree from a token stream using an explicit stack of open
// elements. stack[0] is the root.
type parser struct {
	src   string
	lex   *Lexer
	stack []*Element
}

func (p *parser) top() *Element { return p.stack[len(p.stack)-1] }

func (p *parser) add(n Node) {
	top := p.top()
	top.Children = append(top.Children, n)
}

func (p *parser) errorAt(kind *Error, offset int) *Error {
	return kind.WithPosition(positionOf(p.src, offset))
}

// expect consumes the next token and reports whether it has kind k. The
// returned offset locates the offending token, or the end of input.
func (p *parser) expect(k Kind) (Token, int, bool, error) {
	tok, err := p.lex.Next()
	if errors.Is(err, io.EOF) {
		return tok, len(p.src), false, nil
	}

	if err != nil {
		return tok, 0, false, err
	}

	return tok, tok.Offset, tok.Kind == k, nil
}

func (p *parser) parse() (*Element, error) {
	root := &Element{}
	p.stack = []*Element{root}

	for {
		tok, err := p.lex.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindText:
			p.add(Text{Raw: tok.Text})

		case KindOpenElement:
			if err := p.openElement(tok); err != nil {
				return nil, err
			}

		case KindCloseElement:
			p.stack = p.stack[:len(p.stack)-1]
			if len(p.stack) == 0 {
				return nil, p.errorAt(ErrUnmatchedClose, tok.Offset).
					Detail("']' without matching '['")
			}

		case KindOpenExpression:
			if err := p.expression(tok); err != nil {
				return nil, err
			}

		default:
			return nil, p.errorAt(ErrInternal, tok.Offset).
				Detail("unhandled token " + tok.String())
		}
	}

	if len(p.stack) != 1 {
		open := p.top()

		return nil, p.errorAt(ErrUnterminatedInput, len(p.src)).
			Detail(strconv.Itoa(len(p.stack)-1)+" unclosed element(s)").
			With(slog.Uint64("innermost_index", open.Index))
	}

	return root, nil
}

// openElement handles "[" which must be followed by its index.
func (p *parser) openElement(open Token) error {
	tok, offset, ok, err := p.expect(KindIndex)
	if err != nil {
		return err
	}

	if !ok {
		return p.errorAt(ErrMalformedElement, offset).
			Detail("element open bracket not followed by index")
	}

	if tok.Index == 0 {
		return p.errorAt(ErrMalformedElement, open.Offset).
			Detail("element index 0 is reserved for the root")
	}

	el := &Element{Index: tok.Index}
	p.add(el)
	p.stack = append(p.stack, el)

	return nil
}

// expression handles "{" which must be followed by a text body and "}".
func (p *parser) expression(open Token) error {
	body, offset, ok, err := p.expect(KindText)
	if err != nil {
		return err
	}

	if !ok {
		return p.errorAt(ErrMalformedExpression, offset).
			Detail("expression missing body").
			With(slog.Int("open_offset", open.Offset))
	}

	_, offset, ok, err = p.expect(KindCloseExpression)
	if err != nil {
		return err
	}

	if !ok {
		return p.errorAt(ErrMalformedExpression, offset).
			Detail("expression missing closing brace").
			With(slog.Int("open_offset", open.Offset))
	}

	p.add(Expression{Name: body.Text})

	return nil
}
