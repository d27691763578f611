package markup

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind uint8

const (
	KindText            Kind = iota + 1 // text
	KindOpenElement                     // [
	KindIndex                           // index
	KindCloseElement                    // ]
	KindOpenExpression                  // {
	KindCloseExpression                 // }
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindOpenElement:
		return "["
	case KindIndex:
		return "index"
	case KindCloseElement:
		return "]"
	case KindOpenExpression:
		return "{"
	case KindCloseExpression:
		return "}"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a single lexeme of a format string.
type Token struct {
	// Text holds the raw matched run for KindText, escapes included.
	Text string
	// Index holds the element number for KindIndex.
	Index uint64
	// Offset is the byte offset of the lexeme in the source.
	Offset int
	Kind   Kind
}

func (t Token) String() string {
	switch t.Kind {
	case KindText:
		return "text " + strconv.Quote(t.Text)
	case KindIndex:
		return "index " + strconv.FormatUint(t.Index, 10)
	default:
		return strconv.Quote(t.Kind.String())
	}
}
