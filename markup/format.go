package markup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes the tree rooted at e as JSON to the writer.
func (e *Element) FormatJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(e, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(e)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the tree rooted at e as YAML to the writer.
// A non-positive indent selects flow style.
func (e *Element) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, e.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Label returns the one-line description of n used by [Element.Tree].
func Label(n Node) string {
	switch n := n.(type) {
	case *Element:
		return "element " + strconv.FormatUint(n.Index, 10)
	case Text:
		return "text " + strconv.Quote(n.Raw)
	case Expression:
		return "expr " + n.Name
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Tree returns an indented drawing of the tree rooted at e.
func (e *Element) Tree() string { return e.TreeFunc(Label) }

// TreeFunc is like [Element.Tree] but labels each node with label.
func (e *Element) TreeFunc(label func(Node) string) string {
	var sb strings.Builder

	sb.WriteString(label(e))
	sb.WriteByte('\n')
	e.tree(&sb, "", label)

	return sb.String()
}

func (e *Element) tree(sb *strings.Builder, prefix string, label func(Node) string) {
	for i, child := range e.Children {
		branch, indent := "├─ ", "│  "
		if i == len(e.Children)-1 {
			branch, indent = "└─ ", "   "
		}

		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(label(child))
		sb.WriteByte('\n')

		if el, ok := child.(*Element); ok {
			el.tree(sb, prefix+indent, label)
		}
	}
}
