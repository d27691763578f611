package markup

import (
	"encoding/json"
	"iter"
	"strconv"
	"strings"
)

// Node is a child of an [Element]: one of [*Element], [Text] or
// [Expression].
type Node interface {
	node()
	write(sb *strings.Builder)
	toMap() map[string]any
}

// Element is a numbered placeholder and its ordered children.
//
// The root returned by [Parse] is a synthetic Element with Index 0; every
// other Element corresponds to a matched "[n:" ... "]" pair in the source.
// Elements are never modified after parsing, so a single tree may be shared
// by any number of renders.
type Element struct {
	Index    uint64
	Children []Node
}

// Text is a maximal run of literal text. Raw keeps backslash escapes as they
// appear in the source; see [Text.Unescape].
type Text struct {
	Raw string
}

// Expression is a named placeholder resolved against caller values when
// rendering. Name is the verbatim text between the braces.
type Expression struct {
	Name string
}

func (*Element) node() {}

func (Text) node() {}

func (Expression) node() {}

// Unescape returns Raw with every backslash escape "\c" replaced by the
// literal character c.
func (t Text) Unescape() string {
	if !strings.ContainsRune(t.Raw, '\\') {
		return t.Raw
	}

	var sb strings.Builder

	sb.Grow(len(t.Raw))

	escaped := false
	for _, r := range t.Raw {
		if !escaped && r == '\\' {
			escaped = true

			continue
		}

		escaped = false

		sb.WriteRune(r)
	}

	return sb.String()
}

// String returns a format string that parses to a tree equal to e.
// The root element renders only its children.
func (e *Element) String() string {
	var sb strings.Builder

	for _, child := range e.Children {
		child.write(&sb)
	}

	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	sb.WriteByte('[')
	sb.WriteString(strconv.FormatUint(e.Index, 10))
	sb.WriteByte(':')

	for _, child := range e.Children {
		child.write(sb)
	}

	sb.WriteByte(']')
}

func (t Text) write(sb *strings.Builder) { sb.WriteString(t.Raw) }

func (x Expression) write(sb *strings.Builder) {
	sb.WriteByte('{')
	sb.WriteString(x.Name)
	sb.WriteByte('}')
}

// Walk returns a pre-order iterator over the descendants of e, paired with
// their depth. Direct children of e have depth 1.
func (e *Element) Walk() iter.Seq2[Node, int] {
	return func(yield func(Node, int) bool) {
		e.walk(1, yield)
	}
}

func (e *Element) walk(depth int, yield func(Node, int) bool) bool {
	for _, child := range e.Children {
		if !yield(child, depth) {
			return false
		}

		if el, ok := child.(*Element); ok && !el.walk(depth+1, yield) {
			return false
		}
	}

	return true
}

// Depth returns the deepest element nesting below e. A tree without nested
// elements has depth 0.
func (e *Element) Depth() int {
	depth := 0

	for node, d := range e.Walk() {
		if _, ok := node.(*Element); ok {
			depth = max(depth, d)
		}
	}

	return depth
}

// Expressions returns an iterator over the distinct expression names
// referenced below e, in order of first occurrence.
func (e *Element) Expressions() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})

		for node := range e.Walk() {
			x, ok := node.(Expression)
			if !ok {
				continue
			}

			if _, dup := seen[x.Name]; dup {
				continue
			}

			seen[x.Name] = struct{}{}

			if !yield(x.Name) {
				return
			}
		}
	}
}

// Indices returns an iterator over the distinct element indices referenced
// below e, in order of first occurrence.
func (e *Element) Indices() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		seen := make(map[uint64]struct{})

		for node := range e.Walk() {
			el, ok := node.(*Element)
			if !ok {
				continue
			}

			if _, dup := seen[el.Index]; dup {
				continue
			}

			seen[el.Index] = struct{}{}

			if !yield(el.Index) {
				return
			}
		}
	}
}

// ToMap converts e to nested maps and slices suitable for JSON or YAML
// encoding. Elements become {"index": n, "children": [...]}, text runs
// {"text": raw} and expressions {"expr": name}.
func (e *Element) ToMap() map[string]any { return e.toMap() }

func (e *Element) toMap() map[string]any {
	children := make([]any, len(e.Children))
	for i, child := range e.Children {
		children[i] = child.toMap()
	}

	return map[string]any{
		"index":    e.Index,
		"children": children,
	}
}

func (t Text) toMap() map[string]any { return map[string]any{"text": t.Raw} }

func (x Expression) toMap() map[string]any { return map[string]any{"expr": x.Name} }

// MarshalJSON encodes e in the shape produced by [Element.ToMap].
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toMap())
}
