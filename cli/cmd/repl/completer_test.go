package repl

import (
	"slices"
	"strings"
	"testing"
)

// cut splits s at the cursor marker '|', returning s without the marker and
// the marker's byte offset.
func cut(s string) (string, int) {
	before, after, _ := strings.Cut(s, "|")

	return before + after, len(before)
}

func TestWordBounds(t *testing.T) {
	// The wanted word is bracketed within want.
	tests := map[string]string{
		"foo|":        "[foo]",
		"|foo":        "[foo]",
		"foo|bar":     "[foobar]",
		"bar.baz|":    "bar.[baz]",
		"config.|":    "config.[]",
		"a + fo|":     "a + [fo]",
		"a + |":       "a + []",
		"a+|b":        "a+[b]",
		"total-pr|":   "total-[pr]",
		"double(fo|":  "double([fo]",
		"add(a, fo|":  "add(a, [fo]",
		"x ? fo|":     "x ? [fo]",
		"a > fo|":     "a > [fo]",
		"{na|":        "{[na]",
		"a[1:{na|}]":  "a[1:{[na]}]",
		"{user_na|":   "{[user_na]",
		"x == \"s|\"": "x == \"[s]\"",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			input, cursor := cut(in)
			word, start, end := wordBounds(input, cursor)

			got := input[:start] + "[" + word + "]" + input[end:]
			if got != want {
				t.Errorf("wordBounds(%q, %d) = %q, want %q", input, cursor, got, want)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := map[string]string{
		"fo|":                 "",
		"a + |":               "",
		"bar.baz.|":           "bar.baz",
		"a.b.c.|":             "a.b.c",
		"(bar.baz.|":          "bar.baz",
		"foo + bar.baz.|":     "bar.baz",
		"x = a.b.|":           "a.b",
		"x - user.address.|":  "user.address",
		"len(user.address.c|": "user.address",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			input, cursor := cut(in)
			_, start, _ := wordBounds(input, cursor)

			if got := parentPath(input, start); got != want {
				t.Errorf("parentPath(%q, %d) = %q, want %q", input, start, got, want)
			}
		})
	}
}

func TestOpenExpression(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   int
		wantOK bool
	}{
		{"text", "hello", 5, -1, false},
		{"open", "hi {na", 6, 4, true},
		{"closed", "hi {name} x", 11, -1, false},
		{"inside_closed", "hi {name} x", 6, 4, true},
		{"escaped_open", `hi \{na`, 7, -1, false},
		{"escaped_backslash", `hi \\{na`, 8, 6, true},
		{"in_element", "[1:{na", 6, 4, true},
		{"second", "{a} {b", 6, 5, true},
		{"cursor_past_end", "{a", 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := openExpression(tt.input, tt.cursor)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("openExpression(%q, %d) = (%d, %v), want (%d, %v)",
					tt.input, tt.cursor, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	m := newTestModel(t, Config{
		Values: map[string]any{
			"name": "Ann",
			"user": map[string]any{
				"address": map[string]any{"city": "Oslo", "zip": "0150"},
				"age":     42,
			},
		},
	})
	m.names["seen"] = struct{}{}

	tests := []struct {
		name   string
		expr   bool
		parent string
		want   []string
	}{
		{"top_level", false, "", []string{"name", "seen", "user"}},
		{"nested", false, "user", []string{"address", "age"}},
		{"deep", false, "user.address", []string{"city", "zip"}},
		{"leaf", false, "user.age", nil},
		{"unknown", false, "missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.expr = tt.expr

			got := m.childCandidates(tt.parent)
			if !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%q) = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}

	m.expr = true
	if got := m.childCandidates(""); !slices.Contains(got, "upper") {
		t.Errorf("childCandidates with expr = %v, want builtin %q", got, "upper")
	}
}
