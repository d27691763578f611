package repl

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"
)

var (
	matchStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	selectedMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4")).
				Bold(true)
)

// isWordBoundary reports whether r ends a completion word: whitespace, the
// member-access dot, expression braces, or expr-lang punctuation.
func isWordBoundary(r rune) bool {
	return strings.ContainsRune(" \t.()[]{}+-*/%<>=!&|,?:;\"'", r)
}

// wordBounds returns the word around cursor and its byte range in input.
// The word is empty when cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = strings.LastIndexFunc(input[:cursor], isWordBoundary) + 1

	end = len(input)
	if n := strings.IndexFunc(input[cursor:], isWordBoundary); n >= 0 {
		end = cursor + n
	}

	return input[start:end], start, end
}

// openExpression returns the byte offset just past the unescaped '{' that
// opens the expression containing cursor. It returns false when cursor is
// not inside an expression.
func openExpression(input string, cursor int) (int, bool) {
	open, escaped := -1, false

	for i, r := range input[:min(cursor, len(input))] {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '{':
			open = i + 1
		case r == '}':
			open = -1
		}
	}

	return open, open >= 0
}

// parentPath returns the member-access chain preceding the word that starts
// at wordStart, e.g. "user.address" for "x + user.address.ci". Top-level words
// have no parent.
func parentPath(input string, wordStart int) string {
	prefix := strings.TrimRight(input[:wordStart], ".")

	start := strings.LastIndexFunc(prefix, func(r rune) bool {
		return r != '.' && isWordBoundary(r)
	}) + 1

	return strings.TrimSpace(prefix[start:])
}

// resolve follows a dotted path through nested maps in values.
func resolve(values map[string]any, path string) (any, bool) {
	var v any = values

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}

		if v, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return v, true
}

// childCandidates returns the completions available under parent. At the top
// level these are the expression names seen so far, the keys of values and,
// with expression evaluation enabled, the expr-lang builtins. Below it they
// are the keys of the nested map at parent.
func (m model) childCandidates(parent string) []string {
	if parent != "" {
		v, _ := resolve(m.values, parent)
		if children, ok := v.(map[string]any); ok {
			return slices.Sorted(maps.Keys(children))
		}

		return nil
	}

	names := maps.Clone(m.names)
	if names == nil {
		names = make(map[string]struct{})
	}

	for name := range m.values {
		names[name] = struct{}{}
	}

	if m.expr {
		for name := range builtins {
			names[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(names))
}

// computeMatches ranks the candidates for the word at the cursor, best first.
// Control mode completes only the command word. Format mode completes only
// inside an expression, and an empty word lists every member after a dot
// while offering nothing at the top level so the preview stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	switch m.mode {
	case modeCtrl:
		if word == "" || strings.Contains(input[:wordStart], " ") {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands

	default:
		open, ok := openExpression(input, cursor)
		if !ok {
			return nil, nil, wordStart, wordEnd
		}

		parent := parentPath(input[open:], wordStart-open)
		candidates = m.childCandidates(parent)

		if word == "" {
			if parent == "" {
				return nil, nil, wordStart, wordEnd
			}

			for i, c := range candidates {
				matches = append(matches, fuzzy.Match{Str: c, Index: i})
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar lays matches out on one line, truncated with an
// ellipsis to fit width. The candidate at selected is highlighted while
// tabbing.
func (m model) renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	tabActive bool,
	width int,
) string {
	const sep = "  "

	if width <= 0 {
		return ""
	}

	ellipsis := sep + hintStyle.Render("...")

	var b strings.Builder

	for i, match := range matches {
		item := m.renderCandidate(match, tabActive && i == selected)
		if i > 0 {
			item = sep + item
		}

		room := width - lipgloss.Width(b.String())
		if i < len(matches)-1 {
			room -= lipgloss.Width(ellipsis)
		}

		if i > 0 && lipgloss.Width(item) > room {
			b.WriteString(ellipsis)

			break
		}

		b.WriteString(item)
	}

	return b.String()
}

// renderCandidate renders one candidate with its fuzzy-matched runes
// highlighted. Functions get a "()" suffix that completion does not insert.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, hit := suggestionStyle, matchStyle
	if selected {
		base, hit = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		style := base
		if slices.Contains(match.MatchedIndexes, i) {
			style = hit
		}

		b.WriteString(style.Render(string(r)))
	}

	if m.isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is a function bound in values, or an
// expr-lang builtin when expression evaluation is enabled.
func (m model) isFunction(name string) bool {
	if _, ok := valueSignature(m.values, name); ok {
		return true
	}

	_, ok := builtin.Index[name]

	return ok && m.expr
}
