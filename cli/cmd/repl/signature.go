package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// builtins maps each expr-lang builtin offered in expressions to its
// parameter labels. See https://expr-lang.org/docs/language-definition.
var builtins = map[string][]string{
	// Strings
	"upper":     {"string"},
	"lower":     {"string"},
	"title":     {"string"},
	"trim":      {"string"},
	"trimLeft":  {"string"},
	"trimRight": {"string"},
	"split":     {"string", "separator"},
	"replace":   {"string", "old", "new"},
	"join":      {"array", "separator"},

	// Conversion
	"len":    {"v"},
	"int":    {"v"},
	"float":  {"v"},
	"string": {"v"},
	"type":   {"v"},

	// Aggregates
	"sum":    {"array"},
	"mean":   {"array"},
	"median": {"array"},
	"min":    {"array"},
	"max":    {"array"},

	// Predicates and mappers
	"all":           {"array", "predicate"},
	"any":           {"array", "predicate"},
	"one":           {"array", "predicate"},
	"none":          {"array", "predicate"},
	"count":         {"array", "predicate"},
	"filter":        {"array", "predicate"},
	"find":          {"array", "predicate"},
	"findIndex":     {"array", "predicate"},
	"findLast":      {"array", "predicate"},
	"findLastIndex": {"array", "predicate"},
	"map":           {"array", "mapper"},
	"groupBy":       {"array", "mapper"},
	"sortBy":        {"array", "mapper"},
}

// ExprLangBuiltinNames returns the sorted names of the expr-lang builtin
// functions offered as completions.
func ExprLangBuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

var (
	sigStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sigNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	sigActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// signature describes a callable by name and parameter labels. A label
// prefixed with "..." is variadic.
type signature struct {
	name   string
	params []string
}

func (s signature) String() string {
	return s.name + "(" + strings.Join(s.params, ", ") + ")"
}

// active reports whether parameter i receives argument arg.
func (s signature) active(i, arg int) bool {
	if strings.HasPrefix(s.params[i], "...") {
		return arg >= i
	}

	return arg == i
}

// hint renders s with the parameter receiving argument arg highlighted.
func (s signature) hint(arg int) string {
	var b strings.Builder

	b.WriteString(sigNameStyle.Render(s.name))
	b.WriteString(sigStyle.Render("("))

	for i, p := range s.params {
		if i > 0 {
			b.WriteString(sigStyle.Render(", "))
		}

		style := sigStyle
		if s.active(i, arg) {
			style = sigActiveStyle
		}

		b.WriteString(style.Render(p))
	}

	b.WriteString(sigStyle.Render(")"))

	return b.String()
}

// call is an open function call enclosing the cursor.
type call struct {
	name string
	arg  int // 0-based index of the argument under the cursor
}

// isNameRune reports whether r can appear in a (dotted) callee name.
func isNameRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// callAt returns the innermost named call whose argument list is still open
// at cursor. Parentheses and commas inside quoted strings are ignored.
func callAt(input string, cursor int) (call, bool) {
	cursor = max(0, min(cursor, len(input)))

	var (
		stack []call
		quote rune
		skip  bool
	)

	for i, r := range input[:cursor] {
		switch {
		case skip:
			skip = false
		case quote != 0:
			switch r {
			case '\\':
				skip = true
			case quote:
				quote = 0
			}
		case r == '"' || r == '\'' || r == '`':
			quote = r
		case r == '(':
			prefix := input[:i]
			start := strings.LastIndexFunc(prefix, func(r rune) bool {
				return !isNameRune(r)
			}) + 1
			stack = append(stack, call{name: prefix[start:]})
		case r == ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case r == ',':
			if len(stack) > 0 {
				stack[len(stack)-1].arg++
			}
		}
	}

	if len(stack) == 0 || stack[len(stack)-1].name == "" {
		return call{}, false
	}

	return stack[len(stack)-1], true
}

// lookupSignature describes the callee name. Functions bound in values take
// priority over expr-lang builtins, which are only offered when expression
// evaluation is enabled.
func lookupSignature(
	values map[string]any,
	exprEnabled bool,
	name string,
) (signature, bool) {
	if sig, ok := valueSignature(values, name); ok {
		return sig, true
	}

	if params, ok := builtins[name]; ok && exprEnabled {
		return signature{name: name, params: params}, true
	}

	return signature{}, false
}

// valueSignature describes a function bound in values. Dotted names descend
// through nested maps.
func valueSignature(values map[string]any, name string) (signature, bool) {
	v, _ := resolve(values, name)

	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Func {
		return signature{}, false
	}

	sig := signature{name: name, params: make([]string, t.NumIn())}

	for i := range t.NumIn() {
		if t.IsVariadic() && i == t.NumIn()-1 {
			sig.params[i] = "..." + typeLabel(t.In(i).Elem())
		} else {
			sig.params[i] = typeLabel(t.In(i))
		}
	}

	return sig, true
}

// typeLabel names t the way expr-lang users think of it.
func typeLabel(t reflect.Type) string {
	switch k := t.Kind(); {
	case k == reflect.Pointer:
		return typeLabel(t.Elem())
	case k == reflect.Bool, k == reflect.String, k == reflect.Map, k == reflect.Func:
		return k.String()
	case k == reflect.Slice || k == reflect.Array:
		return "array"
	case k >= reflect.Int && k <= reflect.Int64:
		return "int"
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return "uint"
	case k == reflect.Float32 || k == reflect.Float64:
		return "float"
	case t.Name() != "":
		return t.Name()
	default:
		return "any"
	}
}
