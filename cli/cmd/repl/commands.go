package repl

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	tea "github.com/charmbracelet/bubbletea"
)

type command struct {
	name    string
	aliases []string
	args    string
	help    string
}

//nolint:gochecknoglobals
var commands = []command{
	{name: "help", aliases: []string{"h"}, help: "Print this cruft"},
	{name: "values", aliases: []string{"v"}, help: "List bound expression values"},
	{name: "set", args: "NAME VALUE", help: "Bind expression NAME to VALUE"},
	{name: "unset", args: "NAME", help: "Remove the value bound to NAME"},
	{name: "stats", aliases: []string{"s"}, help: "Print parse and program cache statistics"},
	{name: "forget", args: "FORMAT", help: "Drop FORMAT from the parse cache"},
	{name: "clear", aliases: []string{"c"}, help: "Clear screen"},
	{name: "quit", aliases: []string{"q", "exit"}, help: "Exit REPL"},
}

// ctrlCommands are the command names offered as control-mode completions.
//
//nolint:gochecknoglobals
var ctrlCommands = func() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}()

// lookupCommand returns the name of the command called by name or one of its
// aliases.
func lookupCommand(name string) (string, bool) {
	for _, c := range commands {
		if c.name == name || slices.Contains(c.aliases, name) {
			return c.name, true
		}
	}

	return "", false
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\n: Commands (press Esc to toggle mode):\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-18s%s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}

	b.WriteString("\nKeys:\n\n")
	b.WriteString(help.New().FullHelpView(keys.FullHelp()))
	b.WriteString(`

Usage:
  Type a format string; its tree (or the parse error) is previewed live
  Completions for expression names appear inside {...} as you type
  History browsing with Up/Down switches to the mode of the entry
`)

	return b.String()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	word, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	echo := tea.Println(modeCtrl.echo(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", word),
		slog.String("args", rest),
	)

	name, ok := lookupCommand(word)
	if !ok {
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + word + " (try 'help')"))
	}

	switch name {
	case "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "values":
		return m, tea.Sequence(echo, tea.Println(m.listValues()))

	case "set":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			return m, tea.Sequence(echo,
				tea.Println(errorStyle.Render("usage: set NAME VALUE")))
		}

		m.values[key] = m.decode(strings.TrimSpace(value))

		return m, echo

	case "unset":
		if _, ok := m.values[rest]; !ok {
			return m, tea.Sequence(echo,
				tea.Println(errorStyle.Render("no value for "+strconv.Quote(rest))))
		}

		delete(m.values, rest)

		return m, echo

	case "stats":
		return m, tea.Sequence(echo, tea.Println(m.stats()))

	case "forget":
		status := "not cached"
		if m.parser.Forget(rest) {
			status = "forgotten"
		}

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(status)))

	default: // clear
		return m, tea.ClearScreen
	}
}

func (m model) listValues() string {
	if len(m.values) == 0 {
		return hintStyle.Render("  (no values)")
	}

	lines := make([]string, 0, len(m.values))
	for _, name := range slices.Sorted(maps.Keys(m.values)) {
		lines = append(lines, "  "+name+" "+
			hintStyle.Render(fmt.Sprintf("= %v", m.values[name])))
	}

	return strings.Join(lines, "\n")
}

func (m model) stats() string {
	ps, rs := m.parser.Stats(), m.renderer.Stats()

	return fmt.Sprintf(
		"  parse:   %d/%d entries, %d hits, %d misses, %d evictions, %d parses\n"+
			"  program: %d/%d entries, %d hits, %d misses, %d evictions",
		ps.Size, ps.Capacity, ps.Hits, ps.Misses, ps.Evictions, m.parser.Parses(),
		rs.Size, rs.Capacity, rs.Hits, rs.Misses, rs.Evictions,
	)
}
