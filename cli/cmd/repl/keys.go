package repl

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"

	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Submit      key.Binding
	Next        key.Binding
	Prev        key.Binding
	Accept      key.Binding
	Older       key.Binding
	Newer       key.Binding
	OlderInMode key.Binding
	NewerInMode key.Binding
	Toggle      key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

//nolint:gochecknoglobals
var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "render, or lock in the selected candidate"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next candidate"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous candidate"),
	),
	Accept: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "accept candidate"),
	),
	Older: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "older entry"),
	),
	Newer: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "newer entry"),
	),
	OlderInMode: key.NewBinding(
		key.WithKeys("shift+up"),
		key.WithHelp("shift+↑", "older entry in this mode"),
	),
	NewerInMode: key.NewBinding(
		key.WithKeys("shift+down"),
		key.WithHelp("shift+↓", "newer entry in this mode"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel completion or toggle mode"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "clear line, or exit on empty line"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "exit on empty line"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Next, k.Prev, k.Accept},
		{k.Older, k.Newer, k.OlderInMode, k.NewerInMode},
		{k.Toggle, k.Clear, k.Quit},
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch {
	case key.Matches(msg, keys.Clear):
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tab.active = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case key.Matches(msg, keys.Quit):
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case key.Matches(msg, keys.Submit):
		if !m.tab.active || len(m.matches) == 0 {
			return m.submit()
		}

		m.tab.active = false
		m.refreshMatches(true)

		return m, nil

	case key.Matches(msg, keys.Next):
		return m.cycle(1), nil

	case key.Matches(msg, keys.Prev):
		return m.cycle(-1), nil

	case key.Matches(msg, keys.Older):
		return m.historyStep(-1, false), nil

	case key.Matches(msg, keys.Newer):
		return m.historyStep(1, false), nil

	case key.Matches(msg, keys.OlderInMode):
		return m.historyStep(-1, true), nil

	case key.Matches(msg, keys.NewerInMode):
		return m.historyStep(1, true), nil

	case key.Matches(msg, keys.Toggle):
		if m.tab.active {
			m.tab.active = false
			m.input.SetValue(m.tab.text)
			m.input.SetCursor(m.tab.cursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil
	}

	var cmd tea.Cmd

	// Typing may complete a word; editing and cursor movement never do.
	typing := msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
	if !typing || key.Matches(msg, keys.Accept) {
		m.tab.active = false
	}

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(typing)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping at either end. A lone
// match is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tab = tabState{index: -1}
		m.matches = nil

		return m

	case m.tab.active:
		m.tab.index = (m.tab.index + step + n) % n

	default:
		m.tab = tabState{
			active: true,
			index:  0,
			text:   m.input.Value(),
			cursor: m.input.Position(),
		}
		if step < 0 {
			m.tab.index = n - 1
		}
	}

	m.replaceWord(m.matches[m.tab.index].Str)

	return m
}

// replaceWord substitutes s for the word being completed and moves the
// cursor past it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.wordEnd = m.wordStart + len(s)
	m.input.SetCursor(m.wordEnd)
}

// refreshMatches recomputes the completions for the word at the cursor.
// With confirm set, a lone match the word already spells out is dismissed.
func (m *model) refreshMatches(confirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tab.active {
		m.tab.index = -1
	}

	if confirm && len(m.matches) == 1 &&
		m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tab = tabState{index: -1}
		m.matches = nil
	}
}

// historyStep moves through history by step. With inMode set, entries of
// the other mode are skipped; otherwise the mode follows the entry.
func (m model) historyStep(step int, inMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if entry.Mode != m.mode {
			if inMode {
				continue
			}

			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m
	}

	// Stepping past the newest entry returns to an empty line.
	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchToMode stashes the input of the current mode and restores the draft
// of mode.
func (m model) switchToMode(mode inputMode) model {
	m.drafts[m.mode] = draft{text: m.input.Value(), cursor: m.input.Position()}

	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.drafts[mode].text)
	m.input.SetCursor(m.drafts[mode].cursor)
	m.refreshMatches(false)

	return m
}
