package repl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/mfmt/log"
	"github.com/ardnew/mfmt/markup"
	"github.com/ardnew/mfmt/render"
)

const (
	formatPrompt = "➜ "
	ctrlPrompt   = " :"
)

// inputMode selects how a submitted line is interpreted.
type inputMode int

const (
	modeFormat inputMode = iota // format string to parse and render
	modeCtrl                    // control command
)

func (mode inputMode) prompt() string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(formatPrompt)
}

// echo renders line as it was submitted at the prompt of mode.
func (mode inputMode) echo(line string) string {
	return mode.prompt() + inputStyle.Render(line)
}

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// slotPalette colors the content of each element index when no slot is
// configured for it.
var slotPalette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// colorSlot returns a slot rendering content in the palette color of index.
func colorSlot(index uint64) render.Slot {
	style := slotPalette[(index-1)%uint64(len(slotPalette))]

	return func(content string) string { return style.Render(content) }
}

// Config configures a REPL session.
type Config struct {
	// Parser parses submitted format strings. Live previews bypass it so that
	// partial input does not displace cached entries.
	Parser *markup.Parser
	// Renderer renders submitted format strings.
	Renderer *render.Renderer
	// Expr reports whether Renderer evaluates expr-lang programs, which adds
	// the builtin functions to completions and signature hints.
	Expr bool
	// Values are the initial expression values. The map is copied.
	Values map[string]any
	// Slots override the colored slot of their element index.
	Slots render.Slots
	// Decode converts the VALUE of "set NAME VALUE". Nil binds the string.
	Decode func(string) any
	// HistoryPath is the history file. Empty keeps history in memory.
	HistoryPath string
	Logger      log.Logger
	// In and Out default to the terminal.
	In  io.Reader
	Out io.Writer
}

// tabState is an in-progress Tab cycle through the matches.
type tabState struct {
	active bool
	index  int    // selected match, -1 when none
	text   string // input before cycling began
	cursor int
}

// draft is the unsubmitted input of one mode, restored on switching back.
type draft struct {
	text   string
	cursor int
}

type model struct {
	ctxFunc  func() context.Context
	input    textinput.Model
	parser   *markup.Parser
	renderer *render.Renderer
	expr     bool
	values   map[string]any
	slots    render.Slots
	decode   func(string) any
	names    map[string]struct{} // expression names seen in submitted input
	logger   log.Logger

	history    *History
	historyIdx int // history.Len() while editing a new line

	matches    fuzzy.Matches // ranked completions of the word at the cursor
	candidates []string
	wordStart  int
	wordEnd    int
	tab        tabState

	mode     inputMode
	drafts   [2]draft // indexed by inputMode
	width    int
	quitting bool
}

// Run starts the REPL and blocks until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := NewHistory(cfg.HistoryPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("file", cfg.HistoryPath),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", cfg.HistoryPath),
		slog.Int("history_entries", history.Len()),
		slog.Bool("expr", cfg.Expr),
		slog.Int("values", len(cfg.Values)),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	if cfg.In != nil && cfg.In != io.Reader(os.Stdin) {
		opts = append(opts, tea.WithInput(cfg.In))
	}

	if cfg.Out != nil && cfg.Out != io.Writer(os.Stdout) {
		opts = append(opts, tea.WithOutput(cfg.Out))
	}

	_, err = tea.NewProgram(newModel(ctx, cfg, history), opts...).Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted by the caller.
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = modeFormat.prompt()
	ti.CharLimit = 1024
	ti.Width = defaultWidth
	ti.Focus()

	if cfg.Parser == nil {
		cfg.Parser = markup.NewParser(markup.WithLogger(cfg.Logger))
	}

	if cfg.Renderer == nil {
		cfg.Renderer = render.New(
			render.WithExpr(cfg.Expr),
			render.WithLogger(cfg.Logger),
		)
	}

	if cfg.Decode == nil {
		cfg.Decode = func(s string) any { return s }
	}

	values := maps.Clone(cfg.Values)
	if values == nil {
		values = make(map[string]any)
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		parser:     cfg.Parser,
		renderer:   cfg.Renderer,
		expr:       cfg.Expr,
		values:     values,
		slots:      cfg.Slots,
		decode:     cfg.Decode,
		names:      make(map[string]struct{}),
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		tab:        tabState{index: -1},
		width:      defaultWidth,
		mode:       modeFormat,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(formatPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View draws the input line, a status line and, in format mode, the live
// preview of the input's tree.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	input := m.input.Value()
	lines := []string{m.input.View(), m.status()}

	if m.mode == modeFormat && strings.TrimSpace(input) != "" {
		lines = append(lines, preview(input, lipgloss.Width(m.input.Prompt)))
	}

	return strings.Join(lines, "\n") + "\n"
}

// status returns the line beneath the input: the history position while
// browsing history, a usage hint on an empty line, the completion candidates,
// or the signature of the enclosing call.
func (m model) status() string {
	switch {
	case m.historyIdx < m.history.Len():
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(pos + "/" + strconv.Itoa(m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		if m.mode == modeCtrl {
			return hintStyle.Render(
				"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
		}

		return hintStyle.Render("Type a format string or press Esc for commands")

	case len(m.matches) > 0:
		return m.renderCandidateBar(m.matches, m.tab.index, m.tab.active, m.width)

	default:
		return m.signatureHint()
	}
}

// signatureHint renders the signature of the function call enclosing the
// cursor, if the cursor is inside an expression.
func (m model) signatureHint() string {
	if m.mode != modeFormat {
		return ""
	}

	input := m.input.Value()
	cursor := m.input.Position()

	open, ok := openExpression(input, cursor)
	if !ok {
		return ""
	}

	c, ok := callAt(input[open:cursor], cursor-open)
	if !ok {
		return ""
	}

	sig, ok := lookupSignature(m.values, m.expr, c.name)
	if !ok {
		return ""
	}

	return sig.hint(c.arg)
}

// submit clears the input, records it in history and runs it in the
// current mode.
func (m model) submit() (model, tea.Cmd) {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(strings.TrimSpace(input))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl format", slog.String("input", input))

	cmds := []tea.Cmd{tea.Println(modeFormat.echo(input))}
	for _, line := range m.evaluate(input) {
		cmds = append(cmds, tea.Println(line))
	}

	return m, tea.Sequence(cmds...)
}

// evaluate parses input with the cached parser and renders it. It returns
// the styled lines to print: the tree followed by the rendered result, or
// the error.
func (m model) evaluate(input string) []string {
	ctx := m.ctxFunc()

	root, err := m.parser.Parse(ctx, input)
	if err != nil {
		return []string{errorStyle.Render(caret(input, err, lipgloss.Width(formatPrompt)))}
	}

	for name := range root.Expressions() {
		m.names[name] = struct{}{}
	}

	slots := make(render.Slots)
	for index := range root.Indices() {
		slots[index] = colorSlot(index)
	}

	maps.Copy(slots, m.slots)

	lines := []string{hintStyle.Render(strings.TrimRight(root.Tree(), "\n"))}

	out, err := m.renderer.Render(root, slots, m.values)
	if err != nil {
		m.logger.TraceContext(ctx, "repl render failed", slog.Any("error", err))

		return append(lines, errorStyle.Render("error: "+err.Error()))
	}

	return append(lines, resultStyle.Render("⇒ ")+out)
}
