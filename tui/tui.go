package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/nathoo/lootcore/cli"
	"github.com/nathoo/lootcore/engine"
	"github.com/nathoo/lootcore/engine/loot"
)

// rawLine is one unstyled log line. Styling happens at render time.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed operator input
}

// Model is the Bubble Tea model for the loot table inspector.
type Model struct {
	session *cli.Session

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	quitting bool
}

// outputMsg carries command output into the Update loop.
type outputMsg struct {
	input string   // echoed operator input (empty for the table listing)
	lines []string // output lines
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		session: cli.NewSession(eng),
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that lists the loaded tables.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		listing, _ := m.session.Exec("tables")
		lines := append([]string{"Loot tables:"}, listing...)
		lines = append(lines, "", "Type /help for commands.")
		return outputMsg{lines: lines}
	}
}

// Update routes resizes, keys, mouse wheel and command output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize lays out the log above one status line and one input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	logHeight := max(1, height-2)

	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = logHeight
	} else {
		m.viewport = viewport.New(width, logHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.refreshViewport()
}

// handleKey handles keys the text input does not own. handled is false
// for keys that should reach the input.
func (m Model) handleKey(msg tea.KeyMsg) (next tea.Model, cmd tea.Cmd, handled bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd = m.handleEnter()
		return next, cmd, true

	case "esc":
		m.input.SetValue("")
		m.history.ResetCursor()
		return m, nil, true

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		newer, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.input.SetValue(newer)
		m.input.CursorEnd()
		return m, nil, true

	case "pgup", "pgdown":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleEnter runs the submitted input line through the session.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	lines, quit := m.session.Exec(input)
	if input == "/help" {
		lines = append(lines, "", "Navigation: PgUp/PgDn to scroll, Up/Down for command history")
	}
	m = m.appendOutput(outputMsg{input: input, lines: lines})
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// appendOutput records one command's echo and output, followed by a
// blank separator line.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, isInput: true})
	}
	for _, line := range msg.lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
	}
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()
	return m
}

// refreshViewport renders rawLines at the current width. Lines are kept raw
// so a resize can re-wrap them.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(10, m.width)
	styled := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		switch {
		case rl.text == "":
		case rl.isInput:
			styled[i] = stylePlayerInput.Render(loot.StripColorCodes(wordWrap(rl.text, width)))
		default:
			styled[i] = colorize(wordWrap(rl.text, width), kindStyles[rl.kind])
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// visibleLen is the cell width of word once color codes are removed.
func visibleLen(word string) int {
	return runewidth.StringWidth(loot.StripColorCodes(word))
}

// wordWrap breaks text at spaces so no line is wider than width cells.
// Color codes do not count toward the width; a single long word stays on
// its own line.
func wordWrap(text string, width int) string {
	if width <= 0 || visibleLen(text) <= width {
		return text
	}

	var lines []string
	var cur []string
	curLen := 0
	for _, word := range strings.Fields(text) {
		w := visibleLen(word)
		if len(cur) > 0 && curLen+1+w > width {
			lines = append(lines, strings.Join(cur, " "))
			cur, curLen = nil, 0
		}
		if len(cur) > 0 {
			curLen++
		}
		cur = append(cur, word)
		curLen += w
	}
	lines = append(lines, strings.Join(cur, " "))
	return strings.Join(lines, "\n")
}

// View stacks the output log, the status bar and the input line.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return strings.Join([]string{m.viewport.View(), m.renderStatusBar(), m.input.View()}, "\n")
}

// viewportKeyMap binds only paging; arrow keys drive the input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}
