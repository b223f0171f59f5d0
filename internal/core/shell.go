package core

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"

	"github.com/kestrel-sh/bish/internal/acceptance"
	"github.com/kestrel-sh/bish/internal/bash"
	"github.com/kestrel-sh/bish/internal/history"
	"github.com/kestrel-sh/bish/pkg/shellinput"
)

// StderrCapturer wraps an io.Writer and remembers the last chunk written to
// it, so the interactive shell can tell whether the most recent command
// produced error output.
type StderrCapturer struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

// NewStderrCapturer wraps out, tee-ing every write to it while also
// recording the write for Last.
func NewStderrCapturer(out io.Writer) *StderrCapturer {
	return &StderrCapturer{out: out}
}

func (c *StderrCapturer) Write(p []byte) (int, error) {
	c.mu.Lock()
	c.last = string(p)
	c.mu.Unlock()
	return c.out.Write(p)
}

// Last returns the most recent write, and clears it.
func (c *StderrCapturer) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	last := c.last
	c.last = ""
	return last
}

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	exitCodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// replModel is the top-level editor loop: it owns the line editor, decides
// whether Enter submits the buffer or inserts a newline, and drives the
// runner and history engine around each submission. It is the thin glue
// tying the line-editing primitives together; none of the decisions it
// makes are specified beyond "submit when the buffer is a complete
// command".
type replModel struct {
	ctx context.Context

	input   shellinput.Model
	runner  *interp.Runner
	history *history.Engine
	logger  *zap.Logger
	stderr  *StderrCapturer

	lastExitCode int
	quitting     bool
}

func newReplModel(ctx context.Context, runner *interp.Runner, hist *history.Engine, completionProvider shellinput.CompletionProvider, logger *zap.Logger, stderr *StderrCapturer) replModel {
	ti := shellinput.New()
	ti.Prompt = "bish> "
	ti.PromptStyle = promptStyle
	ti.ShowSuggestions = true
	ti.CompletionProvider = completionProvider
	ti.HistoryProvider = history.NewShellAdapter(hist)
	ti.SetHistoryValues(commandsOf(hist.All()))
	ti.SetSuggestions(commandsMostRecentFirst(hist.All()))
	ti.Focus()

	return replModel{
		ctx:     ctx,
		input:   ti,
		runner:  runner,
		history: hist,
		logger:  logger,
		stderr:  stderr,
	}
}

func commandsOf(entries []history.Entry) []string {
	cmds := make([]string, len(entries))
	for i, e := range entries {
		cmds[i] = e.Command
	}
	return cmds
}

// commandsMostRecentFirst feeds the line editor's prefix-matched ghost-text
// suggestions (see pkg/shellinput/suggestions.go) with history ordered
// newest first, so the default match (index 0) is the most recent command
// starting with whatever has been typed — the inline "ghost-text" recall
// behavior.
func commandsMostRecentFirst(entries []history.Entry) []string {
	cmds := make([]string, len(entries))
	for i, e := range entries {
		cmds[len(entries)-1-i] = e.Command
	}
	return cmds
}

func (m replModel) Init() tea.Cmd {
	return shellinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.input.Reset()
			return m, nil
		case "ctrl+d":
			if m.input.Value() == "" {
				m.quitting = true
				return m, tea.Quit
			}
		case "enter":
			if !m.input.InReverseSearch() && !m.input.SuggestionsSuppressedUntilInput() {
				if handled, cmd := m.handleEnter(); handled {
					return m, cmd
				}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter decides whether Enter should submit the buffer for execution
// or fall through to the input's own newline handling. It returns handled
// == true when it has fully dealt with the key itself.
func (m *replModel) handleEnter() (handled bool, cmd tea.Cmd) {
	value := m.input.Value()
	if value == "" {
		return true, nil
	}

	if acceptance.WillAccept(m.ctx, value) {
		m.runCommand(value)
		return true, nil
	}

	// Buffer is incomplete (open quote, control structure, trailing
	// continuation...): insert a newline instead of submitting.
	pos := m.input.Position()
	runes := []rune(value)
	newValue := string(runes[:pos]) + "\n" + string(runes[pos:])
	m.input.SetValue(newValue)
	m.input.SetCursor(pos + 1)
	return true, nil
}

func (m *replModel) runCommand(command string) {
	m.history.Record(command, m.runner.Dir)

	err := bash.RunCommand(m.ctx, m.runner, command)

	exitCode := 0
	if code, ok := interp.IsExitStatus(err); ok {
		exitCode = int(code)
	} else if err != nil {
		exitCode = 1
		if m.logger != nil {
			m.logger.Error("command failed", zap.String("command", command), zap.Error(err))
		}
		fmt.Fprintln(m.stderr, err.Error())
	}

	m.history.Finish(command, exitCode)
	m.lastExitCode = exitCode

	m.input.Reset()
	m.input.SetHistoryValues(commandsOf(m.history.All()))
	m.input.SetSuggestions(commandsMostRecentFirst(m.history.All()))
}

func (m replModel) View() string {
	view := m.input.View()
	if m.lastExitCode != 0 {
		return view + "\n" + exitCodeStyle.Render(fmt.Sprintf("[exit %d]", m.lastExitCode))
	}
	return view
}

// RunInteractiveShell drives the line-edited REPL until the user exits,
// running each accepted command through runner and recording it in hist.
func RunInteractiveShell(ctx context.Context, runner *interp.Runner, hist *history.Engine, completionProvider shellinput.CompletionProvider, logger *zap.Logger, stderr *StderrCapturer) error {
	model := newReplModel(ctx, runner, hist, completionProvider, logger, stderr)
	program := tea.NewProgram(model)
	_, err := program.Run()
	return err
}
