package shellinput

import (
	"strings"

	"github.com/kestrel-sh/bish/internal/suggestions"
)

// CompletionCandidate is one completion offered for the word under the
// cursor. Value is the text inserted; Display overrides how the candidate
// is shown in the suggestion box when it differs from Value (for example a
// shortened path); Description is shown alongside the candidate in the
// suggestion box; Suffix is appended after Value when it is accepted (a
// trailing "/" for directories, a trailing space for a final argument).
type CompletionCandidate struct {
	Value       string
	Display     string
	Description string
	Suffix      string
}

// CompletionProvider supplies completion candidates for a command line.
// command is the first word of the line, args is every word between the
// command and the word under the cursor, line and pos are the full buffer
// and the cursor's rune offset into it. The bool result reports whether the
// provider recognized command at all, so callers can fall back to another
// provider when it returns false.
type CompletionProvider interface {
	GetCompletions(command string, args []string, line string, pos int) ([]CompletionCandidate, bool)
}

// completionState holds the active tab-completion session: the candidates
// offered for the word under the cursor and which one is currently
// highlighted.
type completionState struct {
	active      bool
	selected    int
	suggestions []CompletionCandidate
	wordStart   int
	wordEnd     int
	helpInfo    string

	// engine drives selection through the candidate set, including
	// column-major grid navigation (Up/Down/Left/Right) on top of the
	// linear Tab/Shift+Tab cycling shellinput itself handles.
	engine *suggestions.Engine
}

// syncSelected pulls the engine's current selection back into c.selected so
// rendering code, which only knows about the flat suggestions slice, stays
// in step with navigation done through the engine.
func (c *completionState) syncSelected() {
	if c.engine != nil {
		c.selected = c.engine.Selected()
	}
}

// currentSuggestion returns the Value of the currently selected candidate,
// or "" if none is selected.
func (c *completionState) currentSuggestion() string {
	if !c.active || c.selected < 0 || c.selected >= len(c.suggestions) {
		return ""
	}
	return c.suggestions[c.selected].Value
}

// currentCandidate returns the currently selected candidate in full, or nil
// if none is selected.
func (c *completionState) currentCandidate() *CompletionCandidate {
	if !c.active || c.selected < 0 || c.selected >= len(c.suggestions) {
		return nil
	}
	return &c.suggestions[c.selected]
}

// shouldShowInfoBox reports whether the multi-candidate suggestion box
// should be drawn: there must be an active session with more than one
// candidate, since a single candidate is shown inline instead.
func (c *completionState) shouldShowInfoBox() bool {
	return c.active && len(c.suggestions) > 1
}

// shouldShowHelpBox reports whether a help string should be drawn alongside
// the suggestion box.
func (c *completionState) shouldShowHelpBox() bool {
	return c.active && c.helpInfo != ""
}

// currentWord finds the word under the cursor: the maximal run of
// non-whitespace runes at or immediately before m.pos, and everything
// before it on the line split into command + args.
func (m *Model) currentWord() (command string, args []string, wordStart, wordEnd int) {
	runes := m.values[m.selectedValueIndex]
	pos := m.pos
	if pos > len(runes) {
		pos = len(runes)
	}

	start := pos
	for start > 0 && !isBlankRune(runes[start-1]) {
		start--
	}
	end := pos
	for end < len(runes) && !isBlankRune(runes[end]) {
		end++
	}

	before := strings.Fields(string(runes[:start]))
	if len(before) == 0 {
		return "", nil, start, end
	}
	return before[0], before[1:], start, end
}

func isBlankRune(r rune) bool {
	switch r {
	case ' ', '\t':
		return true
	}
	return false
}

// handleCompletion starts or advances a tab-completion session: if none is
// active, it asks CompletionProvider for candidates for the word under the
// cursor and opens a session; if one is already active, Tab cycles forward
// through the candidates.
func (m *Model) handleCompletion() {
	if m.completion.active {
		m.advanceCompletion(1)
		return
	}
	if m.CompletionProvider == nil {
		return
	}

	command, args, start, end := m.currentWord()
	line := m.Value()
	candidates, ok := m.CompletionProvider.GetCompletions(command, args, line, m.pos)
	if !ok || len(candidates) == 0 {
		return
	}

	engine := suggestions.New(toSuggestions(candidates), "")

	m.completion = completionState{
		active:      true,
		selected:    0,
		suggestions: candidates,
		wordStart:   start,
		wordEnd:     end,
		engine:      engine,
	}

	if len(candidates) == 1 {
		m.applySuggestion(candidates[0].Value)
		m.resetCompletion()
	}
}

// toSuggestions adapts completion candidates to the active-suggestions
// engine's own type, preserving the Value/Display/Description distinctions
// CompletionCandidate already makes.
func toSuggestions(candidates []CompletionCandidate) []suggestions.Suggestion {
	out := make([]suggestions.Suggestion, len(candidates))
	for i, c := range candidates {
		display := c.Display
		if display == "" {
			display = c.Value
		}
		out[i] = suggestions.Suggestion{Display: display, Insert: c.Value, Description: c.Description}
	}
	return out
}

// handleBackwardCompletion cycles backward through an active completion
// session's candidates.
func (m *Model) handleBackwardCompletion() {
	m.advanceCompletion(-1)
}

func (m *Model) advanceCompletion(delta int) {
	if !m.completion.active || m.completion.engine == nil || m.completion.engine.Len() == 0 {
		return
	}
	if delta > 0 {
		m.completion.engine.Next()
	} else {
		m.completion.engine.Prev()
	}
	m.completion.syncSelected()
}

// navigateCompletionGrid moves the selection through the candidate grid
// visually (as arranged by CompletionBoxView) rather than linearly, the way
// zsh's menu-complete widget does when the arrow keys are pressed instead
// of Tab.
func (m *Model) navigateCompletionGrid(dCol, dRow int) {
	if !m.completion.active || m.completion.engine == nil {
		return
	}
	switch {
	case dRow < 0:
		m.completion.engine.MoveUp()
	case dRow > 0:
		m.completion.engine.MoveDown()
	case dCol < 0:
		m.completion.engine.MoveLeft()
	case dCol > 0:
		m.completion.engine.MoveRight()
	}
	m.completion.syncSelected()
}

// applySuggestion replaces the word under the cursor (as recorded when the
// completion session started) with value, appending the selected
// candidate's Suffix when the replaced word is still the word at that
// position.
func (m *Model) applySuggestion(value string) {
	runes := m.values[m.selectedValueIndex]
	start, end := m.completion.wordStart, m.completion.wordEnd
	if start < 0 || end > len(runes) || start > end {
		return
	}

	suffix := ""
	if c := m.completion.currentCandidate(); c != nil {
		suffix = c.Suffix
	}

	replacement := []rune(value + suffix)
	next := make([]rune, 0, len(runes)-(end-start)+len(replacement))
	next = append(next, runes[:start]...)
	next = append(next, replacement...)
	next = append(next, runes[end:]...)

	m.values[m.selectedValueIndex] = next
	m.SetCursor(start + len(replacement))
}

// cancelCompletion closes the active completion session without changing
// the buffer.
func (m *Model) cancelCompletion() {
	m.completion = completionState{}
}

// resetCompletion closes the active completion session. It is distinct from
// cancelCompletion only in name, mirroring the two call sites that clear
// completion state for different reasons (explicit cancel vs. falling
// through to normal editing).
func (m *Model) resetCompletion() {
	m.completion = completionState{}
}
