// Package suggestions implements the active-suggestions engine: the set of
// completion candidates currently offered for a word, arranged into a
// column-major grid for display, with cursor navigation and an optional
// fuzzy filter layered on top as the user keeps typing.
package suggestions

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// defaultMaxColumns bounds how wide the suggestion grid is allowed to
	// grow before wrapping into additional columns is preferred over a
	// single very wide one.
	defaultMaxColumns = 6
)

// Suggestion is one candidate being offered, along with the text that
// should actually be inserted if it is accepted.
type Suggestion struct {
	// Display is the text shown to the user.
	Display string
	// Insert is the text inserted into the buffer on accept, which may
	// differ from Display (for example when Display carries a
	// description suffix).
	Insert string
	// Description is optional helper text shown alongside the
	// suggestion.
	Description string
}

func (s Suggestion) formatted() string {
	if s.Description == "" {
		return s.Display
	}
	return s.Display + "  " + s.Description
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithMaxColumns overrides the maximum number of grid columns.
func WithMaxColumns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxColumns = n
		}
	}
}

// Engine holds the active suggestion set for a single word being completed:
// the full candidate list, the subset surviving the current fuzzy filter,
// and which one is selected.
type Engine struct {
	all        []Suggestion
	filtered   []Suggestion
	query      string
	selected   int
	maxColumns int
}

// New builds an Engine over candidates for the word currently being typed.
func New(candidates []Suggestion, word string, opts ...Option) *Engine {
	e := &Engine{
		all:        candidates,
		maxColumns: defaultMaxColumns,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.applyFuzzyFilter(word)
	return e
}

// Len returns the number of suggestions surviving the current filter.
func (e *Engine) Len() int {
	return len(e.filtered)
}

// Selected returns the index of the currently selected suggestion, or -1
// if there are no suggestions.
func (e *Engine) Selected() int {
	if len(e.filtered) == 0 {
		return -1
	}
	return e.selected
}

// Current returns the currently selected suggestion, or nil if there are
// none.
func (e *Engine) Current() *Suggestion {
	if len(e.filtered) == 0 {
		return nil
	}
	return &e.filtered[e.selected]
}

// Next advances the selection forward by one, wrapping around.
func (e *Engine) Next() {
	e.move(1)
}

// Prev moves the selection backward by one, wrapping around.
func (e *Engine) Prev() {
	e.move(-1)
}

func (e *Engine) move(delta int) {
	n := len(e.filtered)
	if n == 0 {
		return
	}
	e.selected = ((e.selected+delta)%n + n) % n
}

// MoveUp, MoveDown, MoveLeft, MoveRight navigate the selection through the
// column-major grid as if it were laid out visually, wrapping within the
// grid's bounds rather than flattening to a linear list. They are no-ops
// when there are no suggestions.
func (e *Engine) MoveUp()    { e.moveGrid(0, -1) }
func (e *Engine) MoveDown()  { e.moveGrid(0, 1) }
func (e *Engine) MoveLeft()  { e.moveGrid(-1, 0) }
func (e *Engine) MoveRight() { e.moveGrid(1, 0) }

func (e *Engine) moveGrid(dCol, dRow int) {
	grid := e.Grid()
	if len(grid) == 0 {
		return
	}
	col, row := e.selectedGridPos(grid)
	col = ((col+dCol)%len(grid) + len(grid)) % len(grid)
	column := grid[col]
	if len(column) == 0 {
		return
	}
	row = ((row+dRow)%len(column) + len(column)) % len(column)
	e.selected = column[row]
}

func (e *Engine) selectedGridPos(grid [][]int) (col, row int) {
	for c, column := range grid {
		for r, idx := range column {
			if idx == e.selected {
				return c, r
			}
		}
	}
	return 0, 0
}

// Grid lays the filtered suggestions out column-major: suggestions fill
// down each column before starting the next, which is the order a terminal
// completion menu reads naturally top-to-bottom, left-to-right. It returns
// a slice of columns, each holding the indices (into the filtered list) of
// the suggestions placed in that column.
func (e *Engine) Grid() [][]int {
	n := len(e.filtered)
	if n == 0 {
		return nil
	}
	cols := e.maxColumns
	rows := (n + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}
	cols = (n + rows - 1) / rows
	if cols < 1 {
		cols = 1
	}

	grid := make([][]int, cols)
	idx := 0
	for c := 0; c < cols && idx < n; c++ {
		for r := 0; r < rows && idx < n; r++ {
			grid[c] = append(grid[c], idx)
			idx++
		}
	}
	return grid
}

// Formatted returns the display string for the suggestion at index i in
// the filtered list.
func (e *Engine) Formatted(i int) string {
	if i < 0 || i >= len(e.filtered) {
		return ""
	}
	return e.filtered[i].formatted()
}

// At returns the filtered suggestion at index i.
func (e *Engine) At(i int) Suggestion {
	return e.filtered[i]
}

// Query updates the fuzzy filter query and re-ranks the candidate set,
// resetting the selection to the best match.
func (e *Engine) Query(q string) {
	e.applyFuzzyFilter(q)
}

// applyFuzzyFilter re-ranks e.all against query, using an exact prefix
// match fast path (every candidate with query as a literal prefix sorts
// first, in original order) and falling back to fuzzy subsequence scoring
// for the rest so a query like "gco" still surfaces "git checkout".
func (e *Engine) applyFuzzyFilter(query string) {
	e.query = query
	e.selected = 0

	if query == "" {
		e.filtered = append([]Suggestion(nil), e.all...)
		return
	}

	var prefixMatches, rest []Suggestion
	var restSource []Suggestion
	for _, s := range e.all {
		if strings.HasPrefix(strings.ToLower(s.Insert), strings.ToLower(query)) {
			prefixMatches = append(prefixMatches, s)
		} else {
			restSource = append(restSource, s)
		}
	}

	if len(restSource) > 0 {
		names := make([]string, len(restSource))
		for i, s := range restSource {
			names[i] = s.Insert
		}
		matches := fuzzy.Find(query, names)
		rest = make([]Suggestion, len(matches))
		for i, m := range matches {
			rest[i] = restSource[m.Index]
		}
	}

	e.filtered = append(prefixMatches, rest...)
}

// TryAccept returns the insertion text for the currently selected
// suggestion and true, or "" and false if nothing is selected.
func (e *Engine) TryAccept() (string, bool) {
	cur := e.Current()
	if cur == nil {
		return "", false
	}
	return cur.Insert, true
}
