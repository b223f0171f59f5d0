// Package rendergrid builds the tagged cell grid that the editor renders to
// the terminal: a rectangular buffer of styled cells, each carrying a tag
// that identifies which logical region of the prompt it belongs to, plus the
// bookkeeping needed to scroll a window of it into a fixed terminal height
// and hit-test a terminal coordinate back to a tag.
package rendergrid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TagKind identifies which logical region of the prompt a cell belongs to.
type TagKind int

const (
	TagBlank TagKind = iota
	TagPs1Prompt
	TagPs2Prompt
	TagCommand
	TagTabSuggestion
	TagSuggestion
	TagHistorySuggestion
	TagFuzzySearch
	TagHistoryResult
	TagTooltip
)

// Tag carries a TagKind plus an index used by the kinds that are indexed:
// TagCommand carries the byte offset of the cell's grapheme within the
// command text, TagSuggestion and TagHistoryResult carry the index of the
// suggestion or history row they belong to.
type Tag struct {
	Kind  TagKind
	Index int
}

// BlankTag is the tag written into cells that have never been painted.
var BlankTag = Tag{Kind: TagBlank, Index: -1}

// CommandTag returns a tag for the command region at byte offset.
func CommandTag(byteOffset int) Tag {
	return Tag{Kind: TagCommand, Index: byteOffset}
}

// Cell is one column of one row in the grid: the grapheme cluster occupying
// it (empty for a trailing cell of a wide grapheme or an unpainted cell),
// its display width, its style, and its tag.
type Cell struct {
	Grapheme string
	Width    int
	Style    lipgloss.Style
	Tag      Tag
}

func blankCell() Cell {
	return Cell{Grapheme: " ", Width: 1, Tag: BlankTag}
}

// Coord is a zero-based row/column position in the grid.
type Coord struct {
	Row, Col int
}

// AbsDiff returns the element-wise absolute difference between c and other.
func (c Coord) AbsDiff(other Coord) Coord {
	return Coord{Row: absInt(c.Row - other.Row), Col: absInt(c.Col - other.Col)}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Grid is the tagged cell buffer. The zero value is not usable; construct
// with New.
type Grid struct {
	rows          [][]Cell
	width         int
	cursor        Coord
	editCursor    *Coord
	style         lipgloss.Style
	editCurStyle  lipgloss.Style
}

// New returns an empty Grid with the given fixed column width.
func New(width int) *Grid {
	if width < 1 {
		width = 1
	}
	g := &Grid{width: width}
	g.increaseBufSingleRow()
	return g
}

// Width returns the grid's fixed column width.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows currently in the grid.
func (g *Grid) Height() int {
	return len(g.rows)
}

// CursorPos returns the current write cursor position.
func (g *Grid) CursorPos() Coord {
	return g.cursor
}

// SetEditCursor records the position of the logical edit cursor (the point
// in the command text the user is editing), independent of the write
// cursor used while building the grid. Pass nil to clear it.
func (g *Grid) SetEditCursor(c *Coord) {
	g.editCursor = c
}

// EditCursor returns the recorded edit cursor, or nil if none is set.
func (g *Grid) EditCursor() *Coord {
	return g.editCursor
}

func (g *Grid) increaseBufSingleRow() {
	row := make([]Cell, g.width)
	for i := range row {
		row[i] = blankCell()
	}
	g.rows = append(g.rows, row)
}

func (g *Grid) ensureRow(row int) {
	for row >= len(g.rows) {
		g.increaseBufSingleRow()
	}
}

func (g *Grid) setCell(pos Coord, c Cell) {
	g.ensureRow(pos.Row)
	if pos.Col < 0 || pos.Col >= g.width {
		return
	}
	g.rows[pos.Row][pos.Col] = c
}

func (g *Grid) cellAt(pos Coord) Cell {
	if pos.Row < 0 || pos.Row >= len(g.rows) || pos.Col < 0 || pos.Col >= g.width {
		return blankCell()
	}
	return g.rows[pos.Row][pos.Col]
}

// advance moves pos forward by one column, wrapping to the next row's
// column 0 when the row is exhausted.
func (g *Grid) advance(pos Coord) Coord {
	pos.Col++
	if pos.Col >= g.width {
		pos.Col = 0
		pos.Row++
	}
	return pos
}

// moveToNextInsertionPoint finds the next position at or after the write
// cursor where graphW contiguous blank cells are available within a single
// row, growing the grid as needed. When overwrite is true the cursor itself
// is returned unchanged: overwriting never needs to hunt for space.
func (g *Grid) moveToNextInsertionPoint(graphW int, overwrite bool) Coord {
	if overwrite {
		return g.cursor
	}
	pos := g.cursor
	for {
		g.ensureRow(pos.Row)
		if pos.Col+graphW <= g.width {
			allBlank := true
			for i := 0; i < graphW; i++ {
				if g.rows[pos.Row][pos.Col+i].Tag != BlankTag {
					allBlank = false
					break
				}
			}
			if allBlank {
				return pos
			}
		}
		if pos.Col+1 >= g.width {
			pos = Coord{Row: pos.Row + 1, Col: 0}
		} else {
			pos.Col++
		}
	}
}

// WriteSpan writes a styled string at the write cursor, advancing it past
// the written text. Each grapheme cluster occupies its display width in
// cells: the first cell carries the grapheme and the tag, and any remaining
// cells of a wide grapheme carry a blank grapheme with the same tag so that
// hit-testing and re-rendering treat the whole cluster as one unit. Tags of
// kind TagCommand have their Index advanced by the UTF-8 byte length of
// each grapheme written, tracking the byte offset into the command text.
func (g *Grid) WriteSpan(span string, tag Tag, style lipgloss.Style) {
	g.writeSpanInternal(span, tag, style, false)
}

// WriteSpanOverwrite is WriteSpan but writes directly at the cursor without
// hunting for a contiguous blank run, overwriting whatever is already
// there.
func (g *Grid) WriteSpanOverwrite(span string, tag Tag, style lipgloss.Style) {
	g.writeSpanInternal(span, tag, style, true)
}

func (g *Grid) writeSpanInternal(span string, tag Tag, style lipgloss.Style, overwrite bool) {
	gr := uniseg.NewGraphemes(span)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w < 1 {
			w = 1
		}
		pos := g.moveToNextInsertionPoint(w, overwrite)
		g.cursor = pos
		g.setCell(pos, Cell{Grapheme: cluster, Width: w, Style: style, Tag: tag})
		trailing := pos
		for i := 1; i < w; i++ {
			trailing = g.advance(trailing)
			g.setCell(trailing, Cell{Grapheme: "", Width: 0, Style: style, Tag: tag})
		}
		g.cursor = g.advance(trailing)
		if tag.Kind == TagCommand {
			tag.Index += len(cluster)
		}
	}
}

// WriteLine writes line at the write cursor with tag and style, then moves
// to the start of the next row when insertNewLine is true.
func (g *Grid) WriteLine(line string, insertNewLine bool, tag Tag, style lipgloss.Style) {
	g.WriteSpan(line, tag, style)
	if insertNewLine {
		g.Newline()
	}
}

// WriteLineLRJustified writes lLine at the write cursor, fills
// the remaining space with repetitions of fillSpan, and writes rLine flush
// against the right edge. When fillSpan is a single unstyled space, the
// fill is done by jumping the cursor directly to width-runewidth(rLine)
// instead of writing individual fill cells. If leaveCursorAfterLLine is
// true the write cursor is restored to just past lLine once rLine has been
// written; otherwise it is left past rLine.
func (g *Grid) WriteLineLRJustified(lLine string, fillSpan string, rLine string, tag Tag, style lipgloss.Style, leaveCursorAfterLLine bool) {
	startRow := g.cursor.Row
	g.WriteSpanOverwrite(lLine, tag, style)
	afterL := g.cursor

	rWidth := runewidth.StringWidth(rLine)
	target := g.width - rWidth
	if target < afterL.Col {
		target = afterL.Col
	}

	if fillSpan == " " {
		g.cursor = Coord{Row: startRow, Col: target}
	} else if fillSpan != "" {
		fillWidth := runewidth.StringWidth(fillSpan)
		for g.cursor.Row == startRow && g.cursor.Col < target {
			remaining := target - g.cursor.Col
			if fillWidth > remaining {
				break
			}
			g.WriteSpanOverwrite(fillSpan, tag, style)
		}
		if g.cursor.Row == startRow && g.cursor.Col < target {
			g.cursor = Coord{Row: startRow, Col: target}
		}
	}

	g.WriteSpanOverwrite(rLine, tag, style)

	if leaveCursorAfterLLine {
		g.cursor = afterL
	}
}

// FillLine writes blank cells tagged with tag across the remainder of the
// current row.
func (g *Grid) FillLine(tag Tag) {
	row := g.cursor.Row
	g.ensureRow(row)
	for g.cursor.Row == row && g.cursor.Col < g.width {
		g.setCell(g.cursor, Cell{Grapheme: " ", Width: 1, Tag: tag})
		g.cursor = g.advance(g.cursor)
	}
}

// Newline moves the write cursor to column 0 of the next row, growing the
// grid if necessary.
func (g *Grid) Newline() {
	g.cursor = Coord{Row: g.cursor.Row + 1, Col: 0}
	g.ensureRow(g.cursor.Row)
}

// SetStyle repaints the style of every cell in the rectangular region from
// top-left to bottomRight, inclusive, growing the grid as needed. Tags and
// graphemes of the affected cells are left unchanged.
func (g *Grid) SetStyle(topLeft, bottomRight Coord, style lipgloss.Style) {
	g.ensureRow(bottomRight.Row)
	for r := topLeft.Row; r <= bottomRight.Row; r++ {
		for c := topLeft.Col; c <= bottomRight.Col && c < g.width; c++ {
			cell := g.rows[r][c]
			cell.Style = style
			g.rows[r][c] = cell
		}
	}
}

// SetEditCursorStyle repaints the single cell at the edit cursor, if one is
// set, with style.
func (g *Grid) SetEditCursorStyle(style lipgloss.Style) {
	if g.editCursor == nil {
		return
	}
	g.SetStyle(*g.editCursor, *g.editCursor, style)
}

// GetRowRangeToShow returns the half-open [top, bottom) row range that
// should be rendered into a viewport of the given height. If the grid fits
// entirely within height, the whole grid is shown. Otherwise the window is
// anchored on the edit cursor when one is set (so the line being edited is
// always visible), or trails the bottom of the grid otherwise.
func (g *Grid) GetRowRangeToShow(height int) (top, bottom int) {
	total := len(g.rows)
	if total <= height {
		return 0, total
	}
	if g.editCursor != nil {
		bottom = g.editCursor.Row + 1
		if bottom > total {
			bottom = total
		}
	} else {
		bottom = total
	}
	top = bottom - height
	if top < 0 {
		top = 0
		bottom = height
	}
	return top, bottom
}

// GetTaggedCell hit-tests a terminal coordinate against the grid. termEmX
// and termEmY are the terminal column/row the pointer landed on; termEmOffset
// shifts termEmY to account for a scrolled viewport (the row index of the
// first rendered row within the full grid). It returns the tag found and
// whether the hit was direct: true if the exact cell under the pointer
// carries one of the indexed tags (Command, Suggestion, HistoryResult),
// false if the tag was found by scanning left from the pointer to the
// nearest preceding TagCommand cell on the same row, which lets a click
// just past the last character of a command still target that command.
func (g *Grid) GetTaggedCell(termEmX, termEmY, termEmOffset int) (Tag, bool) {
	row := termEmY + termEmOffset
	if row < 0 || row >= len(g.rows) {
		return BlankTag, false
	}
	if termEmX >= 0 && termEmX < g.width {
		cell := g.rows[row][termEmX]
		switch cell.Tag.Kind {
		case TagCommand, TagSuggestion, TagHistoryResult:
			return cell.Tag, true
		}
	}
	for x := termEmX; x >= 0 && x < g.width; x-- {
		cell := g.rows[row][x]
		if cell.Tag.Kind == TagCommand {
			return cell.Tag, false
		}
	}
	return BlankTag, false
}

// Render renders the full grid as a newline-joined string of styled rows,
// using each cell's own style. Trailing cells of wide graphemes (empty
// Grapheme) contribute no text.
func (g *Grid) Render() string {
	var b strings.Builder
	for r, row := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			if cell.Grapheme == "" {
				continue
			}
			b.WriteString(cell.Style.Render(cell.Grapheme))
		}
	}
	return b.String()
}

// RowText returns the plain (unstyled) text of row, for tests and
// diagnostics.
func (g *Grid) RowText(row int) string {
	if row < 0 || row >= len(g.rows) {
		return ""
	}
	var b strings.Builder
	for _, cell := range g.rows[row] {
		if cell.Grapheme == "" {
			continue
		}
		b.WriteString(cell.Grapheme)
	}
	return b.String()
}
