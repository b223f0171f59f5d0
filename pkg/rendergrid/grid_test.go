package rendergrid

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSpanBasic(t *testing.T) {
	g := New(20)
	g.WriteSpan("$ ", Tag{Kind: TagPs1Prompt, Index: -1}, lipgloss.NewStyle())
	g.WriteSpan("echo hi", CommandTag(0), lipgloss.NewStyle())
	assert.Equal(t, "$ echo hi", g.RowText(0))
}

func TestWriteSpanCommandTagAdvancesByByteLength(t *testing.T) {
	g := New(20)
	tag := CommandTag(0)
	g.WriteSpan("café", tag, lipgloss.NewStyle())
	// café has 5 bytes (é is 2 bytes): each cell's command tag carries the
	// byte offset of its character, and the text round-trips exactly.
	assert.Equal(t, "café", g.RowText(0))
	assert.Equal(t, 3, g.rows[0][3].Tag.Index)
}

func TestWriteLineAndNewline(t *testing.T) {
	g := New(10)
	g.WriteLine("first", true, BlankTag, lipgloss.NewStyle())
	g.WriteLine("second", false, BlankTag, lipgloss.NewStyle())
	require.GreaterOrEqual(t, g.Height(), 2)
	assert.Equal(t, "first", g.RowText(0))
	assert.Equal(t, "second", g.RowText(1))
}

func TestWriteLineLRJustified(t *testing.T) {
	g := New(20)
	g.WriteLineLRJustified("left", " ", "right", BlankTag, lipgloss.NewStyle(), false)
	row := g.RowText(0)
	assert.Equal(t, 20, len([]rune(row)))
	assert.Contains(t, row, "left")
	assert.Contains(t, row, "right")
}

func TestGetRowRangeToShowFitsEntirely(t *testing.T) {
	g := New(10)
	for i := 0; i < 3; i++ {
		g.WriteLine("x", true, BlankTag, lipgloss.NewStyle())
	}
	top, bottom := g.GetRowRangeToShow(10)
	assert.Equal(t, 0, top)
	assert.Equal(t, g.Height(), bottom)
}

func TestGetRowRangeToShowTrailingWindow(t *testing.T) {
	g := New(10)
	for i := 0; i < 20; i++ {
		g.WriteLine("x", true, BlankTag, lipgloss.NewStyle())
	}
	top, bottom := g.GetRowRangeToShow(5)
	assert.Equal(t, bottom-top, 5)
	assert.Equal(t, g.Height(), bottom)
}

func TestGetRowRangeToShowAnchoredOnEditCursor(t *testing.T) {
	g := New(10)
	for i := 0; i < 20; i++ {
		g.WriteLine("x", true, BlankTag, lipgloss.NewStyle())
	}
	g.SetEditCursor(&Coord{Row: 5, Col: 0})
	top, bottom := g.GetRowRangeToShow(5)
	assert.Equal(t, 6, bottom)
	assert.Equal(t, 1, top)
}

func TestGetTaggedCellDirectHit(t *testing.T) {
	g := New(20)
	g.WriteSpan("echo hi", CommandTag(0), lipgloss.NewStyle())
	tag, direct := g.GetTaggedCell(2, 0, 0)
	assert.True(t, direct)
	assert.Equal(t, TagCommand, tag.Kind)
}

func TestGetTaggedCellJustPastCommandStillTargetsIt(t *testing.T) {
	g := New(20)
	g.WriteSpan("echo", CommandTag(0), lipgloss.NewStyle())
	// column 4 is just past the last character ("echo" occupies cols 0-3)
	tag, direct := g.GetTaggedCell(4, 0, 0)
	assert.False(t, direct)
	assert.Equal(t, TagCommand, tag.Kind)
}

func TestGetTaggedCellNoCommandOnRow(t *testing.T) {
	g := New(20)
	tag, direct := g.GetTaggedCell(4, 0, 0)
	assert.False(t, direct)
	assert.Equal(t, TagBlank, tag.Kind)
}

func TestWriteSpanWrapsWideGraphemesWithoutSplittingACluster(t *testing.T) {
	g := New(10)
	g.WriteSpan("日本語テスト", CommandTag(0), lipgloss.NewStyle())

	require.Greater(t, g.Height(), 1)

	for row := 0; row < g.Height(); row++ {
		col := 0
		for _, cell := range g.rows[row] {
			if cell.Grapheme == "" {
				continue
			}
			require.LessOrEqual(t, col+cell.Width, g.width,
				"grapheme %q at row %d col %d overruns width %d", cell.Grapheme, row, col, g.width)
			col += cell.Width
		}
	}

	var rendered strings.Builder
	for row := 0; row < g.Height(); row++ {
		rendered.WriteString(g.RowText(row))
	}
	assert.Equal(t, "日本語テスト", rendered.String())
}
