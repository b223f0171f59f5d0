// Package textbuffer holds the authoritative edit state of a single command
// line: a UTF-8 string plus a byte cursor that is always kept on a grapheme
// cluster boundary.
package textbuffer

import (
	"github.com/rivo/uniseg"
)

// Buffer is the authoritative edit state for one line of input. The zero
// value is an empty buffer with the cursor at offset 0.
type Buffer struct {
	buf    string
	cursor int // byte offset, always on a grapheme boundary
}

// New returns a Buffer seeded with starting and the cursor placed at its end.
func New(starting string) *Buffer {
	return &Buffer{buf: starting, cursor: len(starting)}
}

// String returns the full buffer contents.
func (b *Buffer) String() string {
	return b.buf
}

// Len returns the byte length of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cursor returns the current byte offset of the cursor.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to byte, clamping to [0, len] and snapping
// backwards to the nearest grapheme boundary at or before byte.
func (b *Buffer) SetCursor(byte int) {
	if byte < 0 {
		byte = 0
	}
	if byte > len(b.buf) {
		byte = len(b.buf)
	}
	b.cursor = snapToGraphemeBoundary(b.buf, byte)
}

// InsertRune inserts a single rune at the cursor and advances the cursor
// past it.
func (b *Buffer) InsertRune(r rune) {
	b.InsertString(string(r))
}

// InsertString inserts s at the cursor and advances the cursor past it.
// The cursor remains on a grapheme boundary only if s does not split a
// grapheme cluster that straddles the insertion point (true for any well
// formed string appended at an existing boundary, since insertion happens
// strictly between two clusters).
func (b *Buffer) InsertString(s string) {
	b.buf = b.buf[:b.cursor] + s + b.buf[b.cursor:]
	b.cursor += len(s)
}

// MoveLeft moves the cursor back one grapheme cluster. It is a no-op at the
// start of the buffer.
func (b *Buffer) MoveLeft() {
	b.cursor = prevGraphemeBoundary(b.buf, b.cursor)
}

// MoveRight moves the cursor forward one grapheme cluster. It is a no-op at
// the end of the buffer.
func (b *Buffer) MoveRight() {
	b.cursor = nextGraphemeBoundary(b.buf, b.cursor)
}

// MoveToStart moves the cursor to byte offset 0.
func (b *Buffer) MoveToStart() {
	b.cursor = 0
}

// MoveToEnd moves the cursor to the end of the buffer.
func (b *Buffer) MoveToEnd() {
	b.cursor = len(b.buf)
}

// DeleteBackward removes the grapheme cluster immediately to the left of the
// cursor, if any, and leaves the cursor at the start of the deleted span.
func (b *Buffer) DeleteBackward() {
	old := b.cursor
	b.MoveLeft()
	if b.cursor == old {
		return
	}
	b.buf = b.buf[:b.cursor] + b.buf[old:]
}

// DeleteForward removes the grapheme cluster immediately to the right of the
// cursor, if any. The cursor does not move.
func (b *Buffer) DeleteForward() {
	end := nextGraphemeBoundary(b.buf, b.cursor)
	if end == b.cursor {
		return
	}
	b.buf = b.buf[:b.cursor] + b.buf[end:]
}

// Replace replaces the byte range [start, end) with s and moves the cursor
// to just past the inserted text. start and end must already lie on
// grapheme boundaries within the buffer; callers that derive them from a
// SubString satisfy this automatically.
func (b *Buffer) Replace(start, end int, s string) {
	if start < 0 {
		start = 0
	}
	if end > len(b.buf) {
		end = len(b.buf)
	}
	if start > end {
		start = end
	}
	b.buf = b.buf[:start] + s + b.buf[end:]
	b.cursor = start + len(s)
}

// IsGraphemeBoundary reports whether byte is a valid cursor position in buf.
func IsGraphemeBoundary(buf string, byte int) bool {
	if byte <= 0 || byte >= len(buf) {
		return byte == 0 || byte == len(buf)
	}
	return snapToGraphemeBoundary(buf, byte) == byte
}

func snapToGraphemeBoundary(buf string, byte int) int {
	if byte <= 0 {
		return 0
	}
	if byte >= len(buf) {
		return len(buf)
	}
	pos := 0
	state := -1
	remaining := buf
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		next := pos + len(cluster)
		if next > byte {
			return pos
		}
		if next == byte {
			return byte
		}
		pos = next
		remaining = rest
		state = newState
	}
	return pos
}

func nextGraphemeBoundary(buf string, byte int) int {
	if byte >= len(buf) {
		return len(buf)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(buf[byte:], -1)
	return byte + len(cluster)
}

func prevGraphemeBoundary(buf string, byte int) int {
	if byte <= 0 {
		return 0
	}
	pos := 0
	state := -1
	remaining := buf
	last := 0
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		next := pos + len(cluster)
		if next >= byte {
			return pos
		}
		last = pos
		pos = next
		remaining = rest
		state = newState
	}
	return last
}

// SubString is a borrowed, validated view into a Buffer: a byte range known
// to lie within the buffer's contents at the moment it was constructed. It
// does not observe subsequent mutations of the buffer; callers must treat it
// as invalidated by any edit.
type SubString struct {
	source     string
	start, end int
}

// NewSubString constructs a SubString over [start, end) of buf's current
// contents, clamping to valid bounds.
func NewSubString(b *Buffer, start, end int) SubString {
	s := b.String()
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		start = end
	}
	return SubString{source: s, start: start, end: end}
}

// Text returns the substring's text.
func (s SubString) Text() string {
	return s.source[s.start:s.end]
}

// Start returns the byte offset of the substring's start within its source.
func (s SubString) Start() int {
	return s.start
}

// End returns the byte offset just past the substring's end within its
// source.
func (s SubString) End() int {
	return s.end
}

// Contains reports whether byte lies within [start, end], inclusive of the
// end so that a cursor immediately after the substring still counts as
// abutting it.
func (s SubString) Contains(byte int) bool {
	return byte >= s.start && byte <= s.end
}
