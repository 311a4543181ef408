package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"stylename/internal/source"
)

// Cursor: байтовая позиция в содержимом файла.
// Чтение за концом даёт 0, а не панику.
type Cursor struct {
	File *source.File
	Off  uint32
	src  []byte
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large for a cursor: %w", f.Path, err))
	}
	return Cursor{File: f, src: f.Content, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt смотрит на n байт вперёд.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := c.Off + n; i < c.end {
		return c.src[i]
	}
	return 0
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Skip moves n bytes forward, clamped to the end.
func (c *Cursor) Skip(n uint32) {
	c.Off = min(c.Off+n, c.end)
}

// BumpWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) BumpWhile(pred func(byte) bool) uint32 {
	from := c.Off
	for c.Off < c.end && pred(c.src[c.Off]) {
		c.Off++
	}
	return c.Off - from
}

func (c *Cursor) HasPrefix(s string) bool {
	return c.Off <= c.end && len(s) <= int(c.end-c.Off) && string(c.src[c.Off:c.Off+uint32(len(s))]) == s
}

// Rest is the unread tail. Do not modify.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:]
}

// Mark запоминает начало фрагмента для SpanFrom/Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
