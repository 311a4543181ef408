package transform

import (
	"stylename/internal/helper"
	"stylename/internal/source"
)

// Context is the per-file transformation context.
type Context struct {
	file     *source.File
	requests []helper.EmitHelper
}

func NewContext(file *source.File) *Context {
	return &Context{file: file}
}

func (c *Context) File() *source.File { return c.file }

// RequestEmitHelper records a request. Requests are not de-duplicated here.
func (c *Context) RequestEmitHelper(h helper.EmitHelper) {
	c.requests = append(c.requests, h)
}

// Helpers returns every request in order, duplicates included.
func (c *Context) Helpers() []helper.EmitHelper {
	return append([]helper.EmitHelper(nil), c.requests...)
}

func (c *Context) text(sp source.Span) string {
	if c.file == nil {
		return ""
	}
	return c.file.Text(sp)
}
