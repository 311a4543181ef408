package ast

type Hints struct{ Files, Exprs, Attrs uint }

// Builder owns every arena of one tree family. Input trees and the trees a
// transform derives from them live in the same Builder.
type Builder struct {
	Files *Files
	Exprs *Exprs
	Attrs *AttrGroups
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Attrs == 0 {
		hints.Attrs = 1 << 6
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Exprs: NewExprs(hints.Exprs),
		Attrs: NewAttrGroups(hints.Attrs),
	}
}

// NewFile copies file into the arena.
func (b *Builder) NewFile(file File) FileID {
	return b.Files.New(file)
}

// WithBody returns a copy of the file pointing at a new body.
func (b *Builder) WithBody(id FileID, body ExprID) FileID {
	f := *b.Files.Get(id)
	f.Body = body
	return b.Files.New(f)
}
