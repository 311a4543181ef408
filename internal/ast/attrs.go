package ast

import (
	"stylename/internal/source"
)

type AttrKind uint8

const (
	// AttrNamed is name or name=value.
	AttrNamed AttrKind = iota
	// AttrSpread is {...expr}.
	AttrSpread
)

type InitKind uint8

const (
	InitNone InitKind = iota
	// InitString: Value is an ExprString.
	InitString
	// InitContainer: Value is an ExprJSXExpr.
	InitContainer
	// InitMarkup: Value is an element or fragment used directly, a=<b/>.
	InitMarkup
)

// Init is an attribute initializer.
type Init struct {
	Kind  InitKind
	Value ExprID
}

func (i Init) Present() bool { return i.Kind != InitNone }

// AttrEntry is one entry of an attribute group. Lead is the trivia that
// preceded the entry in source; Span covers the entry itself.
type AttrEntry struct {
	Kind     AttrKind
	Lead     source.Span
	Span     source.Span
	Name     string
	NameSpan source.Span
	Init     Init
	// Spread holds the expression after "..." for AttrSpread.
	Spread ExprID
}

// AttrGroup is the ordered attribute list of one element.
type AttrGroup struct {
	Span    source.Span
	Entries []AttrEntry
}

type AttrGroups struct {
	Arena *Arena[AttrGroup]
}

func NewAttrGroups(capHint uint) *AttrGroups {
	return &AttrGroups{Arena: NewArena[AttrGroup](capHint)}
}

// New stores a group. The entries slice is copied.
func (g *AttrGroups) New(sp source.Span, entries []AttrEntry) AttrGroupID {
	return AttrGroupID(g.Arena.Allocate(AttrGroup{
		Span:    sp,
		Entries: append([]AttrEntry(nil), entries...),
	}))
}

func (g *AttrGroups) Get(id AttrGroupID) *AttrGroup {
	return g.Arena.Get(uint32(id))
}
