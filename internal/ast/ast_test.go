package ast

import (
	"testing"

	"stylename/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("Allocate = %d, Get = %v", id, a.Get(id))
	}
	if a.Get(2) != nil {
		t.Error("out of range index must be nil")
	}
}

func TestAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	ident := b.Exprs.NewIdent(source.Span{}, "checkAndJoinStyleName", EmitHelperName|AdviseOnEmit)
	call := b.Exprs.NewCall(source.Span{}, ident, []ExprID{ident})

	if _, ok := b.Exprs.Call(ident); ok {
		t.Error("Call accepted an ident")
	}
	data, ok := b.Exprs.Ident(ident)
	if !ok || data.Flags&EmitHelperName == 0 || data.Flags&AdviseOnEmit == 0 {
		t.Fatalf("Ident = %+v, %v", data, ok)
	}
	c, ok := b.Exprs.Call(call)
	if !ok || c.Target != ident || len(c.Args) != 1 {
		t.Fatalf("Call = %+v, %v", c, ok)
	}
	if _, ok := b.Exprs.Ident(NoExprID); ok {
		t.Error("NoExprID resolved")
	}
}

func TestConstructorsCopySlices(t *testing.T) {
	b := NewBuilder(Hints{})
	entries := []AttrEntry{{Kind: AttrNamed, Name: "a"}}
	g := b.Attrs.New(source.Span{}, entries)
	entries[0].Name = "changed"
	if b.Attrs.Get(g).Entries[0].Name != "a" {
		t.Error("group shares the caller's slice")
	}

	children := []ExprID{b.Exprs.NewJSXText(source.Span{})}
	el := b.Exprs.NewJSXElement(source.Span{}, JSXElementData{Name: "div", Children: children})
	children[0] = NoExprID
	data, _ := b.Exprs.JSXElement(el)
	if !data.Children[0].IsValid() {
		t.Error("element shares the caller's children slice")
	}
	if !b.Exprs.IsMarkup(el) || b.Exprs.IsMarkup(children[0]) {
		t.Error("IsMarkup misclassifies")
	}
}

func TestFileInfo(t *testing.T) {
	tests := []struct {
		path    string
		flags   FileFlags
		variant LanguageVariant
	}{
		{"a.tsx", 0, VariantJSX},
		{"a.jsx", 0, VariantJSX},
		{"a.ts", 0, VariantStandard},
		{"types.d.ts", FileDeclaration, VariantStandard},
	}
	for _, tt := range tests {
		flags, variant := FileInfo(tt.path)
		if flags != tt.flags || variant != tt.variant {
			t.Errorf("FileInfo(%q) = %v, %v; want %v, %v", tt.path, flags, variant, tt.flags, tt.variant)
		}
	}
}

func TestWithBodyKeepsOriginal(t *testing.T) {
	b := NewBuilder(Hints{})
	body := b.Exprs.NewCode(source.Span{}, nil)
	f := b.NewFile(File{Path: "a.jsx", Variant: VariantJSX, Body: body})
	other := b.Exprs.NewCode(source.Span{}, nil)
	g := b.WithBody(f, other)
	if g == f || b.Files.Get(f).Body != body || b.Files.Get(g).Body != other {
		t.Fatal("WithBody must allocate a new file and leave the old one alone")
	}
	if b.Files.Get(g).Path != "a.jsx" {
		t.Error("path not carried over")
	}
}
