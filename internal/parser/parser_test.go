package parser

import (
	"testing"

	"stylename/internal/ast"
	"stylename/internal/diag"
)

func TestBodyPartsCoverWholeFile(t *testing.T) {
	src := "import x from 'y';\nconst a = <div className=\"c\" {...rest} hidden>hi {name}</div>;\nexport default a;\n"
	p := mustParse(t, "a.jsx", src)

	code, _ := p.b.Exprs.Code(p.file.Body)
	var pos uint32
	for i, part := range code.Parts {
		sp := part.Text
		if !part.IsText() {
			sp = p.b.Exprs.Get(part.Expr).Span
		}
		if sp.Start != pos {
			t.Fatalf("part %d starts at %d, want %d", i, sp.Start, pos)
		}
		pos = sp.End
	}
	if int(pos) != len(src) {
		t.Fatalf("parts end at %d, want %d", pos, len(src))
	}
	if p.file.Variant != ast.VariantJSX {
		t.Errorf("variant = %v", p.file.Variant)
	}
}

func TestElementAttributes(t *testing.T) {
	p := mustParse(t, "a.jsx", `x = <Foo.Bar styleName={a + b} className="c" {...rest} hidden data-x='1'/>`)
	parts := p.markup(t)
	if len(parts) != 1 {
		t.Fatalf("got %d markup parts", len(parts))
	}
	el := p.element(t, parts[0])
	if el.Name != "Foo.Bar" || !el.SelfClosing {
		t.Fatalf("element = %q selfClosing=%v", el.Name, el.SelfClosing)
	}
	if got := p.text(el.Open); got != "<Foo.Bar" {
		t.Errorf("Open = %q", got)
	}
	if got := p.text(el.OpenEnd); got != "/>" {
		t.Errorf("OpenEnd = %q", got)
	}

	group := p.b.Attrs.Get(el.Attrs)
	want := []struct {
		kind ast.AttrKind
		name string
		init ast.InitKind
		text string
	}{
		{ast.AttrNamed, "styleName", ast.InitContainer, "styleName={a + b}"},
		{ast.AttrNamed, "className", ast.InitString, `className="c"`},
		{ast.AttrSpread, "", ast.InitNone, "{...rest}"},
		{ast.AttrNamed, "hidden", ast.InitNone, "hidden"},
		{ast.AttrNamed, "data-x", ast.InitString, "data-x='1'"},
	}
	if len(group.Entries) != len(want) {
		t.Fatalf("got %d entries", len(group.Entries))
	}
	for i, w := range want {
		e := group.Entries[i]
		if e.Kind != w.kind || e.Name != w.name || e.Init.Kind != w.init {
			t.Errorf("entry %d = %+v", i, e)
		}
		if got := p.text(e.Span); got != w.text {
			t.Errorf("entry %d text = %q, want %q", i, got, w.text)
		}
		if got := p.text(e.Lead); got != " " {
			t.Errorf("entry %d lead = %q", i, got)
		}
	}

	container, ok := p.b.Exprs.JSXExpr(group.Entries[0].Init.Value)
	if !ok || !container.Inner.IsValid() {
		t.Fatal("styleName container has no expression")
	}
	if got := p.text(p.b.Exprs.Get(container.Inner).Span); got != "a + b" {
		t.Errorf("styleName expression = %q", got)
	}
	lit, _ := p.b.Exprs.StringLit(group.Entries[1].Init.Value)
	if lit.Value != "c" || lit.Raw != `"c"` {
		t.Errorf("className literal = %+v", lit)
	}
	spread, _ := p.b.Exprs.Code(group.Entries[2].Spread)
	if len(spread.Parts) != 1 || p.text(spread.Parts[0].Text) != "rest" {
		t.Errorf("spread parts = %+v", spread.Parts)
	}
}

func TestEmptyContainer(t *testing.T) {
	p := mustParse(t, "a.jsx", "<a styleName={ /* nothing */ }>{}</a>")
	el := p.element(t, p.markup(t)[0])
	group := p.b.Attrs.Get(el.Attrs)
	c, _ := p.b.Exprs.JSXExpr(group.Entries[0].Init.Value)
	if c.Inner.IsValid() {
		t.Error("attribute container should be empty")
	}
	child, ok := p.b.Exprs.JSXExpr(el.Children[0])
	if !ok || child.Inner.IsValid() {
		t.Error("child container should be empty")
	}
}

func TestNestedMarkupInContainers(t *testing.T) {
	src := "<ul>{items.map(i => <li key={i} styleName=\"x\">{`${i}${<b/>}`}</li>)}</ul>"
	p := mustParse(t, "a.tsx", src)
	ul := p.element(t, p.markup(t)[0])
	if len(ul.Children) != 1 {
		t.Fatalf("ul children = %d", len(ul.Children))
	}
	c, _ := p.b.Exprs.JSXExpr(ul.Children[0])
	code, _ := p.b.Exprs.Code(c.Inner)
	var li ast.ExprID
	for _, part := range code.Parts {
		if !part.IsText() {
			li = part.Expr
		}
	}
	liData := p.element(t, li)
	if liData.Name != "li" || p.text(liData.Close) != "</li>" {
		t.Fatalf("li = %+v", liData)
	}

	// теги внутри шаблонной подстановки тоже размечаются
	tc, _ := p.b.Exprs.JSXExpr(liData.Children[0])
	tcode, _ := p.b.Exprs.Code(tc.Inner)
	found := false
	for _, part := range tcode.Parts {
		if !part.IsText() && p.element(t, part.Expr).Name == "b" {
			found = true
		}
	}
	if !found {
		t.Error("markup inside template substitution not parsed")
	}
}

func TestFragmentsAndText(t *testing.T) {
	p := mustParse(t, "a.jsx", "f(<>\n  text <i>x</i>\n</>)")
	id := p.markup(t)[0]
	frag, ok := p.b.Exprs.JSXFragment(id)
	if !ok {
		t.Fatalf("kind = %v", p.b.Exprs.Get(id).Kind)
	}
	if p.text(frag.Open) != "<>" || p.text(frag.Close) != "</>" {
		t.Errorf("fragment tags = %q %q", p.text(frag.Open), p.text(frag.Close))
	}
	if len(frag.Children) != 3 {
		t.Fatalf("children = %d", len(frag.Children))
	}
	if got := p.text(p.b.Exprs.Get(frag.Children[0]).Span); got != "\n  text " {
		t.Errorf("text child = %q", got)
	}
}

func TestComparisonsAreNotMarkup(t *testing.T) {
	tests := []struct {
		path string
		src  string
	}{
		{"a.jsx", "if (a < b && c > d) {}"},
		{"a.jsx", "for (let i = 0; i < n; i++) {}"},
		{"a.tsx", "const id = <T,>(x: T) => x;"},
		{"a.tsx", "function f<T extends object>(x: T) { return x }"},
		{"a.ts", "const n = <number>value;"},
		{"a.jsx", "x = y /2/ z < w"},
	}
	for _, tt := range tests {
		p := mustParse(t, tt.path, tt.src)
		if n := len(p.markup(t)); n != 0 {
			t.Errorf("%q: found %d markup parts", tt.src, n)
		}
	}
}

func TestDeclarationFileFlags(t *testing.T) {
	p := mustParse(t, "types.d.ts", "declare const x: number;")
	if !p.file.IsDeclaration() || p.file.Variant != ast.VariantStandard {
		t.Fatalf("flags = %v variant = %v", p.file.Flags, p.file.Variant)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"<div>", diag.SynUnclosedElement},
		{"<div></span>", diag.SynMismatchedClosingTag},
		{"<a b=>", diag.SynExpectAttributeValue},
		{"<a {rest}/>", diag.SynUnexpectedToken},
		{"<a b={x>", diag.SynUnclosedBrace},
		{"<a / x>", diag.SynUnexpectedToken},
		{"<a><1></a>", diag.SynExpectTagName},
		{"<a><b></a>", diag.SynMismatchedClosingTag},
	}
	for _, tt := range tests {
		p := parse(t, "a.jsx", tt.src)
		if p.bag.Len() == 0 {
			t.Errorf("%q: expected %s", tt.src, tt.code.ID())
			continue
		}
		if got := p.bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: code = %s, want %s (%s)", tt.src, got.ID(), tt.code.ID(), diagnosticsSummary(p.bag))
		}
	}
}
