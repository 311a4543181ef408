package printer

import (
	"stylename/internal/ast"
	"stylename/internal/source"
)

func (p *printer) container(id ast.ExprID, sp source.Span) {
	c, _ := p.arenas.Exprs.JSXExpr(id)
	if !c.Inner.IsValid() {
		p.orElse(sp, "{}")
		return
	}
	inner := p.arenas.Exprs.Get(c.Inner).Span
	if sp.Empty() || inner.Empty() {
		p.out.WriteByte('{')
		p.expr(c.Inner)
		p.out.WriteByte('}')
		return
	}
	p.between(sp.Start, inner.Start)
	p.expr(c.Inner)
	p.between(inner.End, sp.End)
}

func (p *printer) element(el *ast.JSXElementData) {
	p.orElse(el.Open, "<"+el.Name)
	if g := p.arenas.Attrs.Get(el.Attrs); g != nil {
		for i := range g.Entries {
			p.attr(&g.Entries[i])
		}
	}
	if !el.OpenEnd.Empty() {
		p.text(el.OpenEnd)
	} else if el.SelfClosing {
		p.out.WriteString(" />")
	} else {
		p.out.WriteByte('>')
	}
	if el.SelfClosing {
		return
	}
	for _, child := range el.Children {
		p.expr(child)
	}
	p.orElse(el.Close, "</"+el.Name+">")
}

func (p *printer) attr(entry *ast.AttrEntry) {
	switch {
	case !entry.Lead.Empty():
		p.text(entry.Lead)
	case entry.Span.Empty():
		p.out.WriteByte(' ')
	}

	if entry.Kind == ast.AttrSpread {
		inner := p.arenas.Exprs.Get(entry.Spread).Span
		if entry.Span.Empty() || inner.Empty() {
			p.out.WriteString("{...")
			p.expr(entry.Spread)
			p.out.WriteByte('}')
			return
		}
		p.between(entry.Span.Start, inner.Start)
		p.expr(entry.Spread)
		p.between(inner.End, entry.Span.End)
		return
	}

	p.orElse(entry.NameSpan, entry.Name)
	if !entry.Init.Present() {
		return
	}
	value := p.arenas.Exprs.Get(entry.Init.Value)
	if entry.NameSpan.Empty() || value.Span.Empty() {
		p.out.WriteByte('=')
	} else {
		p.between(entry.NameSpan.End, value.Span.Start)
	}
	if entry.Init.Kind == ast.InitString {
		// строка атрибута печатается как была: в JSX у неё нет escape-последовательностей
		lit, _ := p.arenas.Exprs.StringLit(entry.Init.Value)
		if lit.Raw != "" {
			p.out.WriteString(lit.Raw)
			return
		}
	}
	p.expr(entry.Init.Value)
}
