// Package printer turns a tree back into source text.
//
// Nodes that came from the source are reproduced from their spans, so an
// untouched file prints byte for byte. Synthesized nodes (empty spans) are
// laid out structurally.
package printer

import (
	"bytes"

	"stylename/internal/ast"
	"stylename/internal/helper"
	"stylename/internal/source"
)

type printer struct {
	arenas *ast.Builder
	src    []byte
	out    bytes.Buffer
}

// Print renders file id and injects the requested helpers once each.
func Print(arenas *ast.Builder, file *source.File, id ast.FileID, helpers []helper.EmitHelper) []byte {
	p := printer{arenas: arenas, src: file.Content}
	if f := arenas.Files.Get(id); f != nil {
		p.expr(f.Body)
	}
	return injectHelpers(p.out.Bytes(), Dedup(helpers))
}

// PrintExpr renders a single expression.
func PrintExpr(arenas *ast.Builder, file *source.File, id ast.ExprID) string {
	p := printer{arenas: arenas, src: file.Content}
	p.expr(id)
	return p.out.String()
}

func (p *printer) text(sp source.Span) {
	if sp.End > sp.Start && int(sp.End) <= len(p.src) {
		p.out.Write(p.src[sp.Start:sp.End])
	}
}

func (p *printer) between(from, to uint32) {
	p.text(source.Span{Start: from, End: to})
}

func (p *printer) expr(id ast.ExprID) {
	exprs := p.arenas.Exprs
	e := exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprCode:
		code, _ := exprs.Code(id)
		for _, part := range code.Parts {
			if part.IsText() {
				p.text(part.Text)
			} else {
				p.expr(part.Expr)
			}
		}
	case ast.ExprString:
		lit, _ := exprs.StringLit(id)
		p.out.WriteString(quote(lit.Value))
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		p.out.WriteString(ident.Name)
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		p.expr(call.Target)
		p.out.WriteByte('(')
		for i, arg := range call.Args {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.expr(arg)
		}
		p.out.WriteByte(')')
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		p.expr(bin.Left)
		p.out.WriteString(" " + bin.Op.String() + " ")
		p.expr(bin.Right)
	case ast.ExprParen:
		paren, _ := exprs.Paren(id)
		p.out.WriteByte('(')
		p.expr(paren.Inner)
		p.out.WriteByte(')')
	case ast.ExprJSXText:
		p.text(e.Span)
	case ast.ExprJSXExpr:
		p.container(id, e.Span)
	case ast.ExprJSXElement:
		el, _ := exprs.JSXElement(id)
		p.element(el)
	case ast.ExprJSXFragment:
		frag, _ := exprs.JSXFragment(id)
		p.orElse(frag.Open, "<>")
		for _, child := range frag.Children {
			p.expr(child)
		}
		p.orElse(frag.Close, "</>")
	}
}

func (p *printer) orElse(sp source.Span, fallback string) {
	if sp.Empty() {
		p.out.WriteString(fallback)
		return
	}
	p.text(sp)
}
