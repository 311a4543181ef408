package transform

import (
	"stylename/internal/ast"
	"stylename/internal/diag"
)

// Transformer applies the rewrite to files of one ast.Builder.
type Transformer struct {
	arenas   *ast.Builder
	reporter diag.Reporter
	opts     Options
}

// New creates a transformer; a nil reporter drops warnings.
func New(arenas *ast.Builder, reporter diag.Reporter, opts Options) *Transformer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Transformer{arenas: arenas, reporter: reporter, opts: opts.withDefaults()}
}

// TransformFile returns the rewritten file, or id itself when nothing changed.
// Declaration files and files without markup support are returned as is,
// without requests or diagnostics. On error no file is produced.
func (t *Transformer) TransformFile(ctx *Context, id ast.FileID) (ast.FileID, error) {
	f := t.arenas.Files.Get(id)
	if f == nil || f.IsDeclaration() || f.Variant != ast.VariantJSX {
		return id, nil
	}
	v := visitor{t: t, ctx: ctx}
	body, err := v.expr(f.Body)
	if err != nil {
		return ast.NoFileID, err
	}
	if body == f.Body {
		return id, nil
	}
	return t.arenas.WithBody(id, body), nil
}

type visitor struct {
	t   *Transformer
	ctx *Context
}

// expr visits id depth-first and returns either id or its rewritten copy.
func (v *visitor) expr(id ast.ExprID) (ast.ExprID, error) {
	exprs := v.t.arenas.Exprs
	e := exprs.Get(id)
	if e == nil {
		return id, nil
	}
	switch e.Kind {
	case ast.ExprCode:
		code, _ := exprs.Code(id)
		parts, changed, err := v.parts(code.Parts)
		if err != nil || !changed {
			return id, err
		}
		return exprs.NewCode(e.Span, parts), nil

	case ast.ExprJSXElement:
		el, _ := exprs.JSXElement(id)
		group, err := v.t.rewriteGroup(v.ctx, el.Attrs)
		if err != nil {
			return id, err
		}
		group, err = v.groupChildren(group)
		if err != nil {
			return id, err
		}
		children, childChanged, err := v.list(el.Children)
		if err != nil {
			return id, err
		}
		if group == el.Attrs && !childChanged {
			return id, nil
		}
		data := *el
		data.Attrs = group
		data.Children = children
		return exprs.NewJSXElement(e.Span, data), nil

	case ast.ExprJSXFragment:
		frag, _ := exprs.JSXFragment(id)
		children, changed, err := v.list(frag.Children)
		if err != nil || !changed {
			return id, err
		}
		data := *frag
		data.Children = children
		return exprs.NewJSXFragment(e.Span, data), nil

	case ast.ExprJSXExpr:
		c, _ := exprs.JSXExpr(id)
		inner, err := v.expr(c.Inner)
		if err != nil || inner == c.Inner {
			return id, err
		}
		return exprs.NewJSXExpr(e.Span, inner), nil

	case ast.ExprCall:
		call, _ := exprs.Call(id)
		target, err := v.expr(call.Target)
		if err != nil {
			return id, err
		}
		args, changed, err := v.list(call.Args)
		if err != nil || (!changed && target == call.Target) {
			return id, err
		}
		return exprs.NewCall(e.Span, target, args), nil

	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		left, err := v.expr(bin.Left)
		if err != nil {
			return id, err
		}
		right, err := v.expr(bin.Right)
		if err != nil || (left == bin.Left && right == bin.Right) {
			return id, err
		}
		return exprs.NewBinary(e.Span, bin.Op, left, right), nil

	case ast.ExprParen:
		p, _ := exprs.Paren(id)
		inner, err := v.expr(p.Inner)
		if err != nil || inner == p.Inner {
			return id, err
		}
		return exprs.NewParen(e.Span, inner), nil
	}
	// листья: строки, идентификаторы, текст
	return id, nil
}

func (v *visitor) list(ids []ast.ExprID) ([]ast.ExprID, bool, error) {
	var out []ast.ExprID
	for i, id := range ids {
		n, err := v.expr(id)
		if err != nil {
			return ids, false, err
		}
		if n != id && out == nil {
			out = append(make([]ast.ExprID, 0, len(ids)), ids[:i]...)
		}
		if out != nil {
			out = append(out, n)
		}
	}
	if out == nil {
		return ids, false, nil
	}
	return out, true, nil
}

func (v *visitor) parts(parts []ast.CodePart) ([]ast.CodePart, bool, error) {
	var out []ast.CodePart
	for i, part := range parts {
		n := part
		if !part.IsText() {
			expr, err := v.expr(part.Expr)
			if err != nil {
				return parts, false, err
			}
			n.Expr = expr
		}
		if n != part && out == nil {
			out = append(make([]ast.CodePart, 0, len(parts)), parts[:i]...)
		}
		if out != nil {
			out = append(out, n)
		}
	}
	if out == nil {
		return parts, false, nil
	}
	return out, true, nil
}

// groupChildren visits attribute values and spread expressions.
func (v *visitor) groupChildren(id ast.AttrGroupID) (ast.AttrGroupID, error) {
	g := v.t.arenas.Attrs.Get(id)
	if g == nil {
		return id, nil
	}
	var out []ast.AttrEntry
	for i, entry := range g.Entries {
		n := entry
		switch {
		case entry.Kind == ast.AttrSpread:
			spread, err := v.expr(entry.Spread)
			if err != nil {
				return id, err
			}
			n.Spread = spread
		case entry.Init.Kind == ast.InitContainer || entry.Init.Kind == ast.InitMarkup:
			value, err := v.expr(entry.Init.Value)
			if err != nil {
				return id, err
			}
			n.Init.Value = value
		}
		if n != entry && out == nil {
			out = append(make([]ast.AttrEntry, 0, len(g.Entries)), g.Entries[:i]...)
		}
		if out != nil {
			out = append(out, n)
		}
	}
	if out == nil {
		return id, nil
	}
	return v.t.arenas.Attrs.New(g.Span, out), nil
}
