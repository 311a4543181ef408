package transform

import (
	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/source"
)

// rewriteGroup folds the style attribute of one group into the target
// attribute. It returns id untouched when the group has no valued style
// attribute.
func (t *Transformer) rewriteGroup(ctx *Context, id ast.AttrGroupID) (ast.AttrGroupID, error) {
	g := t.arenas.Attrs.Get(id)
	if g == nil {
		return id, nil
	}

	kept := make([]ast.AttrEntry, 0, len(g.Entries))
	var style, class *ast.AttrEntry
	for i := range g.Entries {
		entry := &g.Entries[i]
		switch {
		case entry.Kind == ast.AttrSpread:
			kept = append(kept, *entry)
		case entry.Name == t.opts.Attribute:
			if style != nil {
				return id, &DuplicateStyleNameError{Attribute: t.opts.Attribute, First: style.Span, Second: entry.Span}
			}
			style = entry
		case entry.Name == t.opts.Target:
			class = entry // последний className побеждает
		default:
			kept = append(kept, *entry)
		}
	}
	if style == nil || !style.Init.Present() {
		return id, nil
	}

	if style.Init.Kind == ast.InitString {
		b := diag.ReportWarning(t.reporter, diag.StyLiteralStyleName, style.Span,
			t.opts.Attribute+" attribute is string literal").
			WithNote(style.Span, ctx.text(style.Span))
		if class == nil && !style.NameSpan.Empty() {
			b.WithFix("rename to "+t.opts.Target, diag.FixEdit{Span: style.NameSpan, NewText: t.opts.Target})
		}
		b.Emit()
	}
	styleExpr, err := t.initExpr(style)
	if err != nil {
		return id, err
	}

	ctx.RequestEmitHelper(t.opts.Helper)
	exprs := t.arenas.Exprs
	none := source.Span{}
	callee := exprs.NewIdent(none, t.opts.Helper.Name, ast.EmitHelperName|ast.AdviseOnEmit)
	value := exprs.NewCall(none, callee, []ast.ExprID{t.argument(ctx, styleExpr)})

	var merged ast.AttrEntry
	if class != nil {
		// имя и ведущие пробелы берём из исходника, само значение новое
		merged = *class
		merged.Span = source.Span{}
		if class.Init.Present() {
			classExpr, err := t.initExpr(class)
			if err != nil {
				return id, err
			}
			left := exprs.NewBinary(none, ast.ExprBinaryAdd, t.operand(ctx, classExpr), exprs.NewString(none, " ", ""))
			value = exprs.NewBinary(none, ast.ExprBinaryAdd, left, value)
		}
	} else {
		merged = ast.AttrEntry{Kind: ast.AttrNamed, Name: t.opts.Target}
	}
	merged.Init = ast.Init{Kind: ast.InitContainer, Value: exprs.NewJSXExpr(none, value)}
	kept = append(kept, merged)

	return t.arenas.Attrs.New(g.Span, kept), nil
}

// initExpr returns the expression an initializer stands for.
func (t *Transformer) initExpr(entry *ast.AttrEntry) (ast.ExprID, error) {
	switch entry.Init.Kind {
	case ast.InitContainer:
		c, _ := t.arenas.Exprs.JSXExpr(entry.Init.Value)
		if c == nil || !c.Inner.IsValid() {
			return ast.NoExprID, &EmptyInitializerError{Attribute: entry.Name, Span: entry.Span}
		}
		return c.Inner, nil
	default:
		return entry.Init.Value, nil
	}
}

// operand parenthesizes code that is not a single primary expression so the
// concatenation keeps its meaning.
func (t *Transformer) operand(ctx *Context, id ast.ExprID) ast.ExprID {
	e := t.arenas.Exprs.Get(id)
	if e.Kind != ast.ExprCode || isPrimary(ctx.text(e.Span)) {
		return id
	}
	return t.arenas.Exprs.NewParen(source.Span{}, id)
}

// argument parenthesizes comma expressions passed as the helper argument.
func (t *Transformer) argument(ctx *Context, id ast.ExprID) ast.ExprID {
	e := t.arenas.Exprs.Get(id)
	if e.Kind != ast.ExprCode || !hasTopLevelComma(ctx.text(e.Span)) {
		return id
	}
	return t.arenas.Exprs.NewParen(source.Span{}, id)
}
