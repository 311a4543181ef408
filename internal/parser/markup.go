package parser

import (
	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/source"
	"stylename/internal/token"
)

// parseMarkup parses an element or fragment whose '<' was just returned.
// The boolean is false when the markup could not be closed; the returned
// node is still usable for diagnostics.
func (p *Parser) parseMarkup(lt token.Token) (ast.ExprID, bool) {
	return p.parseMarkupAfter(lt, p.lx.NextJSXTag())
}

func (p *Parser) parseMarkupAfter(lt, tok token.Token) (ast.ExprID, bool) {
	switch tok.Kind {
	case token.Gt:
		open := p.span(lt.Span.Start, tok.Span.End)
		children, closeSpan, ok := p.parseChildren("")
		end := closeSpan.End
		if !ok {
			end = p.lx.Offset()
		}
		return p.arenas.Exprs.NewJSXFragment(p.span(lt.Span.Start, end), ast.JSXFragmentData{
			Open:     open,
			Children: children,
			Close:    closeSpan,
		}), ok
	case token.JSXName:
		return p.parseElement(lt, tok)
	default:
		p.errAt(diag.SynExpectTagName, tok, "expected a tag name or '>' after '<'")
		return p.arenas.Exprs.NewJSXText(p.span(lt.Span.Start, tok.Span.End)), false
	}
}

func (p *Parser) parseElement(lt, name token.Token) (ast.ExprID, bool) {
	data := ast.JSXElementData{
		Name: name.Text,
		Open: p.span(lt.Span.Start, name.Span.End),
	}
	prevEnd := name.Span.End
	var entries []ast.AttrEntry
	fail := func(at uint32) (ast.ExprID, bool) {
		data.Attrs = p.arenas.Attrs.New(groupSpan(p.span(name.Span.End, name.Span.End), entries), entries)
		return p.arenas.Exprs.NewJSXElement(p.span(lt.Span.Start, at), data), false
	}

	tok := p.lx.NextJSXTag()
	for {
		switch tok.Kind {
		case token.JSXName:
			entry, next, ok := p.parseNamedAttr(tok, prevEnd)
			entries = append(entries, entry)
			if !ok {
				return fail(entry.Span.End)
			}
			prevEnd = entry.Span.End
			tok = next
			continue
		case token.LBrace:
			entry, ok := p.parseSpreadAttr(tok, prevEnd)
			entries = append(entries, entry)
			if !ok {
				return fail(entry.Span.End)
			}
			prevEnd = entry.Span.End
		case token.Slash:
			gt := p.lx.NextJSXTag()
			if gt.Kind != token.Gt {
				p.errAt(diag.SynUnexpectedToken, gt, "expected '>' after '/' in a self-closing tag")
				return fail(gt.Span.End)
			}
			data.SelfClosing = true
			data.OpenEnd = p.span(prevEnd, gt.Span.End)
			data.Attrs = p.arenas.Attrs.New(groupSpan(p.span(name.Span.End, name.Span.End), entries), entries)
			return p.arenas.Exprs.NewJSXElement(p.span(lt.Span.Start, gt.Span.End), data), true
		case token.Gt:
			data.OpenEnd = p.span(prevEnd, tok.Span.End)
			data.Attrs = p.arenas.Attrs.New(groupSpan(p.span(name.Span.End, name.Span.End), entries), entries)
			children, closeSpan, ok := p.parseChildren(name.Text)
			data.Children = children
			data.Close = closeSpan
			end := closeSpan.End
			if !ok {
				end = p.lx.Offset()
			}
			return p.arenas.Exprs.NewJSXElement(p.span(lt.Span.Start, end), data), ok
		case token.EOF:
			p.errAt(diag.SynUnclosedElement, tok, "unexpected end of file inside <"+name.Text+">")
			return fail(tok.Span.Start)
		default:
			p.errAt(diag.SynUnexpectedToken, tok, "unexpected "+describe(tok)+" in tag <"+name.Text+">")
			return fail(tok.Span.End)
		}
		tok = p.lx.NextJSXTag()
	}
}

// parseNamedAttr parses name or name=value. It returns the first token after
// the attribute when there was no initializer to look for.
func (p *Parser) parseNamedAttr(name token.Token, prevEnd uint32) (ast.AttrEntry, token.Token, bool) {
	entry := ast.AttrEntry{
		Kind:     ast.AttrNamed,
		Lead:     p.span(prevEnd, name.Span.Start),
		Span:     name.Span,
		Name:     name.Text,
		NameSpan: name.Span,
	}
	next := p.lx.NextJSXTag()
	if next.Kind != token.Assign {
		return entry, next, true
	}

	val := p.lx.NextJSXTag()
	switch val.Kind {
	case token.JSXString:
		raw := val.Text
		id := p.arenas.Exprs.NewString(val.Span, raw[1:len(raw)-1], raw)
		entry.Init = ast.Init{Kind: ast.InitString, Value: id}
		entry.Span = entry.Span.Cover(val.Span)
	case token.LBrace:
		run, ok := p.parseCode(true)
		end := run.close.Span.End
		if !ok {
			end = p.lx.Offset()
		}
		inner := run.code
		if run.empty {
			inner = ast.NoExprID
		}
		sp := p.span(val.Span.Start, end)
		entry.Init = ast.Init{Kind: ast.InitContainer, Value: p.arenas.Exprs.NewJSXExpr(sp, inner)}
		entry.Span = entry.Span.Cover(sp)
		if !ok {
			return entry, token.Token{}, false
		}
	case token.Lt:
		el, ok := p.parseMarkup(val)
		entry.Init = ast.Init{Kind: ast.InitMarkup, Value: el}
		entry.Span = entry.Span.Cover(p.arenas.Exprs.Get(el).Span)
		if !ok {
			return entry, token.Token{}, false
		}
	default:
		p.errAt(diag.SynExpectAttributeValue, val, "expected a string, '{' or an element after '=' in attribute "+name.Text)
		entry.Span = entry.Span.Cover(next.Span)
		return entry, token.Token{}, false
	}
	return entry, p.lx.NextJSXTag(), true
}

// parseSpreadAttr parses {...expr}; lbrace is the opening brace.
func (p *Parser) parseSpreadAttr(lbrace token.Token, prevEnd uint32) (ast.AttrEntry, bool) {
	entry := ast.AttrEntry{
		Kind: ast.AttrSpread,
		Lead: p.span(prevEnd, lbrace.Span.Start),
		Span: lbrace.Span,
	}
	dots := p.lx.Next()
	if dots.Kind != token.Ellipsis {
		p.errAt(diag.SynUnexpectedToken, dots, "expected '...' in attribute spread")
		entry.Span = entry.Span.Cover(dots.Span)
		return entry, false
	}
	run, ok := p.parseCode(true)
	entry.Spread = run.code
	if !ok {
		entry.Span = p.span(lbrace.Span.Start, p.lx.Offset())
		return entry, false
	}
	entry.Span = p.span(lbrace.Span.Start, run.close.Span.End)
	return entry, true
}

// parseChildren reads children up to the closing tag of name ("" for a
// fragment) and returns them with the closing tag's span.
func (p *Parser) parseChildren(name string) ([]ast.ExprID, source.Span, bool) {
	var children []ast.ExprID
	for {
		tok := p.lx.NextJSXChild()
		switch tok.Kind {
		case token.JSXText:
			children = append(children, p.arenas.Exprs.NewJSXText(tok.Span))
		case token.LBrace:
			run, ok := p.parseCode(true)
			if !ok {
				return children, source.Span{}, false
			}
			inner := run.code
			if run.empty {
				inner = ast.NoExprID
			}
			children = append(children, p.arenas.Exprs.NewJSXExpr(p.span(tok.Span.Start, run.close.Span.End), inner))
		case token.Lt:
			next := p.lx.NextJSXTag()
			if next.Kind == token.Slash {
				closeSpan, ok := p.parseClosingTag(tok, name)
				return children, closeSpan, ok
			}
			child, ok := p.parseMarkupAfter(tok, next)
			children = append(children, child)
			if !ok {
				return children, source.Span{}, false
			}
		default:
			what := "<" + name + ">"
			if name == "" {
				what = "fragment"
			}
			p.errAt(diag.SynUnclosedElement, tok, "unexpected end of file, "+what+" is not closed")
			return children, source.Span{}, false
		}
	}
}

// parseClosingTag finishes </name> after its "</" was read.
func (p *Parser) parseClosingTag(lt token.Token, name string) (source.Span, bool) {
	tok := p.lx.NextJSXTag()
	got := ""
	if tok.Kind == token.JSXName {
		got = tok.Text
		tok = p.lx.NextJSXTag()
	}
	if tok.Kind != token.Gt {
		p.errAt(diag.SynUnexpectedToken, tok, "expected '>' to end the closing tag")
		return p.span(lt.Span.Start, tok.Span.End), false
	}
	sp := p.span(lt.Span.Start, tok.Span.End)
	if got != name {
		want := "</" + name + ">"
		p.report(diag.SynMismatchedClosingTag, diag.SevError, sp, "closing tag </"+got+"> does not match "+want)
		return sp, false
	}
	return sp, true
}

func groupSpan(empty source.Span, entries []ast.AttrEntry) source.Span {
	if len(entries) == 0 {
		return empty
	}
	return entries[0].Span.Cover(entries[len(entries)-1].Span)
}

func describe(tok token.Token) string {
	if tok.Kind == token.Invalid || tok.Text == "" {
		return tok.Kind.String()
	}
	return "'" + tok.Text + "'"
}
