package parser

import (
	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/token"
)

type codeRun struct {
	code  ast.ExprID
	close token.Token // the '}' that ended a nested run
	empty bool        // no tokens besides trivia
}

type braceKind uint8

const (
	braceBlock braceKind = iota
	braceSubst
)

// parseCode scans host-language code from the current lexer position. With
// nested set, it stops at the '}' that closes the surrounding container;
// otherwise it runs to EOF. Markup in operand position is parsed into
// elements and spliced into the run between verbatim text parts.
func (p *Parser) parseCode(nested bool) (codeRun, bool) {
	start := p.lx.Offset()
	textStart := start
	var (
		parts  []ast.CodePart
		braces []braceKind
		prev   token.Token
		seen   bool
		empty  = true
	)
	flush := func(end uint32) {
		if end > textStart {
			parts = append(parts, ast.CodePart{Text: p.span(textStart, end)})
		}
	}
	finish := func(end uint32, closeTok token.Token) codeRun {
		flush(end)
		return codeRun{
			code:  p.arenas.Exprs.NewCode(p.span(start, end), parts),
			close: closeTok,
			empty: empty,
		}
	}

	for {
		tok := p.lx.Next()
		switch tok.Kind {
		case token.EOF:
			if nested {
				p.errAt(diag.SynUnclosedBrace, tok, "expected '}' to close the expression container")
				return finish(tok.Span.Start, tok), false
			}
			if len(braces) > 0 {
				p.errAt(diag.SynUnclosedBrace, tok, "unexpected end of file, unclosed '{'")
			}
			return finish(tok.Span.Start, tok), true
		case token.LBrace:
			braces = append(braces, braceBlock)
		case token.TemplateHead:
			braces = append(braces, braceSubst)
		case token.RBrace:
			if len(braces) == 0 {
				if nested {
					return finish(tok.Span.Start, tok), true
				}
				break
			}
			top := braces[len(braces)-1]
			braces = braces[:len(braces)-1]
			if top == braceSubst {
				tok = p.lx.ContinueTemplate(tok)
				switch tok.Kind {
				case token.TemplateMiddle:
					braces = append(braces, braceSubst)
				case token.Invalid:
					return finish(tok.Span.End, tok), false
				}
			}
		case token.Lt:
			if p.markup && (!seen || !prev.EndsExpression()) && p.lx.LooksLikeMarkup() {
				flush(tok.Span.Start)
				el, ok := p.parseMarkup(tok)
				parts = append(parts, ast.CodePart{Expr: el})
				end := p.arenas.Exprs.Get(el).Span.End
				textStart = end
				p.lx.MarkOperandEnd()
				prev, seen, empty = token.Token{Kind: token.RParen}, true, false
				if !ok {
					return finish(end, token.Token{}), false
				}
				continue
			}
		}
		prev, seen, empty = tok, true, false
	}
}
