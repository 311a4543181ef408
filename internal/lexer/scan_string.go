package lexer

import (
	"stylename/internal/diag"
	"stylename/internal/token"
)

// scanString reads a '...' or "..." literal. Escapes are skipped, not decoded.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.make(token.String, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
		case '\n':
			tok := lx.make(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanTemplate reads template text up to the closing '`' or the next "${".
// head is true when the opening delimiter was '`' rather than '}'.
func (lx *Lexer) scanTemplate(start Mark, head bool) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == '`':
			if head {
				return lx.make(token.NoSubstTemplate, start)
			}
			return lx.make(token.TemplateTail, start)
		case b == '$' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			if head {
				return lx.make(token.TemplateHead, start)
			}
			return lx.make(token.TemplateMiddle, start)
		}
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedTemplate, tok.Span, "unterminated template literal")
	return tok
}

// scanRegExp reads /body/flags. A '/' inside a character class does not end it.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.BumpWhile(isIdentContinueByte)
			return lx.make(token.RegExp, start)
		case b == '\n':
			lx.cursor.Off--
			tok := lx.make(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedRegExp, tok.Span, "unterminated regular expression")
			return tok
		}
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedRegExp, tok.Span, "unterminated regular expression")
	return tok
}
