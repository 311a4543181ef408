package lexer

import (
	"stylename/internal/token"
)

// scanIdent reads an identifier, a keyword or a private name (#x).
// Unicode escapes (\uXXXX) are consumed as part of the name without decoding.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b):
			lx.cursor.Bump()
		case b == '\\' && lx.cursor.PeekAt(1) == 'u':
			lx.cursor.Off += 2
			if lx.cursor.Eat('{') {
				for !lx.cursor.EOF() && lx.cursor.Bump() != '}' {
				}
				continue
			}
			for i := 0; i < 4 && !lx.cursor.EOF(); i++ {
				lx.cursor.Bump()
			}
		case b >= 0x80:
			r, _ := lx.peekRune()
			if !isIdentContinueRune(r) {
				return lx.identToken(start)
			}
			lx.bumpRune()
		default:
			return lx.identToken(start)
		}
	}
	return lx.identToken(start)
}

func (lx *Lexer) identToken(start Mark) token.Token {
	tok := lx.make(token.Ident, start)
	if tok.Span.Empty() {
		// одиночный '\' без 'u'
		lx.cursor.Bump()
		tok = lx.make(token.Invalid, start)
		lx.errLex(unknownChar, tok.Span, "unexpected character "+tok.Text)
	}
	return tok
}
