package lexer

import (
	"stylename/internal/token"
)

// scanNumber accepts decimal, hex/octal/binary, exponents, separators and
// the bigint suffix. Validation is left to the host compiler.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			lx.cursor.Skip(2)
			lx.cursor.BumpWhile(isIdentContinueByte)
			return lx.make(token.Number, start)
		}
	}
	for {
		b := lx.cursor.Peek()
		switch {
		case isDec(b) || b == '_' || b == '.':
			lx.cursor.Bump()
		case b == 'e' || b == 'E':
			lx.cursor.Bump()
			if n := lx.cursor.Peek(); n == '+' || n == '-' {
				lx.cursor.Bump()
			}
		case b == 'n':
			lx.cursor.Bump()
			return lx.make(token.Number, start)
		default:
			return lx.make(token.Number, start)
		}
	}
}
