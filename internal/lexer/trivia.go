package lexer

import (
	"bytes"

	"stylename/internal/diag"
)

const unknownChar = diag.LexUnknownChar

const (
	nbsp   = "\u00a0"
	zwnbsp = "\ufeff"
)

// skipTrivia пропускает пробелы, переводы строк, комментарии и hashbang.
// Their text stays in the source and is copied verbatim by the printer.
func (lx *Lexer) skipTrivia() {
	if lx.cursor.Off == 0 && lx.cursor.HasPrefix("#!") {
		lx.skipLine()
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			lx.cursor.Bump()
		case lx.cursor.HasPrefix(nbsp):
			lx.cursor.Skip(uint32(len(nbsp)))
		case lx.cursor.HasPrefix(zwnbsp):
			lx.cursor.Skip(uint32(len(zwnbsp)))
		case lx.cursor.HasPrefix("//"):
			lx.skipLine()
		case lx.cursor.HasPrefix("/*"):
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipLine() {
	lx.cursor.BumpWhile(func(b byte) bool { return b != '\n' })
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Skip(2)
	if i := bytes.Index(lx.cursor.Rest(), []byte("*/")); i >= 0 {
		lx.cursor.Skip(uint32(i) + 2)
		return
	}
	lx.cursor.Skip(uint32(len(lx.cursor.Rest())))
	lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
