package lexer

import (
	"stylename/internal/source"
	"stylename/internal/token"
)

// Lexer scans JavaScript/TypeScript tokens and, on request, JSX markup tokens.
// The parser drives mode switches: Next for code, NextJSXTag inside a tag,
// NextJSXChild between tags, ContinueTemplate after a substitution's '}'.
// There is no lookahead buffer, so a mode switch always starts at the end of
// the last returned token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	prev   token.Token // последний значимый токен
	seen   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Offset returns the current byte offset.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next returns the next code token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return lx.emptyEOF()
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '#' || ch == '\\':
		tok = lx.scanIdent()
	case ch >= 0x80:
		r, _ := lx.peekRune()
		if isIdentStartRune(r) {
			tok = lx.scanIdent()
		} else {
			lx.bumpRune()
			tok = lx.make(token.Invalid, start)
			lx.errLex(unknownChar, tok.Span, "unexpected character "+tok.Text)
		}
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		lx.cursor.Bump()
		tok = lx.scanTemplate(start, true)
	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegExp()
	default:
		tok = lx.scanPunct()
	}

	lx.remember(tok)
	return tok
}

// ContinueTemplate scans the template text following a substitution. It must
// be called right after the '}' that closes "${...}" was returned by Next.
func (lx *Lexer) ContinueTemplate(rbrace token.Token) token.Token {
	lx.cursor.Reset(Mark(rbrace.Span.End))
	tok := lx.scanTemplate(Mark(rbrace.Span.Start), false)
	lx.remember(tok)
	return tok
}

// MarkOperandEnd tells the lexer that an operand (a markup element) just
// ended, so a following '/' is a division.
func (lx *Lexer) MarkOperandEnd() {
	lx.prev = token.Token{Kind: token.RParen, Text: ")"}
	lx.seen = true
}

// ExprAllowed reports whether an operand may start at the current position.
func (lx *Lexer) ExprAllowed() bool {
	return lx.regexAllowed()
}

func (lx *Lexer) regexAllowed() bool {
	return !lx.seen || !lx.prev.EndsExpression()
}

func (lx *Lexer) remember(tok token.Token) {
	if tok.Kind == token.EOF {
		return
	}
	lx.prev = tok
	lx.seen = true
}

func (lx *Lexer) emptyEOF() token.Token {
	off := lx.cursor.Off
	return token.Token{Kind: token.EOF, Span: source.Span{File: lx.file.ID, Start: off, End: off}}
}
