package lexer

import (
	"stylename/internal/diag"
	"stylename/internal/token"
)

// NextJSXTag returns the next token inside a markup tag: names, '=', quoted
// attribute strings, '{', '/', '>' and '<'. Whitespace and comments are skipped.
func (lx *Lexer) NextJSXTag() token.Token {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return lx.emptyEOF()
	}
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch >= 0x80:
		tok = lx.scanJSXName()
	case ch == '"' || ch == '\'':
		tok = lx.scanJSXString(ch)
	default:
		lx.cursor.Bump()
		kind, ok := singleKinds[ch]
		if !ok || (kind != token.LBrace && kind != token.RBrace && kind != token.Lt &&
			kind != token.Gt && kind != token.Slash && kind != token.Assign) {
			kind = token.Invalid
		}
		tok = lx.make(kind, start)
	}
	lx.remember(tok)
	return tok
}

// NextJSXChild returns JSX text up to the next '{' or '<', or one of those.
func (lx *Lexer) NextJSXChild() token.Token {
	if lx.cursor.EOF() {
		return lx.emptyEOF()
	}
	start := lx.cursor.Mark()
	var tok token.Token
	switch lx.cursor.Peek() {
	case '{':
		lx.cursor.Bump()
		tok = lx.make(token.LBrace, start)
	case '<':
		lx.cursor.Bump()
		tok = lx.make(token.Lt, start)
	default:
		lx.cursor.BumpWhile(func(b byte) bool { return b != '{' && b != '<' })
		tok = lx.make(token.JSXText, start)
	}
	lx.remember(tok)
	return tok
}

// scanJSXName reads div, my-element, svg:rect or Foo.Bar.Baz as one name.
func (lx *Lexer) scanJSXName() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '-':
			lx.cursor.Bump()
		case (b == ':' || b == '.') && isIdentStartByte(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
		case b >= 0x80:
			r, _ := lx.peekRune()
			if !isIdentContinueRune(r) {
				return lx.make(token.JSXName, start)
			}
			lx.bumpRune()
		default:
			return lx.make(token.JSXName, start)
		}
	}
	return lx.make(token.JSXName, start)
}

// scanJSXString reads an attribute string. JSX strings have no escapes and
// may span lines.
func (lx *Lexer) scanJSXString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == quote {
			return lx.make(token.JSXString, start)
		}
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedJSXString, tok.Span, "unterminated attribute string")
	return tok
}

// LooksLikeMarkup is called right after a '<' in operand position. It peeks
// at the raw bytes to tell an element or fragment from a TypeScript type
// parameter list such as <T,>(x) => x.
func (lx *Lexer) LooksLikeMarkup() bool {
	content := lx.file.Content
	i := int(lx.cursor.Off)
	skip := func() {
		for i < len(content) && isSpace(content[i]) {
			i++
		}
	}
	skip()
	if i >= len(content) {
		return false
	}
	if content[i] == '>' {
		return true
	}
	if !isIdentStartByte(content[i]) && content[i] < 0x80 {
		return false
	}
	for i < len(content) && (isIdentContinueByte(content[i]) || content[i] == '-' ||
		content[i] == '.' || content[i] == ':' || content[i] >= 0x80) {
		i++
	}
	skip()
	if i >= len(content) {
		return false
	}
	switch content[i] {
	case ',', '=':
		return false
	}
	const kw = "extends"
	if i+len(kw) < len(content) && string(content[i:i+len(kw)]) == kw && isSpace(content[i+len(kw)]) {
		return false
	}
	return true
}
