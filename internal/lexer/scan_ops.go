package lexer

import (
	"strings"

	"stylename/internal/token"
)

// операторы в порядке убывания длины, жадный матч
var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

var singleKinds = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'<': token.Lt,
	'>': token.Gt,
	'/': token.Slash,
	'=': token.Assign,
	'.': token.Dot,
	',': token.Comma,
	':': token.Colon,
	'?': token.Question,
	';': token.Semicolon,
}

const singlePuncts = "+-*%&|^!~@"

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]
	for _, p := range punctuators {
		if len(rest) < len(p) || string(rest[:len(p)]) != p {
			continue
		}
		// "?.5" это '?' и число .5
		if p == "?." && len(rest) > 2 && isDec(rest[2]) {
			continue
		}
		lx.cursor.Off += uint32(len(p))
		switch p {
		case "...":
			return lx.make(token.Ellipsis, start)
		case "=>":
			return lx.make(token.Arrow, start)
		}
		return lx.make(token.Punct, start)
	}

	b := lx.cursor.Bump()
	if kind, ok := singleKinds[b]; ok {
		return lx.make(kind, start)
	}
	if strings.IndexByte(singlePuncts, b) >= 0 {
		return lx.make(token.Punct, start)
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(unknownChar, tok.Span, "unexpected character "+tok.Text)
	return tok
}
