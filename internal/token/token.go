package token

import (
	"stylename/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// keywords after which an expression (and so a regexp or markup) may start.
var exprKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "instanceof": {}, "in": {}, "of": {},
	"new": {}, "delete": {}, "void": {}, "throw": {}, "case": {},
	"do": {}, "else": {}, "yield": {}, "await": {}, "default": {},
	"extends": {}, "export": {},
}

// EndsExpression reports whether the token can be the last token of an
// operand. A following '<' is then a comparison and '/' a division.
func (t Token) EndsExpression() bool {
	switch t.Kind {
	case Ident:
		_, kw := exprKeywords[t.Text]
		return !kw
	case Number, String, NoSubstTemplate, TemplateTail, RegExp, RParen, RBracket, RBrace:
		return true
	case Punct:
		// постфиксные ++/-- считаем концом операнда
		return t.Text == "++" || t.Text == "--"
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier with the given text.
func (t Token) IsIdent(text string) bool { return t.Kind == Ident && t.Text == text }
