package ast

import (
	"stylename/internal/source"
)

// JSXElementData describes <Name attrs...>children</Name> or <Name attrs... />.
// Open, OpenEnd and Close are the verbatim pieces of the tags around the
// attribute group; they are empty on synthesized elements.
type JSXElementData struct {
	Name        string
	Open        source.Span // "<Name"
	Attrs       AttrGroupID
	OpenEnd     source.Span // trivia + ">" or "/>"
	SelfClosing bool
	Children    []ExprID
	Close       source.Span // "</Name>"
}

type JSXFragmentData struct {
	Open     source.Span // "<>"
	Children []ExprID
	Close    source.Span // "</>"
}

// JSXExprData is a container. Inner is NoExprID when the braces hold nothing
// but trivia.
type JSXExprData struct {
	Inner ExprID
}
