package ast

import (
	"stylename/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprCode is host-language code kept verbatim, interleaved with markup.
	ExprCode ExprKind = iota
	// ExprString is a string literal.
	ExprString
	// ExprIdent represents an identifier expression.
	ExprIdent
	// ExprCall represents a function call expression.
	ExprCall
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprParen represents a parenthesized expression.
	ExprParen
	ExprJSXElement
	ExprJSXFragment
	ExprJSXText
	// ExprJSXExpr is a "{...}" container, as a child or an attribute value.
	ExprJSXExpr
)

var exprKindNames = [...]string{
	ExprCode:        "Code",
	ExprString:      "String",
	ExprIdent:       "Ident",
	ExprCall:        "Call",
	ExprBinary:      "Binary",
	ExprParen:       "Paren",
	ExprJSXElement:  "JSXElement",
	ExprJSXFragment: "JSXFragment",
	ExprJSXText:     "JSXText",
	ExprJSXExpr:     "JSXExpr",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr represents an expression node in the AST.
// Span is empty for synthesized nodes; the printer lays those out itself.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	}
	return "?"
}

// EmitFlags carry printer hints on synthesized identifiers.
type EmitFlags uint8

const (
	// EmitHelperName marks a reference to an injected runtime helper.
	EmitHelperName EmitFlags = 1 << iota
	// AdviseOnEmit asks the emitter to resolve the name against the helper
	// set (e.g. a module-qualified import) instead of printing it blindly.
	AdviseOnEmit
)

// CodePart is one piece of a code run: either verbatim source text or a
// nested expression (markup found inside the code).
type CodePart struct {
	Text source.Span
	Expr ExprID
}

func (p CodePart) IsText() bool { return !p.Expr.IsValid() }

type ExprCodeData struct {
	Parts []CodePart
}

// ExprStringData: Raw is the literal as written (with quotes) for nodes from
// source; synthesized literals leave it empty and are printed from Value.
type ExprStringData struct {
	Value string
	Raw   string
}

type ExprIdentData struct {
	Name  string
	Flags EmitFlags
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprParenData struct {
	Inner ExprID
}
