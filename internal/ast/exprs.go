package ast

import (
	"stylename/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Codes      *Arena[ExprCodeData]
	Strings    *Arena[ExprStringData]
	Idents     *Arena[ExprIdentData]
	Calls      *Arena[ExprCallData]
	Binaries   *Arena[ExprBinaryData]
	Parens     *Arena[ExprParenData]
	Elements   *Arena[JSXElementData]
	Fragments  *Arena[JSXFragmentData]
	Containers *Arena[JSXExprData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Codes:      NewArena[ExprCodeData](capHint),
		Strings:    NewArena[ExprStringData](capHint / 4),
		Idents:     NewArena[ExprIdentData](capHint / 4),
		Calls:      NewArena[ExprCallData](capHint / 4),
		Binaries:   NewArena[ExprBinaryData](capHint / 4),
		Parens:     NewArena[ExprParenData](capHint / 4),
		Elements:   NewArena[JSXElementData](capHint),
		Fragments:  NewArena[JSXFragmentData](capHint / 4),
		Containers: NewArena[JSXExprData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewCode creates a code run. Parts are copied.
func (e *Exprs) NewCode(span source.Span, parts []CodePart) ExprID {
	payload := e.Codes.Allocate(ExprCodeData{Parts: append([]CodePart(nil), parts...)})
	return e.new(ExprCode, span, PayloadID(payload))
}

func (e *Exprs) Code(id ExprID) (*ExprCodeData, bool) {
	p, ok := e.payload(id, ExprCode)
	if !ok {
		return nil, false
	}
	return e.Codes.Get(p), true
}

// NewString creates a string literal; raw is "" for synthesized literals.
func (e *Exprs) NewString(span source.Span, value, raw string) ExprID {
	payload := e.Strings.Allocate(ExprStringData{Value: value, Raw: raw})
	return e.new(ExprString, span, PayloadID(payload))
}

func (e *Exprs) StringLit(id ExprID) (*ExprStringData, bool) {
	p, ok := e.payload(id, ExprString)
	if !ok {
		return nil, false
	}
	return e.Strings.Get(p), true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name string, flags EmitFlags) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name, Flags: flags})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, Args: append([]ExprID(nil), args...)})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, PayloadID(payload))
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	p, ok := e.payload(id, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Parens.Get(p), true
}

// NewJSXElement stores an element; data.Children is copied.
func (e *Exprs) NewJSXElement(span source.Span, data JSXElementData) ExprID {
	data.Children = append([]ExprID(nil), data.Children...)
	payload := e.Elements.Allocate(data)
	return e.new(ExprJSXElement, span, PayloadID(payload))
}

func (e *Exprs) JSXElement(id ExprID) (*JSXElementData, bool) {
	p, ok := e.payload(id, ExprJSXElement)
	if !ok {
		return nil, false
	}
	return e.Elements.Get(p), true
}

func (e *Exprs) NewJSXFragment(span source.Span, data JSXFragmentData) ExprID {
	data.Children = append([]ExprID(nil), data.Children...)
	payload := e.Fragments.Allocate(data)
	return e.new(ExprJSXFragment, span, PayloadID(payload))
}

func (e *Exprs) JSXFragment(id ExprID) (*JSXFragmentData, bool) {
	p, ok := e.payload(id, ExprJSXFragment)
	if !ok {
		return nil, false
	}
	return e.Fragments.Get(p), true
}

// NewJSXText creates a text child; its content is the source under span.
func (e *Exprs) NewJSXText(span source.Span) ExprID {
	return e.new(ExprJSXText, span, NoPayloadID)
}

func (e *Exprs) NewJSXExpr(span source.Span, inner ExprID) ExprID {
	payload := e.Containers.Allocate(JSXExprData{Inner: inner})
	return e.new(ExprJSXExpr, span, PayloadID(payload))
}

func (e *Exprs) JSXExpr(id ExprID) (*JSXExprData, bool) {
	p, ok := e.payload(id, ExprJSXExpr)
	if !ok {
		return nil, false
	}
	return e.Containers.Get(p), true
}

// IsMarkup reports whether id is an element or a fragment.
func (e *Exprs) IsMarkup(id ExprID) bool {
	expr := e.Get(id)
	return expr != nil && (expr.Kind == ExprJSXElement || expr.Kind == ExprJSXFragment)
}
