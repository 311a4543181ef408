// Package testkit holds checks shared by the tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stylename/internal/ast"
	"stylename/internal/source"
)

// CheckSpanInvariants walks a tree and verifies its spans:
//  1. the file span is non-empty, belongs to sf and stays within its content;
//  2. every node taken from source lies inside its nearest source ancestor;
//  3. code parts and element children from source appear in source order
//     without overlapping.
//
// Synthesized nodes have empty spans and are skipped, their children are
// still checked.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.End <= f.Span.Start && len(sf.Content) > 0 {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	c := checker{b: b, file: sf.ID}
	return c.expr(f.Body, f.Span)
}

type checker struct {
	b    *ast.Builder
	file source.FileID
}

// within checks sp against parent and returns the span children are
// checked against.
func (c checker) within(what string, sp, parent source.Span) (source.Span, error) {
	if sp.Empty() {
		return parent, nil
	}
	if sp.File != c.file {
		return parent, fmt.Errorf("%s span %v: file mismatch, want %d", what, sp, c.file)
	}
	if !parent.Contains(sp) {
		return parent, fmt.Errorf("%s span %v is outside %v", what, sp, parent)
	}
	return sp, nil
}

// ordered tracks the end of the previous source span in a sequence.
type ordered struct {
	what string
	end  uint32
}

func (o *ordered) next(sp source.Span) error {
	if sp.Empty() {
		return nil
	}
	if sp.Start < o.end {
		return fmt.Errorf("%s span %v overlaps or precedes the previous one ending at %d", o.what, sp, o.end)
	}
	o.end = sp.End
	return nil
}

func (c checker) expr(id ast.ExprID, parent source.Span) error {
	exprs := c.b.Exprs
	e := exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expression %d", id)
	}
	span, err := c.within(e.Kind.String(), e.Span, parent)
	if err != nil {
		return err
	}

	switch e.Kind {
	case ast.ExprCode:
		code, _ := exprs.Code(id)
		seq := ordered{what: "code part", end: span.Start}
		for _, part := range code.Parts {
			if part.IsText() {
				if _, err := c.within("code text", part.Text, span); err != nil {
					return err
				}
				if err := seq.next(part.Text); err != nil {
					return err
				}
				continue
			}
			if err := c.expr(part.Expr, span); err != nil {
				return err
			}
			if err := seq.next(exprs.Get(part.Expr).Span); err != nil {
				return err
			}
		}
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		if err := c.expr(call.Target, span); err != nil {
			return err
		}
		for _, arg := range call.Args {
			if err := c.expr(arg, span); err != nil {
				return err
			}
		}
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		if err := c.expr(bin.Left, span); err != nil {
			return err
		}
		return c.expr(bin.Right, span)
	case ast.ExprParen:
		p, _ := exprs.Paren(id)
		return c.expr(p.Inner, span)
	case ast.ExprJSXExpr:
		jc, _ := exprs.JSXExpr(id)
		if jc.Inner.IsValid() {
			return c.expr(jc.Inner, span)
		}
	case ast.ExprJSXElement:
		el, _ := exprs.JSXElement(id)
		if g := c.b.Attrs.Get(el.Attrs); g != nil {
			for _, entry := range g.Entries {
				if err := c.attr(entry, span); err != nil {
					return err
				}
			}
		}
		return c.children(el.Children, span)
	case ast.ExprJSXFragment:
		frag, _ := exprs.JSXFragment(id)
		return c.children(frag.Children, span)
	}
	return nil
}

func (c checker) children(ids []ast.ExprID, parent source.Span) error {
	seq := ordered{what: "child", end: parent.Start}
	for _, child := range ids {
		if err := c.expr(child, parent); err != nil {
			return err
		}
		if err := seq.next(c.b.Exprs.Get(child).Span); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) attr(entry ast.AttrEntry, parent source.Span) error {
	span, err := c.within("attribute "+entry.Name, entry.Span, parent)
	if err != nil {
		return err
	}
	if entry.Kind == ast.AttrSpread {
		return c.expr(entry.Spread, span)
	}
	if _, err := c.within("attribute name", entry.NameSpan, span); err != nil {
		return err
	}
	if entry.Init.Present() {
		return c.expr(entry.Init.Value, span)
	}
	return nil
}
