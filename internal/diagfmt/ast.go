package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stylename/internal/ast"
	"stylename/internal/source"
)

// ASTNodeOutput is one node of the JSON tree dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// BuildAST converts a file into the generic node tree. Code runs are listed
// only through the markup they contain; verbatim text goes into Text when
// fs is given.
func BuildAST(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	d := dumper{b: builder, fs: fs}
	root := ASTNodeOutput{
		Type: "File",
		Span: file.Span,
		Fields: map[string]any{
			"path":        file.Path,
			"variant":     file.Variant.String(),
			"declaration": file.IsDeclaration(),
		},
	}
	root.Children = append(root.Children, d.expr(file.Body))
	return root, nil
}

type dumper struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (d dumper) text(sp source.Span) string {
	if d.fs == nil || sp.Empty() {
		return ""
	}
	if f := d.fs.Get(sp.File); f != nil {
		return f.Text(sp)
	}
	return ""
}

func (d dumper) expr(id ast.ExprID) ASTNodeOutput {
	exprs := d.b.Exprs
	e := exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "<nil>"}
	}
	node := ASTNodeOutput{Type: e.Kind.String(), Span: e.Span}
	switch e.Kind {
	case ast.ExprCode:
		code, _ := exprs.Code(id)
		for _, part := range code.Parts {
			if !part.IsText() {
				node.Children = append(node.Children, d.expr(part.Expr))
			}
		}
		node.Text = d.text(e.Span)
	case ast.ExprString:
		lit, _ := exprs.StringLit(id)
		node.Text = lit.Value
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		node.Text = ident.Name
		if ident.Flags != 0 {
			node.Fields = map[string]any{"helper": ident.Flags&ast.EmitHelperName != 0}
		}
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		node.Children = append(node.Children, d.expr(call.Target))
		for _, arg := range call.Args {
			node.Children = append(node.Children, d.expr(arg))
		}
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		node.Text = bin.Op.String()
		node.Children = []ASTNodeOutput{d.expr(bin.Left), d.expr(bin.Right)}
	case ast.ExprParen:
		p, _ := exprs.Paren(id)
		node.Children = []ASTNodeOutput{d.expr(p.Inner)}
	case ast.ExprJSXText:
		node.Text = d.text(e.Span)
	case ast.ExprJSXExpr:
		c, _ := exprs.JSXExpr(id)
		if c.Inner.IsValid() {
			node.Children = []ASTNodeOutput{d.expr(c.Inner)}
		}
	case ast.ExprJSXElement:
		el, _ := exprs.JSXElement(id)
		node.Text = el.Name
		node.Fields = map[string]any{"self_closing": el.SelfClosing}
		if g := d.b.Attrs.Get(el.Attrs); g != nil {
			for _, entry := range g.Entries {
				node.Children = append(node.Children, d.attr(entry))
			}
		}
		for _, child := range el.Children {
			node.Children = append(node.Children, d.expr(child))
		}
	case ast.ExprJSXFragment:
		frag, _ := exprs.JSXFragment(id)
		for _, child := range frag.Children {
			node.Children = append(node.Children, d.expr(child))
		}
	}
	return node
}

func (d dumper) attr(entry ast.AttrEntry) ASTNodeOutput {
	if entry.Kind == ast.AttrSpread {
		return ASTNodeOutput{Type: "Spread", Span: entry.Span, Children: []ASTNodeOutput{d.expr(entry.Spread)}}
	}
	node := ASTNodeOutput{Type: "Attr", Span: entry.Span, Text: entry.Name}
	if entry.Init.Present() {
		node.Children = []ASTNodeOutput{d.expr(entry.Init.Value)}
	}
	return node
}

// FormatASTJSON writes the tree as indented JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// FormatASTPretty writes the tree with box-drawing guides.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "File %s [%s] (span: %s)\n", root.Fields["path"], root.Fields["variant"], formatSpan(root.Span, fs))
	writeChildren(w, root.Children, "", fs)
	return nil
}

func writeChildren(w io.Writer, nodes []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		label := n.Type
		if n.Text != "" && n.Type != "Code" {
			label += " " + fmt.Sprintf("%q", n.Text)
		}
		if !n.Span.Empty() {
			label += " (span: " + formatSpan(n.Span, fs) + ")"
		} else {
			label += " (synthesized)"
		}
		fmt.Fprintln(w, prefix+branch+strings.TrimSpace(label))
		writeChildren(w, n.Children, prefix+next, fs)
	}
}
