package parser

import (
	"fmt"
	"strings"
	"testing"

	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/lexer"
	"stylename/internal/source"
	"stylename/internal/testkit"
)

type parsed struct {
	b    *ast.Builder
	id   ast.FileID
	file *ast.File
	src  *source.File
	bag  *diag.Bag
}

func parse(t *testing.T, path, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, lx, b, Options{Reporter: rep})
	return parsed{b: b, id: res.File, file: b.Files.Get(res.File), src: fs.Get(id), bag: bag}
}

func mustParse(t *testing.T, path, src string) parsed {
	t.Helper()
	p := parse(t, path, src)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	if err := testkit.CheckSpanInvariants(p.b, p.id, p.src); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) text(sp source.Span) string {
	return p.src.Text(sp)
}

// markup returns the markup parts of the file body in order.
func (p parsed) markup(t *testing.T) []ast.ExprID {
	t.Helper()
	code, ok := p.b.Exprs.Code(p.file.Body)
	if !ok {
		t.Fatal("body is not a code run")
	}
	var out []ast.ExprID
	for _, part := range code.Parts {
		if !part.IsText() {
			out = append(out, part.Expr)
		}
	}
	return out
}

func (p parsed) element(t *testing.T, id ast.ExprID) *ast.JSXElementData {
	t.Helper()
	el, ok := p.b.Exprs.JSXElement(id)
	if !ok {
		t.Fatalf("expr %d is %v, not an element", id, p.b.Exprs.Get(id).Kind)
	}
	return el
}
