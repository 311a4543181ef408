package driver

import (
	"fortio.org/safecast"

	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/lexer"
	"stylename/internal/parser"
	"stylename/internal/source"
	"stylename/internal/token"
)

// ParseResult is the tree of one file before any rewriting.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// TokenizeResult: токены в режиме кода, последний всегда EOF.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func loadSingle(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

// Parse loads and parses one file for `stylename parse`.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	limit, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	fs, file, err := loadSingle(path)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{FileSet: fs, File: file, Builder: ast.NewBuilder(ast.Hints{}), Bag: diag.NewBag(maxDiagnostics)}
	rep := diag.BagReporter{Bag: res.Bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res.FileID = parser.ParseFile(fs, lx, res.Builder, parser.Options{Reporter: rep, MaxErrors: limit}).File
	return res, nil
}

// Tokenize scans one file in plain code mode.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs, file, err := loadSingle(path)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{FileSet: fs, File: file, Bag: diag.NewBag(maxDiagnostics)}
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	for {
		tok := lx.Next()
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EOF {
			return res, nil
		}
	}
}
