package parser

import (
	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/lexer"
	"stylename/internal/source"
	"stylename/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// ForceJSX parses markup regardless of the file extension.
	ForceJSX bool
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser: состояние парсера на один файл.
// The parser holds no lookahead token: every mode switch of the lexer happens
// exactly at the end of the last token it returned.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	fs     *source.FileSet
	file   *source.File
	opts   Options
	markup bool
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	f := lx.File()
	flags, variant := ast.FileInfo(f.Path)
	if opts.ForceJSX {
		variant = ast.VariantJSX
	}
	p := Parser{
		lx:     lx,
		arenas: arenas,
		fs:     fs,
		file:   f,
		opts:   opts,
		markup: variant == ast.VariantJSX,
	}

	body, _ := p.parseCode(false)
	span := p.span(0, uint32(len(f.Content)))
	id := arenas.NewFile(ast.File{
		Path:    f.Path,
		Span:    span,
		Flags:   flags,
		Variant: variant,
		Body:    body.code,
	})
	return Result{File: id, Errors: p.opts.CurrentErrors}
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

// репортует ошибку на указанном токене
func (p *Parser) errAt(code diag.Code, tok token.Token, msg string) {
	sp := tok.Span
	if tok.Kind == token.EOF {
		sp = p.span(tok.Span.Start, tok.Span.Start)
	}
	p.report(code, diag.SevError, sp, msg)
}
