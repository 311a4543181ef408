package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"stylename/internal/ast"
	"stylename/internal/diag"
	"stylename/internal/helper"
	"stylename/internal/lexer"
	"stylename/internal/observ"
	"stylename/internal/parser"
	"stylename/internal/printer"
	"stylename/internal/source"
	"stylename/internal/trace"
	"stylename/internal/transform"
)

var (
	// ErrSyntax: the file did not parse; nothing was transformed.
	ErrSyntax = errors.New("syntax errors")
	// ErrWarningsAsErrors: warnings were promoted and the file is rejected.
	ErrWarningsAsErrors = errors.New("warnings treated as errors")
)

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string
	OutPath string
	FileSet *source.FileSet
	FileID  source.FileID

	// Builder, Input and Output are nil/zero for cache hits and skipped files.
	Builder *ast.Builder
	Input   ast.FileID
	Output  ast.FileID
	Helpers []helper.EmitHelper

	// Text is the emitted file. Nil when Err is set.
	Text    []byte
	Changed bool
	Cached  bool

	Bag    *diag.Bag
	Timing *observ.Report
	Err    error
}

// Failed reports whether the file produced no output.
func (r *FileResult) Failed() bool {
	return r == nil || r.Err != nil
}

type run struct {
	ctx   context.Context
	opts  *Options
	res   *FileResult
	timer *observ.Timer
}

// phase runs fn as a named stage: timer, trace span and observer events.
func (r *run) phase(name string, fn func() error) error {
	_, span := trace.Start(r.ctx, trace.ScopeStage, name)
	r.opts.observe(PhaseEvent{File: r.res.Path, Name: name, Status: PhaseStart})
	start := time.Now()
	err := r.timer.Measure(name, fn)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	r.opts.observe(PhaseEvent{File: r.res.Path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	return err
}

// TransformSource parses, rewrites and prints a file already in fs. The
// FileSet is only read, so several goroutines may share it.
func TransformSource(ctx context.Context, fs *source.FileSet, id source.FileID, opts *Options) *FileResult {
	if opts == nil {
		opts = &Options{}
	}
	file := fs.Get(id)
	res := &FileResult{FileSet: fs, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	if file == nil {
		res.Err = fmt.Errorf("file %d not found", id)
		return res
	}
	res.Path = file.Path

	ctx, span := trace.Start(trace.WithFile(ctx, file.Path), trace.ScopeFile, "file")
	r := &run{ctx: ctx, opts: opts, res: res}
	if opts.EnableTimings {
		r.timer = observ.NewTimer()
	}
	defer func() {
		if r.timer != nil {
			report := r.timer.Report()
			res.Timing = &report
			appendTimingDiagnostic(res.Bag, source.Span{File: id}, timingPayload{
				Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases,
			})
		}
		status := "ok"
		switch {
		case res.Err != nil:
			status = res.Err.Error()
		case res.Cached:
			status = "cached"
		}
		span.WithExtra("changed", fmt.Sprint(res.Changed)).End(status)
	}()

	key := cacheKey(file, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache", "read failed: "+err.Error())
		}
		if ok && payload.restore(res) {
			trace.Point(ctx, trace.ScopeFile, "cache", "hit")
			res.finish(opts)
			return res
		}
	}

	// декларации и не-JSX файлы не разбираем: отдаём как есть
	if flags, variant := ast.FileInfo(file.Path); flags&ast.FileDeclaration != 0 || variant != ast.VariantJSX {
		trace.Point(ctx, trace.ScopeFile, "skip", "not eligible")
		res.Text = file.Content
		return res
	}

	rep := fileReporter(ctx, res.Bag)
	res.Builder = ast.NewBuilder(ast.Hints{})

	err := r.phase(PhaseParse, func() error {
		maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
		if err != nil {
			return err
		}
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		parsed := parser.ParseFile(fs, lx, res.Builder, parser.Options{Reporter: rep, MaxErrors: maxErrors})
		res.Input = parsed.File
		if res.Bag.HasErrors() {
			return ErrSyntax
		}
		return nil
	})
	if err != nil {
		res.Err = err
		return res
	}

	tctx := transform.NewContext(file)
	err = r.phase(PhaseTransform, func() error {
		out, err := transform.New(res.Builder, rep, opts.Transform).TransformFile(tctx, res.Input)
		if n := rep.Suppressed(); n > 0 {
			trace.Point(ctx, trace.ScopeFile, "dedup", strconv.Itoa(n)+" repeated diagnostics dropped")
		}
		if err != nil {
			reportTransformError(rep, id, err)
			return err
		}
		res.Output = out
		return nil
	})
	if err != nil {
		res.Err = err
		return res
	}

	_ = r.phase(PhaseEmit, func() error {
		res.Helpers = tctx.Helpers()
		emitted := res.Helpers
		if opts.OmitHelper {
			emitted = nil
		}
		res.Text = printer.Print(res.Builder, file, res.Output, emitted)
		res.Changed = !bytes.Equal(res.Text, file.Content)
		return nil
	})

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newDiskPayload(res)); err != nil {
			diag.ReportInfo(rep, diag.IOCacheError, source.Span{File: id}, "cache write failed: "+err.Error()).Emit()
		}
	}
	res.finish(opts)
	return res
}

// finish applies the warnings policy once diagnostics are final.
func (res *FileResult) finish(opts *Options) {
	if opts.WarningsAsErrors && res.Bag.HasWarnings() && !res.Bag.HasErrors() {
		res.Bag.PromoteWarnings()
		res.Err = ErrWarningsAsErrors
		res.Text = nil
	}
}

// reportTransformError turns a rewrite failure into a diagnostic.
func reportTransformError(rep diag.Reporter, id source.FileID, err error) {
	var empty *transform.EmptyInitializerError
	var dup *transform.DuplicateStyleNameError
	switch {
	case errors.As(err, &empty):
		diag.ReportError(rep, diag.StyEmptyInitializer, empty.Span, empty.Error()).Emit()
	case errors.As(err, &dup):
		diag.ReportError(rep, diag.StyDuplicateStyleName, dup.Second, dup.Error()).
			WithNote(dup.First, "first given here").
			Emit()
	default:
		diag.ReportError(rep, diag.UnknownCode, source.Span{File: id}, err.Error()).Emit()
	}
}
