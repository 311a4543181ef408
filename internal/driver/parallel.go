package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stylename/internal/diag"
	"stylename/internal/observ"
	"stylename/internal/source"
	"stylename/internal/trace"
)

// DirResult holds every file result of TransformDir in path order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*FileResult
	Timing  *observ.Report
}

// Failed counts files without output.
func (r *DirResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

// Bag merges all per-file bags.
func (r *DirResult) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	for _, f := range r.Files {
		if f != nil {
			bag.Merge(f.Bag)
		}
	}
	return bag
}

// ListFiles возвращает отсортированный список файлов с нужными расширениями.
func ListFiles(dir string, opts *Options) ([]string, error) {
	exts := opts.extensions()
	var outDir string
	if opts != nil && opts.OutDir != "" {
		outDir, _ = filepath.Abs(opts.OutDir)
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && opts.excluded(d.Name()) {
				return filepath.SkipDir
			}
			if abs, absErr := filepath.Abs(path); absErr == nil && outDir != "" && abs == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) && !isOutput(path, opts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// isOutput reports whether path looks like an earlier suffixed output.
func isOutput(path string, opts *Options) bool {
	if opts == nil || opts.OutDir != "" || opts.Suffix == "" {
		return false
	}
	ext := filepath.Ext(path)
	if source.IsDeclarationPath(path) {
		if i := strings.LastIndex(strings.ToLower(path), ".d."); i >= 0 {
			ext = path[i:]
		}
	}
	return strings.HasSuffix(strings.TrimSuffix(path, ext), opts.Suffix)
}

// TransformDir transforms every matching file under dir in parallel. Files
// are loaded up front; workers share the FileSet read-only.
func TransformDir(ctx context.Context, dir string, opts *Options) (*DirResult, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.BaseDir == "" {
		cp := *opts
		cp.BaseDir = dir
		opts = &cp
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "transform-dir:"+dir)
	defer span.End("")

	files, err := ListFiles(dir, opts)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	result := &DirResult{FileSet: fileSet, Files: make([]*FileResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	fileIDs := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		loadErrs[i] = loadPhase(opts, path, func() (err error) {
			fileIDs[i], err = fileSet.Load(path)
			return err
		})
		if loadErrs[i] != nil {
			// placeholder so the diagnostic has a file to point at
			fileIDs[i] = fileSet.AddVirtual(path, nil)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var totals *observ.Totals
	if opts.EnableTimings {
		totals = observ.NewTotals()
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: fileIDs[i]}, loadErrs[i].Error()))
				result.Files[i] = &FileResult{Path: path, FileSet: fileSet, FileID: fileIDs[i], Bag: bag, Err: loadErrs[i]}
				return nil
			}
			res := TransformSource(gctx, fileSet, fileIDs[i], opts)
			if err := writeResult(res, opts); err != nil {
				res.Err = err
			}
			if totals != nil && res.Timing != nil {
				totals.Add(*res.Timing)
			}
			result.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	if totals != nil {
		report := totals.Report()
		result.Timing = &report
	}
	return result, nil
}
