package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stylename/internal/diag"
	"stylename/internal/source"
)

// ErrNoOutput: neither OutDir nor Suffix is set, so writing would replace
// the input.
var ErrNoOutput = errors.New("no output location: set an output dir or a suffix")

// TransformFile loads and transforms one file. The returned error covers
// load and write failures; rewrite failures are in FileResult.Err.
func TransformFile(ctx context.Context, path string, opts *Options) (*FileResult, error) {
	if opts == nil {
		opts = &Options{}
	}
	base := opts.BaseDir
	if base == "" {
		base = filepath.Dir(path)
	}
	fs := source.NewFileSetWithBase(base)
	var id source.FileID
	err := loadPhase(opts, path, func() (err error) {
		id, err = fs.Load(path)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := TransformSource(ctx, fs, id, opts)
	if err := writeResult(res, opts); err != nil {
		return res, err
	}
	return res, nil
}

func loadPhase(opts *Options, path string, fn func() error) error {
	opts.observe(PhaseEvent{File: path, Name: PhaseLoad, Status: PhaseStart})
	start := time.Now()
	err := fn()
	opts.observe(PhaseEvent{File: path, Name: PhaseLoad, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// OutputPath computes where the result for path goes.
//
//	OutDir set:  OutDir/<path relative to BaseDir>
//	otherwise:   <dir>/<name><Suffix><ext>, app.jsx -> app.out.jsx
func OutputPath(path string, opts *Options) (string, error) {
	if opts.OutDir != "" {
		rel := filepath.Base(path)
		if opts.BaseDir != "" {
			if r, err := filepath.Rel(opts.BaseDir, path); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
		return filepath.Join(opts.OutDir, rel), nil
	}
	if opts.Suffix == "" {
		return "", ErrNoOutput
	}
	ext := filepath.Ext(path)
	if source.IsDeclarationPath(path) {
		// a.d.ts -> a.out.d.ts
		if i := strings.LastIndex(strings.ToLower(path), ".d."); i >= 0 {
			ext = path[i:]
		}
	}
	return strings.TrimSuffix(path, ext) + opts.Suffix + ext, nil
}

func writeResult(res *FileResult, opts *Options) error {
	if !opts.Write || res.Failed() || !res.Changed {
		return nil
	}
	out, err := OutputPath(res.Path, opts)
	if err != nil {
		return err
	}
	res.OutPath = out
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return reportWrite(res, err)
	}
	if err := os.WriteFile(out, res.Text, 0o644); err != nil {
		return reportWrite(res, err)
	}
	return nil
}

func reportWrite(res *FileResult, err error) error {
	diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOWriteError, source.Span{File: res.FileID}, err.Error()).Emit()
	return fmt.Errorf("write %s: %w", res.OutPath, err)
}
