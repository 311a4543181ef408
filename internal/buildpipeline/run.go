// Package buildpipeline runs the driver over a file or a directory and
// reports per-file progress.
package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"stylename/internal/diag"
	"stylename/internal/driver"
	"stylename/internal/observ"
	"stylename/internal/source"
)

// Request configures one run.
type Request struct {
	// TargetPath is a file or a directory.
	TargetPath string
	// BaseDir is the root display paths are relative to.
	BaseDir  string
	Options  driver.Options
	Progress ProgressSink
}

// Result collects the per-file outcomes of a run.
type Result struct {
	FileSet *source.FileSet
	Files   []*driver.FileResult
	// Display holds the progress path of every entry in Files.
	Display []string
	Timings Timings
	Report  *observ.Report
}

// Bag merges all per-file diagnostics.
func (r *Result) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	for _, f := range r.Files {
		if f != nil {
			bag.Merge(f.Bag)
		}
	}
	return bag
}

// Failed counts files without output.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

type phaseObserver struct {
	sink    ProgressSink
	base    string
	next    driver.PhaseObserver
	mu      sync.Mutex
	timings Timings
}

// OnPhase turns driver phase events into progress events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p.next != nil {
		p.next(ev)
	}
	stage := Stage(ev.Name)
	if ev.Status == driver.PhaseEnd {
		p.mu.Lock()
		p.timings.Add(stage, ev.Elapsed)
		p.mu.Unlock()
	}
	if p.sink == nil {
		return
	}
	file := displayPath(ev.File, p.base)
	switch {
	case ev.Status == driver.PhaseStart:
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusWorking})
	case ev.Err != nil:
		p.sink.OnEvent(Event{File: file, Stage: stage, Status: StatusError, Err: ev.Err, Elapsed: ev.Elapsed})
	}
}

// Run transforms TargetPath. The error covers setup failures and write
// failures of single-file runs; per-file failures are in the results.
func Run(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing request")
	}
	info, err := os.Stat(req.TargetPath)
	if err != nil {
		return result, err
	}

	opts := req.Options
	base := absBase(req.BaseDir)
	obs := &phaseObserver{sink: req.Progress, base: base, next: opts.PhaseObserver}
	opts.PhaseObserver = obs.OnPhase

	if info.IsDir() {
		files, err := driver.ListFiles(req.TargetPath, &opts)
		if err != nil {
			return result, err
		}
		emitQueued(req.Progress, normalizeProgressFiles(files, base))
		dirRes, err := driver.TransformDir(ctx, req.TargetPath, &opts)
		if dirRes != nil {
			result.FileSet = dirRes.FileSet
			result.Files = dirRes.Files
			result.Report = dirRes.Timing
		}
		finish(&result, obs, req.Progress, base)
		return result, err
	}

	emitQueued(req.Progress, []string{displayPath(req.TargetPath, base)})
	fileRes, err := driver.TransformFile(ctx, req.TargetPath, &opts)
	if fileRes != nil {
		result.FileSet = fileRes.FileSet
		result.Files = []*driver.FileResult{fileRes}
		result.Report = fileRes.Timing
	}
	finish(&result, obs, req.Progress, base)
	return result, err
}

func finish(result *Result, obs *phaseObserver, sink ProgressSink, base string) {
	obs.mu.Lock()
	result.Timings = obs.timings
	obs.mu.Unlock()

	result.Display = make([]string, len(result.Files))
	for i, f := range result.Files {
		if f == nil {
			continue
		}
		result.Display[i] = displayPath(f.Path, base)
		if sink == nil {
			continue
		}
		ev := Event{File: result.Display[i], Stage: StageEmit, Status: StatusDone}
		switch {
		case f.Err != nil:
			ev.Status, ev.Err = StatusError, f.Err
		case f.Cached:
			ev.Status = StatusCached
		}
		if f.Timing != nil {
			ev.Elapsed = msToDuration(f.Timing.TotalMS)
		}
		sink.OnEvent(ev)
	}
	if sink != nil {
		sink.OnEvent(Event{Stage: StageEmit, Status: StatusDone})
	}
}
