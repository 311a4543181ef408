package driver

import (
	"context"

	"stylename/internal/diag"
	"stylename/internal/source"
	"stylename/internal/trace"
)

// traceReporter дублирует каждую диагностику точкой в трассе файла.
type traceReporter struct{ ctx context.Context }

func (r traceReporter) Report(code diag.Code, sev diag.Severity, _ source.Span, msg string, _ []diag.Note, _ []diag.Fix) {
	trace.Point(r.ctx, trace.ScopeNode, "diag", code.ID()+" "+sev.Label()+": "+msg)
}

func fileReporter(ctx context.Context, bag *diag.Bag) *diag.DedupReporter {
	return diag.NewDedupReporter(diag.MultiReporter{diag.BagReporter{Bag: bag}, traceReporter{ctx}})
}
