package main

import (
	"fmt"
	"io"
	"time"

	"stylename/internal/buildpipeline"
)

var timedStages = []struct {
	stage buildpipeline.Stage
	label string
}{
	{buildpipeline.StageLoad, "loaded"},
	{buildpipeline.StageParse, "parsed"},
	{buildpipeline.StageTransform, "rewrote"},
	{buildpipeline.StageEmit, "emitted"},
}

// printStageTimings prints the summed duration of every stage that ran.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	stages := make([]buildpipeline.Stage, 0, len(timedStages))
	for _, st := range timedStages {
		if !timings.Has(st.stage) {
			continue
		}
		stages = append(stages, st.stage)
		fmt.Fprintf(out, "%s %d file(s) in %.1f ms\n", st.label, timings.Files(st.stage), toMillis(timings.Duration(st.stage)))
	}
	if len(stages) > 0 {
		fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum(stages...)))
	}
}

// printSummary prints one line per written file and a closing count.
// written + unchanged + failed covers every file; cached is a subset of the first two.
func printSummary(out io.Writer, res *buildpipeline.Result) {
	written, unchanged, cached := 0, 0, 0
	for i, f := range res.Files {
		if f == nil || f.Failed() {
			continue
		}
		if f.Cached {
			cached++
		}
		switch {
		case !f.Changed:
			unchanged++
		case f.OutPath != "":
			written++
			fmt.Fprintf(out, "%s -> %s\n", res.Display[i], f.OutPath)
		}
	}
	fmt.Fprintf(out, "%d file(s): %d written, %d unchanged, %d cached, %d failed\n",
		len(res.Files), written, unchanged, cached, res.Failed())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
