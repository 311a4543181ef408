package buildpipeline

import "time"

// Stage describes a pipeline phase of one file.
type Stage string

const (
	StageLoad      Stage = "load"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageEmit      Stage = "emit"
)

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached" // результат взят из дискового кэша
)

// Event reports progress for one file. File=="" means the whole run.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events; called from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

type stageTotal struct {
	dur   time.Duration
	files int
}

// Timings sums stage durations over all files. The zero value is ready.
type Timings struct {
	stages map[Stage]stageTotal
}

func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = map[Stage]stageTotal{}
	}
	cur := t.stages[stage]
	t.stages[stage] = stageTotal{dur: cur.dur + dur, files: cur.files + 1}
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t.stages[stage].dur }

// Files is how many files finished stage.
func (t Timings) Files(stage Stage) int { return t.stages[stage].files }

func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, st := range stages {
		total += t.stages[st].dur
	}
	return total
}
