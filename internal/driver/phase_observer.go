package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

const (
	PhaseLoad      = "load"
	PhaseParse     = "parse"
	PhaseTransform = "transform"
	PhaseEmit      = "emit"
)

// PhaseEvent describes a phase boundary of one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error
}

// PhaseObserver receives phase events. TransformDir calls it from worker
// goroutines concurrently.
type PhaseObserver func(PhaseEvent)
