package driver

import (
	"slices"

	"stylename/internal/transform"
)

// Options configure one driver run.
type Options struct {
	Transform transform.Options
	// OmitHelper leaves helper declarations out of emitted files.
	OmitHelper       bool
	MaxDiagnostics   int
	WarningsAsErrors bool

	// BaseDir is the root relative output paths are computed from.
	BaseDir string
	// OutDir mirrors inputs under this directory. Empty writes next to the
	// input using Suffix.
	OutDir string
	Suffix string
	// Write controls whether outputs go to disk.
	Write bool

	// Extensions selects files in TransformDir. Default .jsx and .tsx.
	Extensions []string
	// Exclude lists directory names TransformDir skips.
	Exclude []string
	Jobs    int

	Cache         *DiskCache
	EnableTimings bool
	PhaseObserver PhaseObserver
}

var defaultExtensions = []string{".jsx", ".tsx"}

func (o *Options) extensions() []string {
	if o == nil || len(o.Extensions) == 0 {
		return defaultExtensions
	}
	return o.Extensions
}

func (o *Options) excluded(name string) bool {
	return o != nil && slices.Contains(o.Exclude, name)
}

func (o *Options) observe(ev PhaseEvent) {
	if o != nil && o.PhaseObserver != nil {
		o.PhaseObserver(ev)
	}
}
