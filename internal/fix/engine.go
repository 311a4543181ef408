// Package fix applies the text edits attached to diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"stylename/internal/diag"
	"stylename/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing them.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications of one file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	id    string
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies them. Edits refer to the original file contents; a fix whose
// edits overlap an already accepted one is skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(fs, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	accepted := make(map[source.FileID][]diag.FixEdit)
	for _, cand := range selected {
		if reason := checkCandidate(fs, cand, accepted, opts.DryRun); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: displayPath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	changes, err := writeChanges(fs, accepted, opts.DryRun)
	result.FileChanges = changes
	return result, err
}

// gatherCandidates lists every fix with edits. Fixes without an explicit
// identity get CODE@path:offset#index; duplicates are skipped.
func gatherCandidates(fs *source.FileSet, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		candidates []candidate
		skipped    []SkippedFix
	)
	seen := make(map[string]struct{})
	order := 0
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			id := fmt.Sprintf("%s@%s:%d#%d", d.Code.ID(), displayPath(fs, d.Primary.File), d.Primary.Start, i)
			if len(f.Edits) == 0 {
				skipped = append(skipped, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if _, dup := seen[id]; dup {
				skipped = append(skipped, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, candidate{id: id, diag: d, fix: f, order: order})
			order++
		}
	}
	return candidates, skipped
}

// sortCandidates orders by file, position, then discovery order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].diag.Primary, candidates[j].diag.Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeID:
		for _, c := range candidates {
			if c.id == opts.TargetID {
				return []candidate{c}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	default:
		return candidates[:1], nil
	}
}

func checkCandidate(fs *source.FileSet, cand candidate, accepted map[source.FileID][]diag.FixEdit, dryRun bool) string {
	for i, e := range cand.fix.Edits {
		file := fs.Get(e.Span.File)
		if file == nil {
			return "target file is unknown"
		}
		if !dryRun && file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if int(e.Span.End) > len(file.Content) || e.Span.End < e.Span.Start {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits in " + displayPath(fs, e.Span.File)
			}
		}
		for _, other := range cand.fix.Edits[i+1:] {
			if other.Span.File == e.Span.File && spansConflict(other, e) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// writeChanges splices the accepted edits of every file, last offset first.
func writeChanges(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, dryRun bool) ([]FileChange, error) {
	ids := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	changes := make([]FileChange, 0, len(ids))
	for _, id := range ids {
		file := fs.Get(id)
		edits := slices.Clone(accepted[id])
		sort.SliceStable(edits, func(i, j int) bool {
			return edits[i].Span.Start > edits[j].Span.Start
		})
		buf := slices.Clone(file.Content)
		for _, e := range edits {
			buf = slices.Concat(buf[:e.Span.Start], []byte(e.NewText), buf[e.Span.End:])
		}
		change := FileChange{Path: displayPath(fs, id), EditCount: len(edits), Content: buf}
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, buf, mode); err != nil {
				return changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// spansConflict reports whether two edits overlap. Spans are half-open;
// two insertions never conflict, an insertion conflicts with a span that
// strictly contains its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	file := fs.Get(id)
	if file == nil {
		return ""
	}
	return file.DisplayPath(fs.BaseDir(), false)
}
