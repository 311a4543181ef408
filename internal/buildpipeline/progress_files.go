package buildpipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stylename/internal/driver"
)

// ProgressFiles lists the display paths Run reports events for.
func ProgressFiles(target, baseDir string, opts *driver.Options) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	files := []string{target}
	if info.IsDir() {
		if files, err = driver.ListFiles(target, opts); err != nil {
			return nil, err
		}
	}
	return normalizeProgressFiles(files, baseDir), nil
}

// displayPath makes file relative to base when it lies under it.
func displayPath(file, base string) string {
	path := filepath.Clean(file)
	if base != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

func absBase(baseDir string) string {
	base := strings.TrimSpace(baseDir)
	if base == "" {
		return ""
	}
	if abs, err := filepath.Abs(base); err == nil {
		return abs
	}
	return base
}

// normalizeProgressFiles returns sorted unique display paths.
func normalizeProgressFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	base := absBase(baseDir)
	for _, file := range files {
		if file == "" {
			continue
		}
		path := displayPath(file, base)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLoad, Status: StatusQueued})
	}
}
