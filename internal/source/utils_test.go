package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileKinds(t *testing.T) {
	tests := []struct {
		path        string
		declaration bool
		jsx         bool
	}{
		{"src/App.tsx", false, true},
		{"src/App.jsx", false, true},
		{"src/index.js", false, true},
		{"src/util.ts", false, false},
		{"types/global.d.ts", true, false},
		{"types/mod.d.mts", true, false},
		{"styles/button.d.css.ts", true, false},
		{"README.md", false, false},
	}
	for _, tt := range tests {
		if got := IsDeclarationPath(tt.path); got != tt.declaration {
			t.Errorf("IsDeclarationPath(%q) = %v", tt.path, got)
		}
		if got := IsJSXPath(tt.path); got != tt.jsx {
			t.Errorf("IsJSXPath(%q) = %v", tt.path, got)
		}
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	target := filepath.Join(tmp, "other", "App.jsx")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "App.jsx")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/App.jsx"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 9}
	b := Span{File: 1, Start: 2, End: 7}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 9}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files = %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 6, End: 9}) {
		t.Error("Contains failed")
	}
}
