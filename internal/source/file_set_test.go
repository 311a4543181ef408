package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("app.jsx", []byte("one"), 0)
	id2 := fs.Add("app.jsx", []byte("two"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("app.jsx")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "one" {
		t.Errorf("old version content = %q", got)
	}
}

func TestAddVirtualNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.jsx", []byte("a\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Errorf("LineIdx = %v, want %v", f.LineIdx, want)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.jsx", []byte("ab\ncd\n"))

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 3}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}

	// перевод строки принадлежит своей строке
	start, _ = fs.Resolve(Span{File: id, Start: 2, End: 2})
	if start != (LineCol{Line: 1, Col: 3}) {
		t.Errorf("newline resolves to %+v", start)
	}
}

func TestPositionCountsUTF16Units(t *testing.T) {
	fs := NewFileSet()
	// "é" is 2 bytes / 1 unit, "😀" is 4 bytes / 2 units
	id := fs.AddVirtual("a.jsx", []byte("x\né😀<a/>"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want Position
	}{
		{0, Position{0, 0}},
		{1, Position{0, 1}},
		{2, Position{1, 0}},
		{4, Position{1, 1}},
		{8, Position{1, 3}},
		{100, Position{1, 7}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.jsx", []byte("first\nsecond")))

	if got := f.GetLine(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("line 3 = %q", got)
	}
}

func TestLoadDecodesBOM(t *testing.T) {
	dir := t.TempDir()

	utf8Path := filepath.Join(dir, "utf8.jsx")
	if err := os.WriteFile(utf8Path, []byte("\xEF\xBB\xBFx\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// UTF-16LE "<a/>"
	utf16Path := filepath.Join(dir, "utf16.jsx")
	if err := os.WriteFile(utf16Path, []byte{0xFF, 0xFE, '<', 0, 'a', 0, '/', 0, '>', 0}, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(utf8Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x\n" {
		t.Errorf("utf8 content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("utf8 flags = %b", f.Flags)
	}

	id, err = fs.Load(utf16Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f = fs.Get(id)
	if string(f.Content) != "<a/>" {
		t.Errorf("utf16 content = %q", f.Content)
	}
	if f.Flags&FileDecodedUTF16 == 0 {
		t.Errorf("utf16 flags = %b", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.jsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
