package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"stylename/internal/diag"
	"stylename/internal/source"
	"stylename/internal/trace"
	"stylename/internal/transform"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func virtual(t *testing.T, path, src string, opts *Options) *FileResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	return TransformSource(context.Background(), fs, id, opts)
}

func TestTransformSourceRewrites(t *testing.T) {
	res := virtual(t, "app.jsx", `const a = <div className="row" styleName={s} />;`, &Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	out := string(res.Text)
	if !strings.Contains(out, `className={"row" + " " + checkAndJoinStyleName(s)}`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.HasPrefix(out, "function checkAndJoinStyleName(styleName) {") {
		t.Fatalf("helper not injected:\n%s", out)
	}
	if strings.Count(out, "function checkAndJoinStyleName") != 1 {
		t.Fatalf("helper injected more than once")
	}
	if !res.Changed || len(res.Helpers) != 1 {
		t.Fatalf("Changed=%v helpers=%d", res.Changed, len(res.Helpers))
	}
}

func TestTransformSourceOmitHelper(t *testing.T) {
	res := virtual(t, "app.jsx", `<a styleName={s}/>`, &Options{OmitHelper: true})
	if strings.Contains(string(res.Text), "function checkAndJoinStyleName") {
		t.Fatalf("helper emitted with OmitHelper:\n%s", res.Text)
	}
	if len(res.Helpers) != 1 {
		t.Fatalf("request should still be recorded")
	}
}

func TestTransformSourceUnchanged(t *testing.T) {
	src := "// plain\nconst a = <div className=\"x\">{b}</div>;\n"
	for _, path := range []string{"plain.jsx", "types.d.ts", "lib.ts"} {
		res := virtual(t, path, src, &Options{})
		if res.Err != nil || res.Changed || string(res.Text) != src {
			t.Fatalf("%s: expected byte-identical output, got err=%v\n%s", path, res.Err, res.Text)
		}
	}
}

func TestIneligibleFilesAreNotParsed(t *testing.T) {
	// в режиме кода "</div>" читается как регэксп без конца
	src := "// plain\nconst a = <div className=\"x\" styleName={s}>{b}</div>;\n"
	for _, path := range []string{"types.d.ts", "types.d.tsx", "lib.ts", "lib.mts"} {
		res := virtual(t, path, src, &Options{})
		if res.Err != nil || res.Changed || string(res.Text) != src {
			t.Fatalf("%s: expected pass-through, got err=%v\n%s", path, res.Err, res.Text)
		}
		if res.Bag.Len() != 0 || len(res.Helpers) != 0 {
			t.Fatalf("%s: diagnostics=%v helpers=%v", path, res.Bag.Items(), res.Helpers)
		}
	}
}

func TestTransformSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		err  error
	}{
		{"empty initializer", `<a styleName={}/>`, diag.StyEmptyInitializer, transform.ErrEmptyInitializer},
		{"duplicate", `<a styleName={x} styleName={y}/>`, diag.StyDuplicateStyleName, transform.ErrDuplicateStyleName},
		{"syntax", `<a styleName={x}>`, diag.SynUnclosedElement, ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := virtual(t, "a.jsx", tt.src, &Options{})
			if !errors.Is(res.Err, tt.err) {
				t.Fatalf("err = %v, want %v", res.Err, tt.err)
			}
			if res.Text != nil {
				t.Fatalf("failed file must not produce output")
			}
			found := false
			for _, d := range res.Bag.Items() {
				if d.Code == tt.code && d.Severity == diag.SevError {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing %s in %+v", tt.code.ID(), res.Bag.Items())
			}
		})
	}
}

func TestWarningsAsErrors(t *testing.T) {
	src := `<a styleName="big"/>`
	res := virtual(t, "a.jsx", src, &Options{})
	if res.Err != nil || res.Bag.Len() != 1 || res.Bag.Items()[0].Severity != diag.SevWarning {
		t.Fatalf("expected one warning, got %v %+v", res.Err, res.Bag.Items())
	}
	res = virtual(t, "a.jsx", src, &Options{WarningsAsErrors: true})
	if !errors.Is(res.Err, ErrWarningsAsErrors) || !res.Bag.HasErrors() || res.Text != nil {
		t.Fatalf("warning not promoted: %v %+v", res.Err, res.Bag.Items())
	}
}

func TestPhaseObserverAndTimings(t *testing.T) {
	var mu sync.Mutex
	var names []string
	opts := &Options{
		EnableTimings: true,
		PhaseObserver: func(ev PhaseEvent) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Status == PhaseStart {
				names = append(names, ev.Name)
			}
		},
	}
	res := virtual(t, "a.jsx", `<a styleName={s}/>`, opts)
	if got := strings.Join(names, ","); got != "parse,transform,emit" {
		t.Fatalf("phases = %s", got)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 3 {
		t.Fatalf("timing report missing: %+v", res.Timing)
	}
	last := res.Bag.Items()[res.Bag.Len()-1]
	if last.Code != diag.ObsTimings || len(last.Notes) != 1 || !strings.Contains(last.Notes[0].Msg, `"phases"`) {
		t.Fatalf("timing diagnostic missing: %+v", last)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path string
		opts Options
		want string
	}{
		{"src/app.jsx", Options{Suffix: ".out"}, "src/app.out.jsx"},
		{"src/types.d.ts", Options{Suffix: ".out"}, "src/types.out.d.ts"},
		{"/p/src/ui/app.tsx", Options{OutDir: "/p/build", BaseDir: "/p/src"}, "/p/build/ui/app.tsx"},
		{"/elsewhere/app.tsx", Options{OutDir: "/p/build", BaseDir: "/p/src"}, "/p/build/app.tsx"},
	}
	for _, tt := range tests {
		got, err := OutputPath(tt.path, &tt.opts)
		if err != nil || got != filepath.FromSlash(tt.want) {
			t.Errorf("OutputPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := OutputPath("a.jsx", &Options{}); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
}

func TestTransformFileWrites(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.jsx")
	writeFile(t, in, `<a styleName={s}/>`)
	res, err := TransformFile(context.Background(), in, &Options{Suffix: ".out", Write: true})
	if err != nil || res.Err != nil {
		t.Fatalf("TransformFile: %v %v", err, res.Err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "app.out.jsx"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != string(res.Text) {
		t.Fatalf("written text differs")
	}
	if _, err := TransformFile(context.Background(), filepath.Join(dir, "missing.jsx"), &Options{}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestTransformDir(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "b.jsx"), `<b styleName={x}/>`)
	writeFile(t, filepath.Join(src, "a", "a.tsx"), `<a styleName={}/>`)
	writeFile(t, filepath.Join(src, "c.ts"), `let c = 1;`)
	writeFile(t, filepath.Join(src, "e.jsx"), `<e className="y"/>`)
	writeFile(t, filepath.Join(src, "node_modules", "d.jsx"), `<d styleName={x}/>`)

	res, err := TransformDir(context.Background(), src, &Options{
		OutDir:  out,
		Write:   true,
		Jobs:    2,
		Exclude: []string{"node_modules"},
	})
	if err != nil {
		t.Fatalf("TransformDir: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(res.Files))
	}
	if !strings.HasSuffix(res.Files[0].Path, filepath.Join("a", "a.tsx")) || res.Files[0].Err == nil {
		t.Fatalf("first file should be a/a.tsx and fail: %+v", res.Files[0])
	}
	if res.Failed() != 1 || !res.Bag().HasErrors() {
		t.Fatalf("Failed = %d", res.Failed())
	}
	if _, err := os.Stat(filepath.Join(out, "b.jsx")); err != nil {
		t.Fatalf("b.jsx not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "a", "a.tsx")); err == nil {
		t.Fatalf("failed file must not be written")
	}
	if _, err := os.Stat(filepath.Join(out, "e.jsx")); err == nil {
		t.Fatalf("unchanged file must not be written")
	}
}

func TestListFilesSkipsOutputs(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "app.jsx"), `<a/>`)
	writeFile(t, filepath.Join(src, "app.out.jsx"), `<a/>`)
	writeFile(t, filepath.Join(src, "types.d.ts"), `export {};`)
	writeFile(t, filepath.Join(src, "build", "app.jsx"), `<a/>`)

	files, err := ListFiles(src, &Options{Suffix: ".out", Extensions: []string{".jsx", ".ts"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("suffix mode: got %v", files)
	}
	for _, f := range files {
		if strings.HasSuffix(f, "app.out.jsx") {
			t.Fatalf("earlier output listed: %v", files)
		}
	}

	files, err = ListFiles(src, &Options{OutDir: filepath.Join(src, "build")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("outdir mode: got %v", files)
	}
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	src := `<a styleName="big"/>`
	opts := &Options{Cache: cache}
	first := virtual(t, "a.jsx", src, opts)
	if first.Cached || first.Err != nil {
		t.Fatalf("first run should miss: %+v", first)
	}
	second := virtual(t, "a.jsx", src, opts)
	if !second.Cached {
		t.Fatalf("second run should hit the cache")
	}
	if string(second.Text) != string(first.Text) || len(second.Helpers) != 1 {
		t.Fatalf("cached result differs")
	}
	if second.Bag.Len() != 1 {
		t.Fatalf("cached warning lost: %+v", second.Bag.Items())
	}
	d := second.Bag.Items()[0]
	if d.Code != diag.StyLiteralStyleName || second.FileSet.Get(d.Primary.File).Text(d.Primary) != `styleName="big"` || len(d.Fixes) != 1 {
		t.Fatalf("cached diagnostic not rebound: %+v", d)
	}

	other := virtual(t, "a.jsx", src, &Options{Cache: cache, OmitHelper: true})
	if other.Cached {
		t.Fatalf("different options must not share cache entries")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if again := virtual(t, "a.jsx", src, opts); again.Cached {
		t.Fatalf("cache survived DropAll")
	}
}

func TestParseAndTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jsx")
	writeFile(t, path, `x = <a/>;`)
	pr, err := Parse(path, 10)
	if err != nil || pr.Bag.Len() != 0 {
		t.Fatalf("Parse: %v %+v", err, pr)
	}
	if pr.Builder.Files.Get(pr.FileID) == nil {
		t.Fatalf("no file parsed")
	}
	tr, err := Tokenize(path, 10)
	if err != nil || len(tr.Tokens) == 0 {
		t.Fatalf("Tokenize: %v", err)
	}
}

func TestDiagnosticsReachTrace(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	fs := source.NewFileSet()
	id := fs.AddVirtual("lit.jsx", []byte(`<a styleName="x" />`))

	res := TransformSource(ctx, fs, id, &Options{})
	if res.Err != nil || res.Bag.Len() != 1 {
		t.Fatalf("err=%v diagnostics=%d", res.Err, res.Bag.Len())
	}
	var found bool
	for _, ev := range ring.Snapshot() {
		if ev.Name == "diag" && strings.HasPrefix(ev.Detail, "STY4001 warning:") && ev.Extra["file"] == "lit.jsx" {
			found = true
		}
	}
	if !found {
		t.Fatalf("warning not traced: %+v", ring.Snapshot())
	}
}
