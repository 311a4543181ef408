package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stylename/internal/diag"
	"stylename/internal/helper"
	"stylename/internal/project"
	"stylename/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты преобразования по ключу (хеш файла + опции).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached file result. Spans are stored as offsets and
// rebound to the current FileID on restore.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Text        []byte
	Changed     bool
	Helpers     []cachedHelper
	Diagnostics []cachedDiagnostic
}

type cachedHelper struct {
	Name     string
	Scoped   bool
	Priority int
	Text     string
}

type cachedSpan struct {
	Start, End uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey: H(content || H(options)).
func cacheKey(file *source.File, opts *Options) project.Digest {
	t := opts.Transform
	fp := fmt.Sprintf("v%d|%s|%s|%s|%s|%t|%t",
		diskCacheSchemaVersion, t.Attribute, t.Target, t.Helper.Name, t.Helper.Text,
		opts.OmitHelper, source.IsDeclarationPath(file.Path))
	return project.Combine(project.Digest(file.Hash), project.HashString(fp))
}

func toCachedSpan(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

func (s cachedSpan) bind(id source.FileID) source.Span {
	return source.Span{File: id, Start: s.Start, End: s.End}
}

func newDiskPayload(res *FileResult) *DiskPayload {
	if res.Err != nil {
		return nil
	}
	file := res.FileSet.Get(res.FileID)
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.Path,
		ContentHash: project.Digest(file.Hash),
		Text:        res.Text,
		Changed:     res.Changed,
	}
	for _, h := range res.Helpers {
		p.Helpers = append(p.Helpers, cachedHelper{Name: h.Name, Scoped: h.Scoped, Priority: h.Priority, Text: h.Text})
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOCacheError || d.Code == diag.ObsTimings {
			continue
		}
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Span: toCachedSpan(e.Span), NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore fills res from the payload. It refuses payloads for other content.
func (p *DiskPayload) restore(res *FileResult) bool {
	file := res.FileSet.Get(res.FileID)
	if file == nil || p.ContentHash != project.Digest(file.Hash) {
		return false
	}
	res.Text = p.Text
	res.Changed = p.Changed
	res.Cached = true
	for _, h := range p.Helpers {
		res.Helpers = append(res.Helpers, helper.EmitHelper{Name: h.Name, Scoped: h.Scoped, Priority: h.Priority, Text: h.Text})
	}
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Primary.bind(res.FileID), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.bind(res.FileID), n.Msg)
		}
		for _, f := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(f.Edits))
			for _, e := range f.Edits {
				edits = append(edits, diag.FixEdit{Span: e.Span.bind(res.FileID), NewText: e.NewText})
			}
			d = d.WithFix(f.Title, edits...)
		}
		res.Bag.Add(d)
	}
	return true
}
