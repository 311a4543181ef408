package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the content of stylename.toml.
type Config struct {
	Transform   TransformConfig   `toml:"transform"`
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path is the manifest file; empty when no manifest was found.
	Path string `toml:"-"`
	// Root is the directory relative paths in the manifest resolve against.
	Root string `toml:"-"`
}

type TransformConfig struct {
	Attribute string `toml:"attribute"`
	Target    string `toml:"target"`
	// EmitHelper = false leaves the helper out of emitted files; the runtime
	// must install it instead.
	EmitHelper *bool    `toml:"emit_helper"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

type OutputConfig struct {
	Dir    string `toml:"dir"`
	Suffix string `toml:"suffix"`
	Cache  bool   `toml:"cache"`
}

type DiagnosticsConfig struct {
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	Max              int    `toml:"max"`
	Format           string `toml:"format"`
}

var (
	// ErrAbsoluteOutDir: [output].dir must be relative to the project root.
	ErrAbsoluteOutDir = errors.New("[output].dir must be relative")
	// ErrOutDirEscapes: [output].dir leaves the project root.
	ErrOutDirEscapes = errors.New("[output].dir escapes project root")
)

// Default returns the configuration used without a manifest.
func Default() Config {
	emit := true
	return Config{
		Transform: TransformConfig{
			Attribute:  "styleName",
			Target:     "className",
			EmitHelper: &emit,
			Extensions: []string{".jsx", ".tsx"},
			Exclude:    []string{"node_modules"},
		},
		Output: OutputConfig{
			Suffix: ".out",
		},
		Diagnostics: DiagnosticsConfig{
			Max:    100,
			Format: "pretty",
		},
	}
}

// EmitsHelper reports whether transformed files carry the helper source.
func (c Config) EmitsHelper() bool {
	return c.Transform.EmitHelper == nil || *c.Transform.EmitHelper
}

// LoadConfig parses the manifest at path over Default().
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds stylename.toml above startDir and loads it. Without a
// manifest it returns Default() rooted at startDir.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		cfg := Default()
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return Config{}, absErr
		}
		cfg.Root = root
		return cfg, nil
	}
	return LoadConfig(path)
}

func (c *Config) validate() error {
	for i, ext := range c.Transform.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("[transform].extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Transform.Extensions[i] = ext
	}
	if c.Transform.Attribute == c.Transform.Target && c.Transform.Attribute != "" {
		return fmt.Errorf("[transform].attribute and target are both %q", c.Transform.Attribute)
	}
	if c.Output.Dir != "" {
		if _, err := c.OutDir(); err != nil {
			return err
		}
	}
	return nil
}

// OutDir resolves [output].dir against Root. Empty means write next to the
// input.
func (c Config) OutDir() (string, error) {
	dir := strings.TrimSpace(c.Output.Dir)
	if dir == "" {
		return "", nil
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("%w: %q", ErrAbsoluteOutDir, dir)
	}
	out := filepath.Join(c.Root, filepath.Clean(filepath.FromSlash(dir)))
	if !pathWithin(c.Root, out) {
		return "", fmt.Errorf("%w: %q", ErrOutDirEscapes, dir)
	}
	return out, nil
}

// Excluded reports whether a directory name is skipped while walking.
func (c Config) Excluded(name string) bool {
	for _, ex := range c.Transform.Exclude {
		if ex == name {
			return true
		}
	}
	return false
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault creates stylename.toml in dir. It fails if one exists.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := Encode(Default())
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
