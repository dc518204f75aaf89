package source

import (
	"io"
	"os"
	"path/filepath"
)

// Path display modes accepted by Set.FormatPath.
const (
	PathAbsolute = "absolute"
	PathRelative = "relative"
	PathBasename = "basename"
	PathAuto     = "auto"
)

// Set is an ordered registry of sources keyed by normalized path.
// Re-adding a path registers a new Source; lookups return the latest one.
type Set struct {
	sources []*Source
	index   map[string]*Source
	baseDir string // базовая директория для относительных путей
	opts    LoadOptions
}

// NewSet creates an empty set.
func NewSet(opts LoadOptions) *Set {
	return &Set{index: make(map[string]*Source), opts: opts}
}

// NewSetWithBase creates an empty set with a base directory for relative paths.
func NewSetWithBase(baseDir string, opts LoadOptions) *Set {
	s := NewSet(opts)
	s.baseDir = baseDir
	return s
}

func (s *Set) SetBaseDir(dir string) { s.baseDir = dir }

// BaseDir returns the base directory, falling back to the working directory.
func (s *Set) BaseDir() string {
	if s.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return s.baseDir
}

// Add indexes text under path and registers it.
func (s *Set) Add(path, text string, flags Flags) *Source {
	src := newSource(normalizePath(path), text, flags)
	s.register(src)
	return src
}

// AddVirtual adds an in-memory source (test, stdin, generated).
func (s *Set) AddVirtual(name, text string) *Source {
	src := newSource(name, text, FileVirtual)
	s.register(src)
	return src
}

// Load reads path from disk with the set's options and registers it.
func (s *Set) Load(path string) (*Source, error) {
	src, err := Load(path, s.opts)
	if err != nil {
		return nil, err
	}
	s.register(src)
	return src, nil
}

// LoadReader reads a stream (stdin) with the set's options and registers it
// as a virtual source called name.
func (s *Set) LoadReader(name string, r io.Reader) (*Source, error) {
	src, err := LoadReader(name, r, s.opts)
	if err != nil {
		return nil, err
	}
	s.register(src)
	return src, nil
}

func (s *Set) register(src *Source) {
	s.sources = append(s.sources, src)
	s.index[src.name] = src
}

// Get returns the latest source registered under path.
func (s *Set) Get(path string) (*Source, bool) {
	src, ok := s.index[normalizePath(path)]
	if !ok {
		src, ok = s.index[path]
	}
	return src, ok
}

// All returns the sources in registration order.
func (s *Set) All() []*Source { return append([]*Source(nil), s.sources...) }
func (s *Set) Len() int       { return len(s.sources) }

// FormatPath renders the name of src for display.
// mode: "absolute", "relative", "basename", "auto"; virtual sources keep their name.
func (s *Set) FormatPath(src *Source, mode string) string {
	if src.flags&FileVirtual != 0 {
		return src.name
	}
	switch mode {
	case PathAbsolute:
		if abs, err := AbsolutePath(src.name); err == nil {
			return abs
		}
	case PathRelative:
		if rel, err := RelativePath(src.name, s.BaseDir()); err == nil {
			return rel
		}
	case PathBasename:
		return BaseName(src.name)
	case PathAuto:
		// короткие и относительные пути показываем как есть
		if len(src.name) >= 40 && filepath.IsAbs(src.name) {
			return BaseName(src.name)
		}
	}
	return src.name
}
