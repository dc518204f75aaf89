package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tongue/internal/diag"
	"tongue/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache хранит результаты проверки файлов по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic with its span reduced to cluster offsets.
type CachedDiagnostic struct {
	Level   uint8
	Code    uint16
	Message string
	HasSpan bool
	Start   int
	Len     int
}

// DiskPayload stores the outcome of checking one source.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash Digest

	Diagnostics []CachedDiagnostic
	Dropped     int
	// MaxLevel is the highest level raised, dropped diagnostics included.
	MaxLevel uint8
	// Parsed reports whether an expression was built.
	Parsed bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache returns a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "check", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
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
	// после успешного Rename файла уже нет
	defer os.Remove(tmp)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload. Entries of another schema are
// reported as missing.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
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
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// newPayload captures bag for caching.
func newPayload(src *source.Source, bag *diag.Bag, parsed bool) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        src.Name(),
		ContentHash: src.Hash(),
		Dropped:     bag.Dropped(),
		Parsed:      parsed,
	}
	if lvl, ok := bag.MaxLevel(); ok {
		payload.MaxLevel = uint8(lvl)
	}
	for d := range bag.All() {
		cd := CachedDiagnostic{
			Level:   uint8(d.Level()),
			Code:    uint16(diag.CodeOf(d)),
			Message: d.String(),
		}
		if sp, ok := d.PrimarySpan(); ok && sp.Source() == src {
			cd.HasSpan = true
			cd.Start = sp.Start().Position()
			cd.Len = sp.Len()
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// restore replays the cached diagnostics into bag against src. Concrete
// diagnostic types are not kept, everything comes back as *diag.Generic.
func (p *DiskPayload) restore(src *source.Source, bag *diag.Bag) {
	for _, cd := range p.Diagnostics {
		level, code := diag.Level(cd.Level), diag.Code(cd.Code)
		if cd.HasSpan {
			if sp, ok := src.Span(cd.Start, cd.Len); ok {
				bag.Raise(diag.New(level, code, sp, cd.Message))
				continue
			}
		}
		bag.Raise(diag.Unlocated(level, code, cd.Message))
	}
	// MaxLevel покрывает и выброшенные сверх лимита
	bag.AddDropped(p.Dropped, diag.Level(p.MaxLevel))
}
