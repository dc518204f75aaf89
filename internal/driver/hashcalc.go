package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"tongue/internal/source"
)

// cacheKey: H(schema || options || content). Options that change the output
// are part of the key.
func cacheKey(src *source.Source, opts Options) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	binary.LittleEndian.PutUint64(buf[:], uint64(max(opts.MaxDiagnostics, 0)))
	_, _ = h.Write(buf[:])
	content := src.Hash()
	_, _ = h.Write(content[:])

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
