package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
)

// LoadOptions controls the normalisation applied before indexing.
type LoadOptions struct {
	// NormalizeNFC composes the text to Unicode NFC so that visually equal
	// identifiers segment into equal clusters.
	NormalizeNFC bool
}

// Load reads a file from disk, normalizes BOM/CRLF (and NFC on request)
// and indexes it.
func Load(path string, opts LoadOptions) (*Source, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, flags := normalize(content, opts)
	return newSource(normalizePath(path), text, flags), nil
}

// LoadReader is Load for a stream (stdin); the source is marked virtual.
func LoadReader(name string, r io.Reader, opts LoadOptions) (*Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	text, flags := normalize(content, opts)
	return newSource(name, text, flags|FileVirtual), nil
}

func normalize(content []byte, opts LoadOptions) (string, Flags) {
	var flags Flags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if opts.NormalizeNFC && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return string(content), flags
}

// normalizeCRLF заменяет все \r\n на \n, одиночные \r не трогает.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}
