package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 16 << 10
)

var builtinSeeds = []string{
	"",
	"x",
	"\\x. x",
	"f x y",
	"(\\f. \\x. f (f x)) g y",
	"(x",
	"x)",
	"\\. x",
	"\\x x",
	"\\x.",
	"f & x",
	"; only a comment",
	"a ; comment\r\nb",
	"\\ä. ä",
	"é x",
	"((((((((((x))))))))))",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range builtinSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lc файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

// prepare copies input, cuts it to maxFuzzInput and drops invalid UTF-8:
// sources are strings of text.
func prepare(input []byte) (string, bool) {
	input = clamp(input, maxFuzzInput)
	if !utf8.Valid(input) {
		return "", false
	}
	return string(input), true
}

func clamp(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
