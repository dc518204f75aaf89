package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetVersioning(t *testing.T) {
	set := NewSet(LoadOptions{})

	first := set.Add("dir/../test.lc", "x", 0)
	second := set.Add("test.lc", "y", 0)

	if first == second {
		t.Fatal("re-adding a path must create a new source")
	}
	latest, ok := set.Get("test.lc")
	if !ok || latest != second {
		t.Fatalf("Get returned %v, want the latest source", latest)
	}
	if got := set.All(); len(got) != 2 || got[0] != first {
		t.Fatalf("All() = %v", got)
	}
	if first.Name() != "test.lc" {
		t.Fatalf("path not normalized: %q", first.Name())
	}
}

func TestSetLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lc")
	if err := os.WriteFile(path, []byte("a\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	set := NewSetWithBase(dir, LoadOptions{})
	src, err := set.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := set.Get(path); !ok || got != src {
		t.Fatal("loaded source not registered")
	}
	if got := set.FormatPath(src, PathRelative); got != "a.lc" {
		t.Fatalf("relative = %q", got)
	}
	if got := set.FormatPath(src, PathBasename); got != "a.lc" {
		t.Fatalf("basename = %q", got)
	}
}

func TestSetFormatPathVirtual(t *testing.T) {
	set := NewSet(LoadOptions{})
	src := set.AddVirtual("<stdin>", "x")
	for _, mode := range []string{PathAbsolute, PathRelative, PathBasename, PathAuto} {
		if got := set.FormatPath(src, mode); got != "<stdin>" {
			t.Errorf("%s: %q", mode, got)
		}
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.lc")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
