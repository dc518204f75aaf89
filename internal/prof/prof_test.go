package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:          filepath.Join(dir, "cpu.pprof"),
		Mem:          filepath.Join(dir, "mem.pprof"),
		RuntimeTrace: filepath.Join(dir, "run.trace"),
	}
	if !cfg.Enabled() {
		t.Fatal("config should be enabled")
	}

	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}

	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.RuntimeTrace} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", filepath.Base(path))
		}
	}
}

func TestStartFailureStopsCPU(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:          filepath.Join(dir, "cpu.pprof"),
		RuntimeTrace: filepath.Join(dir, "missing", "run.trace"),
	}
	if _, err := Start(cfg); err == nil {
		t.Fatal("expected error for unwritable trace path")
	}
	// профилировщик CPU должен быть освобождён
	s, err := Start(Config{CPU: filepath.Join(dir, "again.pprof")})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestDisabledConfig(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}
