package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "tongue.toml"

// projectConfig mirrors tongue.toml. Every key is optional; a key present in
// the file becomes the default of the matching flag.
type projectConfig struct {
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Source      sourceConfig      `toml:"source"`
	Check       checkConfig       `toml:"check"`
}

type diagnosticsConfig struct {
	Max      int    `toml:"max"`
	Format   string `toml:"format"`
	PathMode string `toml:"path_mode"`
	Context  int8   `toml:"context"`
	Color    string `toml:"color"`
}

type sourceConfig struct {
	NFC bool `toml:"nfc"`
}

type checkConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// configOverride binds a toml key to the flag it sets.
type configOverride struct {
	key   []string
	flag  string
	value string
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig decodes path and returns the values it defines, as flag
// overrides.
func loadConfig(path string) ([]configOverride, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if meta.IsDefined("check", "jobs") && cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}

	all := []configOverride{
		{[]string{"diagnostics", "max"}, "max-diagnostics", strconv.Itoa(cfg.Diagnostics.Max)},
		{[]string{"diagnostics", "format"}, "diag-format", strings.TrimSpace(cfg.Diagnostics.Format)},
		{[]string{"diagnostics", "path_mode"}, "path-mode", strings.TrimSpace(cfg.Diagnostics.PathMode)},
		{[]string{"diagnostics", "context"}, "context", strconv.Itoa(int(cfg.Diagnostics.Context))},
		{[]string{"diagnostics", "color"}, "color", strings.TrimSpace(cfg.Diagnostics.Color)},
		{[]string{"source", "nfc"}, "nfc", strconv.FormatBool(cfg.Source.NFC)},
		{[]string{"check", "jobs"}, "jobs", strconv.Itoa(cfg.Check.Jobs)},
		{[]string{"check", "cache"}, "no-cache", strconv.FormatBool(!cfg.Check.Cache)},
	}
	out := all[:0]
	for _, o := range all {
		if meta.IsDefined(o.key...) {
			out = append(out, o)
		}
	}
	return out, nil
}

// applyProjectConfig loads tongue.toml (from --config or found upward from
// the working directory) and sets every flag it defines, unless the flag
// was given on the command line. Flags the command lacks are skipped.
func applyProjectConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var found bool
		path, found, err = findConfig(".")
		if err != nil || !found {
			return err
		}
	}
	overrides, err := loadConfig(path)
	if err != nil {
		return err
	}
	for _, o := range overrides {
		flag := cmd.Flags().Lookup(o.flag)
		if flag == nil || flag.Changed {
			continue
		}
		if err := flag.Value.Set(o.value); err != nil {
			return fmt.Errorf("%s: [%s]: %w", path, strings.Join(o.key, "."), err)
		}
	}
	return nil
}
