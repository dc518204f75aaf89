package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"tongue/internal/diagfmt"
	"tongue/internal/driver"
	"tongue/internal/observ"
)

// settings collects the global flags every command honours.
type settings struct {
	color      bool
	quiet      bool
	timings    bool
	maxDiags   int
	diagFormat string
	pathMode   diagfmt.PathMode
	context    int8
	nfc        bool
	timer      *observ.Timer
}

var diagFormats = []string{"pretty", "plain", "short", "json", "sarif"}

func readSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	var st settings

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return st, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		st.color = true
	case "off":
		st.color = false
	case "auto":
		st.color = isTerminal(os.Stderr)
	default:
		return st, invalidChoice("color", colorFlag, []string{"auto", "on", "off"})
	}

	if st.quiet, err = flags.GetBool("quiet"); err != nil {
		return st, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = flags.GetBool("timings"); err != nil {
		return st, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if st.maxDiags, err = flags.GetInt("max-diagnostics"); err != nil {
		return st, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if st.context, err = flags.GetInt8("context"); err != nil {
		return st, fmt.Errorf("failed to get context flag: %w", err)
	}
	if st.nfc, err = flags.GetBool("nfc"); err != nil {
		return st, fmt.Errorf("failed to get nfc flag: %w", err)
	}

	if st.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return st, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	st.diagFormat = strings.ToLower(st.diagFormat)
	if !isOneOf(st.diagFormat, diagFormats) {
		return st, invalidChoice("diag-format", st.diagFormat, diagFormats)
	}

	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return st, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	st.pathMode = diagfmt.ParsePathMode(pathMode)

	if st.timings {
		st.timer = observ.NewTimer()
	}
	return st, nil
}

// driverOptions builds the driver configuration; jobs is taken from the
// command's --jobs flag when it has one.
func (st settings) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: st.maxDiags,
		NormalizeNFC:   st.nfc,
		Timer:          st.timer,
		Stdin:          cmd.InOrStdin(),
	}
	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs <= 0 {
			jobs = runtime.GOMAXPROCS(0)
		}
		opts.Jobs = jobs
	}
	return opts, nil
}

func isOneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
