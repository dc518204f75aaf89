package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tongue/internal/version"
)

// errHasErrors marks a run that completed but reported error diagnostics.
var errHasErrors = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "tongue",
	Short:         "Lambda calculus front end and diagnostics toolkit",
	Long:          `Tongue tokenizes and parses untyped lambda calculus sources and reports diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyProjectConfig(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProfiling)
		closeTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, closeTrace)
		return nil
	},
}

// cleanups run in reverse order after the command, even when it fails.
var cleanups []func()

func main() {
	rootCmd.Version = version.Get().Colored(isTerminal(os.Stdout))

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0=unlimited)")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|plain|short|json|sarif)")
	flags.String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	flags.Int8("context", 2, "source lines shown before a highlighted one")
	flags.Bool("nfc", false, "normalize sources to Unicode NFC before lexing")
	flags.String("config", "", "path to tongue.toml (default: search upward from the working directory)")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
