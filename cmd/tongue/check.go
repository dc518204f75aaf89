package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tongue/internal/diag"
	"tongue/internal/driver"
	"tongue/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.lc|directory|->",
	Short: "Report diagnostics for a source file or directory",
	Long: `Check parses a source file, every *.lc file in a directory, or standard
input when the target is "-", and prints only the diagnostics. Results are cached by file content unless --no-cache is set.
The exit status is 1 when any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the diagnostics cache")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

type checkOutcome struct {
	set     *source.Set
	results []driver.CheckResult
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	st, err := readSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("tongue")
		if err != nil {
			// без кэша проверка всё равно возможна
			if !st.quiet {
				fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	checkAll := func(o driver.Options) (checkOutcome, error) {
		set, results, err := driver.Check(cmd.Context(), target, o)
		return checkOutcome{set: set, results: results}, err
	}

	isDir, err := isDirTarget(target)
	if err != nil {
		return err
	}
	useTUI := false
	if isDir {
		machine := st.diagFormat == "json" || st.diagFormat == "sarif"
		if useTUI, err = wantsTUI(cmd, st, machine); err != nil {
			return err
		}
	}

	var outcome checkOutcome
	if useTUI {
		files, listErr := driver.ListSources(target)
		if listErr != nil {
			return fmt.Errorf("check failed: %w", listErr)
		}
		outcome, err = runWithUI("check "+target, files, opts, checkAll)
	} else {
		outcome, err = checkAll(opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bags := make([]*diag.Bag, 0, len(outcome.results))
	cached := 0
	for _, r := range outcome.results {
		bags = append(bags, r.Bag)
		if r.Cached {
			cached++
		}
	}
	reportErr := reportDiagnostics(os.Stdout, st, outcome.set, bags...)
	if !st.quiet && st.diagFormat != "json" && st.diagFormat != "sarif" {
		fmt.Fprintf(os.Stderr, "checked %d file(s), %d from cache\n", len(outcome.results), cached)
	}
	return reportErr
}
