package main

import (
	"fmt"
	"io"
	"os"

	"tongue/internal/diag"
	"tongue/internal/diagfmt"
	"tongue/internal/source"
	"tongue/internal/version"
)

// reportDiagnostics merges bags in order and writes them to w in the
// configured format. It returns errHasErrors when any bag holds an error.
// With --timings, machine formats carry the timings as a diagnostic, the
// others get a summary table on stderr.
func reportDiagnostics(w io.Writer, st settings, set *source.Set, bags ...*diag.Bag) error {
	merged := diag.NewBag()
	for _, bag := range bags {
		merged.Merge(bag)
	}

	machine := st.diagFormat == "json" || st.diagFormat == "sarif"
	if st.timer != nil && machine {
		merged.Raise(st.timer.Diagnostic())
	}

	if err := writeDiagnostics(w, st, set, merged); err != nil {
		return err
	}
	if st.timer != nil && !machine && !st.quiet {
		fmt.Fprint(os.Stderr, st.timer.Summary())
	}
	if merged.IsErr() {
		return errHasErrors
	}
	return nil
}

func writeDiagnostics(w io.Writer, st settings, set *source.Set, bag *diag.Bag) error {
	switch st.diagFormat {
	case "json":
		return diagfmt.JSON(w, bag, set, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         st.pathMode,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, set, diagfmt.SarifRunMeta{
			ToolName:       "tongue",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}

	// текстовые форматы молчат, когда сказать нечего
	if bag.Len() == 0 {
		return nil
	}
	switch st.diagFormat {
	case "plain":
		diagfmt.Plain(w, bag.Items())
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatShort(bag.Items(), set, true))
		return err
	default:
		diagfmt.Pretty(w, bag, set, diagfmt.PrettyOpts{
			Color:     st.color,
			Context:   st.context,
			PathMode:  st.pathMode,
			ShowNotes: true,
		})
	}
	if bag.Dropped() > 0 {
		_, err := fmt.Fprintf(w, "... and %d more diagnostics\n", bag.Dropped())
		return err
	}
	return nil
}
