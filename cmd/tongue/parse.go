package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tongue/internal/diag"
	"tongue/internal/diagfmt"
	"tongue/internal/driver"
	"tongue/internal/lambda"
	"tongue/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.lc|directory|->",
	Short: "Parse a lambda calculus source file or directory and print the expression",
	Long:  `Parse analyzes a source file, every *.lc file in a directory, or standard input ("-"), and prints the expression tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

type parseDirOutcome struct {
	set     *source.Set
	results []driver.ParseDirResult
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if formats := []string{"pretty", "json", "tree"}; !isOneOf(format, formats) {
		return invalidChoice("format", format, formats)
	}
	st, err := readSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}

	isDir, err := isDirTarget(target)
	if err != nil {
		return err
	}

	if !isDir {
		result, err := driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Expr != nil {
			if err := writeExpr(format, result.Expr); err != nil {
				return err
			}
		}
		return reportDiagnostics(os.Stderr, st, result.Set, result.Bag)
	}

	parseAll := func(o driver.Options) (parseDirOutcome, error) {
		set, _, results, err := driver.ParseDir(cmd.Context(), target, o)
		return parseDirOutcome{set: set, results: results}, err
	}
	useTUI, err := wantsTUI(cmd, st, format == "json")
	if err != nil {
		return err
	}
	var outcome parseDirOutcome
	if useTUI {
		files, listErr := driver.ListSources(target)
		if listErr != nil {
			return fmt.Errorf("parsing failed: %w", listErr)
		}
		outcome, err = runWithUI("parse "+target, files, opts, parseAll)
	} else {
		outcome, err = parseAll(opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	set, results := outcome.set, outcome.results
	bags := make([]*diag.Bag, 0, len(results))
	for _, r := range results {
		bags = append(bags, r.Bag)
	}

	if format == "json" {
		output := make(map[string]*diagfmt.ExprOutput, len(results))
		for _, r := range results {
			output[displayPath(set, r.Path, r.Source, st)] = diagfmt.BuildExprOutput(r.Expr)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return err
		}
		return reportDiagnostics(os.Stderr, st, set, bags...)
	}

	for idx, r := range results {
		if !st.quiet {
			fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(set, r.Path, r.Source, st))
		}
		if r.Expr != nil {
			if err := writeExpr(format, r.Expr); err != nil {
				return err
			}
		}
		if !st.quiet && idx < len(results)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	return reportDiagnostics(os.Stderr, st, set, bags...)
}

func writeExpr(format string, expr *lambda.Expr) error {
	switch format {
	case "json":
		return diagfmt.FormatExprJSON(os.Stdout, expr)
	case "tree":
		return diagfmt.FormatExprTree(os.Stdout, expr)
	default:
		return diagfmt.FormatExprPretty(os.Stdout, expr)
	}
}
