package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tongue/internal/diag"
	"tongue/internal/diagfmt"
	"tongue/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.lc|directory|->",
	Short: "Tokenize a lambda calculus source file or directory",
	Long:  `Tokenize breaks a source file, every *.lc file in a directory, or standard input ("-"), into tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if !isOneOf(format, []string{"pretty", "json"}) {
		return invalidChoice("format", format, []string{"pretty", "json"})
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
		result, err := driver.Tokenize(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if format == "json" {
			err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
		} else {
			err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens)
		}
		if err != nil {
			return err
		}
		return reportDiagnostics(os.Stderr, st, result.Set, result.Bag)
	}

	set, results, err := driver.TokenizeDir(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	bags := make([]*diag.Bag, 0, len(results))
	for _, r := range results {
		bags = append(bags, r.Bag)
	}

	if format == "json" {
		output := make(map[string][]diagfmt.TokenOutput, len(results))
		for _, r := range results {
			output[displayPath(set, r.Path, r.Source, st)] = diagfmt.BuildTokensOutput(r.Tokens)
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
		if err := diagfmt.FormatTokensPretty(os.Stdout, r.Tokens); err != nil {
			return err
		}
		if !st.quiet && idx < len(results)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	return reportDiagnostics(os.Stderr, st, set, bags...)
}
