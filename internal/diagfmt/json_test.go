package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"tongue/internal/diag"
	"tongue/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	set := source.NewSet(source.LoadOptions{})
	src := set.AddVirtual("test.lc", "\\名. 名 &")

	bag := diag.NewBag()
	bag.Raise(diag.NewError(diag.LexInvalidGrapheme, spanAt(t, src, 6, 1), `invalid grapheme cluster "&"`))
	bag.Raise(diag.Unlocated(diag.Warning, diag.IOCacheError, "cache unavailable"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, set, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1001" {
		t.Errorf("severity/code = %s %s", d.Severity, d.Code)
	}
	if d.Location == nil {
		t.Fatalf("location missing")
	}
	loc := *d.Location
	if loc.File != "test.lc" {
		t.Errorf("file = %s", loc.File)
	}
	// "\名. 名 ": шесть кластеров и десять байт
	if loc.Start != 6 || loc.End != 7 {
		t.Errorf("clusters = %d..%d, want 6..7", loc.Start, loc.End)
	}
	if loc.StartByte != 10 || loc.EndByte != 11 {
		t.Errorf("bytes = %d..%d, want 10..11", loc.StartByte, loc.EndByte)
	}
	if loc.StartLine != 1 || loc.StartCol != 7 || loc.EndCol != 8 {
		t.Errorf("positions = %d:%d-%d:%d", loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
	}

	if output.Diagnostics[1].Location != nil {
		t.Errorf("unlocated diagnostic has a location")
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	set := source.NewSet(source.LoadOptions{})
	src := set.AddVirtual("test.lc", "(a b")

	bag := diag.NewBagWithLimit(2)
	for i := range 3 {
		bag.Raise(diag.NewError(diag.SynMismatchedToken, spanAt(t, src, i, 1), "x").
			WithNote(spanAt(t, src, 3, 1), "related"))
	}

	out, err := BuildDiagnosticsOutput(bag, set, JSONOpts{Max: 1})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
	// один отброшен лимитом bag, один обрезан Max
	if out.Dropped != 2 {
		t.Errorf("dropped = %d, want 2", out.Dropped)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes included without IncludeNotes")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions")
	}

	out, err = BuildDiagnosticsOutput(bag, set, JSONOpts{IncludeNotes: true})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if len(out.Diagnostics) != 2 || len(out.Diagnostics[1].Notes) != 1 {
		t.Fatalf("diagnostics = %+v", out.Diagnostics)
	}
	if note := out.Diagnostics[1].Notes[0]; note.Message != "related" || note.Location.Start != 3 {
		t.Errorf("note = %+v", note)
	}
}

func TestSarif(t *testing.T) {
	set := source.NewSet(source.LoadOptions{})
	src := set.AddVirtual("test.lc", "x)\n.")

	bag := diag.NewBag()
	bag.Raise(diag.NewError(diag.SynUnmatchedCloseParen, spanAt(t, src, 1, 1), "unmatched closing parenthesis `)`"))
	bag.Raise(diag.NewError(diag.SynMismatchedToken, spanAt(t, src, 3, 1), "expected <identifier>, found `.`"))
	bag.Raise(diag.NewError(diag.SynMismatchedToken, spanAt(t, src, 3, 1), "again"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, set, SarifRunMeta{ToolName: "tongue", ToolVersion: "0.1.0", InvocationArgs: []string{"parse", "test.lc"}}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				ExecutionSuccessful bool `json:"executionSuccessful"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}

	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("version %q, runs %d", log.Version, len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "tongue" {
		t.Errorf("tool name = %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "SYN2001" || run.Tool.Driver.Rules[1].ID != "SYN2003" {
		t.Errorf("rules = %+v", run.Tool.Driver.Rules)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("invocations = %+v", run.Invocations)
	}
	if len(run.Results) != 3 {
		t.Fatalf("results = %d", len(run.Results))
	}
	second := run.Results[1]
	if second.RuleID != "SYN2001" || second.Level != "error" {
		t.Errorf("result = %+v", second)
	}
	region := second.Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 1 {
		t.Errorf("region = %+v", region)
	}
}
