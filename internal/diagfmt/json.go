package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"tongue/internal/diag"
	"tongue/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON.
// Start и End считаются в кластерах графем, байты даны отдельно.
type LocationJSON struct {
	File      string `json:"file"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func toUint32(v int) (uint32, error) {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("offset %d overflows uint32: %w", v, err)
	}
	return out, nil
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, set *source.Set, pathMode PathMode, includePositions bool) (LocationJSON, error) {
	startByte, endByte := span.Bytes()
	values := []int{span.Start().Position(), span.End().Position(), startByte, endByte}
	conv := make([]uint32, len(values))
	for i, v := range values {
		c, err := toUint32(v)
		if err != nil {
			return LocationJSON{}, err
		}
		conv[i] = c
	}

	loc := LocationJSON{
		File:      FormatPath(span.Source(), set, pathMode),
		Start:     conv[0],
		End:       conv[1],
		StartByte: conv[2],
		EndByte:   conv[3],
	}
	if includePositions {
		start, end := span.Start().LineCol(), span.End().LineCol()
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc, nil
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, set *source.Set, opts JSONOpts) (DiagnosticsOutput, error) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		diagJSON := DiagnosticJSON{
			Severity: d.Level().String(),
			Code:     diag.CodeOf(d).ID(),
			Message:  d.String(),
		}
		if sp, ok := d.PrimarySpan(); ok {
			loc, err := makeLocation(sp, set, opts.PathMode, opts.IncludePositions)
			if err != nil {
				return DiagnosticsOutput{}, err
			}
			diagJSON.Location = &loc
		}

		// тайминги всегда несут данные в заметках
		includeNotes := opts.IncludeNotes || diag.CodeOf(d) == diag.ObsTimings
		if l, ok := d.(diag.Labeled); ok && includeNotes {
			for _, note := range l.Labels() {
				loc, err := makeLocation(note.Span, set, opts.PathMode, opts.IncludePositions)
				if err != nil {
					return DiagnosticsOutput{}, err
				}
				diagJSON.Notes = append(diagJSON.Notes, NoteJSON{Message: note.Msg, Location: loc})
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}, nil
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, set *source.Set, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, set, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
