package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tongue/internal/lexer"
)

// TokenSlot is one slot of a token stream: a token or the lexing error that
// took its place.
type TokenSlot[K lexer.Kind] struct {
	Token lexer.Token[K]
	Err   error
}

// TokenOutput is the JSON form of a slot.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start *Pos   `json:"start,omitempty"`
	End   *Pos   `json:"end,omitempty"`
	Error string `json:"error,omitempty"`
}

// Pos is a 1-based line and column in grapheme clusters.
type Pos struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func kindName(k any) string {
	if n, ok := k.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprint(k)
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty[K lexer.Kind](w io.Writer, slots []TokenSlot[K]) error {
	for i, slot := range slots {
		if slot.Err != nil {
			if _, err := fmt.Fprintf(w, "%3d: %-12s %v\n", i+1, "<error>", slot.Err); err != nil {
				return err
			}
			continue
		}
		tok := slot.Token
		start, end := tok.Span.Start().LineCol(), tok.Span.End().LineCol()
		line := fmt.Sprintf("%3d: %-12s", i+1, kindName(tok.Kind))
		if text := tok.Text(); text != "" {
			line += fmt.Sprintf(" %q", text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.IsEOF() {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts slots to their JSON form, stopping after EOF.
func BuildTokensOutput[K lexer.Kind](slots []TokenSlot[K]) []TokenOutput {
	output := make([]TokenOutput, 0, len(slots))
	for _, slot := range slots {
		if slot.Err != nil {
			output = append(output, TokenOutput{Kind: "<error>", Error: slot.Err.Error()})
			continue
		}
		tok := slot.Token
		start, end := tok.Span.Start().LineCol(), tok.Span.End().LineCol()
		output = append(output, TokenOutput{
			Kind:  kindName(tok.Kind),
			Text:  tok.Text(),
			Start: &Pos{Line: start.Line, Col: start.Col},
			End:   &Pos{Line: end.Line, Col: end.Col},
		})
		if tok.IsEOF() {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON[K lexer.Kind](w io.Writer, slots []TokenSlot[K]) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(slots))
}
