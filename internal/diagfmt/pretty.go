package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tongue/internal/diag"
	"tongue/internal/source"
)

type palette struct {
	err     *color.Color
	warning *color.Color
	note    *color.Color
	code    *color.Color
	gutter  *color.Color
	path    *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		note:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		path:    color.New(color.FgHiWhite),
	}
	if enabled {
		// решение о цвете принимает вызывающий, а не TTY-детектор fatih/color
		for _, c := range []*color.Color{p.err, p.warning, p.note, p.code, p.gutter, p.path} {
			c.EnableColor()
		}
	} else {
		for _, c := range []*color.Color{p.err, p.warning, p.note, p.code, p.gutter, p.path} {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) level(l diag.Level) *color.Color {
	switch l {
	case diag.Error:
		return p.err
	case diag.Warning:
		return p.warning
	default:
		return p.note
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке bag.
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <LEVEL> <CODE>: <message>
// затем строки контекста с подчёркиванием ^~~~ по Span, затем заметки.
func Pretty(w io.Writer, bag *diag.Bag, set *source.Set, opts PrettyOpts) {
	PrettyItems(w, bag.Items(), set, opts)
}

// PrettyItems is Pretty over an explicit slice.
func PrettyItems(w io.Writer, items []diag.Diagnostic, set *source.Set, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writePretty(w, d, set, opts, p)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, set *source.Set, opts PrettyOpts, p *palette) {
	header := fmt.Sprintf("%s %s: %s",
		p.level(d.Level()).Sprint(d.Level().String()),
		p.code.Sprint(diag.CodeOf(d).ID()),
		d.String(),
	)
	sp, located := d.PrimarySpan()
	if !located {
		fmt.Fprintln(w, header)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(location(sp, set, opts.PathMode)), header)
	writeSnippet(w, sp, opts, p, p.level(d.Level()))

	if !opts.ShowNotes {
		return
	}
	if l, ok := d.(diag.Labeled); ok {
		for _, label := range l.Labels() {
			fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"), location(label.Span, set, opts.PathMode), label.Msg)
		}
		return
	}
	for _, sec := range diag.Secondary(d) {
		fmt.Fprintf(w, "  %s: see %s\n", p.note.Sprint("note"), location(sec, set, opts.PathMode))
	}
}

func location(sp source.Span, set *source.Set, mode PathMode) string {
	lc := sp.Start().LineCol()
	return fmt.Sprintf("%s:%d:%d", FormatPath(sp.Source(), set, mode), lc.Line, lc.Col)
}

// writeSnippet prints the lines of sp with Context lines before it, and
// underlines sp on its first line. Columns are display cells, not clusters.
func writeSnippet(w io.Writer, sp source.Span, opts PrettyOpts, p *palette, mark *color.Color) {
	src := sp.Source()
	shown := sp
	if sp.Len() > 0 && sp.End().Column() == 0 {
		// конец попал ровно на начало следующей строки
		shown = sp.Slice(source.Between(0, sp.Len()-1))
	}
	block := shown.ExpandLines()
	first := block.Start().Line()
	last := block.End().Line()
	if block.Len() > 0 && block.End().Column() == 0 {
		// block заканчивается переводом строки
		last--
	}
	from := max(0, first-int(opts.Context))

	gutterWidth := len(fmt.Sprint(last + 1))
	for line := from; line <= last; line++ {
		text := lineText(src, line)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line+1), text)
		if line != first {
			continue
		}
		pad, width := underline(src, sp)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			mark.Sprint("^"+strings.Repeat("~", max(0, width-1))),
		)
	}
}

// lineText returns line without its line break, tabs widened to one cell.
func lineText(src *source.Source, line int) string {
	sp, ok := src.LineSpan(line)
	if !ok {
		return ""
	}
	text := sp.Text()
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return strings.ReplaceAll(text, "\t", " ")
}

// underline returns the display offset of sp on its line and the display
// width of its part on that line, at least 1.
func underline(src *source.Source, sp source.Span) (pad, width int) {
	start := sp.Start()
	line := start.LineSpan()
	before, _ := src.GetRange(line.Start().Position(), start.Position())
	pad = runewidth.StringWidth(strings.ReplaceAll(before, "\t", " "))

	end := min(line.End().Position(), sp.End().Position())
	covered, _ := src.GetRange(start.Position(), end)
	covered = strings.TrimRight(covered, "\r\n")
	width = max(1, runewidth.StringWidth(strings.ReplaceAll(covered, "\t", " ")))
	return pad, width
}

// Plain writes each diagnostic as "<message>, <span>", one per line; the
// span part is omitted for unlocated diagnostics.
func Plain(w io.Writer, items []diag.Diagnostic) {
	for _, d := range items {
		if sp, ok := d.PrimarySpan(); ok {
			fmt.Fprintf(w, "%s, %s\n", d.String(), sp)
			continue
		}
		fmt.Fprintln(w, d.String())
	}
}
