package diag

import (
	"fmt"
	"strings"

	"tongue/internal/source"
)

// FormatShort renders diagnostics one per line, in order:
//
//	<level> <CODE> <path>:<line>:<col> <message>
//
// Diagnostics without a span omit the location. set formats paths relative
// to its base directory; with a nil set the source name is used as is.
// With includeNotes, labeled secondary spans follow as "note" lines.
func FormatShort(items []Diagnostic, set *source.Set, includeNotes bool) string {
	var b strings.Builder
	for _, d := range items {
		code := CodeOf(d).ID()
		writeShort(&b, d.Level().Label(), code, d, set)
		if !includeNotes {
			continue
		}
		if l, ok := d.(Labeled); ok {
			for _, label := range l.Labels() {
				b.WriteByte('\n')
				fmt.Fprintf(&b, "note %s %s %s", code, shortLocation(label.Span, set), sanitizeMessage(label.Msg))
			}
		}
	}
	return b.String()
}

func writeShort(b *strings.Builder, level, code string, d Diagnostic, set *source.Set) {
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	if sp, ok := d.PrimarySpan(); ok {
		fmt.Fprintf(b, "%s %s %s %s", level, code, shortLocation(sp, set), sanitizeMessage(d.String()))
		return
	}
	fmt.Fprintf(b, "%s %s %s", level, code, sanitizeMessage(d.String()))
}

func shortLocation(sp source.Span, set *source.Set) string {
	src := sp.Source()
	path := src.Name()
	if set != nil {
		path = set.FormatPath(src, source.PathRelative)
	}
	lc := sp.Start().LineCol()
	return fmt.Sprintf("%s:%d:%d", strings.TrimPrefix(path, "./"), lc.Line, lc.Col)
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
