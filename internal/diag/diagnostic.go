package diag

import (
	"tongue/internal/source"
)

// Diagnostic is a finding about the input.
type Diagnostic interface {
	Level() Level
	// PrimarySpan returns the span the diagnostic points at; false when it
	// is not tied to a location (a file that could not be read).
	PrimarySpan() (source.Span, bool)
	// String returns the message.
	String() string
}

// WithSecondary is implemented by diagnostics that point at related spans.
type WithSecondary interface {
	SecondarySpans() []source.Span
}

// Coded is implemented by diagnostics with a stable Code.
type Coded interface {
	Code() Code
}

// Secondary returns the related spans of d, or nil.
func Secondary(d Diagnostic) []source.Span {
	if ws, ok := d.(WithSecondary); ok {
		return ws.SecondarySpans()
	}
	return nil
}

// CodeOf returns the code of d, or UnknownCode.
func CodeOf(d Diagnostic) Code {
	if c, ok := d.(Coded); ok {
		return c.Code()
	}
	return UnknownCode
}

// Label is a message attached to a secondary span.
type Label struct {
	Span source.Span
	Msg  string
}

// Generic is a diagnostic record for producers without a dedicated type.
type Generic struct {
	Sev     Level
	Kind    Code
	Message string
	Primary *source.Span
	Notes   []Label
}

// New returns a Generic diagnostic pointing at primary.
func New(level Level, code Code, primary source.Span, msg string) *Generic {
	return &Generic{Sev: level, Kind: code, Message: msg, Primary: &primary}
}

// NewError is New at Error level.
func NewError(code Code, primary source.Span, msg string) *Generic {
	return New(Error, code, primary, msg)
}

// Unlocated returns a Generic diagnostic without a span.
func Unlocated(level Level, code Code, msg string) *Generic {
	return &Generic{Sev: level, Kind: code, Message: msg}
}

// WithNote appends a secondary span with a message.
func (g *Generic) WithNote(sp source.Span, msg string) *Generic {
	g.Notes = append(g.Notes, Label{Span: sp, Msg: msg})
	return g
}

func (g *Generic) Level() Level   { return g.Sev }
func (g *Generic) Code() Code     { return g.Kind }
func (g *Generic) String() string { return g.Message }

func (g *Generic) PrimarySpan() (source.Span, bool) {
	if g.Primary == nil {
		return source.Span{}, false
	}
	return *g.Primary, true
}

func (g *Generic) SecondarySpans() []source.Span {
	if len(g.Notes) == 0 {
		return nil
	}
	out := make([]source.Span, len(g.Notes))
	for i, n := range g.Notes {
		out[i] = n.Span
	}
	return out
}

// Labels returns the notes with their messages.
func (g *Generic) Labels() []Label { return g.Notes }

// Labeled is implemented by diagnostics whose secondary spans carry messages.
type Labeled interface {
	Labels() []Label
}
