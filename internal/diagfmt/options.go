package diagfmt

import "tongue/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) setMode() string {
	switch m {
	case PathModeAbsolute:
		return source.PathAbsolute
	case PathModeRelative:
		return source.PathRelative
	case PathModeBasename:
		return source.PathBasename
	default:
		return source.PathAuto
	}
}

// ParsePathMode maps a flag value to a PathMode; unknown values are auto.
func ParsePathMode(s string) PathMode {
	switch s {
	case "absolute", "abs":
		return PathModeAbsolute
	case "relative", "rel":
		return PathModeRelative
	case "basename", "base":
		return PathModeBasename
	default:
		return PathModeAuto
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста перед подсвеченной
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

// FormatPath renders the name of src in mode; a nil set keeps the name as is.
func FormatPath(src *source.Source, set *source.Set, mode PathMode) string {
	if set == nil {
		return src.Name()
	}
	return set.FormatPath(src, mode.setMode())
}
