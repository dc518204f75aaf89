package diag

// Level defines the importance of a diagnostic.
type Level uint8

const (
	// Note is for informational diagnostics.
	Note Level = iota
	// Warning does not make the result unusable.
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Note:
		return "NOTE"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lowercase form used in one-line output.
func (l Level) Label() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}
