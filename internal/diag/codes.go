package diag

import (
	"fmt"
)

// Code is a stable numeric identifier of a diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo            Code = 1000
	LexInvalidGrapheme Code = 1001

	// Синтаксические
	SynInfo                Code = 2000
	SynMismatchedToken     Code = 2001
	SynUnmatchedOpenParen  Code = 2002
	SynUnmatchedCloseParen Code = 2003

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexInvalidGrapheme:     "Invalid grapheme cluster",
	SynInfo:                "Syntax information",
	SynMismatchedToken:     "Mismatched token",
	SynUnmatchedOpenParen:  "Unmatched opening parenthesis",
	SynUnmatchedCloseParen: "Unmatched closing parenthesis",
	IOLoadFileError:        "I/O load file error",
	IOCacheError:           "Result cache error",
	ObsInfo:                "Observability information",
	ObsTimings:             "Pipeline timings",
}

// ID renders the code as PREFIX plus four digits, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
