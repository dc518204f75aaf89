package grapheme

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Cluster is a single grapheme cluster.
type Cluster string

// New returns content as a Cluster when it is exactly one grapheme cluster.
func New(content string) (Cluster, bool) {
	if content == "" {
		return "", false
	}
	_, rest, _, _ := uniseg.FirstGraphemeClusterInString(content, -1)
	if rest != "" {
		return "", false
	}
	return Cluster(content), true
}

func (c Cluster) String() string { return string(c) }

// ByteLen returns the length of the cluster in bytes.
func (c Cluster) ByteLen() int { return len(c) }

// CountRunes returns how many code points compose the cluster.
func (c Cluster) CountRunes() int { return utf8.RuneCountInString(string(c)) }

// HasDiacritics reports whether the cluster carries more than its base rune.
func (c Cluster) HasDiacritics() bool { return c.CountRunes() > 1 }

// StripDiacritics returns the base (first) rune of the cluster.
func (c Cluster) StripDiacritics() rune {
	r, _ := utf8.DecodeRuneInString(string(c))
	return r
}

// ToRune returns the cluster's rune when it is made of exactly one rune.
func (c Cluster) ToRune() (rune, bool) {
	r, size := utf8.DecodeRuneInString(string(c))
	if size == 0 || size != len(c) {
		return 0, false
	}
	return r, true
}

// IsRune reports whether the cluster is a single rune.
func (c Cluster) IsRune() bool {
	_, ok := c.ToRune()
	return ok
}

func (c Cluster) runeIs(pred func(rune) bool) bool {
	r, ok := c.ToRune()
	return ok && pred(r)
}

// IsAlphabetic reports whether the base rune is a letter; diacritics are ignored.
func (c Cluster) IsAlphabetic() bool { return c != "" && unicode.IsLetter(c.StripDiacritics()) }

// IsAlphabeticRune is IsAlphabetic without diacritics allowed.
func (c Cluster) IsAlphabeticRune() bool { return c.runeIs(unicode.IsLetter) }

// IsASCIIAlphabetic reports whether the cluster is a single ASCII letter.
func (c Cluster) IsASCIIAlphabetic() bool { return c.runeIs(isASCIILetter) }

// IsNumeric reports whether the base rune is numeric; diacritics are ignored.
func (c Cluster) IsNumeric() bool { return c != "" && unicode.IsNumber(c.StripDiacritics()) }

// IsNumericRune is IsNumeric without diacritics allowed.
func (c Cluster) IsNumericRune() bool { return c.runeIs(unicode.IsNumber) }

// IsASCIINumeric reports whether the cluster is a single ASCII digit.
func (c Cluster) IsASCIINumeric() bool { return c.runeIs(isASCIIDigit) }

// IsAlphanumeric reports whether the base rune is a letter or numeric.
func (c Cluster) IsAlphanumeric() bool {
	if c == "" {
		return false
	}
	r := c.StripDiacritics()
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// IsAlphanumericRune is IsAlphanumeric without diacritics allowed.
func (c Cluster) IsAlphanumericRune() bool {
	return c.runeIs(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) })
}

// IsASCIIAlphanumeric reports whether the cluster is a single ASCII letter or digit.
func (c Cluster) IsASCIIAlphanumeric() bool {
	return c.runeIs(func(r rune) bool { return isASCIILetter(r) || isASCIIDigit(r) })
}

// IsWhitespace reports whether the base rune is whitespace. "\r\n" is one
// cluster and counts as whitespace.
func (c Cluster) IsWhitespace() bool { return c != "" && unicode.IsSpace(c.StripDiacritics()) }

// IsWhitespaceRune is IsWhitespace without diacritics allowed.
func (c Cluster) IsWhitespaceRune() bool { return c.runeIs(unicode.IsSpace) }

// IsDigit reports whether the base rune is a digit of base (2..36).
func (c Cluster) IsDigit(base int) bool {
	_, ok := c.ToDigit(base)
	return ok
}

// IsDigitRune is IsDigit without diacritics allowed.
func (c Cluster) IsDigitRune(base int) bool {
	_, ok := c.RuneToDigit(base)
	return ok
}

// ToDigit converts the base rune to its value in base (2..36).
func (c Cluster) ToDigit(base int) (int, bool) {
	if c == "" {
		checkBase(base)
		return 0, false
	}
	return digitValue(c.StripDiacritics(), base)
}

// RuneToDigit is ToDigit for single-rune clusters only.
func (c Cluster) RuneToDigit(base int) (int, bool) {
	r, ok := c.ToRune()
	if !ok {
		checkBase(base)
		return 0, false
	}
	return digitValue(r, base)
}

func digitValue(r rune, base int) (int, bool) {
	checkBase(base)
	var v int
	switch {
	case isASCIIDigit(r):
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

func checkBase(base int) {
	if base < 2 || base > 36 {
		panic(fmt.Sprintf("grapheme: digit base %d out of range 2..36", base))
	}
}

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
