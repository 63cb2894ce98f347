package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// MaxPlausibleYears is the exclusive ceiling on a years-of-experience figure.
// Larger numbers next to "years" are usually calendar years or noise.
const MaxPlausibleYears = 50

// Digits and whitespace are matched by their Unicode classes, so figures
// separated by a non-breaking or thin space (common in text pasted from PDFs)
// still count.
var yearsPattern = regexp.MustCompile(`(?i)(\p{Nd}+)[\s\v\p{Z}\x{1c}-\x{1f}\x{85}]*(?:years|yrs)`)

// EstimateYears returns the largest "<n> years" or "<n>yrs" figure in text
// below MaxPlausibleYears, or 0 when there is none.
func EstimateYears(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(asciiDigits(m[1]))
		if err != nil {
			// overflow: far above the ceiling anyway
			continue
		}
		if n < MaxPlausibleYears && n > best {
			best = n
		}
	}
	return best
}

// asciiDigits rewrites decimal digits from any script as ASCII 0-9.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII {
			return r
		}
		return '0' + digitValue(r)
	}, s)
}

// digitValue returns the value of a Unicode decimal digit. Every Nd range
// is a run of whole 0-9 sequences, so the offset from the start of the run
// modulo 10 is the value.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}
