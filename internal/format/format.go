// Package format provides the pure locale-specific formatting helpers used
// across the pipeline: RUT grouping, long-form Spanish dates, CLP thousands
// grouping, business-name title casing and output file naming.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/facturatools/dte-processor/internal/model"
)

// connectorWords stay lower-case unless they open the phrase.
var connectorWords = map[string]bool{
	"de": true, "del": true, "para": true, "por": true, "con": true,
	"sin": true, "y": true, "o": true, "u": true, "en": true, "a": true,
	"al": true, "la": true, "las": true, "el": true, "los": true,
	"un": true, "una": true, "unos": true, "unas": true,
}

// corporateSuffixes are forced upper-case regardless of position.
var corporateSuffixes = map[string]bool{
	"S.A.": true, "SA": true, "SPA": true, "EIRL": true, "LTDA": true,
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// RUT formats a Chilean RUT as 12.345.678-9: separators stripped, check
// character upper-cased, body grouped by thousands. Inputs shorter than two
// characters pass through unchanged. Idempotent.
func RUT(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	if len(s) < 2 {
		return s
	}

	body, check := s[:len(s)-1], s[len(s)-1:]

	var grouped string
	for len(body) > 3 {
		grouped = "." + body[len(body)-3:] + grouped
		body = body[:len(body)-3]
	}
	grouped = body + grouped

	return grouped + "-" + check
}

// TitleCase renders a business name in sentence-style casing: every word
// lower-cased then capitalized, except connector words (kept lower unless
// first) and corporate suffixes (kept upper).
func TitleCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for i, w := range words {
		if corporateSuffixes[strings.ToUpper(w)] {
			out = append(out, strings.ToUpper(w))
			continue
		}
		lower := strings.ToLower(w)
		if i == 0 || !connectorWords[lower] {
			out = append(out, capitalize(lower))
		} else {
			out = append(out, lower)
		}
	}
	return strings.Join(out, " ")
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// LongDate renders an ISO YYYY-MM-DD date as "D de <mes> de YYYY". A
// malformed input is a FormatError: long dates drive output file names and
// must be trustworthy.
func LongDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", model.NewFormatError("fecha", iso, "expected YYYY-MM-DD")
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year()), nil
}

// CLP renders an integer peso amount with "." as the thousands separator.
// CLP carries no decimals.
func CLP(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var grouped string
	for len(digits) > 3 {
		grouped = "." + digits[len(digits)-3:] + grouped
		digits = digits[:len(digits)-3]
	}
	return sign + digits + grouped
}
