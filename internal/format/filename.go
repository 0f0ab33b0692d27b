package format

import (
	"strings"
	"unicode"

	"github.com/facturatools/dte-processor/internal/model"
)

// MaxNameLength caps the sanitized party-name segment of output file names.
const MaxNameLength = 60

// Ellipsis marks a truncated file-name segment.
const Ellipsis = "…"

// SanitizeFileName strips every character that is not a letter, digit,
// space or hyphen, collapses runs of whitespace and truncates to max runes
// with a trailing ellipsis when exceeded. max <= 0 means no cap.
func SanitizeFileName(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := strings.Join(strings.Fields(b.String()), " ")

	if max > 0 {
		if runes := []rune(clean); len(runes) > max {
			clean = strings.TrimSpace(string(runes[:max])) + Ellipsis
		}
	}
	return clean
}

// OutputFileName builds the persistence name for a converted document:
// "<issueDateCompact> <abbrev> <sanitized issuer name> <folio>.<ext>".
func OutputFileName(doc *model.Document, ext string) string {
	date := strings.ReplaceAll(doc.IssueDate, "-", "")
	name := SanitizeFileName(TitleCase(doc.Issuer.Name), MaxNameLength)
	return date + " " + doc.TypeAbbrev + " " + name + " " + doc.Folio + "." + ext
}
