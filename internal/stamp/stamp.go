// Package stamp canonicalizes the TED digital-stamp block and encodes it
// as the PDF417 verification barcode printed on the document.
package stamp

import (
	"regexp"
	"strings"
)

var (
	nsDeclPattern   = regexp.MustCompile(`\sxmlns(:\w+)?="[^"]+"`)
	nsPrefixPattern = regexp.MustCompile(`\bns\d+:`)
	interTagSpace   = regexp.MustCompile(`>\s+<`)
	spaceRuns       = regexp.MustCompile(`\s+`)
)

// Canonicalize reduces stamp text to the exact form the verification
// scheme expects: residual namespace declarations and prefixes dropped,
// whitespace between tags removed, internal whitespace runs collapsed to a
// single space. Text content that is not pure separator whitespace is
// never altered. Idempotent with the parser's own stripping pass, and
// re-applied here because stamp text can arrive from callers that never
// went through the parser.
func Canonicalize(ted string) string {
	s := strings.TrimSpace(ted)
	s = nsDeclPattern.ReplaceAllString(s, "")
	s = nsPrefixPattern.ReplaceAllString(s, "")
	s = interTagSpace.ReplaceAllString(s, "><")
	s = spaceRuns.ReplaceAllString(s, " ")
	return s
}
