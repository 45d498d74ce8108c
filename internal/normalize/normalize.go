package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Compiled patterns for text canonicalization
var (
	// Unicode dash and apostrophe variants folded to ASCII
	dashPattern       = regexp.MustCompile(`[–—−―]`)
	apostrophePattern = regexp.MustCompile("[’‘ʼ`´]")

	multiSpacePattern = regexp.MustCompile(`\s+`)

	// Apostrophe-attached Turkish case suffixes ("2025'e", "Aralık'a",
	// "Migros'ta"). Conservative: only the closed suffix list is stripped,
	// so "tl'ye varan" loses its suffix but free-standing words never do.
	suffixPattern = regexp.MustCompile(`'(?:nin|nın|nun|nün|den|dan|ten|tan|de|da|te|ta|ye|ya|yi|yı|yu|yü|e|a|i|ı|u|ü)\b`)
)

// Normalizer canonicalizes Turkish campaign text for the extractors.
// All methods are pure.
type Normalizer struct {
	lower cases.Caser
}

// New creates a normalizer with a Turkish-aware case folder, so that
// İ lowers to i and I lowers to ı.
func New() *Normalizer {
	return &Normalizer{
		lower: cases.Lower(language.Turkish),
	}
}

// Normalize lowercases with Turkish casing rules, folds dash and
// apostrophe variants to ASCII, and collapses whitespace.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := n.lower.String(text)
	s = dashPattern.ReplaceAllString(s, "-")
	s = apostrophePattern.ReplaceAllString(s, "'")
	s = multiSpacePattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// StripSuffixes removes apostrophe-attached case suffixes from already
// normalized text ("2025'e kadar" -> "2025 kadar"). Extractors that key on
// the suffix itself work on the unstripped form instead.
func StripSuffixes(text string) string {
	return suffixPattern.ReplaceAllString(text, "")
}
