// Package textnorm normalizes raw recognizer text: filler-word removal,
// whitespace collapsing and punctuation spacing fixes.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Small spoken fillers, with any run of repeated trailing letters
	// ("ummmm", "uhh") and the punctuation/whitespace immediately after.
	fillerRE = regexp.MustCompile(`(?i)\b(?:um+|uh+|hmm+|erm+|eh+)\b[,.\s]*`)

	whitespaceRE  = regexp.MustCompile(`\s+`)
	spaceBeforeRE = regexp.MustCompile(`\s+([,.;:!?])`)
)

// Normalizer cleans recognizer output. The zero value keeps filler words.
type Normalizer struct {
	removeFillers bool
}

// New returns a Normalizer. When removeFillers is true, Clean deletes
// whole-word fillers (um, uh, hmm, erm, eh) together with trailing
// punctuation and whitespace.
func New(removeFillers bool) Normalizer {
	return Normalizer{removeFillers: removeFillers}
}

// Clean normalizes raw text. It is pure and idempotent:
// Clean(Clean(x)) == Clean(x) for any input.
func (n Normalizer) Clean(raw string) string {
	t := strings.TrimSpace(raw)
	if n.removeFillers {
		t = fillerRE.ReplaceAllString(t, "")
	}
	t = whitespaceRE.ReplaceAllString(t, " ")
	t = spaceBeforeRE.ReplaceAllString(t, "${1}")
	return strings.TrimSpace(t)
}
