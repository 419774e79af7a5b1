// Package lexicon extracts the bounded key-term set attached to a codex
// entry at ingestion time.
package lexicon

import (
	"regexp"
	"strings"
)

// MaxKeyTerms caps the number of key terms per entry.
const MaxKeyTerms = 10

// markerRe finds the literal "Key terms:" marker followed by a
// comma-separated list running up to the next period.
var markerRe = regexp.MustCompile(`(?i)Key terms:\s*([^.]+)`)

// Vocabulary is the fixed set of known domain terms scanned for in every
// entry. Matching is exact case-insensitive substring; no stemming, no
// fuzzy matching.
var Vocabulary = []string{
	"Kabbalah",
	"Gnosis",
	"Alchemy",
	"Sufism",
	"Hermeticism",
	"Tarot",
	"Sigil",
	"Axis Mundi",
	"Emanation",
	"Archetype",
	"Initiation",
	"Mystagogy",
	"Cosmogenesis",
	"Psychogenesis",
	"Theurgy",
	"Anamnesis",
	"Logos",
	"Pleroma",
	"Monad",
	"Labyrinth",
}

// ExtractKeyTerms returns up to MaxKeyTerms unique terms for the given text.
// Terms listed after a "Key terms:" marker are seeded first with their
// original casing, then any vocabulary term found in the text is appended.
// Duplicates are dropped case-insensitively, first-seen casing wins.
// Deterministic for a fixed text and vocabulary; never fails, malformed or
// empty text yields an empty list.
func ExtractKeyTerms(text string) []string {
	var terms []string
	seen := make(map[string]struct{})

	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		terms = append(terms, term)
	}

	if m := markerRe.FindStringSubmatch(text); m != nil {
		for _, t := range strings.Split(m[1], ",") {
			add(t)
		}
	}

	folded := strings.ToLower(text)
	for _, v := range Vocabulary {
		if strings.Contains(folded, strings.ToLower(v)) {
			add(v)
		}
	}

	if len(terms) > MaxKeyTerms {
		terms = terms[:MaxKeyTerms]
	}
	return terms
}
