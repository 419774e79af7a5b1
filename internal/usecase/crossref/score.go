package crossref

import (
	"strings"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
)

const (
	// keyTermWeight is the score contribution of one shared key term.
	keyTermWeight = 2
	// minScore is the inclusive relatedness cutoff. A pair sharing one key
	// term plus one long summary word qualifies; one key term alone does not.
	minScore = 3
	// maxResults caps the related list per source entry.
	maxResults = 6
	// minWordLen is the exclusive length floor for summary words. Short
	// connective words carry no topical signal.
	minWordLen = 4
)

// Related scores every other corpus entry against the source entry and
// returns those meeting the cutoff, in corpus order, capped at maxResults.
// The score is 2 per shared key term (case-folded) plus 1 per distinct
// shared summary word longer than four characters. An unknown source ID
// yields an empty result.
func Related(sourceID string, corpus []entry.Entry) []entry.Entry {
	var source *entry.Entry
	for i := range corpus {
		if corpus[i].ID() == sourceID {
			source = &corpus[i]
			break
		}
	}
	if source == nil {
		return nil
	}

	sourceTerms := foldSet(source.KeyTerms())
	sourceWords := summaryWords(source.Summary())

	var related []entry.Entry
	for i := range corpus {
		if corpus[i].ID() == sourceID {
			continue
		}
		score := keyTermWeight * countShared(sourceTerms, corpus[i].KeyTerms())
		score += countSharedWords(sourceWords, corpus[i].Summary())
		if score >= minScore {
			related = append(related, corpus[i])
			if len(related) == maxResults {
				break
			}
		}
	}
	return related
}

// countShared counts terms whose case-folded form appears in the source set.
func countShared(source map[string]struct{}, terms []string) int {
	shared := 0
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		folded := strings.ToLower(t)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		if _, ok := source[folded]; ok {
			shared++
		}
	}
	return shared
}

// countSharedWords counts distinct long words of the candidate summary that
// also occur in the source summary.
func countSharedWords(source map[string]struct{}, summary string) int {
	shared := 0
	for w := range summaryWords(summary) {
		if _, ok := source[w]; ok {
			shared++
		}
	}
	return shared
}

// summaryWords folds a summary to the set of its words longer than
// minWordLen characters.
func summaryWords(summary string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(summary)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) > minWordLen {
			words[w] = struct{}{}
		}
	}
	return words
}

func foldSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
