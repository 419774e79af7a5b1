package entry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// Field weights for lexical search. A hit must clear minSearchScore, so a
// full-text-only match is not enough on its own.
const (
	filenameWeight = 30
	summaryWeight  = 40
	keyTermWeight  = 50
	fullTextWeight = 20
	categoryWeight = 25
	minSearchScore = 30

	// fullTextScanLimit bounds how much body text each entry contributes
	// to matching.
	fullTextScanLimit = 1000
)

// SearchHit pairs an entry with its lexical relevance score.
type SearchHit struct {
	Entry domentry.Entry
	Score int
}

// Search scans the corpus for entries matching the query and returns hits
// ordered by descending score. Matching is case-insensitive substring
// containment per field; field scores accumulate.
func (s *Service) Search(ctx context.Context, query string) ([]SearchHit, error) {
	corpus, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot corpus: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var hits []SearchHit
	for i := range corpus {
		if score := scoreEntry(&corpus[i], q); score > minSearchScore {
			hits = append(hits, SearchHit{Entry: corpus[i], Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits, nil
}

func scoreEntry(e *domentry.Entry, q string) int {
	score := 0
	if strings.Contains(strings.ToLower(e.Filename()), q) {
		score += filenameWeight
	}
	if strings.Contains(strings.ToLower(e.Summary()), q) {
		score += summaryWeight
	}
	for _, term := range e.KeyTerms() {
		if strings.Contains(strings.ToLower(term), q) {
			score += keyTermWeight
			break
		}
	}
	body := e.FullText()
	if len(body) > fullTextScanLimit {
		body = body[:fullTextScanLimit]
	}
	if strings.Contains(strings.ToLower(body), q) {
		score += fullTextWeight
	}
	if q == string(e.Category()) {
		score += categoryWeight
	}
	return score
}
