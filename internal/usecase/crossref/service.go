// Package crossref finds entries related to a source entry by shared key
// terms and overlapping summary vocabulary. Relatedness is recomputed from a
// corpus snapshot on every request; nothing derived is stored.
package crossref

import (
	"context"
	"fmt"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// Service computes cross-references over the stored corpus.
type Service struct {
	corpus CorpusReader
}

// New creates a cross-reference service.
func New(corpus CorpusReader) *Service {
	return &Service{corpus: corpus}
}

// Find returns the entries related to the given source entry, in corpus
// order. A source ID absent from the corpus yields an empty list, not an
// error.
func (s *Service) Find(ctx context.Context, sourceID string) ([]entry.Entry, error) {
	corpus, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot corpus: %w", err)
	}
	return Related(sourceID, corpus), nil
}
