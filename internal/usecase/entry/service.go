// Package entry manages the codex corpus: ingestion with classification and
// key-term extraction, retrieval, deletion, corpus statistics, and lexical
// search.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

// IngestRequest carries the caller-supplied fields of a new entry. ID is
// optional; a UUID is assigned when empty. Category, subcategory, and key
// terms are always derived during ingestion, never accepted from the caller.
type IngestRequest struct {
	ID        string
	Filename  string
	Summary   string
	FullText  string
	KeyChunks []string
}

// Stats summarizes the corpus.
type Stats struct {
	TotalEntries int
	TotalSize    int
	ByCategory   map[taxonomy.Category]int
}

// Service handles entry lifecycle operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates an entry service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Ingest classifies and indexes a new entry, then stores it. The derived
// fields are computed exactly once here; reads never reclassify.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (domentry.Entry, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	e, err := domentry.New(id, req.Filename, req.Summary, req.FullText, req.KeyChunks, s.now().UTC())
	if err != nil {
		return domentry.Entry{}, err
	}

	if err := s.repo.Put(ctx, e); err != nil {
		return domentry.Entry{}, fmt.Errorf("store entry: %w", err)
	}
	return e, nil
}

// Get retrieves a single entry by ID.
func (s *Service) Get(ctx context.Context, id string) (domentry.Entry, error) {
	return s.repo.Get(ctx, id)
}

// List returns the whole corpus in corpus order.
func (s *Service) List(ctx context.Context) ([]domentry.Entry, error) {
	return s.repo.List(ctx)
}

// Delete removes an entry by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Snapshot returns the corpus for engine computations. It is the List
// operation under the name the engine contracts use.
func (s *Service) Snapshot(ctx context.Context) ([]domentry.Entry, error) {
	return s.repo.List(ctx)
}

// Stats computes corpus totals and the per-category breakdown.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	corpus, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("snapshot corpus: %w", err)
	}

	stats := Stats{
		TotalEntries: len(corpus),
		ByCategory:   make(map[taxonomy.Category]int),
	}
	for i := range corpus {
		stats.TotalSize += corpus[i].Size()
		stats.ByCategory[corpus[i].Category()]++
	}
	return stats, nil
}
