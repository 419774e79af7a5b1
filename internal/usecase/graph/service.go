// Package graph assembles the renderable similarity graph: a corpus
// snapshot is filtered, scored pairwise, and laid out on a canvas. The
// graph is rebuilt from scratch on every request.
package graph

import (
	"context"
	"fmt"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
	domgraph "github.com/ProjectLunareth/Codex/internal/domain/graph"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

// Request carries the graph computation parameters. Zero-value dimensions
// fall back to the default canvas, and a zero threshold falls back to the
// default similarity cutoff. The category filter is optional; empty means
// the whole corpus.
type Request struct {
	Mode      domgraph.Mode
	Threshold float64
	Category  taxonomy.Category
	Width     int
	Height    int
}

// Default canvas dimensions when the caller does not supply any.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Result is a computed graph ready for rendering.
type Result struct {
	Nodes []domgraph.Node
	Edges []domgraph.Edge
}

// Service computes similarity graphs over the stored corpus.
type Service struct {
	corpus CorpusReader
}

// New creates a graph service.
func New(corpus CorpusReader) *Service {
	return &Service{corpus: corpus}
}

// Build snapshots the corpus, applies the optional category filter, scores
// every remaining pair, and positions the nodes in the requested layout
// mode. Edges are computed over the filtered corpus before layout, so a
// node skipped by the layout never appears in an edge list narrower than
// its corpus.
func (s *Service) Build(ctx context.Context, req Request) (Result, error) {
	if req.Mode == "" {
		req.Mode = domgraph.Circular
	}
	if req.Threshold == 0 {
		req.Threshold = domgraph.DefaultThreshold
	}
	if req.Width <= 0 {
		req.Width = DefaultWidth
	}
	if req.Height <= 0 {
		req.Height = DefaultHeight
	}

	corpus, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("snapshot corpus: %w", err)
	}
	if req.Category != "" {
		corpus = filterCategory(corpus, req.Category)
	}

	edges := domgraph.BuildEdges(corpus, req.Threshold)
	nodes, err := domgraph.Layout(domgraph.NodesFrom(corpus), req.Mode, req.Width, req.Height)
	if err != nil {
		return Result{}, fmt.Errorf("layout graph: %w", err)
	}

	return Result{Nodes: nodes, Edges: edges}, nil
}

func filterCategory(corpus []entry.Entry, category taxonomy.Category) []entry.Entry {
	filtered := make([]entry.Entry, 0, len(corpus))
	for i := range corpus {
		if corpus[i].Category() == category {
			filtered = append(filtered, corpus[i])
		}
	}
	return filtered
}
