package codex

import (
	"time"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
	domgraph "github.com/ProjectLunareth/Codex/internal/domain/graph"
	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

// Entry is a classified codex document.
type Entry struct {
	ID          string
	Filename    string
	Summary     string
	FullText    string
	Size        int
	ProcessedAt time.Time
	Category    string
	Subcategory string
	KeyTerms    []string
	KeyChunks   []string
}

// Edge is a similarity link between two entries.
type Edge struct {
	Source     string
	Target     string
	Similarity float64
}

// Node is a positioned graph node.
type Node struct {
	ID       string
	Title    string
	Category string
	X        float64
	Y        float64
}

// SearchHit pairs an entry with its lexical relevance score.
type SearchHit struct {
	Entry Entry
	Score int
}

// Stats summarizes a corpus.
type Stats struct {
	TotalEntries int
	TotalSize    int
	ByCategory   map[string]int
}

// Consultation is one answered oracle query.
type Consultation struct {
	ID        string
	Query     string
	Context   string
	Response  string
	CreatedAt time.Time
}

// Layout modes accepted by ComputeLayout and Client.Graph.
const (
	LayoutCircular = string(domgraph.Circular)
	LayoutForce    = string(domgraph.Force)
)

// DefaultSimilarityThreshold is the edge cutoff used when none is given.
const DefaultSimilarityThreshold = domgraph.DefaultThreshold

func entryFromDomain(e *domentry.Entry) Entry {
	return Entry{
		ID:          e.ID(),
		Filename:    e.Filename(),
		Summary:     e.Summary(),
		FullText:    e.FullText(),
		Size:        e.Size(),
		ProcessedAt: e.ProcessedAt(),
		Category:    string(e.Category()),
		Subcategory: string(e.Subcategory()),
		KeyTerms:    e.KeyTerms(),
		KeyChunks:   e.KeyChunks(),
	}
}

func entriesFromDomain(entries []domentry.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = entryFromDomain(&entries[i])
	}
	return out
}

// entryToDomain rehydrates a public Entry for the pure engine functions.
// Category and key terms are taken as given; use Classify and
// ExtractKeyTerms to derive them when only raw text is at hand.
func entryToDomain(e Entry) domentry.Entry {
	return domentry.Reconstruct(
		e.ID, e.Filename, e.Summary, e.FullText, e.Size, e.ProcessedAt,
		taxonomy.Category(e.Category), taxonomy.Subcategory(e.Subcategory),
		e.KeyTerms, e.KeyChunks,
	)
}

func entriesToDomain(entries []Entry) []domentry.Entry {
	out := make([]domentry.Entry, len(entries))
	for i := range entries {
		out[i] = entryToDomain(entries[i])
	}
	return out
}

func edgesFromDomain(edges []domgraph.Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{Source: e.Source(), Target: e.Target(), Similarity: e.Similarity()}
	}
	return out
}

func nodesFromDomain(nodes []domgraph.Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node{ID: n.ID(), Title: n.Title(), Category: string(n.Category()), X: n.X(), Y: n.Y()}
	}
	return out
}

func consultationFromDomain(c domoracle.Consultation) Consultation {
	return Consultation{
		ID:        c.ID(),
		Query:     c.Query(),
		Context:   c.Context(),
		Response:  c.Response(),
		CreatedAt: c.CreatedAt(),
	}
}
