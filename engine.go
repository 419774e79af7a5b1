package codex

import (
	domgraph "github.com/ProjectLunareth/Codex/internal/domain/graph"
	"github.com/ProjectLunareth/Codex/internal/domain/lexicon"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
	"github.com/ProjectLunareth/Codex/internal/usecase/crossref"
)

// Classify assigns a category and subcategory to a piece of text. The
// subcategory is empty when no subcategory rule matches; the category is
// never empty because unmatched text falls through to "general".
func Classify(text string) (category, subcategory string) {
	c, s := taxonomy.Classify(text)
	return string(c), string(s)
}

// ExtractKeyTerms pulls up to ten key terms from text, preferring an
// explicit "Key terms:" declaration over the built-in vocabulary scan.
func ExtractKeyTerms(text string) []string {
	return lexicon.ExtractKeyTerms(text)
}

// FindCrossReferences scores every corpus entry against the entry with the
// given ID and returns the related ones in corpus order, at most six. An
// unknown sourceID yields an empty result.
func FindCrossReferences(sourceID string, corpus []Entry) []Entry {
	return entriesFromDomain(crossref.Related(sourceID, entriesToDomain(corpus)))
}

// BuildSimilarityEdges computes Jaccard similarity over key-term sets for
// every entry pair and keeps edges at or above threshold. A non-positive
// threshold means DefaultSimilarityThreshold.
func BuildSimilarityEdges(corpus []Entry, threshold float64) []Edge {
	if threshold <= 0 {
		threshold = domgraph.DefaultThreshold
	}
	return edgesFromDomain(domgraph.BuildEdges(entriesToDomain(corpus), threshold))
}

// Similarity returns the Jaccard similarity of two key-term sets.
func Similarity(a, b []string) float64 {
	return domgraph.Jaccard(a, b)
}

// ComputeLayout positions one node per corpus entry on a width-by-height
// canvas. Mode is LayoutCircular or LayoutForce; an empty mode means
// circular. Force layouts are randomized and differ between calls.
func ComputeLayout(corpus []Entry, mode string, width, height int) ([]Node, error) {
	if mode == "" {
		mode = LayoutCircular
	}
	nodes := domgraph.NodesFrom(entriesToDomain(corpus))
	placed, err := domgraph.Layout(nodes, domgraph.Mode(mode), width, height)
	if err != nil {
		return nil, err
	}
	return nodesFromDomain(placed), nil
}
