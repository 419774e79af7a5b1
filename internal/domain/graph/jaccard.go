package graph

import (
	"strings"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// Jaccard returns |A∩B| / |A∪B| over the two key-term lists, case-folded.
// Either side empty (or nil) yields 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := foldSet(a)
	setB := foldSet(b)

	intersection := 0
	for term := range setA {
		if _, ok := setB[term]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// BuildEdges evaluates every unordered pair (i, j) with i < j in the corpus
// and emits an edge where the key-term Jaccard similarity meets the
// threshold. O(n²) pair evaluations; the threshold is the only control on
// edge count.
func BuildEdges(corpus []entry.Entry, threshold float64) []Edge {
	var edges []Edge
	for i := 0; i < len(corpus); i++ {
		for j := i + 1; j < len(corpus); j++ {
			similarity := Jaccard(corpus[i].KeyTerms(), corpus[j].KeyTerms())
			if similarity >= threshold {
				edges = append(edges, NewEdge(corpus[i].ID(), corpus[j].ID(), similarity))
			}
		}
	}
	return edges
}

func foldSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
