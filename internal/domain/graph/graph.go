// Package graph computes the similarity graph over a codex corpus: Jaccard
// edges over key-term sets and 2-D node layouts. Everything here is a pure
// computation over the corpus snapshot passed in; nothing is persisted and
// every request recomputes from scratch.
package graph

import (
	"github.com/ProjectLunareth/Codex/internal/domain/entry"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

// Similarity threshold bounds. The engine does not validate the threshold;
// callers clamp to [MinThreshold, MaxThreshold] before invoking.
const (
	DefaultThreshold = 0.2
	MinThreshold     = 0.1
	MaxThreshold     = 1.0
)

// Edge is an unordered pair of entry identifiers with a similarity in [0,1].
type Edge struct {
	source     string
	target     string
	similarity float64
}

// NewEdge creates an edge between two entries.
func NewEdge(source, target string, similarity float64) Edge {
	return Edge{source: source, target: target, similarity: similarity}
}

// Source returns the first endpoint identifier.
func (e Edge) Source() string { return e.source }

// Target returns the second endpoint identifier.
func (e Edge) Target() string { return e.target }

// Similarity returns the Jaccard similarity of the pair.
func (e Edge) Similarity() float64 { return e.similarity }

// Node is a renderable graph node. Coordinates are assigned by Layout and
// recomputed on every request.
type Node struct {
	id       string
	title    string
	category taxonomy.Category
	x        float64
	y        float64
}

// NewNode creates an unpositioned node.
func NewNode(id, title string, category taxonomy.Category) Node {
	return Node{id: id, title: title, category: category}
}

// ID returns the entry identifier.
func (n Node) ID() string { return n.id }

// Title returns the display title.
func (n Node) Title() string { return n.title }

// Category returns the entry category.
func (n Node) Category() taxonomy.Category { return n.category }

// X returns the assigned x coordinate.
func (n Node) X() float64 { return n.x }

// Y returns the assigned y coordinate.
func (n Node) Y() float64 { return n.y }

// at returns a copy positioned at the given coordinates.
func (n Node) at(x, y float64) Node {
	n.x = x
	n.y = y
	return n
}

// NodesFrom builds unpositioned nodes for a corpus, preserving corpus order.
// The node title is the first line of the entry summary.
func NodesFrom(corpus []entry.Entry) []Node {
	nodes := make([]Node, len(corpus))
	for i := range corpus {
		nodes[i] = NewNode(corpus[i].ID(), corpus[i].Title(), corpus[i].Category())
	}
	return nodes
}
