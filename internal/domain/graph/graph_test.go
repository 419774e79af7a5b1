package graph

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ProjectLunareth/Codex/internal/domain"
	"github.com/ProjectLunareth/Codex/internal/domain/entry"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

func corpusEntry(t *testing.T, id string, category taxonomy.Category, keyTerms ...string) entry.Entry {
	t.Helper()
	return entry.Reconstruct(
		id, id+".txt", "Summary of "+id, "", 0,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		category, "", keyTerms, nil,
	)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"partial overlap", []string{"Alchemy", "Gnosis"}, []string{"Gnosis", "Sufism"}, 1.0 / 3.0},
		{"identical sets", []string{"Tarot", "Sigil"}, []string{"Tarot", "Sigil"}, 1.0},
		{"case folded", []string{"ALCHEMY"}, []string{"alchemy"}, 1.0},
		{"disjoint", []string{"Monad"}, []string{"Pleroma"}, 0},
		{"one empty", []string{"Logos"}, nil, 0},
		{"both empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBuildEdges(t *testing.T) {
	// A and B share half their terms; C shares nothing.
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis, "Alchemy", "Gnosis"),
		corpusEntry(t, "b", taxonomy.Psychogenesis, "Gnosis", "Sufism"),
		corpusEntry(t, "c", taxonomy.Mystagogy, "Tarot"),
	}

	edges := BuildEdges(corpus, DefaultThreshold)
	if len(edges) != 1 {
		t.Fatalf("BuildEdges returned %d edges, want 1: %+v", len(edges), edges)
	}
	e := edges[0]
	if e.Source() != "a" || e.Target() != "b" {
		t.Errorf("edge endpoints = (%s, %s), want (a, b)", e.Source(), e.Target())
	}
	if math.Abs(e.Similarity()-1.0/3.0) > 1e-9 {
		t.Errorf("edge similarity = %v, want 1/3", e.Similarity())
	}
}

func TestBuildEdgesThresholdIsInclusive(t *testing.T) {
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis, "Alchemy", "Gnosis"),
		corpusEntry(t, "b", taxonomy.Psychogenesis, "Gnosis", "Sufism"),
	}

	if got := BuildEdges(corpus, 1.0/3.0); len(got) != 1 {
		t.Errorf("similarity equal to threshold should produce an edge, got %d", len(got))
	}
	if got := BuildEdges(corpus, 0.34); len(got) != 0 {
		t.Errorf("similarity below threshold should produce no edge, got %d", len(got))
	}
}

func TestLayoutInvalidMode(t *testing.T) {
	_, err := Layout(nil, Mode("orbital"), 800, 600)
	if !errors.Is(err, domain.ErrInvalidLayoutMode) {
		t.Fatalf("Layout with unknown mode: err = %v, want ErrInvalidLayoutMode", err)
	}
}

func TestCircularLayoutDeterministic(t *testing.T) {
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis),
		corpusEntry(t, "b", taxonomy.Cosmogenesis),
		corpusEntry(t, "c", taxonomy.Psychogenesis),
		corpusEntry(t, "d", taxonomy.Mystagogy),
	}
	nodes := NodesFrom(corpus)

	first, err := Layout(nodes, Circular, 800, 600)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	second, err := Layout(nodes, Circular, 800, 600)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("node counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].X() != second[i].X() || first[i].Y() != second[i].Y() {
			t.Errorf("node %s moved between identical calls: (%v,%v) vs (%v,%v)",
				first[i].ID(), first[i].X(), first[i].Y(), second[i].X(), second[i].Y())
		}
	}
}

func TestCircularLayoutRingRadii(t *testing.T) {
	width, height := 1000, 1000
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis),
		corpusEntry(t, "b", taxonomy.Psychogenesis),
		corpusEntry(t, "c", taxonomy.Mystagogy),
	}
	placed, err := Layout(NodesFrom(corpus), Circular, width, height)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("placed %d nodes, want 3", len(placed))
	}

	cx, cy := float64(width)/2, float64(height)/2
	base := baseRadiusRatio * float64(width)
	for i, n := range placed {
		want := base + ringSpacing*float64(i)
		got := math.Hypot(n.X()-cx, n.Y()-cy)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("node %s radius = %v, want %v", n.ID(), got, want)
		}
	}
}

func TestCircularLayoutFitsSmallCanvas(t *testing.T) {
	// 200x200 would place the outermost ring at radius 180 unscaled; every
	// node must still land inside the canvas.
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis),
		corpusEntry(t, "b", taxonomy.Cosmogenesis),
		corpusEntry(t, "c", taxonomy.Psychogenesis),
		corpusEntry(t, "d", taxonomy.Mystagogy),
		corpusEntry(t, "e", taxonomy.Mystagogy),
	}
	placed, err := Layout(NodesFrom(corpus), Circular, 200, 200)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	for _, n := range placed {
		if n.X() < 0 || n.X() > 200 || n.Y() < 0 || n.Y() > 200 {
			t.Errorf("node %s at (%v, %v) outside 200x200 canvas", n.ID(), n.X(), n.Y())
		}
	}
}

func TestCircularLayoutSkipsNonRingCategories(t *testing.T) {
	corpus := []entry.Entry{
		corpusEntry(t, "a", taxonomy.Cosmogenesis),
		corpusEntry(t, "b", taxonomy.General),
	}
	placed, err := Layout(NodesFrom(corpus), Circular, 800, 600)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(placed) != 1 || placed[0].ID() != "a" {
		t.Fatalf("placed = %+v, want only the cosmogenesis node", placed)
	}
}

func TestScatterLayoutStaysInsideMargins(t *testing.T) {
	corpus := make([]entry.Entry, 0, 25)
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		corpus = append(corpus, corpusEntry(t, id, taxonomy.General))
	}

	placed, err := Layout(NodesFrom(corpus), Force, 800, 600)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(placed) != len(corpus) {
		t.Fatalf("placed %d nodes, want %d", len(placed), len(corpus))
	}
	for _, n := range placed {
		if n.X() < scatterMargin || n.X() > 800-scatterMargin ||
			n.Y() < scatterMargin || n.Y() > 600-scatterMargin {
			t.Errorf("node %s at (%v, %v) outside scatter margins", n.ID(), n.X(), n.Y())
		}
	}
}

func TestNodesFromPreservesOrder(t *testing.T) {
	corpus := []entry.Entry{
		corpusEntry(t, "first", taxonomy.Cosmogenesis),
		corpusEntry(t, "second", taxonomy.Mystagogy),
	}
	nodes := NodesFrom(corpus)
	if nodes[0].ID() != "first" || nodes[1].ID() != "second" {
		t.Errorf("NodesFrom reordered the corpus: %+v", nodes)
	}
	if nodes[0].Title() != "Summary of first" {
		t.Errorf("node title = %q, want summary first line", nodes[0].Title())
	}
}
