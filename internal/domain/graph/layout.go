package graph

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ProjectLunareth/Codex/internal/domain"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

const (
	// baseRadiusRatio sets the innermost ring radius as a fraction of the
	// smaller canvas dimension.
	baseRadiusRatio = 0.3
	// ringSpacing is the radial distance between consecutive rings.
	ringSpacing = 60.0
	// ringAngleOffset rotates each ring's angular origin so rings are not
	// radially aligned.
	ringAngleOffset = 2 * math.Pi / 3
	// scatterMargin keeps force-mode nodes away from the canvas border.
	scatterMargin = 50.0
	// canvasPadding keeps the outermost circular ring inside the canvas.
	canvasPadding = 10.0
)

// RingCategories is the fixed ordered list of categories placed on
// concentric rings in circular mode. Entries in other categories are not
// placed by that mode.
var RingCategories = []taxonomy.Category{
	taxonomy.Cosmogenesis,
	taxonomy.Psychogenesis,
	taxonomy.Mystagogy,
}

// Layout assigns canvas coordinates to nodes according to the mode.
// Circular mode is deterministic: the same node list, categories and canvas
// size always produce the same coordinates. Force mode is a fresh random
// scatter on every call.
func Layout(nodes []Node, mode Mode, width, height int) ([]Node, error) {
	switch mode {
	case Circular:
		return circularLayout(nodes, width, height), nil
	case Force:
		return scatterLayout(nodes, width, height), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLayoutMode, mode)
	}
}

// circularLayout partitions nodes over the fixed ring categories. Ring i has
// radius base + 60·i with base = 0.3·min(w,h); within a ring nodes sit at
// equal angular increments, with the ring origin rotated by i·2π/3. When the
// outermost ring would leave the canvas the radii are scaled down uniformly,
// preserving the relative geometry.
func circularLayout(nodes []Node, width, height int) []Node {
	cx := float64(width) / 2
	cy := float64(height) / 2
	base := baseRadiusRatio * math.Min(float64(width), float64(height))

	groups := make(map[taxonomy.Category][]int, len(RingCategories))
	for i, n := range nodes {
		groups[n.Category()] = append(groups[n.Category()], i)
	}

	scale := 1.0
	outermost := base + ringSpacing*float64(len(RingCategories)-1)
	if limit := math.Min(cx, cy) - canvasPadding; outermost > limit && limit > 0 {
		scale = limit / outermost
	}

	placed := make([]Node, 0, len(nodes))
	for ring, category := range RingCategories {
		members := groups[category]
		if len(members) == 0 {
			continue
		}
		radius := (base + ringSpacing*float64(ring)) * scale
		origin := float64(ring) * ringAngleOffset
		step := 2 * math.Pi / float64(len(members))
		for k, i := range members {
			theta := origin + step*float64(k)
			placed = append(placed, nodes[i].at(
				cx+radius*math.Cos(theta),
				cy+radius*math.Sin(theta),
			))
		}
	}
	return placed
}

// scatterLayout places every node at an independent uniform-random position
// inside the canvas margin. It is a one-shot scatter meant to be visually
// distinct from the circular layout, not a force simulation.
func scatterLayout(nodes []Node, width, height int) []Node {
	margin := scatterMargin
	if m := math.Min(float64(width), float64(height)) / 4; m < margin {
		margin = m
	}
	spanX := float64(width) - 2*margin
	spanY := float64(height) - 2*margin

	placed := make([]Node, len(nodes))
	for i, n := range nodes {
		placed[i] = n.at(
			margin+rand.Float64()*spanX,
			margin+rand.Float64()*spanY,
		)
	}
	return placed
}
