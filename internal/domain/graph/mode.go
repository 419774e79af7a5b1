package graph

// Mode is the layout strategy for graph nodes. It controls coordinate
// assignment only; edge computation is independent of the mode.
type Mode string

// Layout mode constants.
const (
	// Circular arranges nodes on concentric category rings; deterministic.
	Circular Mode = "circular"
	// Force scatters nodes at uniform-random canvas positions. Despite the
	// name this is a one-shot scatter, not an iterative force simulation,
	// and repeated calls produce different coordinates.
	Force Mode = "force"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Circular || m == Force
}
