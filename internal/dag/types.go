package dag

import (
	"log/slog"

	"github.com/vk/expgrid/internal/labelindex"
	"github.com/vk/expgrid/internal/step"
)

// State is the observable outcome of the most recent sort.
type State int

const (
	// StateConsistent means the last sort succeeded or none was attempted.
	StateConsistent State = iota
	// StateCyclic means the last sort found a cycle.
	StateCyclic
)

func (s State) String() string {
	switch s {
	case StateConsistent:
		return "consistent"
	case StateCyclic:
		return "cyclic"
	default:
		return "unknown"
	}
}

// Graph is the set of registered step descriptors.
type Graph struct {
	logger *slog.Logger

	// steps is the arena of registered descriptors in registration order.
	steps []*step.Descriptor
	// byKey maps a structural key to its position in steps.
	byKey map[string]int
	// index is rebuilt lazily; nil means stale.
	index *labelindex.Index

	state State
}

// Edge is a derived dependency: From produces at least one label that To
// consumes.
type Edge struct {
	From   *step.Descriptor
	To     *step.Descriptor
	Labels []string
}

// adjacency is the derived edge set over arena positions.
type adjacency struct {
	// outgoing lists successors per node, ascending. A self-loop appears as
	// the node itself.
	outgoing [][]int
	indeg    []int
	// labels records the shared labels behind each edge, in label order.
	labels map[[2]int][]string
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}
