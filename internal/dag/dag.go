package dag

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/expgrid/internal/labelindex"
	"github.com/vk/expgrid/internal/step"
)

// New creates and returns an initialized, empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		logger: slog.New(slog.DiscardHandler),
		byKey:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddStepDescriptor registers d. Registering a descriptor that is
// structurally equal to one already present does nothing; the first
// registration keeps its position. It reports whether d was added.
func (g *Graph) AddStepDescriptor(d *step.Descriptor) bool {
	if d == nil {
		return false
	}
	if i, ok := g.byKey[d.Key()]; ok {
		g.logger.Debug("Step already registered, ignoring duplicate.", "step", d.String(), "existing", g.steps[i].String())
		return false
	}
	g.byKey[d.Key()] = len(g.steps)
	g.steps = append(g.steps, d)
	g.index = nil
	g.logger.Debug("Step registered.", "step", d.String(), "position", len(g.steps)-1)
	return true
}

// RemoveStepDescriptor unregisters the descriptor structurally equal to d.
// The relative order of the remaining descriptors is preserved. It reports
// whether anything was removed.
func (g *Graph) RemoveStepDescriptor(d *step.Descriptor) bool {
	if d == nil {
		return false
	}
	i, ok := g.byKey[d.Key()]
	if !ok {
		return false
	}
	g.steps = slices.Delete(g.steps, i, i+1)
	delete(g.byKey, d.Key())
	for j := i; j < len(g.steps); j++ {
		g.byKey[g.steps[j].Key()] = j
	}
	g.index = nil
	g.logger.Debug("Step removed.", "step", d.String())
	return true
}

// Has reports whether a descriptor structurally equal to d is registered.
func (g *Graph) Has(d *step.Descriptor) bool {
	if d == nil {
		return false
	}
	_, ok := g.byKey[d.Key()]
	return ok
}

// Len returns the number of registered descriptors.
func (g *Graph) Len() int { return len(g.steps) }

// StepDescriptors returns the registered descriptors in registration order.
func (g *Graph) StepDescriptors() []*step.Descriptor {
	return slices.Clone(g.steps)
}

// State returns the outcome of the most recent sort.
func (g *Graph) State() State { return g.state }

// Index returns the label index over the registered descriptors, rebuilding
// it if the descriptor set changed since it was last built.
func (g *Graph) Index() *labelindex.Index {
	if g.index == nil {
		g.index = labelindex.Build(slices.Clone(g.steps))
		g.logger.Debug("Label index rebuilt.", "steps", len(g.steps), "labels", len(g.index.Labels()))
	}
	return g.index
}

// Edges returns every derived dependency, ordered by producer and then by
// consumer registration position. Self-dependencies are included.
func (g *Graph) Edges() []Edge {
	adj := g.adjacency()
	var out []Edge
	for from, succ := range adj.outgoing {
		for _, to := range succ {
			out = append(out, Edge{
				From:   g.steps[from],
				To:     g.steps[to],
				Labels: slices.Clone(adj.labels[[2]int{from, to}]),
			})
		}
	}
	return out
}

// DependenciesOf returns the registered producers of d's source labels in
// registration order, excluding d itself.
func (g *Graph) DependenciesOf(d *step.Descriptor) ([]*step.Descriptor, error) {
	if !g.Has(d) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, d)
	}
	self := g.byKey[d.Key()]
	ix := g.Index()
	seen := make(map[labelindex.Handle]struct{})
	var hs []int
	for _, label := range d.Source() {
		for _, h := range ix.Producers(label) {
			if int(h) == self {
				continue
			}
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			hs = append(hs, int(h))
		}
	}
	slices.Sort(hs)
	return g.resolve(hs), nil
}

// adjacency derives the edge set {P → C : l ∈ P.target ∩ C.source} from the
// label index. Labels are visited in sorted order so edge labels are stable.
func (g *Graph) adjacency() *adjacency {
	ix := g.Index()
	adj := &adjacency{
		outgoing: make([][]int, len(g.steps)),
		indeg:    make([]int, len(g.steps)),
		labels:   make(map[[2]int][]string),
	}
	for _, label := range ix.Labels() {
		for _, p := range ix.Producers(label) {
			for _, c := range ix.Consumers(label) {
				pair := [2]int{int(p), int(c)}
				if _, exists := adj.labels[pair]; !exists {
					adj.outgoing[p] = append(adj.outgoing[p], int(c))
					adj.indeg[c]++
				}
				adj.labels[pair] = append(adj.labels[pair], label)
			}
		}
	}
	for i := range adj.outgoing {
		slices.Sort(adj.outgoing[i])
	}
	return adj
}

func (g *Graph) resolve(positions []int) []*step.Descriptor {
	out := make([]*step.Descriptor, 0, len(positions))
	for _, i := range positions {
		out = append(out, g.steps[i])
	}
	return out
}
