package dag

import (
	"container/heap"
	"slices"

	"github.com/vk/expgrid/internal/step"
)

// intMinHeap is the ready queue: the smallest registration position pops
// first.
type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// SortedStepDescriptors returns every registered descriptor exactly once,
// with every producer of a label ahead of every consumer of it. Unrelated
// descriptors keep their registration order. An empty graph yields an empty
// slice.
//
// If the dependencies are cyclic, it returns a *CyclicDependencyError and no
// order.
func (g *Graph) SortedStepDescriptors() ([]*step.Descriptor, error) {
	g.logger.Debug("Sorting step descriptors.", "steps", len(g.steps))
	adj := g.adjacency()

	order := adj.kahn()
	if len(order) < len(g.steps) {
		return nil, g.cyclic(adj, order)
	}

	g.state = StateConsistent
	g.logger.Debug("Step descriptors sorted.", "steps", len(order))
	return g.resolve(order), nil
}

// Levels groups the registered descriptors into waves. Every step in a wave
// depends only on steps from earlier waves, so the steps of one wave are
// independent of each other. Each wave is in registration order.
func (g *Graph) Levels() ([][]*step.Descriptor, error) {
	adj := g.adjacency()

	indeg := slices.Clone(adj.indeg)
	var current []int
	for i, d := range indeg {
		if d == 0 {
			current = append(current, i)
		}
	}

	var levels [][]*step.Descriptor
	var emitted []int
	for len(current) > 0 {
		levels = append(levels, g.resolve(current))
		emitted = append(emitted, current...)

		var next []int
		for _, n := range current {
			for _, m := range adj.outgoing[n] {
				indeg[m]--
				if indeg[m] == 0 {
					next = append(next, m)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(emitted) < len(g.steps) {
		return nil, g.cyclic(adj, emitted)
	}
	g.state = StateConsistent
	return levels, nil
}

// kahn returns the emitted positions. It stops early when the remaining
// nodes all wait on each other.
func (a *adjacency) kahn() []int {
	indeg := slices.Clone(a.indeg)

	ready := &intMinHeap{}
	for i, d := range indeg {
		if d == 0 {
			*ready = append(*ready, i)
		}
	}
	heap.Init(ready)

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range a.outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// cyclic marks the graph cyclic and builds the error for the nodes missing
// from emitted.
func (g *Graph) cyclic(adj *adjacency, emitted []int) error {
	done := make([]bool, len(g.steps))
	for _, i := range emitted {
		done[i] = true
	}
	var remaining []int
	for i, ok := range done {
		if !ok {
			remaining = append(remaining, i)
		}
	}

	err := &CyclicDependencyError{Steps: g.resolve(remaining)}
	for _, component := range adj.cycles(remaining) {
		err.Cycles = append(err.Cycles, g.resolve(component))
	}

	g.state = StateCyclic
	g.logger.Debug("Cyclic dependency detected.", "unresolved", len(remaining), "cycles", len(err.Cycles))
	return err
}
