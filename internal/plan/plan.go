package plan

import (
	"fmt"

	"github.com/vk/expgrid/internal/dag"
	"github.com/vk/expgrid/internal/step"
)

// Plan is an ordered, leveled view of a graph.
type Plan struct {
	// Steps is in execution order.
	Steps []*Step
	// Levels holds step IDs per wave.
	Levels [][]string
	// External lists labels consumed but produced by no step.
	External []string
	// Terminal lists labels produced but consumed by no step.
	Terminal []string
}

// Step is one planned step.
type Step struct {
	// ID is unique within the plan: the step name, or its label signature
	// for anonymous steps, suffixed with "#n" on collision.
	ID         string
	Position   int
	Level      int
	DependsOn  []string
	Descriptor *step.Descriptor
}

// New sorts g and builds its plan. A cyclic graph yields the graph's
// *dag.CyclicDependencyError.
func New(g *dag.Graph) (*Plan, error) {
	order, err := g.SortedStepDescriptors()
	if err != nil {
		return nil, err
	}
	levels, err := g.Levels()
	if err != nil {
		return nil, err
	}

	ids := assignIDs(g.StepDescriptors())
	levelOf := make(map[string]int, len(order))
	p := &Plan{Levels: make([][]string, 0, len(levels))}
	for i, wave := range levels {
		names := make([]string, 0, len(wave))
		for _, d := range wave {
			levelOf[d.Key()] = i
			names = append(names, ids[d.Key()])
		}
		p.Levels = append(p.Levels, names)
	}

	for pos, d := range order {
		deps, err := g.DependenciesOf(d)
		if err != nil {
			return nil, fmt.Errorf("plan step %s: %w", d, err)
		}
		depIDs := make([]string, 0, len(deps))
		for _, dep := range deps {
			depIDs = append(depIDs, ids[dep.Key()])
		}
		p.Steps = append(p.Steps, &Step{
			ID:         ids[d.Key()],
			Position:   pos,
			Level:      levelOf[d.Key()],
			DependsOn:  depIDs,
			Descriptor: d,
		})
	}

	ix := g.Index()
	p.External = ix.External()
	p.Terminal = ix.Terminal()
	return p, nil
}

// assignIDs names every descriptor in registration order so that IDs do not
// depend on the sort. The first descriptor with a given name keeps it; later
// ones get the lowest "#n" suffix that no other step uses.
func assignIDs(descs []*step.Descriptor) map[string]string {
	taken := make(map[string]bool, len(descs))
	for _, d := range descs {
		taken[d.String()] = true
	}

	ids := make(map[string]string, len(descs))
	claimed := make(map[string]bool, len(descs))
	next := make(map[string]int)
	for _, d := range descs {
		base := d.String()
		if !claimed[base] {
			claimed[base] = true
			ids[d.Key()] = base
			continue
		}
		n := max(next[base], 2)
		id := fmt.Sprintf("%s#%d", base, n)
		for taken[id] {
			n++
			id = fmt.Sprintf("%s#%d", base, n)
		}
		next[base] = n + 1
		taken[id] = true
		ids[d.Key()] = id
	}
	return ids
}
