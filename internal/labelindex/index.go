// Package labelindex maps artifact labels to the step descriptors that
// produce and consume them.
//
// An Index is derived data: it is built in one pass over a slice of
// descriptors and addresses each descriptor by its position in that slice.
// Callers rebuild it whenever the descriptor set changes.
package labelindex

import (
	"sort"

	"github.com/vk/expgrid/internal/step"
)

// Handle is the position of a descriptor in the slice the Index was built
// from.
type Handle int

// Index is a label → producers / consumers lookup.
type Index struct {
	steps     []*step.Descriptor
	producers map[string][]Handle
	consumers map[string][]Handle
}

// Build indexes descs. A descriptor that lists a label in its target is a
// producer of it; one that lists it in its source is a consumer. Handles are
// recorded in ascending order.
func Build(descs []*step.Descriptor) *Index {
	ix := &Index{
		steps:     descs,
		producers: make(map[string][]Handle),
		consumers: make(map[string][]Handle),
	}
	for i, d := range descs {
		h := Handle(i)
		for _, label := range d.Target() {
			ix.producers[label] = append(ix.producers[label], h)
		}
		for _, label := range d.Source() {
			ix.consumers[label] = append(ix.consumers[label], h)
		}
	}
	return ix
}

// Len returns the number of indexed descriptors.
func (ix *Index) Len() int { return len(ix.steps) }

// Step returns the descriptor behind h.
func (ix *Index) Step(h Handle) *step.Descriptor { return ix.steps[h] }

// Producers returns the handles of descriptors producing label.
func (ix *Index) Producers(label string) []Handle {
	return append([]Handle(nil), ix.producers[label]...)
}

// Consumers returns the handles of descriptors consuming label.
func (ix *Index) Consumers(label string) []Handle {
	return append([]Handle(nil), ix.consumers[label]...)
}

// ProducersOf returns the descriptors producing label, possibly none.
func (ix *Index) ProducersOf(label string) []*step.Descriptor {
	return ix.resolve(ix.producers[label])
}

// ConsumersOf returns the descriptors consuming label, possibly none.
func (ix *Index) ConsumersOf(label string) []*step.Descriptor {
	return ix.resolve(ix.consumers[label])
}

func (ix *Index) resolve(hs []Handle) []*step.Descriptor {
	out := make([]*step.Descriptor, 0, len(hs))
	for _, h := range hs {
		out = append(out, ix.steps[h])
	}
	return out
}

// Labels returns every label that is produced or consumed, sorted.
func (ix *Index) Labels() []string {
	seen := make(map[string]struct{}, len(ix.producers)+len(ix.consumers))
	for l := range ix.producers {
		seen[l] = struct{}{}
	}
	for l := range ix.consumers {
		seen[l] = struct{}{}
	}
	return sortedKeys(seen)
}

// External returns the consumed labels that no indexed descriptor produces.
// They are expected to be supplied from outside the graph.
func (ix *Index) External() []string {
	out := make(map[string]struct{})
	for l := range ix.consumers {
		if len(ix.producers[l]) == 0 {
			out[l] = struct{}{}
		}
	}
	return sortedKeys(out)
}

// Terminal returns the produced labels that no indexed descriptor consumes.
func (ix *Index) Terminal() []string {
	out := make(map[string]struct{})
	for l := range ix.producers {
		if len(ix.consumers[l]) == 0 {
			out[l] = struct{}{}
		}
	}
	return sortedKeys(out)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
