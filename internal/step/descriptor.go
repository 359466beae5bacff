package step

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/expgrid/internal/param"
)

// DefaultFeature is present in the features of every descriptor.
const DefaultFeature = "experiment"

// Field names used in errors and configuration files.
const (
	FieldSource      = "source"
	FieldTarget      = "target"
	FieldFeatures    = "features"
	FieldForEach     = "for_each"
	FieldAggregateBy = "aggregate_by"
	FieldParameters  = "parameters"
)

// Spec holds the declared fields of a step before normalization.
type Spec struct {
	// Name identifies the step in logs and plans. It is not part of the
	// step's identity.
	Name string

	Source      Labels
	Target      Labels
	Features    Labels
	ForEach     Labels
	AggregateBy Labels

	// Parameters lists the parameter sets the step is instantiated
	// against. Empty means a single empty set.
	Parameters []*param.Set

	// Rule is passed through untouched for the execution engine.
	Rule string
}

// Descriptor is a normalized, immutable step declaration.
type Descriptor struct {
	name        string
	source      Labels
	target      Labels
	features    Labels
	forEach     Labels
	aggregateBy Labels
	parameters  []*param.Set
	rule        string

	key string
}

// New normalizes spec into a Descriptor.
func New(spec Spec) (*Descriptor, error) {
	d := &Descriptor{name: spec.Name, rule: spec.Rule}

	fields := []struct {
		name string
		in   Labels
		out  *Labels
	}{
		{FieldSource, spec.Source, &d.source},
		{FieldTarget, spec.Target, &d.target},
		{FieldFeatures, spec.Features, &d.features},
		{FieldForEach, spec.ForEach, &d.forEach},
		{FieldAggregateBy, spec.AggregateBy, &d.aggregateBy},
	}
	for _, f := range fields {
		labels, err := normalize(f.name, f.in)
		if err != nil {
			err.(*MalformedDescriptorError).Step = spec.Name
			return nil, err
		}
		*f.out = labels
	}
	if !d.features.Contains(DefaultFeature) {
		d.features = append(d.features, DefaultFeature)
	}

	if len(spec.Parameters) == 0 {
		d.parameters = []*param.Set{param.New()}
	} else {
		d.parameters = make([]*param.Set, 0, len(spec.Parameters))
		for i, p := range spec.Parameters {
			if p == nil {
				return nil, &MalformedDescriptorError{
					Step:   spec.Name,
					Field:  FieldParameters,
					Reason: fmt.Sprintf("parameter set %d is nil", i),
				}
			}
			d.parameters = append(d.parameters, p)
		}
	}

	d.key = structuralKey(d.source, d.target, d.features, d.forEach)
	return d, nil
}

// MustNew is like New but panics on error. It is meant for tests and static
// declarations.
func MustNew(spec Spec) *Descriptor {
	d, err := New(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// structuralKey encodes the identity fields as sorted label lists, so two
// descriptors whose sets hold the same labels in any order share a key.
func structuralKey(sets ...Labels) string {
	var sb strings.Builder
	for i, set := range sets {
		if i > 0 {
			sb.WriteByte('|')
		}
		for j, label := range set.Sorted() {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Quote(label))
		}
	}
	return sb.String()
}

// Name returns the step name (possibly empty).
func (d *Descriptor) Name() string { return d.name }

// Source returns a copy of the input labels.
func (d *Descriptor) Source() Labels { return slices.Clone(d.source) }

// Target returns a copy of the output labels.
func (d *Descriptor) Target() Labels { return slices.Clone(d.target) }

// Features returns a copy of the feature tags. It always contains
// DefaultFeature.
func (d *Descriptor) Features() Labels { return slices.Clone(d.features) }

// ForEach returns a copy of the grouping-key labels.
func (d *Descriptor) ForEach() Labels { return slices.Clone(d.forEach) }

// AggregateBy returns a copy of the aggregation labels.
func (d *Descriptor) AggregateBy() Labels { return slices.Clone(d.aggregateBy) }

// Parameters returns the parameter sets in declaration order. The slice is a
// copy; the sets are shared and must be cloned before mutation.
func (d *Descriptor) Parameters() []*param.Set { return slices.Clone(d.parameters) }

// Rule returns the opaque rule string.
func (d *Descriptor) Rule() string { return d.rule }

// Key returns the structural identity of d.
func (d *Descriptor) Key() string { return d.key }

// Equal reports whether d and o have equal source, target, features and
// for_each sets.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.key == o.key
}

// String returns the name when set, otherwise "source -> target".
func (d *Descriptor) String() string {
	if d.name != "" {
		return d.name
	}
	return fmt.Sprintf("[%s] -> [%s]", d.source, d.target)
}
