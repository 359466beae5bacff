package yaml_adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// experimentKeys are the keys accepted in an experiments entry.
var experimentKeys = map[string]struct{}{
	"name": {}, "source": {}, "target": {}, "features": {}, "for_each": {},
	"aggregate_by": {}, "rule": {}, "parameters": {}, "product": {}, "sample": {},
}

// Experiment is the YAML schema for one entry of `experiments`. Label fields
// stay as nodes because they accept either a string or a list of strings.
type Experiment struct {
	Name        string                 `yaml:"name"`
	Source      yaml.Node              `yaml:"source"`
	Target      yaml.Node              `yaml:"target"`
	Features    yaml.Node              `yaml:"features"`
	ForEach     yaml.Node              `yaml:"for_each"`
	AggregateBy yaml.Node              `yaml:"aggregate_by"`
	Rule        string                 `yaml:"rule"`
	Parameters  []map[string]yaml.Node `yaml:"parameters"`
	Product     map[string][]yaml.Node `yaml:"product"`
	Sample      *Sample                `yaml:"sample"`
}

var (
	sampleKeys = map[string]struct{}{"count": {}, "uniform": {}, "choice": {}}
	rangeKeys  = map[string]struct{}{"min": {}, "max": {}}
)

// Sample is the YAML schema for a `sample` mapping.
type Sample struct {
	Count   int                    `yaml:"count"`
	Uniform map[string]Range       `yaml:"uniform"`
	Choice  map[string][]yaml.Node `yaml:"choice"`
}

// Range is a uniform distribution bound.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// UnmarshalYAML rejects keys the sample schema does not know.
func (s *Sample) UnmarshalYAML(n *yaml.Node) error {
	if err := checkMapping(n, "sample", sampleKeys); err != nil {
		return err
	}
	type plain Sample
	return n.Decode((*plain)(s))
}

// UnmarshalYAML rejects keys other than min and max.
func (r *Range) UnmarshalYAML(n *yaml.Node) error {
	if err := checkMapping(n, "uniform range", rangeKeys); err != nil {
		return err
	}
	type plain Range
	return n.Decode((*plain)(r))
}

func checkMapping(n *yaml.Node, what string, allowed map[string]struct{}) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", n.Line, what)
	}
	if unknown := unknownKeys(n, allowed); len(unknown) > 0 {
		return fmt.Errorf("line %d: unknown %s keys %v", n.Line, what, unknown)
	}
	return nil
}
