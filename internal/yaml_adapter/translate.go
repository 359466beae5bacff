package yaml_adapter

import (
	"fmt"
	"math"
	"slices"

	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/param"
	"github.com/vk/expgrid/internal/step"
	"gopkg.in/yaml.v3"
)

func translateExperiment(raw *Experiment, fsInfo *config.FSInfo) (*config.Experiment, error) {
	exp := &config.Experiment{
		Name:   raw.Name,
		FSInfo: fsInfo,
		Rule:   raw.Rule,
	}

	labelFields := []struct {
		field string
		node  *yaml.Node
		dst   *[]string
	}{
		{step.FieldSource, &raw.Source, &exp.Source},
		{step.FieldTarget, &raw.Target, &exp.Target},
		{step.FieldFeatures, &raw.Features, &exp.Features},
		{step.FieldForEach, &raw.ForEach, &exp.ForEach},
		{step.FieldAggregateBy, &raw.AggregateBy, &exp.AggregateBy},
	}
	for _, lf := range labelFields {
		labels, err := listize(raw.Name, lf.field, lf.node)
		if err != nil {
			return nil, err
		}
		*lf.dst = labels
	}

	for i, rawSet := range raw.Parameters {
		s := param.New()
		for name, node := range rawSet {
			v, err := scalar(&node)
			if err != nil {
				return nil, &step.MalformedDescriptorError{
					Step:   raw.Name,
					Field:  step.FieldParameters,
					Reason: fmt.Sprintf("element %d, parameter %q: %v", i, name, err),
				}
			}
			s.Set(name, v)
		}
		exp.Parameters = append(exp.Parameters, s)
	}

	if raw.Product != nil {
		exp.Product = make(map[string][]param.Value, len(raw.Product))
		for name, nodes := range raw.Product {
			values, err := scalars(nodes)
			if err != nil {
				return nil, fmt.Errorf("experiment %q: product axis %q: %w", raw.Name, name, err)
			}
			exp.Product[name] = values
		}
	}

	if raw.Sample != nil {
		sample, err := translateSample(raw.Sample)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: %w", raw.Name, err)
		}
		exp.Sample = sample
	}
	return exp, nil
}

func translateSample(s *Sample) (*config.Sample, error) {
	if s.Count < 0 {
		return nil, fmt.Errorf("sample count must not be negative, got %d", s.Count)
	}
	out := &config.Sample{
		Count:   s.Count,
		Uniform: make(map[string]config.Range, len(s.Uniform)),
		Choice:  make(map[string][]param.Value, len(s.Choice)),
	}
	for name, r := range s.Uniform {
		out.Uniform[name] = config.Range{Min: r.Min, Max: r.Max}
	}
	for name, nodes := range s.Choice {
		if _, dup := out.Uniform[name]; dup {
			return nil, fmt.Errorf("sample parameter %q declared twice", name)
		}
		values, err := scalars(nodes)
		if err != nil {
			return nil, fmt.Errorf("sample choice %q: %w", name, err)
		}
		out.Choice[name] = values
	}
	return out, nil
}

// listize turns a label node into labels: a string is split on whitespace,
// a sequence must hold only strings. An absent or null node yields nil.
func listize(stepName, field string, n *yaml.Node) ([]string, error) {
	malformed := func(reason string) error {
		return fmt.Errorf("line %d: %w", n.Line, &step.MalformedDescriptorError{Step: stepName, Field: field, Reason: reason})
	}

	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!str":
			return step.Fields(n.Value), nil
		default:
			return nil, malformed(fmt.Sprintf("must be a string or a list of strings, got %s", n.ShortTag()))
		}
	case yaml.SequenceNode:
		labels := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return nil, malformed(fmt.Sprintf("list elements must be strings, got %s", item.ShortTag()))
			}
			labels = append(labels, item.Value)
		}
		return labels, nil
	default:
		return nil, malformed(fmt.Sprintf("must be a string or a list of strings, got %s", n.ShortTag()))
	}
}

func scalars(nodes []yaml.Node) ([]param.Value, error) {
	values := make([]param.Value, 0, len(nodes))
	for i := range nodes {
		v, err := scalar(&nodes[i])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// scalar converts a YAML scalar into a parameter value by its resolved tag.
func scalar(n *yaml.Node) (param.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return param.Value{}, fmt.Errorf("line %d: parameter value must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!str":
		return param.String(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return param.Value{}, err
		}
		return param.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return param.Value{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return param.Value{}, fmt.Errorf("line %d: parameter value must be a finite number, got %s", n.Line, n.Value)
		}
		return param.Number(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return param.Value{}, err
		}
		return param.Bool(b), nil
	default:
		return param.Value{}, fmt.Errorf("line %d: parameter value must be a number, string or bool, got %s", n.Line, n.ShortTag())
	}
}

// unknownKeys returns the keys of a mapping node that are not in allowed.
func unknownKeys(n *yaml.Node, allowed map[string]struct{}) []string {
	var out []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if _, ok := allowed[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}
