package plan

import (
	"encoding/json"
	"io"

	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type jsonPlan struct {
	Steps    []jsonStep `json:"steps"`
	Levels   [][]string `json:"levels"`
	External []string   `json:"external"`
	Terminal []string   `json:"terminal"`
}

type jsonStep struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name,omitempty"`
	Position    int                       `json:"position"`
	Level       int                       `json:"level"`
	Source      []string                  `json:"source"`
	Target      []string                  `json:"target"`
	Features    []string                  `json:"features"`
	ForEach     []string                  `json:"for_each"`
	AggregateBy []string                  `json:"aggregate_by"`
	Rule        string                    `json:"rule,omitempty"`
	DependsOn   []string                  `json:"depends_on"`
	Parameters  []ctyjson.SimpleJSONValue `json:"parameters"`
}

// WriteJSON writes the plan as an indented JSON document. Parameter values
// keep their types.
func (p *Plan) WriteJSON(w io.Writer) error {
	out := jsonPlan{
		Steps:    make([]jsonStep, 0, len(p.Steps)),
		Levels:   nonNil(p.Levels),
		External: nonNil(p.External),
		Terminal: nonNil(p.Terminal),
	}
	for _, s := range p.Steps {
		d := s.Descriptor
		js := jsonStep{
			ID:          s.ID,
			Name:        d.Name(),
			Position:    s.Position,
			Level:       s.Level,
			Source:      nonNil([]string(d.Source())),
			Target:      nonNil([]string(d.Target())),
			Features:    nonNil([]string(d.Features())),
			ForEach:     nonNil([]string(d.ForEach())),
			AggregateBy: nonNil([]string(d.AggregateBy())),
			Rule:        d.Rule(),
			DependsOn:   nonNil(s.DependsOn),
		}
		for _, ps := range d.Parameters() {
			js.Parameters = append(js.Parameters, ctyjson.SimpleJSONValue{Value: ps.Cty()})
		}
		out.Steps = append(out.Steps, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
