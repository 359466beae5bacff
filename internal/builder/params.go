package builder

import (
	"errors"
	"hash/fnv"

	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/param"
	"github.com/vk/expgrid/internal/paramspace"
)

// errEmptySpace is returned when a declared parameter space has no points.
var errEmptySpace = errors.New("parameter space is empty")

// expandParameters returns explicit sets, then product rows, then samples.
// It returns nil when the experiment declares no parameter space at all.
func expandParameters(exp *config.Experiment, seed uint64) ([]*param.Set, error) {
	declared := exp.Parameters != nil || exp.Product != nil || exp.Sample != nil
	if !declared {
		return nil, nil
	}

	var out []*param.Set
	for _, s := range exp.Parameters {
		out = append(out, s.Clone())
	}
	if exp.Product != nil {
		out = append(out, paramspace.Product(exp.Product)...)
	}
	if exp.Sample != nil {
		samples, err := paramspace.Sample(exp.Sample.Count, distributions(exp.Sample), paramspace.NewRand(sampleSeed(seed, exp.Name)))
		if err != nil {
			return nil, err
		}
		out = append(out, samples...)
	}

	if len(out) == 0 {
		return nil, errEmptySpace
	}
	return out, nil
}

func distributions(s *config.Sample) map[string]paramspace.Distribution {
	dists := make(map[string]paramspace.Distribution, len(s.Uniform)+len(s.Choice))
	for name, r := range s.Uniform {
		dists[name] = paramspace.Uniform{Min: r.Min, Max: r.Max}
	}
	for name, values := range s.Choice {
		dists[name] = paramspace.Choice(values)
	}
	return dists
}

// sampleSeed mixes the experiment name into seed.
func sampleSeed(seed uint64, name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ h.Sum64()
}
