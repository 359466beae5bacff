package builder

import (
	"context"
	"fmt"

	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/vk/expgrid/internal/dag"
	"github.com/vk/expgrid/internal/step"
)

// DefaultSeed is the sampling seed used when none is configured.
const DefaultSeed uint64 = 1

// Options control graph construction.
type Options struct {
	// Seed drives every sample block.
	Seed uint64
}

// Build constructs a graph holding one step descriptor per distinct
// experiment in model.
func Build(ctx context.Context, model *config.Model, opts Options) (*dag.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "experiments", len(model.Experiments), "seed", opts.Seed)

	g := dag.New(dag.WithLogger(logger))
	origins := make(map[string]*config.Experiment, len(model.Experiments))

	for _, exp := range model.Experiments {
		d, err := newDescriptor(ctx, exp, opts)
		if err != nil {
			return nil, err
		}
		if !g.AddStepDescriptor(d) {
			first := origins[d.Key()]
			logger.Warn("Build: Duplicate experiment ignored; the first declaration wins.",
				"step", exp.Name,
				"path", exp.FSInfo.String(),
				"first", first.Name,
				"first_path", first.FSInfo.String(),
			)
			continue
		}
		origins[d.Key()] = exp
	}

	logger.Debug("Build: Graph construction complete.", "steps", g.Len())
	return g, nil
}

func newDescriptor(ctx context.Context, exp *config.Experiment, opts Options) (*step.Descriptor, error) {
	params, err := expandParameters(exp, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("%s: experiment %q: %w", exp.FSInfo, exp.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Build: Parameters expanded.", "step", exp.Name, "count", len(params))

	d, err := step.New(step.Spec{
		Name:        exp.Name,
		Source:      step.Of(exp.Source...),
		Target:      step.Of(exp.Target...),
		Features:    step.Of(exp.Features...),
		ForEach:     step.Of(exp.ForEach...),
		AggregateBy: step.Of(exp.AggregateBy...),
		Parameters:  params,
		Rule:        exp.Rule,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exp.FSInfo, err)
	}
	return d, nil
}
