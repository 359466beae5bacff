// This file translates decoded HCL experiment blocks into the
// format-agnostic configuration model.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/vk/expgrid/internal/param"
	"github.com/vk/expgrid/internal/step"
	"github.com/zclconf/go-cty/cty"
)

// translateExperiment decodes one `experiment` block.
func (l *Loader) translateExperiment(ctx context.Context, block *hcl.Block, evalCtx *hcl.EvalContext, filePath string) (*config.Experiment, error) {
	name := block.Labels[0]
	logger := ctxlog.FromContext(ctx).With("experiment", name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL experiment to internal config model.")

	var raw Experiment
	if diags := gohcl.DecodeBody(block.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode experiment %q: %w", name, diags)
	}

	exp := &config.Experiment{
		Name:   name,
		FSInfo: config.NewFSInfo(filePath, block.DefRange.Start.Line),
	}
	if raw.Rule != nil {
		exp.Rule = *raw.Rule
	}

	labelFields := []struct {
		field string
		expr  hcl.Expression
		dst   *[]string
	}{
		{step.FieldSource, raw.Source, &exp.Source},
		{step.FieldTarget, raw.Target, &exp.Target},
		{step.FieldFeatures, raw.Features, &exp.Features},
		{step.FieldForEach, raw.ForEach, &exp.ForEach},
		{step.FieldAggregateBy, raw.AggregateBy, &exp.AggregateBy},
	}
	for _, lf := range labelFields {
		labels, err := listize(ctx, name, lf.field, lf.expr, evalCtx)
		if err != nil {
			return nil, err
		}
		*lf.dst = labels
	}

	params, err := translateParameters(ctx, name, raw.Parameters, evalCtx)
	if err != nil {
		return nil, err
	}
	exp.Parameters = params

	if raw.Product != nil {
		if exp.Product, err = translateProduct(raw.Product, evalCtx); err != nil {
			return nil, fmt.Errorf("experiment %q: %w", name, err)
		}
	}
	if raw.Sample != nil {
		if exp.Sample, err = translateSample(raw.Sample); err != nil {
			return nil, fmt.Errorf("experiment %q: %w", name, err)
		}
	}

	logger.Debug("Experiment translated.",
		"source", exp.Source,
		"target", exp.Target,
		"parameters", len(exp.Parameters),
		"product_axes", len(exp.Product),
		"has_sample", exp.Sample != nil,
	)
	return exp, nil
}

// listize turns a label attribute into a list of labels. A string is split
// on whitespace; a list, tuple or set must hold only strings. An omitted or
// null attribute yields no labels.
func listize(ctx context.Context, stepName, field string, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	if !isExprDefined(ctx, expr, field) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("experiment %q, attribute %q: %w", stepName, field, diags)
	}
	val, _ = val.Unmark()
	if val.IsNull() {
		return nil, nil
	}

	malformed := func(reason string) error {
		return fmt.Errorf("%s: %w", expr.Range(), &step.MalformedDescriptorError{Step: stepName, Field: field, Reason: reason})
	}
	if !val.IsWhollyKnown() {
		return nil, malformed("value is not known")
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return step.Fields(val.AsString()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		labels := make([]string, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.Type() != cty.String || ev.IsNull() {
				return nil, malformed(fmt.Sprintf("list elements must be strings, got %s", ev.Type().FriendlyName()))
			}
			labels = append(labels, ev.AsString())
		}
		return labels, nil
	default:
		return nil, malformed(fmt.Sprintf("must be a string or a list of strings, got %s", ty.FriendlyName()))
	}
}

// translateParameters decodes `parameters = [{...}, ...]`.
func translateParameters(ctx context.Context, stepName string, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]*param.Set, error) {
	if !isExprDefined(ctx, expr, step.FieldParameters) {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("experiment %q, attribute %q: %w", stepName, step.FieldParameters, diags)
	}
	val, _ = val.Unmark()
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	if !val.IsWhollyKnown() || !(ty.IsListType() || ty.IsTupleType()) {
		return nil, fmt.Errorf("%s: %w", expr.Range(), &step.MalformedDescriptorError{
			Step:   stepName,
			Field:  step.FieldParameters,
			Reason: fmt.Sprintf("must be a list of objects, got %s", ty.FriendlyName()),
		})
	}

	sets := make([]*param.Set, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		idx, ev := it.Element()
		s, err := param.FromCty(ev)
		if err != nil {
			i, _ := idx.AsBigFloat().Int64()
			return nil, fmt.Errorf("%s: %w", expr.Range(), &step.MalformedDescriptorError{
				Step:   stepName,
				Field:  step.FieldParameters,
				Reason: fmt.Sprintf("element %d: %v", i, err),
			})
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// translateProduct decodes a `product` block: each attribute is one axis.
func translateProduct(p *Product, evalCtx *hcl.EvalContext) (map[string][]param.Value, error) {
	attrs, diags := p.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid product block: %w", diags)
	}
	axes := make(map[string][]param.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("product axis %q: %w", name, diags)
		}
		values, err := scalarList(val)
		if err != nil {
			return nil, fmt.Errorf("%s: product axis %q: %w", attr.Expr.Range(), name, err)
		}
		axes[name] = values
	}
	return axes, nil
}

// translateSample decodes a `sample` block.
func translateSample(s *Sample) (*config.Sample, error) {
	if s.Count < 0 {
		return nil, fmt.Errorf("sample count must not be negative, got %d", s.Count)
	}
	out := &config.Sample{
		Count:   s.Count,
		Uniform: make(map[string]config.Range, len(s.Uniform)),
		Choice:  make(map[string][]param.Value, len(s.Choice)),
	}
	declared := func(name string) bool {
		_, u := out.Uniform[name]
		_, c := out.Choice[name]
		return u || c
	}
	for _, u := range s.Uniform {
		if declared(u.Name) {
			return nil, fmt.Errorf("sample parameter %q declared twice", u.Name)
		}
		out.Uniform[u.Name] = config.Range{Min: u.Min, Max: u.Max}
	}
	for _, c := range s.Choice {
		if declared(c.Name) {
			return nil, fmt.Errorf("sample parameter %q declared twice", c.Name)
		}
		values, err := scalarList(c.Values)
		if err != nil {
			return nil, fmt.Errorf("sample choice %q: %w", c.Name, err)
		}
		out.Choice[c.Name] = values
	}
	return out, nil
}

// scalarList converts a list, tuple or set of scalars into parameter values.
func scalarList(val cty.Value) ([]param.Value, error) {
	val, _ = val.Unmark()
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("must be a known list of values")
	}
	ty := val.Type()
	if !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		return nil, fmt.Errorf("must be a list of values, got %s", ty.FriendlyName())
	}
	values := make([]param.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		v, err := param.ValueOf(ev)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
