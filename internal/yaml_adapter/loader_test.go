package yaml_adapter

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/param"
	"github.com/vk/expgrid/internal/step"
)

func load(t *testing.T, src string) (*config.Model, error) {
	t.Helper()
	return NewLoader().LoadSource(context.Background(), "grid.yaml", []byte(src))
}

func rendered(values []param.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

func TestLoadSource_FullExperiment(t *testing.T) {
	model, err := load(t, `
experiments:
  - name: train
    source: corpus vocab
    target: [model]
    features: gpu
    for_each: lr
    aggregate_by: [seed]
    rule: python train.py
    parameters:
      - {lr: 0.5, tag: a, fast: true}
      - {lr: 2, tag: b, fast: false}
    product:
      optimizer: [sgd, adam]
    sample:
      count: 3
      uniform:
        dropout: {min: 0.1, max: 0.5}
      choice:
        batch: [16, 32]
`)
	require.NoError(t, err)
	require.Len(t, model.Experiments, 1)
	exp := model.Experiments[0]

	assert.Equal(t, "train", exp.Name)
	assert.Equal(t, "grid.yaml:3", exp.FSInfo.String())
	assert.Equal(t, []string{"corpus", "vocab"}, exp.Source)
	assert.Equal(t, []string{"model"}, exp.Target)
	assert.Equal(t, []string{"gpu"}, exp.Features)
	assert.Equal(t, []string{"lr"}, exp.ForEach)
	assert.Equal(t, []string{"seed"}, exp.AggregateBy)
	assert.Equal(t, "python train.py", exp.Rule)

	require.Len(t, exp.Parameters, 2)
	assert.Equal(t, map[string]string{"lr": "0.5", "tag": "a", "fast": "true"}, exp.Parameters[0].StringMap())
	assert.Equal(t, map[string]string{"lr": "2", "tag": "b", "fast": "false"}, exp.Parameters[1].StringMap())
	v, _ := exp.Parameters[1].Get("lr")
	assert.Equal(t, param.KindNumber, v.Kind())

	assert.Equal(t, []string{"sgd", "adam"}, rendered(exp.Product["optimizer"]))
	require.NotNil(t, exp.Sample)
	assert.Equal(t, 3, exp.Sample.Count)
	assert.Equal(t, config.Range{Min: 0.1, Max: 0.5}, exp.Sample.Uniform["dropout"])
	assert.Equal(t, []string{"16", "32"}, rendered(exp.Sample.Choice["batch"]))
}

func TestLoadSource_ListizeRejectsNonStrings(t *testing.T) {
	testCases := map[string]string{
		"number":      "source: 3",
		"bool":        "target: true",
		"mapping":     "features: {a: b}",
		"mixed list":  "for_each: [a, 1]",
		"nested list": "aggregate_by: [[a]]",
	}
	for name, line := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, "experiments:\n  - name: bad\n    "+line+"\n")
			require.ErrorIs(t, err, step.ErrMalformedDescriptor)
		})
	}
}

func TestLoadSource_StructuralErrors(t *testing.T) {
	testCases := map[string]string{
		"unknown top-level key":  "steps: []",
		"unknown experiment key": "experiments:\n  - name: x\n    depends_on: y\n",
		"experiments not a list": "experiments: {a: 1}",
		"scalar top level":       "just a string",
		"nested parameter":       "experiments:\n  - parameters:\n      - {a: [1]}\n",
		"negative count":         "experiments:\n  - sample: {count: -1}\n",
		"unknown sample key":     "experiments:\n  - sample: {count: 2, unifrom: {x: {min: 0, max: 1}}}\n",
		"unknown range key":      "experiments:\n  - sample: {count: 2, uniform: {x: {min: 0, maks: 1}}}\n",
		"sample not a mapping":   "experiments:\n  - sample: [1]\n",
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, src)
			assert.Error(t, err)
		})
	}
}

func TestLoadSource_RejectsNonFiniteNumbers(t *testing.T) {
	t.Run("parameter", func(t *testing.T) {
		_, err := load(t, "experiments:\n  - name: nan\n    parameters: [{lr: .nan}]\n")
		require.ErrorIs(t, err, step.ErrMalformedDescriptor)
		assert.Contains(t, err.Error(), "finite")
	})
	for name, line := range map[string]string{
		"product axis":  "product: {lr: [0.1, .inf]}",
		"sample choice": "sample: {count: 1, choice: {lr: [-.inf]}}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, "experiments:\n  - name: inf\n    "+line+"\n")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "finite")
		})
	}
}

func TestLoadSource_KeepsNonFiniteUniformBounds(t *testing.T) {
	// Bounds are validated when the sample is drawn, not at load time.
	model, err := load(t, "experiments:\n  - name: u\n    sample: {count: 1, uniform: {x: {min: .nan, max: 1}}}\n")
	require.NoError(t, err)
	require.Len(t, model.Experiments, 1)
	assert.True(t, math.IsNaN(model.Experiments[0].Sample.Uniform["x"].Min))
}

func TestLoadSource_EmptyDocuments(t *testing.T) {
	for _, src := range []string{"", "experiments:", "experiments: []"} {
		model, err := load(t, src)
		require.NoError(t, err)
		assert.Empty(t, model.Experiments)
	}
}

func TestLoad_ReadsYAMLAndYMLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("experiments:\n  - name: one\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("experiments:\n  - name: two\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.hcl"), []byte(`experiment "skip" {}`), 0o644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Experiments, 2)
	assert.Equal(t, "one", model.Experiments[0].Name)
	assert.Equal(t, "two", model.Experiments[1].Name)
}
