package hcl_adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/expgrid/internal/config"
	"github.com/vk/expgrid/internal/param"
	"github.com/vk/expgrid/internal/step"
)

func load(t *testing.T, src string) (*config.Model, error) {
	t.Helper()
	return NewLoader().LoadSource(context.Background(), "main.hcl", []byte(src))
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
experiment "train" {
  source       = "corpus vocab"
  target       = ["model"]
  features     = "gpu"
  for_each     = "lr"
  aggregate_by = "seed"
  rule         = "python train.py"
  parameters   = [{ lr = 0.5, tag = "a" }, { lr = 1, tag = "b" }]

  product {
    optimizer = ["sgd", "adam"]
    layers    = [1, 2]
  }

  sample {
    count = 4
    uniform "dropout" {
      min = 0.1
      max = 0.5
    }
    choice "batch" {
      values = [16, 32]
    }
  }
}
`)
	require.NoError(t, err)
	require.Len(t, model.Experiments, 1)
	exp := model.Experiments[0]

	assert.Equal(t, "train", exp.Name)
	assert.Equal(t, "main.hcl:2", exp.FSInfo.String())
	assert.Equal(t, []string{"corpus", "vocab"}, exp.Source)
	assert.Equal(t, []string{"model"}, exp.Target)
	assert.Equal(t, []string{"gpu"}, exp.Features)
	assert.Equal(t, []string{"lr"}, exp.ForEach)
	assert.Equal(t, []string{"seed"}, exp.AggregateBy)
	assert.Equal(t, "python train.py", exp.Rule)

	require.Len(t, exp.Parameters, 2)
	assert.Equal(t, map[string]string{"lr": "0.5", "tag": "a"}, exp.Parameters[0].StringMap())
	assert.Equal(t, map[string]string{"lr": "1", "tag": "b"}, exp.Parameters[1].StringMap())

	require.Len(t, exp.Product, 2)
	assert.Equal(t, []string{"sgd", "adam"}, rendered(exp.Product["optimizer"]))
	assert.Equal(t, []string{"1", "2"}, rendered(exp.Product["layers"]))

	require.NotNil(t, exp.Sample)
	assert.Equal(t, 4, exp.Sample.Count)
	assert.Equal(t, config.Range{Min: 0.1, Max: 0.5}, exp.Sample.Uniform["dropout"])
	assert.Equal(t, []string{"16", "32"}, rendered(exp.Sample.Choice["batch"]))
}

func TestLoadSource_OmittedAttributes(t *testing.T) {
	model, err := load(t, `experiment "bare" {}`)
	require.NoError(t, err)
	require.Len(t, model.Experiments, 1)
	exp := model.Experiments[0]

	assert.Nil(t, exp.Source)
	assert.Nil(t, exp.Target)
	assert.Nil(t, exp.Parameters)
	assert.Nil(t, exp.Product)
	assert.Nil(t, exp.Sample)
	assert.Empty(t, exp.Rule)
}

func TestLoadSource_ListizeRejectsNonStrings(t *testing.T) {
	testCases := []struct {
		name  string
		attr  string
		field string
	}{
		{name: "number", attr: `source = 3`, field: step.FieldSource},
		{name: "bool", attr: `target = true`, field: step.FieldTarget},
		{name: "object", attr: `features = { a = "b" }`, field: step.FieldFeatures},
		{name: "mixed list", attr: `for_each = ["a", 1]`, field: step.FieldForEach},
		{name: "nested list", attr: `aggregate_by = [["a"]]`, field: step.FieldAggregateBy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, "experiment \"bad\" {\n  "+tc.attr+"\n}\n")
			require.Error(t, err)
			require.ErrorIs(t, err, step.ErrMalformedDescriptor)

			var mErr *step.MalformedDescriptorError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, "bad", mErr.Step)
			assert.Equal(t, tc.field, mErr.Field)
		})
	}
}

func TestLoadSource_ParametersMustBeScalarObjects(t *testing.T) {
	testCases := map[string]string{
		"not a list":      `parameters = { a = 1 }`,
		"nested value":    `parameters = [{ a = [1, 2] }]`,
		"scalar elements": `parameters = [1, 2]`,
	}
	for name, attr := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, "experiment \"p\" {\n  "+attr+"\n}\n")
			assert.ErrorIs(t, err, step.ErrMalformedDescriptor)
		})
	}
}

func TestLoadSource_LocalsAndFunctions(t *testing.T) {
	model, err := load(t, `
locals {
  rates  = [for r in local.raw : r / 10]
  raw    = range(1, 4)
  inputs = join(" ", ["a", "b"])
}

experiment "sweep" {
  source = local.inputs
  target = upper("out")
  product {
    lr = local.rates
  }
}
`)
	require.NoError(t, err)
	exp := model.Experiments[0]
	assert.Equal(t, []string{"a", "b"}, exp.Source)
	assert.Equal(t, []string{"OUT"}, exp.Target)
	assert.Equal(t, []string{"0.1", "0.2", "0.3"}, rendered(exp.Product["lr"]))
}

func TestLoadSource_LocalsErrors(t *testing.T) {
	testCases := map[string]string{
		"cycle": `
locals {
  a = local.b
  b = local.a
}`,
		"unknown reference": `
locals {
  a = local.missing
}`,
		"duplicate": `
locals {
  a = 1
}
locals {
  a = 2
}`,
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, src)
			assert.Error(t, err)
		})
	}
}

func TestLoadSource_SampleErrors(t *testing.T) {
	testCases := map[string]string{
		"negative count": `sample { count = -1 }`,
		"duplicate name": `
sample {
  count = 1
  uniform "x" {
    min = 0
    max = 1
  }
  choice "x" {
    values = [1]
  }
}`,
		"choice not a list": `
sample {
  count = 1
  choice "x" {
    values = 3
  }
}`,
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, "experiment \"s\" {\n"+body+"\n}\n")
			assert.Error(t, err)
		})
	}
}

func TestLoadSource_RejectsUnknownBlocks(t *testing.T) {
	_, err := load(t, `step "print" "a" {}`)
	assert.Error(t, err)
}

func TestLoadSource_SyntaxError(t *testing.T) {
	_, err := load(t, `experiment "x" {`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file main.hcl")
}

func TestLoad_WalksDirectoriesInOrder(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.hcl":          `experiment "second" { target = "y" }`,
		"a.hcl":          `experiment "first" { target = "x" }`,
		"nested/c.hcl":   `experiment "third" { source = "x y" }`,
		"ignored.yaml":   `experiments: []`,
		"nested/notes.t": `not hcl`,
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, e := range model.Experiments {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, names); diff != "" {
		t.Errorf("experiment order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, filepath.Join(dir, "nested", "c.hcl"), model.Experiments[2].FSInfo.FilePath)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
