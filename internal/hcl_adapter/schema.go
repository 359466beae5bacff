// This file contains the HCL decoding structs for experiment files.

package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// rootSchema lists the top-level blocks an experiment file may contain.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "experiment", LabelNames: []string{"name"}},
		{Type: "locals"},
	},
}

// Experiment is the HCL schema for an `experiment "name" { ... }` block.
// Label attributes are kept as expressions because they accept either a
// whitespace-separated string or a list of strings.
type Experiment struct {
	Source      hcl.Expression `hcl:"source,optional"`
	Target      hcl.Expression `hcl:"target,optional"`
	Features    hcl.Expression `hcl:"features,optional"`
	ForEach     hcl.Expression `hcl:"for_each,optional"`
	AggregateBy hcl.Expression `hcl:"aggregate_by,optional"`
	Rule        *string        `hcl:"rule,optional"`
	Parameters  hcl.Expression `hcl:"parameters,optional"`
	Product     *Product       `hcl:"product,block"`
	Sample      *Sample        `hcl:"sample,block"`
}

// Product holds one attribute per axis: `name = [v1, v2, ...]`.
type Product struct {
	Body hcl.Body `hcl:",remain"`
}

// Sample is the HCL schema for a `sample` block.
type Sample struct {
	Count   int        `hcl:"count"`
	Uniform []*Uniform `hcl:"uniform,block"`
	Choice  []*Choice  `hcl:"choice,block"`
}

// Uniform is a `uniform "name" { min = .. max = .. }` distribution.
type Uniform struct {
	Name string  `hcl:"name,label"`
	Min  float64 `hcl:"min"`
	Max  float64 `hcl:"max"`
}

// Choice is a `choice "name" { values = [...] }` distribution.
type Choice struct {
	Name   string    `hcl:"name,label"`
	Values cty.Value `hcl:"values"`
}
