package plan

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// WriteHCL writes the plan as HCL: one `step` block per step in execution
// order.
func (p *Plan) WriteHCL(w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, s := range p.Steps {
		if i > 0 {
			root.AppendNewline()
		}
		d := s.Descriptor
		body := root.AppendNewBlock("step", []string{s.ID}).Body()
		body.SetAttributeValue("position", cty.NumberIntVal(int64(s.Position)))
		body.SetAttributeValue("level", cty.NumberIntVal(int64(s.Level)))
		body.SetAttributeValue("source", stringList(d.Source()))
		body.SetAttributeValue("target", stringList(d.Target()))
		body.SetAttributeValue("features", stringList(d.Features()))
		body.SetAttributeValue("for_each", stringList(d.ForEach()))
		body.SetAttributeValue("aggregate_by", stringList(d.AggregateBy()))
		if d.Rule() != "" {
			body.SetAttributeValue("rule", cty.StringVal(d.Rule()))
		}
		body.SetAttributeValue("depends_on", stringList(s.DependsOn))

		sets := d.Parameters()
		params := make([]cty.Value, 0, len(sets))
		for _, ps := range sets {
			params = append(params, ps.Cty())
		}
		body.SetAttributeValue("parameters", cty.TupleVal(params))
	}

	_, err := f.WriteTo(w)
	return err
}

func stringList(s []string) cty.Value {
	if len(s) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(s))
	for _, v := range s {
		vals = append(vals, cty.StringVal(v))
	}
	return cty.ListVal(vals)
}
