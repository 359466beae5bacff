package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional fields with zero-width
// expression objects, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder for an
	// omitted one has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// functions are the built-in functions available in experiment files.
var functions = map[string]function.Function{
	"concat":   stdlib.ConcatFunc,
	"distinct": stdlib.DistinctFunc,
	"flatten":  stdlib.FlattenFunc,
	"format":   stdlib.FormatFunc,
	"join":     stdlib.JoinFunc,
	"length":   stdlib.LengthFunc,
	"lower":    stdlib.LowerFunc,
	"max":      stdlib.MaxFunc,
	"min":      stdlib.MinFunc,
	"range":    stdlib.RangeFunc,
	"sort":     stdlib.SortFunc,
	"split":    stdlib.SplitFunc,
	"upper":    stdlib.UpperFunc,
}

// newEvalContext returns the evaluation context for one file. locals may be
// nil.
func newEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if len(locals) > 0 {
		vars["local"] = cty.ObjectVal(locals)
	} else {
		vars["local"] = cty.EmptyObjectVal
	}
	return &hcl.EvalContext{Variables: vars, Functions: functions}
}
