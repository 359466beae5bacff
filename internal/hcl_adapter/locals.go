// This file evaluates `locals` blocks. Locals are scoped to the file that
// declares them and may reference each other in any order.

package hcl_adapter

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/expgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// evalLocals resolves every attribute of the given locals bodies. It makes
// repeated passes, evaluating each local once all locals it references are
// known.
func evalLocals(ctx context.Context, bodies []hcl.Body) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	pending := make(map[string]*hcl.Attribute)
	for _, body := range bodies {
		attrs, diags := body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block: %w", diags)
		}
		for name, attr := range attrs {
			if prev, ok := pending[name]; ok {
				return nil, fmt.Errorf("%s: duplicate local %q, first defined at %s", attr.NameRange, name, prev.NameRange)
			}
			pending[name] = attr
		}
	}

	resolved := make(map[string]cty.Value, len(pending))
	for len(pending) > 0 {
		progressed := false
		for _, name := range sortedNames(pending) {
			attr := pending[name]
			if !refsResolved(attr.Expr, resolved) {
				continue
			}
			val, diags := attr.Expr.Value(newEvalContext(resolved))
			if diags.HasErrors() {
				return nil, fmt.Errorf("local %q: %w", name, diags)
			}
			resolved[name] = val
			delete(pending, name)
			progressed = true
			logger.Debug("Local resolved.", "name", name, "type", val.Type().FriendlyName())
		}
		if !progressed {
			return nil, fmt.Errorf("cannot resolve locals %v: cyclic or unknown references", sortedNames(pending))
		}
	}
	return resolved, nil
}

// refsResolved reports whether every `local.x` reference in expr is known.
func refsResolved(expr hcl.Expression, resolved map[string]cty.Value) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "local" || len(traversal) < 2 {
			continue
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, ok := resolved[attr.Name]; !ok {
			return false
		}
	}
	return true
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
