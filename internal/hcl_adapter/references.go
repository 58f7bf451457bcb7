package hcl_adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gridsched/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// resourceRoot is the root name of resource traversals in task declarations.
const resourceRoot = "resource"

// parseRefs turns a `reads` or `writes` list into resource references. Each
// element is either a traversal, resource.<kind>.<name>, or a quoted
// "<kind>.<name>" string. An omitted attribute yields no references.
func parseRefs(ctx context.Context, expr hcl.Expression, attrName string) ([]config.ResourceRef, hcl.Diagnostics) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}

	elems, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	refs := make([]config.ResourceRef, 0, len(elems))
	for _, elem := range elems {
		ref, refDiags := parseRef(elem)
		diags = append(diags, refDiags...)
		if refDiags.HasErrors() {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, diags
}

func parseRef(expr hcl.Expression) (config.ResourceRef, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		return refFromTraversal(traversal, expr.Range())
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return config.ResourceRef{}, hcl.Diagnostics{errorDiag(
			"Invalid resource reference",
			`A resource reference must be written as resource.<kind>.<name> or as a "<kind>.<name>" string.`,
			expr.Range(),
		)}
	}

	kind, name, ok := strings.Cut(val.AsString(), ".")
	if !ok || kind == "" || name == "" || strings.Contains(name, ".") {
		return config.ResourceRef{}, hcl.Diagnostics{errorDiag(
			"Invalid resource reference",
			fmt.Sprintf("%q is not of the form \"<kind>.<name>\".", val.AsString()),
			expr.Range(),
		)}
	}
	return config.ResourceRef{Kind: kind, Name: name, Range: expr.Range()}, nil
}

func refFromTraversal(traversal hcl.Traversal, rng hcl.Range) (config.ResourceRef, hcl.Diagnostics) {
	invalid := hcl.Diagnostics{errorDiag(
		"Invalid resource reference",
		fmt.Sprintf("%s does not name a resource; expected resource.<kind>.<name>.", traversalKey(traversal)),
		rng,
	)}
	if traversal.RootName() != resourceRoot || len(traversal) != 3 {
		return config.ResourceRef{}, invalid
	}
	kind, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return config.ResourceRef{}, invalid
	}
	name, ok := traversal[2].(hcl.TraverseAttr)
	if !ok {
		return config.ResourceRef{}, invalid
	}
	return config.ResourceRef{Kind: kind.Name, Name: name.Name, Range: rng}, nil
}
