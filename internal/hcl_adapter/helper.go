package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/gridsched/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file; a placeholder for an
	// omitted attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// traversalKey renders a traversal the way it was written, e.g.
// resource.buffer.vertices, for use in messages and as a map key.
func traversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// resourceRanges maps "<kind>.<name>" to the definition range of each
// resource block in body. Only native syntax bodies carry block ranges; other
// bodies yield an empty map.
func resourceRanges(body hcl.Body) map[string]hcl.Range {
	ranges := make(map[string]hcl.Range)
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return ranges
	}
	for _, block := range syntaxBody.Blocks {
		if block.Type != "resource" || len(block.Labels) != 2 {
			continue
		}
		key := block.Labels[0] + "." + block.Labels[1]
		if _, seen := ranges[key]; !seen {
			ranges[key] = block.DefRange()
		}
	}
	return ranges
}

func errorDiag(summary, detail string, subject hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	}
}
