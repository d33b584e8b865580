package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/modelgrid/internal/config"
	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/schema"
)

// translateComponent converts a `component` block into the agnostic model.
func (l *Loader) translateComponent(ctx context.Context, block *hcl.Block) (*config.Component, error) {
	declaredAt := fmt.Sprintf("%s:%d", block.DefRange.Filename, block.DefRange.Start.Line)

	var body schema.Component
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode component %q at %s: %w", block.Labels[1], declaredAt, diags)
	}

	attrs, err := l.extractAttributes(ctx, body.Remain)
	if err != nil {
		return nil, fmt.Errorf("component %q at %s: %w", block.Labels[1], declaredAt, err)
	}

	return &config.Component{
		Type:        block.Labels[0],
		Name:        block.Labels[1],
		Description: body.Description,
		Targets:     body.Targets,
		Attributes:  attrs,
		DeclaredAt:  declaredAt,
	}, nil
}

// extractAttributes evaluates every remaining attribute of a block. Nested
// blocks are not allowed.
func (l *Loader) extractAttributes(ctx context.Context, body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		out[name] = normalize(ctx, val)
	}
	return out, nil
}

// normalize turns homogeneous tuples, which is what HCL list literals
// evaluate to, into lists so factories can decode them into slices.
func normalize(ctx context.Context, val cty.Value) cty.Value {
	if !val.Type().IsTupleType() {
		return val
	}
	list, err := convert.Convert(val, cty.List(cty.DynamicPseudoType))
	if err != nil {
		return val
	}
	ctxlog.FromContext(ctx).Debug("Implicitly converted value type.",
		"from", val.Type().FriendlyName(),
		"to", list.Type().FriendlyName(),
	)
	return list
}
