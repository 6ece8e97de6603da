// This file contains the logic for translating HCL blocks into the
// format-agnostic declaration model defined in the config package.

package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/codeapi/internal/config"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateEnum converts an `enum` block into a unit with one entry per
// `code` block.
func (l *Loader) translateEnum(ctx context.Context, file string, b *EnumBlock) *config.Unit {
	ctx = ctxlog.With(ctx, "unit", b.ID, "kind", config.UnitEnum.String())
	ctxlog.FromContext(ctx).Debug("Translating HCL enum to declaration model.", "codes", len(b.Codes))

	unit := &config.Unit{
		ID:         b.ID,
		Kind:       config.UnitEnum,
		Descriptor: translateDescriptor(b.Descriptor),
		Entries:    make([]*config.Entry, 0, len(b.Codes)),
		Source:     file,
	}
	for _, c := range b.Codes {
		unit.Entries = append(unit.Entries, &config.Entry{
			Name:    c.Name,
			Number:  evalExpr(ctx, c.Number, "number"),
			Message: evalExpr(ctx, c.Message, "message"),
			Color:   evalOptionalExpr(ctx, c.Color, "color"),
		})
	}
	return unit
}

// translateStatus converts a `status` block into a unit holding exactly one
// entry named after the unit itself.
func (l *Loader) translateStatus(ctx context.Context, file string, b *StatusBlock) *config.Unit {
	ctx = ctxlog.With(ctx, "unit", b.ID, "kind", config.UnitSingle.String())
	ctxlog.FromContext(ctx).Debug("Translating HCL status to declaration model.")

	return &config.Unit{
		ID:         b.ID,
		Kind:       config.UnitSingle,
		Descriptor: translateDescriptor(b.Descriptor),
		Entries: []*config.Entry{{
			Name:    b.ID,
			Number:  evalExpr(ctx, b.Number, "number"),
			Message: evalExpr(ctx, b.Message, "message"),
			Color:   evalOptionalExpr(ctx, b.Color, "color"),
		}},
		Source: file,
	}
}

func translateDescriptor(d *DescriptorBlock) *config.Descriptor {
	if d == nil {
		return nil
	}
	return &config.Descriptor{Name: d.Name, Theme: d.Theme}
}

// evalExpr evaluates a required attribute. A value that cannot be evaluated
// is returned as unknown and reported later by the builder.
func evalExpr(ctx context.Context, expr hcl.Expression, attrName string) cty.Value {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		ctxlog.FromContext(ctx).Warn("Attribute could not be evaluated.", "attribute", attrName, "range", expr.Range().String(), "error", diags.Error())
		return cty.DynamicVal
	}
	return val
}

// evalOptionalExpr evaluates an optional attribute, returning cty.NilVal
// when the attribute was not written in the source at all.
func evalOptionalExpr(ctx context.Context, expr hcl.Expression, attrName string) cty.Value {
	if !isExprDefined(ctx, expr, attrName) {
		return cty.NilVal
	}
	return evalExpr(ctx, expr, attrName)
}
