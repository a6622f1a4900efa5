// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseProjectConfig reads top-level attributes of a project config file
// written in HCL native syntax, e.g.
//
//	indent_size = 4
//	quote_style = "single"
//
// The result is suitable for DecodeOptions.
func ParseProjectConfig(filename string, src []byte) (map[string]interface{}, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]interface{}, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := goValue(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", attr.Range, name, err)
		}
		out[name] = v
	}

	return out, nil
}

// ParseOverride parses a key=value pair as given on the command line.
// The value is read as an HCL expression, bare words are taken
// as strings.
func ParseOverride(kv string) (string, interface{}, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", kv)
	}
	raw = strings.TrimSpace(raw)

	expr, diags := hclsyntax.ParseExpression([]byte(raw), "<override>", hcl.InitialPos)
	if diags.HasErrors() {
		return key, raw, nil
	}
	if _, ok := expr.(*hclsyntax.ScopeTraversalExpr); ok {
		// bare word, except for the literals true, false and null
		// which hclsyntax parses as literal values
		return key, raw, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", nil, diags
	}
	v, err := goValue(val)
	if err != nil {
		return "", nil, fmt.Errorf("%q: %w", key, err)
	}

	return key, v, nil
}

func goValue(val cty.Value) (interface{}, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value must be known")
	}

	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Bool:
		return val.True(), nil
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return int(i), nil
		}
		f, _ := bf.Float64()
		return f, nil
	}

	return nil, fmt.Errorf("unsupported type %s", val.Type().FriendlyName())
}
