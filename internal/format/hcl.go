package format

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// HCL reads HCL native syntax into a tree and writes trees back as HCL.
//
// Attributes become leaves. A block becomes a nested table under its type,
// then under each of its labels, so `resource "a" "b" { x = 1 }` is
// {"resource": {"a": {"b": {"x": 1}}}}. Expressions that cannot be evaluated
// without variables are kept as their source text.
//
// Filename names the source in parse errors.
type HCL struct {
	Filename string
}

// Parse implements checker.Format.
func (h HCL) Parse(data []byte) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, h.Filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}
	return bodyTree(body, data)
}

func bodyTree(body *hclsyntax.Body, src []byte) (map[string]any, error) {
	tree := make(map[string]any)

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			tree[name] = string(attr.Expr.Range().SliceBytes(src))
			continue
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", name, err)
		}
		tree[name] = native
	}

	for _, block := range body.Blocks {
		child, err := bodyTree(block.Body, src)
		if err != nil {
			return nil, fmt.Errorf("in block '%s': %w", block.Type, err)
		}
		node := tree
		for _, key := range append([]string{block.Type}, block.Labels...) {
			next, ok := node[key].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[key] = next
			}
			node = next
		}
		for k, v := range child {
			node[k] = v
		}
	}
	return tree, nil
}

// ctyToNative converts a known cty value to strings, bools, int64/float64
// numbers, []any and map[string]any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
}

// Render implements checker.Format. Nested tables are written as blocks.
func (HCL) Render(tree map[string]any) (string, error) {
	f := hclwrite.NewEmptyFile()
	if err := writeBody(f.Body(), tree); err != nil {
		return "", err
	}
	return string(hclwrite.Format(f.Bytes())), nil
}

func writeBody(body *hclwrite.Body, tree map[string]any) error {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if nested, ok := tree[k].(map[string]any); ok {
			block := body.AppendNewBlock(k, nil)
			if err := writeBody(block.Body(), nested); err != nil {
				return err
			}
			continue
		}
		val, err := nativeToCty(tree[k])
		if err != nil {
			return fmt.Errorf("attribute '%s': %w", k, err)
		}
		body.SetAttributeValue(k, val)
	}
	return nil
}

func nativeToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(t))
		for i, elem := range t {
			cv, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, err
			}
			vals[i] = cv
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(t))
		for k, elem := range t {
			cv, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.StringVal(fmt.Sprint(v)), nil
}
