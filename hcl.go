// FILE: lixenwraith/treeconfig/hcl.go
package treeconfig

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// parseHCL reads HCL native syntax. Attributes become values, blocks become
// nested mappings keyed by block type then by each label:
//
//	database "primary" { host = "db1" }  =>  {database: {primary: {host: db1}}}
//
// Expressions are evaluated without variables or functions.
func parseHCL(data []byte) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, "config.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Newf("unexpected HCL body type %T", file.Body)
	}
	return hclBodyToMap(body)
}

func hclBodyToMap(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", name)
		}
		out[name] = goVal
	}

	for _, block := range body.Blocks {
		inner, err := hclBodyToMap(block.Body)
		if err != nil {
			return nil, err
		}

		target := childMap(out, block.Type)
		for _, label := range block.Labels {
			target = childMap(target, label)
		}
		mergeMaps(target, inner)
	}

	return out, nil
}

// childMap returns parent[key] as a map, creating it if absent or not a map.
func childMap(parent map[string]any, key string) map[string]any {
	if existing, ok := parent[key].(map[string]any); ok {
		return existing
	}
	m := make(map[string]any)
	parent[key] = m
	return m
}

// mergeMaps copies src into dst, descending into maps present on both sides.
// Repeated blocks with the same type and labels extend one another.
func mergeMaps(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcIsMap := val.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeMaps(dstMap, srcMap)
			continue
		}
		dst[key] = val
	}
}

// ctyToGo converts a cty.Value to plain Go values. Whole numbers become
// int64, other numbers float64.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() {
		return nil, errors.New("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			goVal, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = goVal
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0)
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			goVal, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	}
	return nil, errors.Newf("unsupported HCL type %s", ty.FriendlyName())
}

// encodeHCL writes nested maps as HCL: maps become unlabeled blocks,
// everything else an attribute.
func encodeHCL(data map[string]any) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	if err := writeHCLBody(f.Body(), data); err != nil {
		return nil, errors.Wrap(err, "failed to marshal config data to HCL")
	}
	return f.Bytes(), nil
}

func writeHCLBody(body *hclwrite.Body, data map[string]any) error {
	for _, key := range sortedKeys(data) {
		val := data[key]
		if nested, isMap := asMapping(val); isMap {
			block := body.AppendNewBlock(key, nil)
			if err := writeHCLBody(block.Body(), nested); err != nil {
				return err
			}
			continue
		}

		ctyVal, err := goToCty(val)
		if err != nil {
			return errors.Wrapf(err, "attribute %q", key)
		}
		body.SetAttributeValue(key, ctyVal)
	}
	return nil
}

// goToCty converts decoded leaf values back into cty values.
func goToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case json.Number:
		return cty.ParseNumberVal(t.String())
	case time.Duration:
		return cty.StringVal(t.String()), nil
	case time.Time:
		return cty.StringVal(t.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return cty.StringVal(t.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cty.NumberIntVal(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cty.NumberUIntVal(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cty.NumberFloatVal(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, rv.Len())
		for i := range vals {
			cv, err := goToCty(rv.Index(i).Interface())
			if err != nil {
				return cty.NilVal, err
			}
			vals[i] = cv
		}
		return cty.TupleVal(vals), nil
	case reflect.Map:
		if rv.Len() == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cv, err := goToCty(iter.Value().Interface())
			if err != nil {
				return cty.NilVal, err
			}
			attrs[keyString(iter.Key().Interface())] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, errors.Newf("cannot represent %T in HCL", v)
}
