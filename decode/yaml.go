package decode

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/treematch/conform-go/ir"
)

func YAML(d []byte) (*ir.Node, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return ir.Null(), nil
	}
	if len(f.Docs) > 1 {
		return nil, fmt.Errorf("%w: multi-document yaml", ErrDecode)
	}
	node, err := yamlValue(f.Docs[0].Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return node, nil
}

func yamlValue(n ast.Node) (*ir.Node, error) {
	switch v := n.(type) {
	case *ast.MappingNode:
		kvs := make([]ir.KeyVal, 0, len(v.Values))
		for _, mv := range v.Values {
			kv, err := yamlKeyVal(mv)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, kv)
		}
		return ir.FromKeyVals(kvs), nil
	case *ast.MappingValueNode:
		kv, err := yamlKeyVal(v)
		if err != nil {
			return nil, err
		}
		return ir.FromKeyVals([]ir.KeyVal{kv}), nil
	case *ast.SequenceNode:
		vals := make([]*ir.Node, 0, len(v.Values))
		for _, el := range v.Values {
			val, err := yamlValue(el)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return ir.FromSlice(vals), nil
	case *ast.StringNode:
		return ir.FromString(v.Value), nil
	case *ast.LiteralNode:
		return ir.FromString(v.Value.Value), nil
	case *ast.IntegerNode:
		switch num := v.Value.(type) {
		case int64:
			return ir.FromInt(num), nil
		case uint64:
			return ir.FromInt(int64(num)), nil
		case int:
			return ir.FromInt(int64(num)), nil
		}
		return nil, fmt.Errorf("unsupported integer payload %T", v.Value)
	case *ast.FloatNode:
		return ir.FromFloat(v.Value), nil
	case *ast.BoolNode:
		return ir.FromBool(v.Value), nil
	case *ast.NullNode:
		return ir.Null(), nil
	case *ast.InfinityNode:
		return ir.FromFloat(v.Value), nil
	case *ast.NanNode:
		return ir.FromFloat(math.NaN()), nil
	case *ast.TagNode:
		inner, err := yamlValue(v.Value)
		if err != nil {
			return nil, err
		}
		tag := v.Start.Value
		if strings.HasPrefix(tag, "!!") {
			// standard yaml tags carry no variant meaning
			return inner, nil
		}
		return inner.WithTag(tag), nil
	case *ast.AnchorNode:
		return yamlValue(v.Value)
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unsupported yaml node %T", n)
	}
}

func yamlKeyVal(mv *ast.MappingValueNode) (ir.KeyVal, error) {
	var key string
	switch k := mv.Key.(type) {
	case *ast.StringNode:
		key = k.Value
	case *ast.IntegerNode:
		key = fmt.Sprint(k.Value)
	default:
		key = mv.Key.GetToken().Value
	}
	val, err := yamlValue(mv.Value)
	if err != nil {
		return ir.KeyVal{}, err
	}
	return ir.KeyVal{Key: ir.FromString(key), Val: val}, nil
}
