// Package decode loads trees produced by external parsers into the IR.
//
// JSON is decoded off the token stream so object key order survives; the
// checker's enumeration-order guarantees depend on it. YAML is decoded via
// its syntax tree for the same reason, and local tags ("!regexp") become
// variant tags on the resulting nodes.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/treematch/conform-go/ir"
)

var ErrDecode = errors.New("decode error")

// File loads a tree from path, choosing the format by extension
// (.json, .yaml, .yml).
func File(path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return JSON(d)
	case ".yaml", ".yml":
		return YAML(d)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrDecode, ext)
	}
}

func JSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := jsonValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}
	return node, nil
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonValueAt(dec, tok)
}

func jsonValueAt(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var kvs []ir.KeyVal
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return ir.FromKeyVals(kvs), nil
		case '[':
			var vals []*ir.Node
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return ir.FromSlice(vals), nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return ir.FromString(t), nil
	case json.Number:
		return numberNode(string(t)), nil
	case bool:
		return ir.FromBool(t), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// numberNode keeps the raw literal alongside the parsed value, so numbers
// out of int64/float64 range still compare by their text.
func numberNode(raw string) *ir.Node {
	res := &ir.Node{Type: ir.NumberType, Number: raw}
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			res.Int64 = &i
			return res
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		res.Float64 = &f
	}
	return res
}
