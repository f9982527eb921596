// Package encode renders IR trees as bounded, optionally colorized text
// for diagnostics.
//
// The output is JSON-like with unquoted fields and "!"-prefixed variant
// tags. A Depth option caps expansion of object-like nodes, which is how
// callers keep renderings of huge trees (deeply nested token or children
// lists) to a human-inspectable window.
package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/treematch/conform-go/ir"
)

type EncState struct {
	depth  int
	indent int
	wire   bool
	colors *Colors
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		depth:  -1,
		indent: 2,
		colors: noColors(),
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es, 0, es.depth); err != nil {
		return err
	}
	if !es.wire {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func encode(node *ir.Node, w io.Writer, es *EncState, level, remain int) error {
	if node == nil {
		return write(w, es.colors.Value("undefined"))
	}
	if node.Tag != "" {
		if err := write(w, es.colors.Tag(node.Tag), " "); err != nil {
			return err
		}
	}
	switch node.Type {
	case ir.NullType:
		return write(w, es.colors.Value("null"))
	case ir.BoolType:
		return write(w, es.colors.Value(strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		return write(w, es.colors.Value(numberString(node)))
	case ir.StringType:
		return write(w, es.colors.Value(strconv.Quote(node.String)))
	case ir.ObjectType:
		return encodeObject(node, w, es, level, remain)
	case ir.ArrayType:
		return encodeArray(node, w, es, level, remain)
	}
	return fmt.Errorf("cannot encode node type %s", node.Type)
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState, level, remain int) error {
	if len(node.Fields) == 0 {
		return write(w, es.colors.Sep("{}"))
	}
	if remain == 0 {
		return write(w, es.colors.Sep("{"), es.colors.Value("..."), es.colors.Sep("}"))
	}
	if err := write(w, es.colors.Sep("{")); err != nil {
		return err
	}
	for i := range node.Fields {
		if i > 0 && es.wire {
			if err := write(w, es.colors.Sep(","), " "); err != nil {
				return err
			}
		}
		if err := es.newline(w, level+1); err != nil {
			return err
		}
		field := es.colors.Field(fieldString(node.Fields[i]))
		if err := write(w, field, es.colors.Sep(":"), " "); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es, level+1, dec(remain)); err != nil {
			return err
		}
	}
	if err := es.newline(w, level); err != nil {
		return err
	}
	return write(w, es.colors.Sep("}"))
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState, level, remain int) error {
	if len(node.Values) == 0 {
		return write(w, es.colors.Sep("[]"))
	}
	if remain == 0 {
		return write(w, es.colors.Sep("["), es.colors.Value("..."), es.colors.Sep("]"))
	}
	if err := write(w, es.colors.Sep("[")); err != nil {
		return err
	}
	for i, v := range node.Values {
		if i > 0 && es.wire {
			if err := write(w, es.colors.Sep(","), " "); err != nil {
				return err
			}
		}
		if err := es.newline(w, level+1); err != nil {
			return err
		}
		if err := encode(v, w, es, level+1, dec(remain)); err != nil {
			return err
		}
	}
	if err := es.newline(w, level); err != nil {
		return err
	}
	return write(w, es.colors.Sep("]"))
}

func (es *EncState) newline(w io.Writer, level int) error {
	if es.wire {
		return nil
	}
	return write(w, "\n", strings.Repeat(" ", level*es.indent))
}

func dec(remain int) int {
	if remain < 0 {
		return remain
	}
	return remain - 1
}

func fieldString(f *ir.Node) string {
	if strings.ContainsAny(f.String, " .:'\"{}[]") || f.String == "" {
		return strconv.Quote(f.String)
	}
	return f.String
}

func numberString(node *ir.Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 != nil {
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
	}
	return node.Number
}

func write(w io.Writer, ss ...string) error {
	for _, s := range ss {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}
