package conform

import "github.com/treematch/conform-go/ir"

// Kind classifies a node for conformance checking. Reference and candidate
// must classify identically before any deeper comparison takes place.
// Objects and arrays both classify as ObjectKind; their shapes are told
// apart by the reference-keyed descent that follows.
type Kind int

const (
	Undefined Kind = iota
	NullKind
	BoolKind
	NumberKind
	StringKind
	ObjectKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		Undefined:  "undefined",
		NullKind:   "null",
		BoolKind:   "boolean",
		NumberKind: "number",
		StringKind: "string",
		ObjectKind: "object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func kindOf(n *ir.Node) Kind {
	if n == nil {
		return Undefined
	}
	switch n.Type {
	case ir.NullType:
		return NullKind
	case ir.BoolType:
		return BoolKind
	case ir.NumberType:
		return NumberKind
	case ir.StringType:
		return StringKind
	case ir.ObjectType, ir.ArrayType:
		return ObjectKind
	}
	return Undefined
}
