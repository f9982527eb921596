// Package conform verifies that a candidate tree reproduces the shape and
// values of a reference tree.
//
// Conformance is one-directional subsumption: every key the reference
// carries must appear in the candidate with a conforming value, while extra
// candidate keys are ignored. This is the relation needed to validate a
// parser under test against a trusted one: the candidate may decorate its
// nodes with additional fields, but it must reproduce everything the
// reference produces.
//
// Check stops at the first discrepancy and returns a *Error carrying the
// dotted keypath to the failing node; callers feed that path to
// kpath.Resolve against both trees to build a bounded diagnostic.
package conform

import (
	"fmt"
	"strconv"

	"github.com/treematch/conform-go/debug"
	"github.com/treematch/conform-go/encode"
	"github.com/treematch/conform-go/ir"
	"github.com/treematch/conform-go/kpath"
)

// Check verifies that cand subsumes ref. It returns nil when conformance
// holds, and a *Error describing the first mismatch otherwise.
//
// Each call allocates its own path state, so concurrent Checks over
// independent tree pairs are safe.
func Check(ref, cand *ir.Node) error {
	c := &checker{}
	return c.check(ref, cand)
}

// checker holds the path stack of one Check invocation. The stack is
// pushed before descending into a key and popped when the descent returns
// without error; on a mismatch it is left as-is so the error carries the
// full chain of keys to the failing node.
type checker struct {
	path []string
}

func (c *checker) check(ref, cand *ir.Node) error {
	if debug.Check() {
		debug.Logf("check %s at %q\n", kindOf(ref), kpath.Join(c.path))
	}
	refKind, candKind := kindOf(ref), kindOf(cand)
	if refKind != candKind {
		if candKind == Undefined {
			return c.errf(MissingField, "reference has %s %s, candidate has nothing",
				refKind, summary(ref))
		}
		return c.errf(TypeMismatch, "reference is %s %s, candidate is %s %s",
			refKind, summary(ref), candKind, summary(cand))
	}
	switch refKind {
	case Undefined, NullKind:
		return nil
	case BoolKind:
		if ref.Bool != cand.Bool {
			return c.errf(ValueMismatch, "%v != %v", ref.Bool, cand.Bool)
		}
		return nil
	case NumberKind:
		if !numberEqual(ref, cand) {
			return c.errf(ValueMismatch, "%s != %s", summary(ref), summary(cand))
		}
		return nil
	case StringKind:
		if ref.String != cand.String {
			return c.errf(ValueMismatch, "%q != %q", ref.String, cand.String)
		}
		return nil
	case ObjectKind:
		if tag, ok := variantOf(ref); ok {
			candTag, _ := variantOf(cand)
			if candTag != tag {
				return c.errf(VariantMismatch, "reference is %s, candidate is %s",
					variantName(tag), variantName(candTag))
			}
		}
		return c.descend(ref, cand)
	}
	return nil
}

// descend walks the reference's own keys only, in their enumeration order:
// insertion order for objects, index order for arrays. Candidate keys
// absent from the reference are never visited.
func (c *checker) descend(ref, cand *ir.Node) error {
	switch ref.Type {
	case ir.ObjectType:
		for i, f := range ref.Fields {
			c.push(f.String)
			if err := c.check(ref.Values[i], lookupField(cand, f.String)); err != nil {
				return err
			}
			c.pop()
		}
	case ir.ArrayType:
		for i, v := range ref.Values {
			c.push(strconv.Itoa(i))
			if err := c.check(v, lookupIndex(cand, i)); err != nil {
				return err
			}
			c.pop()
		}
	}
	return nil
}

func (c *checker) push(seg string) {
	c.path = append(c.path, seg)
}

func (c *checker) pop() {
	c.path = c.path[:len(c.path)-1]
}

func (c *checker) errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Path:  kpath.Join(c.path),
		Depth: len(c.path) + 1,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// lookupField resolves a reference object key in the candidate. An
// array-typed candidate answers decimal keys by index, mirroring the loose
// indexed lookup both sides get when the reference is object-like.
func lookupField(cand *ir.Node, field string) *ir.Node {
	switch cand.Type {
	case ir.ObjectType:
		return ir.Get(cand, field)
	case ir.ArrayType:
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 0 || idx >= len(cand.Values) {
			return nil
		}
		return cand.Values[idx]
	}
	return nil
}

// lookupIndex resolves a reference array index in the candidate. An
// object-typed candidate answers by its decimal-string field, and an index
// past the candidate's length resolves to nothing, which flags truncated
// sequences as missing fields.
func lookupIndex(cand *ir.Node, i int) *ir.Node {
	switch cand.Type {
	case ir.ArrayType:
		if i < len(cand.Values) {
			return cand.Values[i]
		}
		return nil
	case ir.ObjectType:
		return ir.Get(cand, strconv.Itoa(i))
	}
	return nil
}

func numberEqual(a, b *ir.Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	af, aok := floatValue(a)
	bf, bok := floatValue(b)
	if aok && bok {
		return af == bf
	}
	return a.Number == b.Number
}

func floatValue(n *ir.Node) (float64, bool) {
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	if n.Float64 != nil {
		return *n.Float64, true
	}
	if n.Number != "" {
		f, err := strconv.ParseFloat(n.Number, 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

func summary(n *ir.Node) string {
	return encode.MustString(n, encode.Wire(true), encode.Depth(2))
}

func variantName(tag string) string {
	if tag == "" {
		return "a plain object"
	}
	return tag
}
