// Package kpath parses and resolves the dotted keypaths carried by
// conformance errors.
//
// A keypath is the chain of keys from a tree root to a node, joined with
// dots: "" is the root, "a.b" a nested object field, "body.0" the first
// element of an array at field body. Array indices appear as plain decimal
// segments. Fields containing dots or quotes are single-quoted with
// backslash escapes, e.g. "'weird.field'.x".
package kpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/treematch/conform-go/debug"
	"github.com/treematch/conform-go/ir"
)

type Path []string

func (p Path) String() string {
	return Join(p)
}

// Join renders path segments as a dotted keypath, quoting where needed.
func Join(segs []string) string {
	b := &strings.Builder{}
	for i, seg := range segs {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(Quote(seg))
	}
	return b.String()
}

// Quote single-quotes a segment when it would otherwise be ambiguous
// in dotted syntax.
func Quote(seg string) string {
	if !strings.ContainsAny(seg, ".'") {
		return seg
	}
	return "'" + strings.ReplaceAll(seg, "'", "\\'") + "'"
}

// Parse splits a dotted keypath into its segments, honoring single-quoted
// fields. The empty path parses to an empty Path (the root).
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var res Path
	for len(s) > 0 {
		seg, rest, err := parseSegment(s)
		if err != nil {
			return nil, err
		}
		res = append(res, seg)
		if rest == "" {
			return res, nil
		}
		if rest[0] != '.' {
			return nil, fmt.Errorf("expected '.' at %q", rest)
		}
		s = rest[1:]
		if s == "" {
			return nil, fmt.Errorf("trailing '.' in keypath")
		}
	}
	return res, nil
}

func parseSegment(s string) (seg, rest string, err error) {
	if s[0] != '\'' {
		i := strings.IndexByte(s, '.')
		if i == -1 {
			return s, "", nil
		}
		return s[:i], s[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(s))
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), s[i+1:], nil
			}
			escaped = false
			res = append(res, c)
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// Resolve walks root through dotted, dropping the last backtrack segments
// first. Callers typically pass the path of a conformance error with a
// backtrack of 2 to surface a little context around the failing node
// rather than the exact leaf.
//
// Resolution is defensive: a malformed path, a missing field, an index out
// of bounds, or a lookup into a leaf all yield nil rather than an error.
// root is never mutated.
func Resolve(root *ir.Node, dotted string, backtrack int) *ir.Node {
	if debug.Resolve() {
		debug.Logf("resolve %q backtrack %d\n", dotted, backtrack)
	}
	if dotted == "" {
		return root
	}
	p, err := Parse(dotted)
	if err != nil {
		return nil
	}
	if backtrack > 0 {
		if backtrack >= len(p) {
			return root
		}
		p = p[:len(p)-backtrack]
	}
	res := root
	for _, seg := range p {
		if res == nil {
			return nil
		}
		switch res.Type {
		case ir.ObjectType:
			res = ir.Get(res, seg)
		case ir.ArrayType:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(res.Values) {
				return nil
			}
			res = res.Values[idx]
		default:
			return nil
		}
	}
	return res
}
