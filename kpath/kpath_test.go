package kpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treematch/conform-go/ir"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Path
		err  bool
	}{
		{in: "", want: nil},
		{in: "a", want: Path{"a"}},
		{in: "a.b.c", want: Path{"a", "b", "c"}},
		{in: "body.0.expression", want: Path{"body", "0", "expression"}},
		{in: "'dot.ted'.x", want: Path{"dot.ted", "x"}},
		{in: `'it\'s'`, want: Path{"it's"}},
		{in: "a.", err: true},
		{in: "'unterminated", err: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("Parse(%q): (-want +got):\n%s", tt.in, d)
		}
	}
}

func TestJoinRoundTrip(t *testing.T) {
	for _, segs := range []Path{
		{"a", "b"},
		{"dot.ted", "x"},
		{"it's", "0"},
	} {
		back, err := Parse(Join(segs))
		if err != nil {
			t.Fatalf("Parse(Join(%v)): %v", segs, err)
		}
		if d := cmp.Diff(segs, back); d != "" {
			t.Errorf("round trip %v: (-want +got):\n%s", segs, d)
		}
	}
}

func testTree() *ir.Node {
	// {a: {b: {c: 1}}, arr: [10, {d: true}]}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("b"), Val: ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("c"), Val: ir.FromInt(1)},
			})},
		})},
		{Key: ir.FromString("arr"), Val: ir.FromSlice([]*ir.Node{
			ir.FromInt(10),
			ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("d"), Val: ir.FromBool(true)}}),
		})},
	})
}

func TestResolve(t *testing.T) {
	root := testTree()

	if got := Resolve(root, "", 0); got != root {
		t.Error("empty path should return root unchanged")
	}
	// drop the last 2 segments of a.b.c: resolves at "a"
	got := Resolve(root, "a.b.c", 2)
	if got == nil || got.Type != ir.ObjectType || ir.Get(got, "b") == nil {
		t.Errorf("Resolve(a.b.c, 2): want subtree at a, got %v", got)
	}
	got = Resolve(root, "a.b.c", 0)
	if got == nil || got.Int64 == nil || *got.Int64 != 1 {
		t.Errorf("Resolve(a.b.c, 0): want 1, got %v", got)
	}
	got = Resolve(root, "arr.1.d", 0)
	if got == nil || got.Type != ir.BoolType || !got.Bool {
		t.Errorf("Resolve(arr.1.d, 0): want true, got %v", got)
	}
	if got := Resolve(root, "a.b.c.d.e", 4); got == nil {
		t.Error("backtrack past depth should land on an existing ancestor")
	}
}

func TestResolveNotFound(t *testing.T) {
	root := testTree()
	for _, path := range []string{
		"missing",
		"a.missing.c",
		"arr.7",
		"arr.x",
		"a.b.c.under", // lookup into a leaf
		"'unterminated",
	} {
		if got := Resolve(root, path, 0); got != nil {
			t.Errorf("Resolve(%q): want nil, got %v", path, got)
		}
	}
}

func TestResolveBacktrackCoversPath(t *testing.T) {
	root := testTree()
	if got := Resolve(root, "a.b", 2); got != root {
		t.Error("backtrack >= path length should return root")
	}
	if got := Resolve(root, "a.b", 5); got != root {
		t.Error("backtrack > path length should return root")
	}
}
