package decode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/treematch/conform-go/ir"
)

func TestJSONOrder(t *testing.T) {
	node, err := JSON([]byte(`{"z": 1, "a": {"y": null, "b": [true, "s"]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ObjectType {
		t.Fatalf("type = %s", node.Type)
	}
	if node.Fields[0].String != "z" || node.Fields[1].String != "a" {
		t.Errorf("key order not preserved: %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
	inner := ir.Get(node, "a")
	if inner.Fields[0].String != "y" {
		t.Errorf("nested key order not preserved: %q", inner.Fields[0].String)
	}
	arr := ir.Get(inner, "b")
	if arr.Type != ir.ArrayType || len(arr.Values) != 2 {
		t.Fatalf("array shape wrong")
	}
	if arr.Values[1].KPath() != "a.b.1" {
		t.Errorf("parent wiring wrong: %q", arr.Values[1].KPath())
	}
}

func TestJSONNumbers(t *testing.T) {
	node, err := JSON([]byte(`[1, -2.5, 1e3, 123456789012345678901234567890]`))
	if err != nil {
		t.Fatal(err)
	}
	if v := node.Values[0]; v.Int64 == nil || *v.Int64 != 1 {
		t.Error("1 should decode as int")
	}
	if v := node.Values[1]; v.Float64 == nil || *v.Float64 != -2.5 {
		t.Error("-2.5 should decode as float")
	}
	if v := node.Values[2]; v.Float64 == nil || *v.Float64 != 1000 {
		t.Error("1e3 should decode as float")
	}
	v := node.Values[3]
	if v.Int64 != nil {
		t.Error("huge literal should not claim int64")
	}
	if v.Number != "123456789012345678901234567890" {
		t.Errorf("raw literal lost: %q", v.Number)
	}
}

func TestJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a": 1} trailing`, `[1,]`} {
		if _, err := JSON([]byte(in)); err == nil {
			t.Errorf("JSON(%q): expected error", in)
		}
	}
}

func TestYAML(t *testing.T) {
	node, err := YAML([]byte("z: 1\na:\n  - true\n  - s\nf: 2.5\nn: null\n"))
	if err != nil {
		t.Fatal(err)
	}
	if node.Fields[0].String != "z" || node.Fields[1].String != "a" {
		t.Errorf("key order not preserved: %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
	arr := ir.Get(node, "a")
	if arr.Type != ir.ArrayType || !arr.Values[0].Bool || arr.Values[1].String != "s" {
		t.Error("sequence decode wrong")
	}
	if v := ir.Get(node, "f"); v.Float64 == nil || *v.Float64 != 2.5 {
		t.Error("float decode wrong")
	}
	if v := ir.Get(node, "n"); v.Type != ir.NullType {
		t.Error("null decode wrong")
	}
}

func TestYAMLTag(t *testing.T) {
	node, err := YAML([]byte("regex: !regexp\n  pattern: a+\n  flags: i\n"))
	if err != nil {
		t.Fatal(err)
	}
	re := ir.Get(node, "regex")
	if re == nil || re.Tag != "!regexp" {
		t.Fatalf("tag lost: %+v", re)
	}
	if ir.Get(re, "pattern").String != "a+" {
		t.Error("tagged value content lost")
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	jf := filepath.Join(dir, "t.json")
	if err := os.WriteFile(jf, []byte(`{"a": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	node, err := File(jf)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(node, "a") == nil {
		t.Error("json file decode wrong")
	}
	if _, err := File(filepath.Join(dir, "t.txt")); err == nil {
		t.Error("expected unsupported extension error")
	}
}
