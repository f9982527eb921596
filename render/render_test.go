package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	conform "github.com/treematch/conform-go"
	"github.com/treematch/conform-go/decode"
	"github.com/treematch/conform-go/ir"
)

func checkErr(t *testing.T, ref, cand *ir.Node) *conform.Error {
	t.Helper()
	err := conform.Check(ref, cand)
	if err == nil {
		t.Fatal("expected check failure")
	}
	var cerr *conform.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %T is not *conform.Error", err)
	}
	return cerr
}

func TestFailure(t *testing.T) {
	ref, err := decode.JSON([]byte(`{"a": {"b": {"c": 1, "d": "keep"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	cand, err := decode.JSON([]byte(`{"a": {"b": {"c": 2, "d": "keep"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	cerr := checkErr(t, ref, cand)
	if cerr.Path != "a.b.c" {
		t.Fatalf("path = %q", cerr.Path)
	}

	buf := &bytes.Buffer{}
	if err := Failure(buf, ref, cand, cerr, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"value mismatch at a.b.c",
		"--- reference at a",
		"--- candidate at a",
		`"keep"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "--- diff") {
		t.Error("diff section should be absent without color")
	}
}

func TestFailureRootContext(t *testing.T) {
	ref, _ := decode.JSON([]byte(`{"a": 1}`))
	cand, _ := decode.JSON([]byte(`{"a": 2}`))
	cerr := checkErr(t, ref, cand)

	buf := &bytes.Buffer{}
	if err := Failure(buf, ref, cand, cerr, &Options{Backtrack: 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "--- reference at root") {
		t.Errorf("backtrack past root should render at root:\n%s", buf.String())
	}
}

func TestFailureUnresolvable(t *testing.T) {
	// a renderer explaining one failure must not itself crash when the
	// trees it is handed do not contain the error path
	ref, _ := decode.JSON([]byte(`{"a": {"b": {"c": {"d": 1, "e": 2}}}}`))
	cand, _ := decode.JSON([]byte(`{"a": {"b": {"c": {"d": 9, "e": 2}}}}`))
	cerr := checkErr(t, ref, cand)
	if cerr.Path != "a.b.c.d" {
		t.Fatalf("path = %q", cerr.Path)
	}

	other, _ := decode.JSON([]byte(`{"x": 0}`))
	buf := &bytes.Buffer{}
	if err := Failure(buf, other, other, cerr, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(unresolvable)") {
		t.Errorf("expected unresolvable marker:\n%s", buf.String())
	}
}
