// Package suite runs a directory of conformance cases, one reference and
// candidate fixture pair per case.
//
// A case named NAME consists of NAME.ref.json (or .yaml/.yml) and
// NAME.cand.* files, plus an optional NAME.patch.json merge patch
// (RFC 7386) applied to the reference before checking; patches let a suite
// adjust a shared reference fixture without copying it. Cases fail
// independently: one mismatch never aborts the rest of the suite.
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	conform "github.com/treematch/conform-go"
	"github.com/treematch/conform-go/debug"
	"github.com/treematch/conform-go/decode"
	"github.com/treematch/conform-go/ir"
)

type Case struct {
	Name  string
	Ref   string
	Cand  string
	Patch string
}

type Result struct {
	Case *Case
	// Ref and Cand are the decoded trees (patch applied), nil when the
	// corresponding fixture failed to load. Diagnostic renderers resolve
	// the error path against them.
	Ref  *ir.Node
	Cand *ir.Node
	// Err is nil on success, a *conform.Error on mismatch, and any other
	// error when a fixture cannot be loaded.
	Err error
}

func (r *Result) Passed() bool {
	return r.Err == nil
}

// Env is the expression environment for case filters, e.g.
// "name startsWith 'regex'" or "index < 10".
type Env struct {
	Name  string `expr:"name"`
	Index int    `expr:"index"`
}

type Config struct {
	filter string
}

type Opt func(*Config)

// WithFilter selects cases by an expression over Env; cases it rejects
// are skipped entirely.
func WithFilter(src string) Opt {
	return func(c *Config) { c.filter = src }
}

var refExts = []string{".json", ".yaml", ".yml"}

// Load pairs the fixtures in dir into cases, sorted by name.
func Load(dir string) ([]*Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	present := map[string]bool{}
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}
	var cases []*Case
	for name := range present {
		base, ok := cutRefName(name)
		if !ok {
			continue
		}
		c := &Case{
			Name: base,
			Ref:  filepath.Join(dir, name),
		}
		for _, ext := range refExts {
			if present[base+".cand"+ext] {
				c.Cand = filepath.Join(dir, base+".cand"+ext)
				break
			}
		}
		if c.Cand == "" {
			return nil, fmt.Errorf("case %q has no candidate fixture in %s", base, dir)
		}
		if present[base+".patch.json"] {
			c.Patch = filepath.Join(dir, base+".patch.json")
		}
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

func cutRefName(file string) (string, bool) {
	for _, ext := range refExts {
		if base, ok := strings.CutSuffix(file, ".ref"+ext); ok {
			return base, true
		}
	}
	return "", false
}

// Run checks every case, catching each failure individually so one
// failing case does not abort the suite.
func Run(cases []*Case, opts ...Opt) ([]*Result, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	var filter *vm.Program
	if cfg.filter != "" {
		var err error
		filter, err = expr.Compile(cfg.filter, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("bad filter %q: %w", cfg.filter, err)
		}
	}
	var res []*Result
	for i, c := range cases {
		if filter != nil {
			keep, err := expr.Run(filter, Env{Name: c.Name, Index: i})
			if err != nil {
				return nil, fmt.Errorf("filter %q on case %q: %w", cfg.filter, c.Name, err)
			}
			if !keep.(bool) {
				if debug.Suite() {
					debug.Logf("suite: skip %s\n", c.Name)
				}
				continue
			}
		}
		if debug.Suite() {
			debug.Logf("suite: run %s\n", c.Name)
		}
		res = append(res, runCase(c))
	}
	return res, nil
}

func runCase(c *Case) *Result {
	res := &Result{Case: c}
	ref, err := loadRef(c)
	if err != nil {
		res.Err = fmt.Errorf("loading reference: %w", err)
		return res
	}
	res.Ref = ref
	cand, err := decode.File(c.Cand)
	if err != nil {
		res.Err = fmt.Errorf("loading candidate: %w", err)
		return res
	}
	res.Cand = cand
	res.Err = conform.Check(ref, cand)
	return res
}

// loadRef loads the reference tree, applying the case's merge patch when
// present. Patching round-trips through Go maps, so a patched reference
// enumerates its keys in sorted order; conformance is unaffected (lookups
// are by key), only the order mismatches are reported in.
func loadRef(c *Case) (*ir.Node, error) {
	if c.Patch == "" {
		return decode.File(c.Ref)
	}
	if filepath.Ext(c.Ref) != ".json" {
		return nil, fmt.Errorf("merge patch requires a JSON reference fixture, got %s", c.Ref)
	}
	refBytes, err := os.ReadFile(c.Ref)
	if err != nil {
		return nil, err
	}
	patchBytes, err := os.ReadFile(c.Patch)
	if err != nil {
		return nil, err
	}
	patched, err := jsonpatch.MergePatch(refBytes, patchBytes)
	if err != nil {
		return nil, fmt.Errorf("applying %s: %w", c.Patch, err)
	}
	return decode.JSON(patched)
}
