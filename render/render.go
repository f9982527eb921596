// Package render builds the human-facing diagnostic for a failed
// conformance check: a bounded side-by-side view of the reference and
// candidate subtrees around the failing path.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	conform "github.com/treematch/conform-go"
	"github.com/treematch/conform-go/encode"
	"github.com/treematch/conform-go/ir"
	"github.com/treematch/conform-go/kpath"
)

type Options struct {
	// Backtrack is how many trailing path segments to drop before
	// resolving the context window. 0 means the default of 2.
	Backtrack int
	// Color enables ANSI color in the rendering and an inline diff of
	// the two context windows.
	Color bool
}

const defaultBacktrack = 2

// Failure writes a bounded rendering of ref and cand around cerr's path.
// The context window sits Backtrack segments above the failing node and is
// expanded Backtrack+1 levels deep, so the windows stay small even inside
// huge trees.
func Failure(w io.Writer, ref, cand *ir.Node, cerr *conform.Error, opts *Options) error {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Backtrack <= 0 {
		o.Backtrack = defaultBacktrack
	}

	if _, err := fmt.Fprintf(w, "%s\n", cerr.Error()); err != nil {
		return err
	}

	ctxPath := contextPath(cerr.Path, o.Backtrack)
	refTxt := contextString(ref, cerr.Path, &o, o.Color)
	candTxt := contextString(cand, cerr.Path, &o, o.Color)

	at := "at root"
	if ctxPath != "" {
		at = "at " + ctxPath
	}
	if _, err := fmt.Fprintf(w, "--- reference %s\n%s\n--- candidate %s\n%s\n",
		at, refTxt, at, candTxt); err != nil {
		return err
	}
	if !o.Color {
		return nil
	}
	// diff the plain renderings; ANSI escapes would pollute the char diff
	return inlineDiff(w,
		contextString(ref, cerr.Path, &o, false),
		contextString(cand, cerr.Path, &o, false))
}

func contextPath(dotted string, backtrack int) string {
	p, err := kpath.Parse(dotted)
	if err != nil || backtrack >= len(p) {
		return ""
	}
	return kpath.Join(p[:len(p)-backtrack])
}

func contextString(root *ir.Node, dotted string, o *Options, colorize bool) string {
	sub := kpath.Resolve(root, dotted, o.Backtrack)
	if sub == nil {
		return "(unresolvable)"
	}
	encOpts := []encode.EncodeOption{encode.Depth(o.Backtrack + 1)}
	if colorize {
		encOpts = append(encOpts, encode.EncodeColors(encode.NewColors()))
	}
	return encode.MustString(sub, encOpts...)
}

// inlineDiff prints a single line-oriented merge of the two renderings
// with reference-only text in red and candidate-only text in green.
func inlineDiff(w io.Writer, refTxt, candTxt string) error {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(refTxt, candTxt, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if _, err := fmt.Fprintln(w, "--- diff (reference red, candidate green)"); err != nil {
		return err
	}
	red := color.New(color.FgRed).Sprint
	green := color.New(color.FgGreen).Sprint
	for _, d := range diffs {
		var s string
		switch d.Type {
		case diffpatch.DiffDelete:
			s = red(d.Text)
		case diffpatch.DiffInsert:
			s = green(d.Text)
		case diffpatch.DiffEqual:
			s = d.Text
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
