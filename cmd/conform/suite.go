package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	conform "github.com/treematch/conform-go"
	"github.com/treematch/conform-go/render"
	"github.com/treematch/conform-go/suite"
)

func runSuite(cfg *SuiteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Suite.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: suite requires one argument, a fixture directory", cli.ErrUsage)
	}
	cases, err := suite.Load(args[0])
	if err != nil {
		return fmt.Errorf("error loading suite %s: %w", args[0], err)
	}
	var opts []suite.Opt
	if cfg.Filter != "" {
		opts = append(opts, suite.WithFilter(cfg.Filter))
	}
	results, err := suite.Run(cases, opts...)
	if err != nil {
		return err
	}

	pass, fail := "PASS", "FAIL"
	if cfg.useColor() {
		pass = color.GreenString(pass)
		fail = color.RedString(fail)
	}
	failed := 0
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(cc.Out, "%s %s\n", pass, r.Case.Name)
			continue
		}
		failed++
		fmt.Fprintf(cc.Out, "%s %s: %v\n", fail, r.Case.Name, r.Err)
		var cerr *conform.Error
		if cfg.V && errors.As(r.Err, &cerr) && r.Ref != nil && r.Cand != nil {
			if err := render.Failure(cc.Out, r.Ref, r.Cand, cerr, &render.Options{
				Backtrack: cfg.Backtrack,
				Color:     cfg.useColor(),
			}); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(cc.Out, "%d/%d passed\n", len(results)-failed, len(results))
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
