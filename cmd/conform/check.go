package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"

	conform "github.com/treematch/conform-go"
	"github.com/treematch/conform-go/decode"
	"github.com/treematch/conform-go/render"
)

func runCheck(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: check requires a reference file and a candidate file", cli.ErrUsage)
	}
	ref, err := decode.File(args[0])
	if err != nil {
		return fmt.Errorf("error loading reference %s: %w", args[0], err)
	}
	cand, err := decode.File(args[1])
	if err != nil {
		return fmt.Errorf("error loading candidate %s: %w", args[1], err)
	}
	err = conform.Check(ref, cand)
	if err == nil {
		return nil
	}
	var cerr *conform.Error
	if !errors.As(err, &cerr) {
		return err
	}
	if err := render.Failure(cc.Out, ref, cand, cerr, &render.Options{
		Backtrack: cfg.Backtrack,
		Color:     cfg.useColor(),
	}); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
