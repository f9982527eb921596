package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Backtrack: 2}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "b",
		Aliases:     []string{"backtrack"},
		Description: "path segments of context around a mismatch (default 2)",
		Type:        cli.NamedFuncOpt(cfg.backtrackOpt, "(n)"),
	})

	return cli.NewCommandAt(&cfg.Main, "conform").
		WithSynopsis("conform [opts] command [opts]").
		WithDescription("conform validates that a candidate parse tree reproduces a reference parse tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return conformMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			SuiteCommand(cfg))
}

func conformMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check <reference> <candidate>").
		WithDescription("check that a candidate tree file reproduces a reference tree file").
		WithRun(func(cc *cli.Context, args []string) error {
			return runCheck(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func SuiteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SuiteConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "f",
		Aliases:     []string{"filter"},
		Description: "case filter expression over name/index",
		Type:        cli.NamedFuncOpt(cfg.filterOpt, "(expr)"),
	})
	cmd := cli.NewCommand("suite").
		WithAliases("s").
		WithSynopsis("suite [-f expr] [-v] <dir>").
		WithDescription("run a directory of reference/candidate fixture pairs").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runSuite(cfg, cc, args)
		})
	cfg.Suite = cmd
	return cmd
}
