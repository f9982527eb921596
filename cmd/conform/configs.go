package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force color output'"`
	NoColor bool `cli:"name=no-color desc='disable color output'"`

	Backtrack int

	Main *cli.Command
}

func (cfg *MainConfig) useColor() bool {
	if cfg.Color {
		return true
	}
	if cfg.NoColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func (cfg *MainConfig) backtrackOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.Atoi(a)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid backtrack %q", cli.ErrUsage, a)
	}
	cfg.Backtrack = n
	return n, nil
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}

type SuiteConfig struct {
	*MainConfig
	V bool `cli:"name=v aliases=verbose desc='render each failing case'"`

	Filter string
	Suite  *cli.Command
}

func (cfg *SuiteConfig) filterOpt(_ *cli.Context, a string) (any, error) {
	cfg.Filter = a
	return a, nil
}
