package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/tapdiff"
)

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two inputs", cli.ErrUsage)
	}
	from, err := cfg.readDoc(args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(args[1])
	if err != nil {
		return err
	}
	report := tapdiff.Diff(from, to)
	if report.Empty() {
		return nil
	}
	fmt.Fprintln(cc.Out, report.String())
	return cli.ExitCodeErr(1)
}
