package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/filter"
)

func filterRun(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires a predicate argument", cli.ErrUsage)
	}
	pred, err := filter.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, arg := range argsOrStdin(args[1:]) {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		res, err := filter.Select(doc, pred)
		if err != nil {
			return err
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
