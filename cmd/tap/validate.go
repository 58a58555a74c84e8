package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/validate"
)

func validateRun(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	invalid := false
	for _, arg := range argsOrStdin(args) {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		res := validate.Check(doc)
		if !res.Valid {
			invalid = true
		}
		fmt.Fprintf(cc.Out, "%s: %s\n", arg, validate.Summary(doc))
		if cfg.Summary {
			continue
		}
		for _, reason := range res.Reasons {
			fmt.Fprintf(cc.Out, "%s: %s\n", arg, reason)
		}
	}
	if invalid {
		return cli.ExitCodeErr(1)
	}
	return nil
}
