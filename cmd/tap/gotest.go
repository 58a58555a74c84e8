package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/gotest"
)

func goTestRun(cfg *GoTestConfig, cc *cli.Context, args []string) error {
	args, err := cfg.GoTest.Parse(cc, args)
	if err != nil {
		cfg.GoTest.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: from-gotest takes at most one input", cli.ErrUsage)
	}
	var rd io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		rd = f
	}
	var cOpts []gotest.ConvertOption
	if cfg.Verbose {
		cOpts = append(cOpts, gotest.Verbose())
	}
	doc, err := gotest.Convert(rd, cOpts...)
	if err != nil {
		return err
	}
	if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if !doc.AllOK() {
		return cli.ExitCodeErr(1)
	}
	return nil
}
