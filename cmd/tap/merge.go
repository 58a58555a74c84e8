package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/merge"
)

func mergeRun(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least two inputs", cli.ErrUsage)
	}
	docs := make([]*ir.Document, 0, len(args))
	for _, arg := range args {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	var mOpts []merge.MergeOption
	if cfg.Continue {
		mOpts = append(mOpts, merge.ContinueOnBailout())
	}
	res, err := merge.Merge(docs, mOpts...)
	if err != nil {
		return err
	}
	return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
}
