package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
)

func patchRun(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a JSON patch argument", cli.ErrUsage)
	}
	patchText := []byte(args[0])
	if cfg.File {
		patchText, err = os.ReadFile(args[0])
		if err != nil {
			return err
		}
	}
	patch, err := jsonpatch.DecodePatch(patchText)
	if err != nil {
		return fmt.Errorf("error decoding patch: %w", err)
	}
	for _, arg := range argsOrStdin(args[1:]) {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		d, err := ir.ToJSON(doc)
		if err != nil {
			return err
		}
		patched, err := patch.Apply(d)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		res, err := ir.FromJSON(patched)
		if err != nil {
			return fmt.Errorf("error decoding patched %s: %w", arg, err)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
