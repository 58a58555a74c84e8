package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
)

func viewRun(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(2)
	}
	if cfg.JSON && cfg.YAML {
		return fmt.Errorf("%w: at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	for _, arg := range argsOrStdin(args) {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		switch {
		case cfg.JSON:
			d, err := ir.ToJSON(doc)
			if err != nil {
				return err
			}
			if _, err := cc.Out.Write(append(d, '\n')); err != nil {
				return err
			}
		case cfg.YAML:
			// via the JSON codec so field naming and warning
			// rendering match -j output
			j, err := ir.ToJSON(doc)
			if err != nil {
				return err
			}
			var m map[string]any
			if err := json.Unmarshal(j, &m); err != nil {
				return err
			}
			d, err := yaml.Marshal(m)
			if err != nil {
				return err
			}
			if _, err := cc.Out.Write(d); err != nil {
				return err
			}
		default:
			if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
	}
	return nil
}
