package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/parse"
)

type MainConfig struct {
	Strict bool `cli:"name=strict desc='fail on structural violations instead of recording warnings'"`
	Color  bool `cli:"name=color desc='colorize TAP output'"`
	Quiet  bool `cli:"name=q aliases=quiet desc='suppress parse warnings on stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.Strict {
		return []parse.ParseOption{parse.Strict()}
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

// readDoc parses one TAP input, "-" meaning stdin.
func (cfg *MainConfig) readDoc(arg string) (*ir.Document, error) {
	var rd io.Reader
	if arg == "-" {
		rd = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rd = f
	}
	d, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	doc, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", arg, err)
	}
	if !cfg.Quiet {
		for _, w := range doc.Warnings {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", arg, w.Error())
		}
	}
	return doc, nil
}

// argsOrStdin defaults an empty argument list to stdin.
func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

type MergeConfig struct {
	*MainConfig
	Continue bool `cli:"name=continue desc='merge through a bailed-out input instead of failing'"`

	Merge *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Summary bool `cli:"name=s aliases=summary desc='print only the one-line summary'"`

	Validate *cli.Command
}

type ViewConfig struct {
	*MainConfig
	JSON bool `cli:"name=j aliases=json desc='output the document model as JSON'"`
	YAML bool `cli:"name=y aliases=yaml desc='output the document model as YAML'"`

	View *cli.Command
}

type FilterConfig struct {
	*MainConfig

	Filter *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='treat the patch argument as a file path'"`

	Patch *cli.Command
}

type GoTestConfig struct {
	*MainConfig
	Verbose bool `cli:"name=v aliases=verbose desc='attach diagnostics to passing tests too'"`

	GoTest *cli.Command
}
