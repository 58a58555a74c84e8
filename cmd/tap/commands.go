package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "tap").
		WithSynopsis("tap [opts] command [opts]").
		WithDescription("tap is a tool for working with Test Anything Protocol documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tapMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			ValidateCommand(cfg),
			ViewCommand(cfg),
			FilterCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			GoTestCommand(cfg),
			VersionCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [-continue] file file [files]").
		WithDescription("merge TAP documents into one renumbered document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mergeRun(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("val", "check").
		WithSynopsis("validate [files]").
		WithDescription("check TAP documents for structural validity").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validateRun(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view TAP documents, re-rendered canonically or as JSON/YAML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return viewRun(cfg, cc, args)
		})
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Filter, "filter").
		WithAliases("f").
		WithSynopsis("filter <predicate> [files]").
		WithDescription(filterDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return filterRun(cfg, cc, args)
		})
}

const filterDescription = `filter selects test cases by predicate.

The predicate is an expression evaluated per test case with the fields

  num, ok, description, directive, reason, passed, todo, skipped,
  has_diag, diag

in scope.  Examples:

  tap filter '!ok' results.tap
  tap filter 'directive == "TODO" && !ok' results.tap
  tap filter 'description matches "auth"' results.tap

The selected cases are renumbered under a fresh plan.`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("compare two TAP documents semantically").
		WithRun(func(cc *cli.Context, args []string) error {
			return diffRun(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-f] <jsonpatch> [files]").
		WithDescription("apply an RFC 6902 JSON patch to the document model").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchRun(cfg, cc, args)
		})
}

func GoTestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GoTestConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.GoTest, "from-gotest").
		WithAliases("gotest").
		WithSynopsis("from-gotest [-v] [file]").
		WithDescription("convert a 'go test -json' event stream to TAP").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return goTestRun(cfg, cc, args)
		})
}

func VersionCommand(mainCfg *MainConfig) *cli.Command {
	var cmd *cli.Command
	return cli.NewCommandAt(&cmd, "version").
		WithSynopsis("version").
		WithDescription("print the tap tool version").
		WithRun(func(cc *cli.Context, args []string) error {
			return versionRun(cc)
		})
}
