package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "notelog").
		WithSynopsis("notelog [opts] command [opts]").
		WithDescription("notelog keeps a JSON key-value note log with a history of every change.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return notelogMain(cfg, cc, args)
		}).
		WithSubs(
			SetCommand(cfg),
			RemoveCommand(cfg),
			ShowCommand(cfg),
			HistoryCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			EvalCommand(cfg))
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "set").
		WithAliases("update", "u").
		WithSynopsis("set [-m msg] key=value...").
		WithDescription("set fields; values are JSON or else plain strings").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func RemoveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemoveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "rm").
		WithAliases("remove", "pop").
		WithSynopsis("rm [-m msg] key").
		WithDescription("remove a field, recording its value in the history").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return remove(cfg, cc, args)
		})
}

func ShowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShowConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "show").
		WithAliases("s", "cat").
		WithSynopsis("show [-o json|yaml] [-k key]").
		WithDescription("print the log or one field of it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return show(cfg, cc, args)
		})
}

func HistoryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HistoryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "history").
		WithAliases("h", "hist").
		WithSynopsis("history [-n count]").
		WithDescription("print history entries, oldest first").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return history(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] <from> <to>").
		WithDescription("print the field changes between two log files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "patch").
		WithAliases("p").
		WithSynopsis("patch [-m msg] [-s] <file|->").
		WithDescription("apply a JSON patch (array) or merge patch (object) to the fields").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "eval").
		WithAliases("e", "ev").
		WithSynopsis("eval <expr>").
		WithDescription("evaluate an expression over the fields").
		WithRun(func(cc *cli.Context, args []string) error {
			return evalExpr(cfg, cc, args)
		})
}
