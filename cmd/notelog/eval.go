package main

import (
	"fmt"
	"strings"

	"github.com/signadot/notelog/doc"

	"github.com/scott-cotton/cli"
)

func evalExpr(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	res, err := cfg.newLog().Eval(strings.Join(args, " "))
	if err != nil {
		return err
	}
	v, err := doc.Normalize(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, doc.FormatValue(v))
	return nil
}
