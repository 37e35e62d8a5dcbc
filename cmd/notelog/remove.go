package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: rm requires exactly one key", cli.ErrUsage)
	}
	sum, err := cfg.newLog().Remove(args[0], cfg.Message)
	return report(cfg.MainConfig, cc, sum, err)
}
