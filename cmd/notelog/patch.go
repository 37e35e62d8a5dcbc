package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: patch requires one patch file, - or -s string", cli.ErrUsage)
	}
	var data []byte
	switch {
	case cfg.String:
		data = []byte(args[0])
	case args[0] == "-":
		data, err = io.ReadAll(cc.In)
	default:
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}
	sum, err := cfg.newLog().Patch(data, cfg.Message)
	return report(cfg.MainConfig, cc, sum, err)
}
