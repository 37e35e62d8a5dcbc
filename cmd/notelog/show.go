package main

import (
	"fmt"

	"github.com/signadot/notelog/format"

	"github.com/scott-cotton/cli"
)

func show(cfg *ShowConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: show takes no arguments", cli.ErrUsage)
	}
	f := format.JSONFormat
	if cfg.Output != "" {
		f, err = format.ParseFormat(cfg.Output)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	d, err := cfg.newLog().Show()
	if err != nil {
		return err
	}
	if cfg.Key == "" {
		return format.EncodeDocument(cc.Out, d, f)
	}
	v, ok := d.Fields.Get(cfg.Key)
	if !ok {
		return fmt.Errorf("no such key %s in %s", cfg.Key, cfg.path())
	}
	return format.Encode(cc.Out, v, f)
}
