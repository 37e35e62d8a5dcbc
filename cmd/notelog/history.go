package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func history(cfg *HistoryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: history takes no arguments", cli.ErrUsage)
	}
	if cfg.N < 0 {
		return fmt.Errorf("%w: -n must not be negative", cli.ErrUsage)
	}
	d, err := cfg.newLog().Show()
	if err != nil {
		return err
	}
	entries := d.History
	if cfg.N > 0 && cfg.N < len(entries) {
		entries = entries[len(entries)-cfg.N:]
	}
	p := cfg.painter(cc.Out)
	for _, e := range entries {
		fmt.Fprintf(cc.Out, "%s  %s\n", p.unchanged("%s", e.Timestamp), e.Note)
	}
	return nil
}
