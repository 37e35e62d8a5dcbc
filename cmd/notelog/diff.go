package main

import (
	"fmt"

	"github.com/signadot/notelog/merge"
	"github.com/signadot/notelog/storage/dfile"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two log files", cli.ErrUsage)
	}
	from, err := dfile.Read(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	to, err := dfile.Read(args[1])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[1], err)
	}
	if cfg.Reverse {
		from, to = to, from
	}
	changes := merge.Diff(from.Fields, to.Fields)
	p := cfg.painter(cc.Out)
	if len(changes) == 0 {
		fmt.Fprintln(cc.Out, p.unchanged("no differences"))
		return nil
	}
	for _, c := range changes {
		line := c.Render(true)
		if c.Kind == merge.Removed {
			fmt.Fprintln(cc.Out, p.failed("%s", line))
			continue
		}
		fmt.Fprintln(cc.Out, p.changed("%s", line))
	}
	return nil
}
