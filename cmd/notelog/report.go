package main

import (
	"errors"
	"fmt"

	"github.com/signadot/notelog"
	"github.com/signadot/notelog/storage/dfile"

	"github.com/scott-cotton/cli"
)

// report prints the one line outcome of a mutating command.
func report(cfg *MainConfig, cc *cli.Context, sum *notelog.Summary, err error) error {
	p := cfg.painter(cc.Out)
	if err != nil {
		var wf *dfile.WriteFailure
		if errors.As(err, &wf) {
			fmt.Fprintln(cc.Out, p.failed("write failed, see %s", wf.TempPath))
		}
		return err
	}
	switch {
	case sum.Changed:
		fmt.Fprintln(cc.Out, p.changed("%s", sum.Narrative))
	case sum.Narrative != "":
		fmt.Fprintln(cc.Out, p.unchanged("%s", sum.Narrative))
	default:
		fmt.Fprintln(cc.Out, p.unchanged("%s", notelog.NothingChanged))
	}
	return nil
}
