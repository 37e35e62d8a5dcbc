package main

import (
	"fmt"
	"strings"

	"github.com/signadot/notelog/doc"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 && cfg.Message == "" {
		return fmt.Errorf("%w: set requires key=value arguments or a message", cli.ErrUsage)
	}
	updates, err := parseAssignments(args)
	if err != nil {
		return err
	}
	sum, err := cfg.newLog().Update(updates, cfg.Message)
	return report(cfg.MainConfig, cc, sum, err)
}

// parseAssignments turns key=value arguments into ordered fields.
func parseAssignments(args []string) (*doc.Fields, error) {
	res := doc.NewFields()
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", cli.ErrUsage, arg)
		}
		res.Set(k, doc.ParseValue(v))
	}
	return res, nil
}
