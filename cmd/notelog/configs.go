package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/notelog"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	File    string `cli:"name=f aliases=file desc='log file path (default z.log.json)'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='include values in change notes'"`
	Color   bool   `cli:"name=color desc='color output'"`

	Main *cli.Command
}

func (cfg *MainConfig) path() string {
	if cfg.File == "" {
		return notelog.DefaultPath
	}
	return cfg.File
}

func (cfg *MainConfig) newLog() *notelog.Log {
	return notelog.New(
		notelog.WithPath(cfg.path()),
		notelog.WithVerbose(cfg.Verbose),
		notelog.WithLogger(theLog))
}

type painter struct {
	changed   func(string, ...any) string
	unchanged func(string, ...any) string
	failed    func(string, ...any) string
}

func (cfg *MainConfig) painter(w io.Writer) *painter {
	plain := &painter{changed: fmt.Sprintf, unchanged: fmt.Sprintf, failed: fmt.Sprintf}
	if !cfg.Color {
		f, ok := w.(*os.File)
		if !ok || !isatty.IsTerminal(f.Fd()) {
			return plain
		}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &painter{
		changed:   mk(color.FgGreen),
		unchanged: mk(color.FgHiBlack),
		failed:    mk(color.FgRed, color.Bold),
	}
}

type SetConfig struct {
	*MainConfig
	Message string `cli:"name=m aliases=message desc='message prepended to the change note'"`

	*cli.Command
}

type RemoveConfig struct {
	*MainConfig
	Message string `cli:"name=m aliases=message desc='message prepended to the change note'"`

	*cli.Command
}

type ShowConfig struct {
	*MainConfig
	Output string `cli:"name=o aliases=output desc='output format: json/j, yaml/y' default=json"`
	Key    string `cli:"name=k aliases=key desc='show only this field'"`

	*cli.Command
}

type HistoryConfig struct {
	*MainConfig
	N int `cli:"name=n desc='show only the last n entries'"`

	*cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	*cli.Command
}

type PatchConfig struct {
	*MainConfig
	Message string `cli:"name=m aliases=message desc='message prepended to the change note'"`
	String  bool   `cli:"name=s desc='patch arg as string'"`

	*cli.Command
}

type EvalConfig struct {
	*MainConfig

	*cli.Command
}
