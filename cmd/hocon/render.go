package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	hocon "github.com/hocon-format/go-hocon"
	"github.com/hocon-format/go-hocon/encode"
)

// loadArgs loads the named files, or standard input when there are
// none, and resolves the merge.
func loadArgs(cfg *MainConfig, args []string) (hocon.Value, error) {
	l := hocon.New(cfg.loaderOpts()...)
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return hocon.Value{}, err
		}
		if err := l.LoadString(string(data)); err != nil {
			return hocon.Value{}, err
		}
		return l.Resolve()
	}
	for _, a := range args {
		if err := l.LoadFile(a); err != nil {
			return hocon.Value{}, err
		}
	}
	return l.Resolve()
}

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	v, err := loadArgs(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	return encode.Encode(v.Node(), cc.Out, cfg.encOpts(cc.Out)...)
}
