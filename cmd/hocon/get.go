package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/hocon-format/go-hocon/encode"
	"github.com/hocon-format/go-hocon/ir"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: get needs a path", cli.ErrUsage)
	}
	path, err := ir.ParseKeyPath(args[0])
	if err != nil {
		return fmt.Errorf("%w: path %q: %w", cli.ErrUsage, args[0], err)
	}
	v, err := loadArgs(cfg.MainConfig, args[1:])
	if err != nil {
		return err
	}
	for _, c := range path {
		v = v.GetKey(c.Key)
	}
	if v.Node() == nil {
		return fmt.Errorf("no value at %q", args[0])
	}
	return encode.Encode(v.Node(), cc.Out, cfg.encOpts(cc.Out)...)
}
