package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	hocon "github.com/hocon-format/go-hocon"
	"github.com/hocon-format/go-hocon/encode"
	"github.com/hocon-format/go-hocon/format"
)

type MainConfig struct {
	J        bool `cli:"name=j aliases=json desc='output in json'"`
	Color    bool `cli:"name=color desc='encode with color'"`
	WireOut  bool `cli:"name=wire desc='output in compact format'"`
	Strict   bool `cli:"name=strict desc='fail on incomplete parses and unresolved values'"`
	NoSys    bool `cli:"name=noSystem desc='no environment fallback for substitutions'"`
	NoURL    bool `cli:"name=noUrl desc='do not fetch url includes'"`
	MaxDepth int  `cli:"name=maxDepth desc='maximum include nesting'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) loaderOpts() []hocon.Option {
	res := []hocon.Option{}
	if cfg.Strict {
		res = append(res, hocon.Strict())
	}
	if cfg.NoSys {
		res = append(res, hocon.NoSystem())
	}
	if cfg.NoURL {
		res = append(res, hocon.NoURLIncludes())
	}
	if cfg.MaxDepth > 0 {
		res = append(res, hocon.MaxIncludeDepth(cfg.MaxDepth))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.HOCONFormat
	if cfg.J {
		fmat = format.JSONFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type RenderConfig struct {
	*MainConfig

	Render *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
