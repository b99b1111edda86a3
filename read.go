package hocon

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"

	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/parse"
)

type format int

const (
	formatHocon format = iota
	formatJSON
	formatProperties
)

func formatOf(path string) (format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return formatProperties, true
	case ".json":
		return formatJSON, true
	case ".conf", ".hocon":
		return formatHocon, true
	default:
		return formatHocon, false
	}
}

// parseHocon parses notation text under cfg, with includes expanded
// relative to cfg.dir.
func parseHocon(cfg *config, data []byte) (*ir.Doc, error) {
	opts := []parse.Option{parse.WithIncluder(&includer{cfg: cfg})}
	if cfg.strict {
		opts = append(opts, parse.Strict())
	}
	return parse.Parse(data, opts...)
}

// readPath loads a path into a Doc. A recognized extension selects one
// format; without one, the .properties, .json and .conf variants that
// exist are each read and merged in that order.
func readPath(cfg *config, path string) (*ir.Doc, error) {
	if f, ok := formatOf(path); ok {
		return readFile(cfg, path, f)
	}
	probes := []struct {
		ext string
		f   format
	}{
		{".properties", formatProperties},
		{".json", formatJSON},
		{".conf", formatHocon},
	}
	doc := ir.NewDoc()
	found := false
	for _, probe := range probes {
		p := path + probe.ext
		ok, err := afero.Exists(cfg.fs, p)
		if err != nil {
			return nil, fmt.Errorf("%w: probing %q: %w", ErrLoad, p, err)
		}
		if !ok {
			continue
		}
		d, err := readFile(cfg, p, probe.f)
		if err != nil {
			return nil, err
		}
		doc = doc.Concat(d)
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: no .properties, .json or .conf file for %q", ErrLoad, path)
	}
	return doc, nil
}

func readFile(cfg *config, path string, f format) (*ir.Doc, error) {
	data, err := afero.ReadFile(cfg.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	switch f {
	case formatProperties:
		return docFromProperties(cfg, data)
	default:
		// JSON documents parse under the same grammar
		return parseHocon(cfg, data)
	}
}

// KeyText is one decoded properties pair, in file order.
type KeyText struct {
	Key  string
	Text string
}

// PropertiesDecoder decodes java-style properties text into ordered
// key/value pairs. The default decoder can be replaced with WithPropertiesDecoder.
type PropertiesDecoder interface {
	Decode(data []byte) ([]KeyText, error)
}

type magiconairDecoder struct{}

func (magiconairDecoder) Decode(data []byte) ([]KeyText, error) {
	// expansion stays off: ${...} in values is not the properties
	// loader's to interpret
	pl := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := pl.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	kts := make([]KeyText, 0, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		kts = append(kts, KeyText{Key: k, Text: v})
	}
	return kts, nil
}

// docFromProperties converts decoded properties pairs into entries:
// dotted keys address nested objects and values get the unquoted
// classification, so numbers and booleans come out typed.
func docFromProperties(cfg *config, data []byte) (*ir.Doc, error) {
	kts, err := cfg.props.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	doc := ir.NewDoc()
	for _, kt := range kts {
		path, err := ir.ParseKeyPath(kt.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: properties key %q: %w", ErrLoad, kt.Key, err)
		}
		doc.Add(path, ir.Classify(kt.Text))
	}
	return doc, nil
}
