package hocon

import (
	"fmt"
	"path/filepath"

	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/resolve"
)

// Loader accumulates documents from strings, files and urls. Documents
// merge in load order: later ones override per the duplicate-path
// rules. Resolve runs substitution resolution over the accumulated
// entries and returns the value tree.
type Loader struct {
	cfg *config
	doc *ir.Doc
}

func New(opts ...Option) *Loader {
	cfg := defaultConfig()
	for _, f := range opts {
		f(cfg)
	}
	return &Loader{cfg: cfg, doc: ir.NewDoc()}
}

// LoadString parses notation text and merges it into the loader.
// Relative include targets resolve against the working directory.
func (l *Loader) LoadString(src string) error {
	doc, err := parseHocon(l.cfg, []byte(src))
	if err != nil {
		return err
	}
	l.doc = l.doc.Concat(doc)
	return nil
}

// LoadFile reads a file and merges it into the loader. The extension
// selects the format: .properties, .json, or .conf/.hocon; a path
// without one probes all three. Relative include targets resolve
// against the file's directory.
func (l *Loader) LoadFile(path string) error {
	doc, err := readPath(l.cfg.withDir(filepath.Dir(path)), path)
	if err != nil {
		return err
	}
	l.doc = l.doc.Concat(doc)
	return nil
}

// LoadURL fetches a url and merges the fetched document into the
// loader.
func (l *Loader) LoadURL(url string) error {
	data, err := fetch(l.cfg.client, url)
	if err != nil {
		return err
	}
	doc, err := parseHocon(l.cfg, data)
	if err != nil {
		return err
	}
	l.doc = l.doc.Concat(doc)
	return nil
}

// Resolve resolves everything loaded so far into a value tree.
func (l *Loader) Resolve() (Value, error) {
	ropts := []resolve.Option{}
	if l.cfg.strict {
		ropts = append(ropts, resolve.Strict())
	}
	if env := l.cfg.envMap(); env != nil {
		ropts = append(ropts, resolve.Env(env))
	}
	y, err := resolve.Resolve(l.doc, ropts...)
	if err != nil {
		return Value{}, fmt.Errorf("resolving: %w", err)
	}
	return Value{y: y}, nil
}

// LoadString parses and resolves one document in a single call.
func LoadString(src string, opts ...Option) (Value, error) {
	l := New(opts...)
	if err := l.LoadString(src); err != nil {
		return Value{}, err
	}
	return l.Resolve()
}

// LoadFile reads and resolves one file in a single call.
func LoadFile(path string, opts ...Option) (Value, error) {
	l := New(opts...)
	if err := l.LoadFile(path); err != nil {
		return Value{}, err
	}
	return l.Resolve()
}

// LoadURL fetches and resolves one url in a single call.
func LoadURL(url string, opts ...Option) (Value, error) {
	l := New(opts...)
	if err := l.LoadURL(url); err != nil {
		return Value{}, err
	}
	return l.Resolve()
}
