package hocon

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hocon-format/go-hocon/debug"
	"github.com/hocon-format/go-hocon/ir"
	"github.com/hocon-format/go-hocon/parse"
)

// includer expands include directives for the parser. Each expansion
// derives a deeper config, so the depth bound holds across nested
// includes.
type includer struct {
	cfg *config
}

func (inc *includer) Include(pinc parse.Include) (*ir.Doc, error) {
	if inc.cfg.depth >= inc.cfg.maxDepth {
		return nil, fmt.Errorf("%w: %d nested includes (max %d)",
			ErrDepth, inc.cfg.depth+1, inc.cfg.maxDepth)
	}
	if debug.Include() {
		debug.Logf("include %s(%q) at depth %d\n", pinc.Kind, pinc.Target, inc.cfg.depth)
	}
	switch pinc.Kind {
	case parse.IncludeURL:
		return inc.fromURL(pinc.Target)
	case parse.IncludeFile:
		return inc.fromFile(pinc.Target)
	default:
		switch {
		case strings.HasPrefix(pinc.Target, "http://"),
			strings.HasPrefix(pinc.Target, "https://"):
			return inc.fromURL(pinc.Target)
		case strings.HasPrefix(pinc.Target, "file://"):
			return inc.fromFile(strings.TrimPrefix(pinc.Target, "file://"))
		default:
			return inc.fromFile(pinc.Target)
		}
	}
}

func (inc *includer) fromFile(target string) (*ir.Doc, error) {
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(inc.cfg.dir, path)
	}
	return readPath(inc.cfg.included(filepath.Dir(path)), path)
}

func (inc *includer) fromURL(target string) (*ir.Doc, error) {
	if !inc.cfg.urlSupport {
		return nil, fmt.Errorf("%w: url includes are disabled", ErrLoad)
	}
	data, err := fetch(inc.cfg.client, target)
	if err != nil {
		return nil, err
	}
	// no directory context: relative file includes inside a url
	// document resolve against the working directory
	return parseHocon(inc.cfg.included(""), data)
}

func fetch(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %q: %s", ErrLoad, url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrLoad, url, err)
	}
	return data, nil
}
