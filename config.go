package hocon

import (
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// defaultMaxIncludeDepth bounds nested include chains.
const defaultMaxIncludeDepth = 10

type config struct {
	system     bool
	urlSupport bool
	strict     bool
	maxDepth   int
	fs         afero.Fs
	client     *http.Client
	env        map[string]string
	props      PropertiesDecoder

	// depth and dir travel with included files: depth is how many
	// includes deep this config is, dir the directory relative include
	// targets resolve against.
	depth int
	dir   string
}

func defaultConfig() *config {
	return &config{
		system:     true,
		urlSupport: true,
		maxDepth:   defaultMaxIncludeDepth,
		fs:         afero.NewOsFs(),
		client:     http.DefaultClient,
		props:      magiconairDecoder{},
	}
}

// included derives the config an included file parses under.
func (c *config) included(dir string) *config {
	cc := *c
	cc.depth = c.depth + 1
	cc.dir = dir
	return &cc
}

// withDir derives the config a top-level file parses under.
func (c *config) withDir(dir string) *config {
	cc := *c
	cc.dir = dir
	return &cc
}

// envMap returns the substitution fallback map: the configured one, or
// the process environment when system lookups are on.
func (c *config) envMap() map[string]string {
	if !c.system {
		return nil
	}
	if c.env != nil {
		return c.env
	}
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

type Option func(*config)

// Strict makes both incomplete parses and unresolvable values fatal.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// NoSystem disables environment variable fallback for substitutions.
func NoSystem() Option {
	return func(c *config) { c.system = false }
}

// NoURLIncludes disables fetching url() and http(s) include targets.
func NoURLIncludes() Option {
	return func(c *config) { c.urlSupport = false }
}

// MaxIncludeDepth overrides the include nesting bound.
func MaxIncludeDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithFs substitutes the filesystem files and includes are read from.
func WithFs(fs afero.Fs) Option {
	return func(c *config) { c.fs = fs }
}

// WithHTTPClient substitutes the client used for url includes.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.client = client }
}

// WithEnv substitutes the environment map consulted for substitution
// fallback, instead of the process environment.
func WithEnv(env map[string]string) Option {
	return func(c *config) { c.env = env }
}

// WithPropertiesDecoder substitutes the decoder for .properties files.
func WithPropertiesDecoder(d PropertiesDecoder) Option {
	return func(c *config) { c.props = d }
}
