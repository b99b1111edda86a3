package parse

type parseOpts struct {
	strict   bool
	includer Includer
}

type Option func(*parseOpts)

// Strict makes incomplete consumption of the input a parse failure
// instead of accepting the partial parse.
func Strict() Option {
	return func(o *parseOpts) { o.strict = true }
}

// WithIncluder sets the hook expanding include directives. Without
// one, documents containing include directives fail with ErrInclude.
func WithIncluder(inc Includer) Option {
	return func(o *parseOpts) { o.includer = inc }
}
