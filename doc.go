// Package hocon loads and resolves HOCON-style configuration, a
// superset of JSON with unquoted keys and strings, duplicate-key
// merging, `+=` array appends, `${path}` substitutions and include
// directives.
//
// # Usage
//
//	v, err := hocon.LoadString(`
//	    server { host = localhost, port = 8080 }
//	    server.url = "http://"${server.host}":"${server.port}
//	`)
//	if err != nil {
//	    return err
//	}
//	url, _ := v.GetKey("server").GetKey("url").AsString()
//
// Several sources merge through a Loader, later ones overriding:
//
//	l := hocon.New()
//	_ = l.LoadFile("defaults.conf")
//	_ = l.LoadFile("override.json")
//	v, err := l.Resolve()
//
// Files load by extension: .properties as java-style properties, .json
// and .conf/.hocon under the shared grammar; a path without an
// extension probes all three. Include directives inside documents read
// further files or urls, bounded in nesting depth.
//
// Values that fail to resolve surface as bad values carrying a
// diagnostic; under Strict they abort loading instead.
//
// # Related Packages
//
//   - github.com/hocon-format/go-hocon/parse - grammar
//   - github.com/hocon-format/go-hocon/resolve - merge and substitution engine
//   - github.com/hocon-format/go-hocon/ir - document and value tree model
package hocon
